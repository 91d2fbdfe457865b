package serverpackets

import (
	"testing"

	"github.com/udisondev/aiongo/internal/model"
)

type recordingSender struct {
	sent []Packet
	to   []uint32
}

func (s *recordingSender) SendPacket(playerObjectID uint32, pkt Packet) {
	s.to = append(s.to, playerObjectID)
	s.sent = append(s.sent, pkt)
}

func TestInfoOf_Snapshot(t *testing.T) {
	item, _ := model.NewItem(7, 100, nil, 5, false, model.SlotUnassigned)
	pkt := NewUpdateItem(item)

	item.IncreaseCount(10)

	if pkt.Item.Count != 5 {
		t.Errorf("UpdateItem.Item.Count = %d, want 5 (snapshot)", pkt.Item.Count)
	}
	if pkt.Item.ObjectID != 7 {
		t.Errorf("UpdateItem.Item.ObjectID = %d, want 7", pkt.Item.ObjectID)
	}
}

func TestOutbox_Flush(t *testing.T) {
	a, _ := model.NewItem(1, 100, nil, 1, false, model.SlotUnassigned)
	b, _ := model.NewItem(2, 100, nil, 2, false, model.SlotUnassigned)

	out := NewOutbox(42)
	out.Add(NewInventoryUpdate(a, b))
	out.Add(NewDeleteItem(3))

	s := &recordingSender{}
	out.Flush(s)

	if len(s.sent) != 2 {
		t.Fatalf("sent %d packets, want 2", len(s.sent))
	}
	if s.sent[0].Kind() != KindInventoryUpdate || s.sent[1].Kind() != KindDeleteItem {
		t.Errorf("kinds = %v, %v", s.sent[0].Kind(), s.sent[1].Kind())
	}
	if iu := s.sent[0].(*InventoryUpdate); len(iu.Items) != 2 {
		t.Errorf("InventoryUpdate items = %d, want 2", len(iu.Items))
	}
	for _, to := range s.to {
		if to != 42 {
			t.Errorf("sent to %d, want 42", to)
		}
	}
	if out.Len() != 0 {
		t.Errorf("Len() after Flush = %d, want 0", out.Len())
	}
}

func TestKind_String(t *testing.T) {
	if KindUpdateItem.String() != "UpdateItem" {
		t.Errorf("String() = %q", KindUpdateItem.String())
	}
	if Kind(99).String() != "Unknown" {
		t.Errorf("String() = %q", Kind(99).String())
	}
}
