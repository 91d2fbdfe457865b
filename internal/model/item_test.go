package model

import (
	"sync"
	"testing"
)

func TestNewItem(t *testing.T) {
	tmpl := &ItemTemplate{ItemID: 100, Name: "Potion", MaxStackCount: 10}

	tests := []struct {
		name     string
		objectID uint32
		count    int64
		equipped bool
		slot     int32
		wantErr  bool
	}{
		{name: "valid item", objectID: 1, count: 5, slot: SlotUnassigned},
		{name: "zero count (kinah accumulator)", objectID: 1, count: 0, slot: SlotUnassigned},
		{name: "negative count", objectID: 1, count: -1, slot: SlotUnassigned, wantErr: true},
		{name: "zero objectID", objectID: 0, count: 1, slot: SlotUnassigned, wantErr: true},
		{name: "equipped without slot", objectID: 1, count: 1, equipped: true, slot: SlotUnassigned, wantErr: true},
		{name: "equipped with slot", objectID: 1, count: 1, equipped: true, slot: EquipSlotMainHand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewItem(tt.objectID, 100, tmpl, tt.count, tt.equipped, tt.slot)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewItem() error = nil, wantErr = true")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewItem() unexpected error: %v", err)
			}
			if item.Count() != tt.count {
				t.Errorf("Count() = %d, want %d", item.Count(), tt.count)
			}
			if item.IsEquipped() != tt.equipped {
				t.Errorf("IsEquipped() = %v, want %v", item.IsEquipped(), tt.equipped)
			}
		})
	}
}

func TestItem_DecreaseCount(t *testing.T) {
	item, _ := NewItem(1, 100, nil, 5, false, SlotUnassigned)

	if item.DecreaseCount(6) {
		t.Errorf("DecreaseCount(6) = true, want false")
	}
	if item.Count() != 5 {
		t.Errorf("Count() = %d, want 5 (unchanged)", item.Count())
	}
	if item.DecreaseCount(-1) {
		t.Errorf("DecreaseCount(-1) = true, want false")
	}
	if !item.DecreaseCount(5) {
		t.Errorf("DecreaseCount(5) = false, want true")
	}
	if item.Count() != 0 {
		t.Errorf("Count() = %d, want 0", item.Count())
	}
}

func TestItem_NilTemplate(t *testing.T) {
	item, err := NewItem(1, 999, nil, 1, false, SlotUnassigned)
	if err != nil {
		t.Fatalf("NewItem() unexpected error: %v", err)
	}
	if item.IsArmor() || item.IsWeapon() {
		t.Errorf("nil template item must not be armor/weapon")
	}
	if item.MaxStackCount() != 0 {
		t.Errorf("MaxStackCount() = %d, want 0", item.MaxStackCount())
	}
	if item.Name() != "<missing template 999>" {
		t.Errorf("Name() = %q", item.Name())
	}
}

func TestItem_SetSlotIgnoredWhenEquipped(t *testing.T) {
	item, _ := NewItem(1, 100, nil, 1, true, EquipSlotTorso)
	item.SetSlot(5)
	if item.Slot() != EquipSlotTorso {
		t.Errorf("Slot() = %d, want %d", item.Slot(), EquipSlotTorso)
	}
}

func TestItem_ItemStones(t *testing.T) {
	item, _ := NewItem(1, 100, nil, 1, false, SlotUnassigned)

	if !item.AddItemStone(NewItemStone(1, 167000001, 2)) {
		t.Fatalf("AddItemStone(slot 2) = false")
	}
	if !item.AddItemStone(NewItemStone(1, 167000002, 0)) {
		t.Fatalf("AddItemStone(slot 0) = false")
	}
	if item.AddItemStone(NewItemStone(1, 167000003, 2)) {
		t.Errorf("AddItemStone(occupied slot 2) = true, want false")
	}

	stones := item.ItemStones()
	if len(stones) != 2 {
		t.Fatalf("len(ItemStones()) = %d, want 2", len(stones))
	}
	if stones[0].Slot() != 0 || stones[1].Slot() != 2 {
		t.Errorf("stones not sorted by slot: %d, %d", stones[0].Slot(), stones[1].Slot())
	}

	removed := item.RemoveItemStone(2)
	if removed == nil || removed.ItemID() != 167000001 {
		t.Errorf("RemoveItemStone(2) = %v", removed)
	}
	if item.ItemStone(2) != nil {
		t.Errorf("ItemStone(2) != nil after removal")
	}
	if item.RemoveItemStone(5) != nil {
		t.Errorf("RemoveItemStone(empty) != nil")
	}
}

func TestItem_ConcurrentCount(t *testing.T) {
	item, _ := NewItem(1, 100, nil, 0, false, SlotUnassigned)

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item.IncreaseCount(1)
		}()
	}
	wg.Wait()

	if item.Count() != 100 {
		t.Errorf("Count() = %d, want 100", item.Count())
	}
}

func TestItemTemplate_StackRoom(t *testing.T) {
	tests := []struct {
		name    string
		max     int64
		current int64
		want    int64
	}{
		{"bounded with room", 10, 7, 3},
		{"bounded full", 10, 10, 0},
		{"bounded over", 10, 12, 0},
		{"unbounded", 0, 5, 1<<63 - 1 - 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := &ItemTemplate{MaxStackCount: tt.max}
			if got := tmpl.StackRoom(tt.current); got != tt.want {
				t.Errorf("StackRoom(%d) = %d, want %d", tt.current, got, tt.want)
			}
		})
	}
}

func TestParseItemCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    ItemCategory
		wantErr bool
	}{
		{"", ItemCategoryOther, false},
		{"Armor", ItemCategoryArmor, false},
		{"weapon", ItemCategoryWeapon, false},
		{"CURRENCY", ItemCategoryCurrency, false},
		{"food", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseItemCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseItemCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseItemCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
