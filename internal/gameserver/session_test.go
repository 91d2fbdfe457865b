package gameserver

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/udisondev/aiongo/internal/model"
	"github.com/udisondev/aiongo/internal/world"
)

var kinahTmpl = &model.ItemTemplate{ItemID: 182400001, Name: "Kinah", Category: model.ItemCategoryCurrency}

// fakeStore записывает порядок вызовов load/restore/save.
type fakeStore struct {
	calls   []string
	records []model.ItemRecord
	loadErr error
	restErr error
	saveErr error
	saved   []uint32
}

func (f *fakeStore) LoadInventory(_ context.Context, ownerID uint32) ([]model.ItemRecord, error) {
	f.calls = append(f.calls, "load")
	return f.records, f.loadErr
}

func (f *fakeStore) RestoreInventory(_ context.Context, player *model.Player, records []model.ItemRecord) error {
	f.calls = append(f.calls, "restore")
	for _, rec := range records {
		item, err := model.NewItem(rec.ObjectID, rec.ItemID, kinahTmpl, rec.Count, false, model.SlotUnassigned)
		if err != nil {
			return err
		}
		player.Inventory().SetKinahItem(item)
	}
	return f.restErr
}

func (f *fakeStore) SaveInventory(_ context.Context, player *model.Player) error {
	f.calls = append(f.calls, "save")
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, player.ObjectID())
	return nil
}

func newTestSessions(store *fakeStore) (*SessionManager, *ClientManager, *world.World) {
	clients := NewClientManager(4)
	w := world.New()
	return NewSessionManager(clients, w, store, store, store, 0), clients, w
}

func TestSessionManager_EnterLeave(t *testing.T) {
	store := &fakeStore{records: []model.ItemRecord{
		{ObjectID: 0x30000001, ItemID: kinahTmpl.ItemID, Count: 2500, Slot: model.SlotUnassigned},
	}}
	sessions, clients, w := newTestSessions(store)
	ctx := context.Background()

	player, err := sessions.EnterWorld(ctx, 0x10000001, "Hero", 3)
	if err != nil {
		t.Fatalf("EnterWorld() error = %v", err)
	}
	if player.AccessLevel() != 3 {
		t.Errorf("AccessLevel() = %d, want 3", player.AccessLevel())
	}
	if got := player.Inventory().KinahCount(); got != 2500 {
		t.Errorf("KinahCount() = %d, want 2500", got)
	}
	if got, ok := w.GetPlayer(0x10000001); !ok || got != player {
		t.Errorf("GetPlayer() = %v, %v", got, ok)
	}
	client := clients.GetClientByObjectID(0x10000001)
	if client == nil {
		t.Fatalf("client not registered")
	}

	if _, err := sessions.EnterWorld(ctx, 0x10000001, "Hero", 3); !errors.Is(err, ErrAlreadyOnline) {
		t.Errorf("EnterWorld(twice) error = %v, want ErrAlreadyOnline", err)
	}

	if err := sessions.LeaveWorld(ctx, 0x10000001); err != nil {
		t.Fatalf("LeaveWorld() error = %v", err)
	}
	if _, ok := w.GetPlayer(0x10000001); ok {
		t.Errorf("player still in world after LeaveWorld")
	}
	if clients.PlayerCount() != 0 {
		t.Errorf("PlayerCount() = %d, want 0", clients.PlayerCount())
	}
	select {
	case <-client.Done():
	default:
		t.Errorf("client not closed on LeaveWorld")
	}
	if !slices.Equal(store.saved, []uint32{0x10000001}) {
		t.Errorf("saved = %v, want [0x10000001]", store.saved)
	}

	want := []string{"load", "restore", "save"}
	if !slices.Equal(store.calls, want) {
		t.Errorf("calls = %v, want %v", store.calls, want)
	}

	if err := sessions.LeaveWorld(ctx, 0x10000001); !errors.Is(err, ErrNotOnline) {
		t.Errorf("LeaveWorld(offline) error = %v, want ErrNotOnline", err)
	}
}

func TestSessionManager_EnterErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("load failure keeps player offline", func(t *testing.T) {
		store := &fakeStore{loadErr: errors.New("connection reset")}
		sessions, clients, w := newTestSessions(store)

		if _, err := sessions.EnterWorld(ctx, 0x10000002, "Hero", 0); err == nil {
			t.Fatalf("EnterWorld() error = nil")
		}
		if w.PlayerCount() != 0 || clients.PlayerCount() != 0 {
			t.Errorf("world=%d clients=%d, want 0/0", w.PlayerCount(), clients.PlayerCount())
		}
		if slices.Contains(store.calls, "restore") {
			t.Errorf("restore called after failed load")
		}
	})

	t.Run("restore errors are not fatal", func(t *testing.T) {
		store := &fakeStore{restErr: errors.New("item 0x30000009: template not found")}
		sessions, clients, _ := newTestSessions(store)

		if _, err := sessions.EnterWorld(ctx, 0x10000003, "Hero", 0); err != nil {
			t.Fatalf("EnterWorld() error = %v", err)
		}
		if clients.GetClientByObjectID(0x10000003) == nil {
			t.Errorf("client not registered")
		}
	})
}

func TestSessionManager_LeaveSaveFailure(t *testing.T) {
	store := &fakeStore{}
	sessions, clients, w := newTestSessions(store)
	ctx := context.Background()

	if _, err := sessions.EnterWorld(ctx, 0x10000004, "Hero", 0); err != nil {
		t.Fatalf("EnterWorld() error = %v", err)
	}

	store.saveErr = errors.New("deadlock detected")
	if err := sessions.LeaveWorld(ctx, 0x10000004); err == nil {
		t.Fatalf("LeaveWorld() error = nil")
	}
	if _, ok := w.GetPlayer(0x10000004); !ok {
		t.Errorf("player removed despite failed save")
	}
	if clients.GetClientByObjectID(0x10000004) == nil {
		t.Errorf("client unregistered despite failed save")
	}

	store.saveErr = nil
	if err := sessions.LeaveWorld(ctx, 0x10000004); err != nil {
		t.Errorf("LeaveWorld() retry error = %v", err)
	}
}
