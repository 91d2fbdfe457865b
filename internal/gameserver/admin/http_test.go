package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aiongo/internal/gameserver"
	"github.com/udisondev/aiongo/internal/model"
)

type fakePlayers map[uint32]*model.Player

func (f fakePlayers) GetPlayer(objectID uint32) (*model.Player, bool) {
	p, ok := f[objectID]
	return p, ok
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// fakeSessions вводит игроков прямо в fakePlayers.
type fakeSessions struct {
	players fakePlayers
	saveErr error
}

func (f *fakeSessions) EnterWorld(_ context.Context, id uint32, name string, level int32) (*model.Player, error) {
	if _, ok := f.players[id]; ok {
		return nil, fmt.Errorf("player %d: %w", id, gameserver.ErrAlreadyOnline)
	}
	p, err := model.NewPlayer(id, name, 0, nil)
	if err != nil {
		return nil, err
	}
	p.SetAccessLevel(level)
	f.players[id] = p
	return p, nil
}

func (f *fakeSessions) LeaveWorld(_ context.Context, id uint32) error {
	if _, ok := f.players[id]; !ok {
		return fmt.Errorf("player %d: %w", id, gameserver.ErrNotOnline)
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	delete(f.players, id)
	return nil
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	tests := []struct {
		name   string
		health Pinger
		want   int
	}{
		{"no db", nil, http.StatusOK},
		{"db up", fakePinger{}, http.StatusOK},
		{"db down", fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, NewRouter(fakePlayers{}, tt.health), "/healthz")
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	rec := serve(t, NewRouter(fakePlayers{}, nil), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Inventory(t *testing.T) {
	p, err := model.NewPlayer(0x10000001, "Trader", 5, nil)
	require.NoError(t, err)

	potionTmpl := &model.ItemTemplate{ItemID: 162000010, Name: "Lesser Life Potion", MaxStackCount: 10}
	potion, err := model.NewItem(0x30000001, potionTmpl.ItemID, potionTmpl, 7, false, 0)
	require.NoError(t, err)
	require.True(t, p.Inventory().PutToBag(potion))
	kinahTmpl := &model.ItemTemplate{ItemID: 182400001, Name: "Kinah", Category: model.ItemCategoryCurrency}
	kinah, err := model.NewItem(0x30000002, kinahTmpl.ItemID, kinahTmpl, 1500, false, 0)
	require.NoError(t, err)
	require.True(t, p.Inventory().SetKinahItem(kinah))

	router := NewRouter(fakePlayers{p.ObjectID(): p}, nil)

	rec := serve(t, router, "/players/0x10000001/inventory")
	require.Equal(t, http.StatusOK, rec.Code)

	var view InventoryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, uint32(0x10000001), view.OwnerID)
	assert.Equal(t, "Trader", view.Name)
	assert.Equal(t, 5, view.Limit)
	assert.Equal(t, 4, view.FreeSlots)
	assert.Equal(t, int64(1500), view.Kinah)

	var found bool
	for _, it := range view.Items {
		if it.ObjectID == 0x30000001 {
			found = true
			assert.Equal(t, int64(7), it.Count)
			assert.Equal(t, "Lesser Life Potion", it.Name)
		}
	}
	assert.True(t, found, "potion missing from view")
}

func TestRouter_Inventory_Errors(t *testing.T) {
	router := NewRouter(fakePlayers{}, nil)

	rec := serve(t, router, "/players/abc/inventory")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, router, "/players/268435457/inventory")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_EnterLeave(t *testing.T) {
	players := fakePlayers{}
	sessions := &fakeSessions{players: players}
	router := NewRouter(players, nil, WithSessions(sessions))

	rec := post(t, router, "/players/0x10000001/enter", `{"name":"Hero","access_level":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var view InventoryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, uint32(0x10000001), view.OwnerID)
	assert.Equal(t, "Hero", view.Name)
	require.Contains(t, players, uint32(0x10000001))
	assert.Equal(t, int32(3), players[0x10000001].AccessLevel())

	rec = post(t, router, "/players/0x10000001/enter", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, router, "/players/0x10000001/inventory")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post(t, router, "/players/0x10000001/leave", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, players, uint32(0x10000001))

	rec = post(t, router, "/players/0x10000001/leave", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_EnterLeave_Errors(t *testing.T) {
	players := fakePlayers{}
	sessions := &fakeSessions{players: players}
	router := NewRouter(players, nil, WithSessions(sessions))

	// Имя по умолчанию из objectID.
	rec := post(t, router, "/players/268435458/enter", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "player-268435458", players[268435458].Name())

	rec = post(t, router, "/players/abc/enter", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, router, "/players/0x10000003/enter", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sessions.saveErr = errors.New("connection refused")
	rec = post(t, router, "/players/268435458/leave", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, players, uint32(268435458))

	// Без WithSessions routes нет.
	rec = post(t, NewRouter(players, nil), "/players/268435458/enter", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Command(t *testing.T) {
	cmd := &mockCommand{names: []string{"add"}, level: model.AccessLevelGM}
	h := NewHandler()
	h.RegisterAdmin(cmd)

	gm := newPlayer(t, model.AccessLevelGM)
	players := fakePlayers{gm.ObjectID(): gm}
	router := NewRouter(players, nil, WithCommands(h))

	rec := post(t, router, "/players/0x10000001/command", `{"text":"//add 162000010 5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp CommandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Handled)
	assert.Empty(t, resp.Message)
	assert.Equal(t, 1, cmd.called)
	assert.Equal(t, []string{"add", "162000010", "5"}, cmd.lastArgs)

	rec = post(t, router, "/players/0x10000001/command", `{"text":"teleport"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = CommandResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Handled)
	assert.Equal(t, "Unknown command: //teleport", resp.Message)

	// Ответ прошлой команды сбрасывается.
	rec = post(t, router, "/players/0x10000001/command", `{"text":"add 162000010 1"}`)
	resp = CommandResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Handled)
	assert.Empty(t, resp.Message)

	rec = post(t, router, "/players/0x10000001/command", `{"text":"  // "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, router, "/players/0x10000009/command", `{"text":"add 1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 2, cmd.called)
}
