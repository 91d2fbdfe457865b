package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/aiongo/internal/gameserver"
	"github.com/udisondev/aiongo/internal/model"
)

// PlayerFinder резолвит online игрока по objectID.
type PlayerFinder interface {
	GetPlayer(objectID uint32) (*model.Player, bool)
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sessions вводит игрока в мир и выводит из него.
type Sessions interface {
	EnterWorld(ctx context.Context, playerID uint32, name string, accessLevel int32) (*model.Player, error)
	LeaveWorld(ctx context.Context, playerID uint32) error
}

// CommandRunner исполняет admin command от имени игрока.
type CommandRunner interface {
	HandleAdminCommand(player *model.Player, text string) bool
}

// RouterOption подключает опциональные routes.
type RouterOption func(r chi.Router, players PlayerFinder)

// WithSessions добавляет POST /players/{id}/enter и /players/{id}/leave.
func WithSessions(sessions Sessions) RouterOption {
	return func(r chi.Router, _ PlayerFinder) {
		r.Post("/players/{id}/enter", handleEnter(sessions))
		r.Post("/players/{id}/leave", handleLeave(sessions))
	}
}

// WithCommands добавляет POST /players/{id}/command.
func WithCommands(commands CommandRunner) RouterOption {
	return func(r chi.Router, players PlayerFinder) {
		r.Post("/players/{id}/command", handleCommand(players, commands))
	}
}

const (
	healthTimeout = 2 * time.Second
	maxBodyBytes  = 4 << 10
)

// EnterRequest — тело POST /players/{id}/enter.
type EnterRequest struct {
	Name        string `json:"name"`
	AccessLevel int32  `json:"access_level"`
}

// CommandRequest — тело POST /players/{id}/command. Префикс // необязателен.
type CommandRequest struct {
	Text string `json:"text"`
}

// CommandResponse — результат admin command.
type CommandResponse struct {
	Handled bool   `json:"handled"`
	Message string `json:"message,omitempty"`
}

// InventoryView — JSON dump инвентаря для GET /players/{id}/inventory.
type InventoryView struct {
	OwnerID   uint32     `json:"owner_id"`
	Name      string     `json:"name"`
	Limit     int        `json:"limit"`
	FreeSlots int        `json:"free_slots"`
	Kinah     int64      `json:"kinah"`
	Items     []ItemView `json:"items"`
}

// ItemView — один предмет в InventoryView.
type ItemView struct {
	ObjectID uint32      `json:"object_id"`
	ItemID   int32       `json:"item_id"`
	Name     string      `json:"name"`
	Count    int64       `json:"count"`
	Equipped bool        `json:"equipped"`
	Slot     int32       `json:"slot"`
	Stones   []StoneView `json:"stones,omitempty"`
}

// StoneView — manastone в сокете предмета.
type StoneView struct {
	Slot   int32 `json:"slot"`
	ItemID int32 `json:"item_id"`
}

// NewRouter собирает admin HTTP: /healthz, /metrics, /players/{id}/inventory
// и routes из opts. health может быть nil (БД не подключена).
func NewRouter(players PlayerFinder, health Pinger, opts ...RouterOption) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealthz(health))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/players/{id}/inventory", handleInventory(players))

	for _, opt := range opts {
		opt(r, players)
	}
	return r
}

func handleHealthz(health Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := health.Ping(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleInventory(players PlayerFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerID(w, r)
		if !ok {
			return
		}

		player, ok := players.GetPlayer(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "player not online"})
			return
		}

		writeJSON(w, http.StatusOK, viewOf(player))
	}
}

func handleEnter(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerID(w, r)
		if !ok {
			return
		}
		var req EnterRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Name == "" {
			req.Name = "player-" + strconv.FormatUint(uint64(id), 10)
		}

		player, err := sessions.EnterWorld(r.Context(), id, req.Name, req.AccessLevel)
		switch {
		case errors.Is(err, gameserver.ErrAlreadyOnline):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		case err != nil:
			slog.Error("enter world failed", "objectID", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "enter world failed"})
			return
		}
		writeJSON(w, http.StatusCreated, viewOf(player))
	}
}

func handleLeave(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerID(w, r)
		if !ok {
			return
		}

		err := sessions.LeaveWorld(r.Context(), id)
		switch {
		case errors.Is(err, gameserver.ErrNotOnline):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "player not online"})
			return
		case err != nil:
			slog.Error("leave world failed", "objectID", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "leave world failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
	}
}

func handleCommand(players PlayerFinder, commands CommandRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerID(w, r)
		if !ok {
			return
		}
		var req CommandRequest
		if !decodeBody(w, r, &req) {
			return
		}
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(req.Text), "//"))
		if text == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty command"})
			return
		}

		player, ok := players.GetPlayer(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "player not online"})
			return
		}

		// Ответ предыдущей команды не должен попасть в этот.
		player.SetLastAdminMessage("")
		handled := commands.HandleAdminCommand(player, text)
		writeJSON(w, http.StatusOK, CommandResponse{
			Handled: handled,
			Message: player.LastAdminMessage(),
		})
	}
}

// playerID разбирает {id}; при ошибке уже ответил 400.
func playerID(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 0, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid player id"})
		return 0, false
	}
	return uint32(id), true
}

// decodeBody читает JSON тело; пустое тело допустимо.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// viewOf снимает snapshot под operation lock инвентаря.
func viewOf(player *model.Player) InventoryView {
	inv := player.Inventory()
	inv.Lock()
	defer inv.Unlock()

	items := inv.AllItems()
	view := InventoryView{
		OwnerID:   player.ObjectID(),
		Name:      player.Name(),
		Limit:     inv.Limit(),
		FreeSlots: inv.FreeSlots(),
		Kinah:     inv.KinahCount(),
		Items:     make([]ItemView, 0, len(items)),
	}
	for _, it := range items {
		rec := model.RecordOf(it)
		iv := ItemView{
			ObjectID: rec.ObjectID,
			ItemID:   rec.ItemID,
			Name:     it.Name(),
			Count:    rec.Count,
			Equipped: rec.Equipped,
			Slot:     rec.Slot,
		}
		for _, st := range it.ItemStones() {
			iv.Stones = append(iv.Stones, StoneView{Slot: st.Slot(), ItemID: st.ItemID()})
		}
		view.Items = append(view.Items, iv)
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding admin response", "error", err)
	}
}
