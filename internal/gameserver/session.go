package gameserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/aiongo/internal/model"
)

var (
	// ErrAlreadyOnline — игрок уже в мире.
	ErrAlreadyOnline = errors.New("player already online")
	// ErrNotOnline — игрока нет в мире.
	ErrNotOnline = errors.New("player not online")
)

// InventoryLoader читает сохранённые предметы владельца.
type InventoryLoader interface {
	LoadInventory(ctx context.Context, ownerID uint32) ([]model.ItemRecord, error)
}

// InventoryRestorer гидратирует инвентарь из записей хранилища.
type InventoryRestorer interface {
	RestoreInventory(ctx context.Context, player *model.Player, records []model.ItemRecord) error
}

// InventorySaver сохраняет инвентарь игрока целиком.
type InventorySaver interface {
	SaveInventory(ctx context.Context, player *model.Player) error
}

// PlayerRegistry — реестр объектов мира.
type PlayerRegistry interface {
	AddPlayer(p *model.Player) error
	GetPlayer(objectID uint32) (*model.Player, bool)
	RemoveObject(objectID uint32)
}

// SessionManager вводит игроков в мир и выводит из него:
// load → restore → world → outbox, и обратно save → world → outbox.
type SessionManager struct {
	// mu сериализует enter/leave, чтобы один objectID не вошёл дважды.
	mu sync.Mutex

	clients   *ClientManager
	world     PlayerRegistry
	loader    InventoryLoader
	restorer  InventoryRestorer
	saver     InventorySaver
	cubeLimit int
}

// NewSessionManager creates a session manager.
func NewSessionManager(
	clients *ClientManager,
	world PlayerRegistry,
	loader InventoryLoader,
	restorer InventoryRestorer,
	saver InventorySaver,
	cubeLimit int,
) *SessionManager {
	return &SessionManager{
		clients:   clients,
		world:     world,
		loader:    loader,
		restorer:  restorer,
		saver:     saver,
		cubeLimit: cubeLimit,
	}
}

// EnterWorld загружает инвентарь игрока, регистрирует его в мире и открывает outbox.
// Ошибки отдельных предметов при restore логируются: игрок входит с тем, что удалось поднять.
func (m *SessionManager) EnterWorld(ctx context.Context, playerID uint32, name string, accessLevel int32) (*model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.world.GetPlayer(playerID); ok {
		return nil, fmt.Errorf("player %d: %w", playerID, ErrAlreadyOnline)
	}

	player, err := model.NewPlayer(playerID, name, m.cubeLimit, nil)
	if err != nil {
		return nil, fmt.Errorf("creating player %d: %w", playerID, err)
	}
	player.SetAccessLevel(accessLevel)

	records, err := m.loader.LoadInventory(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading inventory of %d: %w", playerID, err)
	}
	if err := m.restorer.RestoreInventory(ctx, player, records); err != nil {
		slog.Warn("inventory restored with errors",
			"player", name,
			"objectID", playerID,
			"error", err)
	}

	if err := m.world.AddPlayer(player); err != nil {
		return nil, fmt.Errorf("adding player %d to world: %w", playerID, err)
	}
	m.clients.RegisterPlayer(playerID)

	slog.Info("player entered world",
		"player", name,
		"objectID", playerID,
		"items", len(records),
		"kinah", player.Inventory().KinahCount())
	return player, nil
}

// LeaveWorld сохраняет инвентарь и выводит игрока из мира.
// Если сохранить не удалось, игрок остаётся online: повтор не теряет данные.
func (m *SessionManager) LeaveWorld(ctx context.Context, playerID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	player, ok := m.world.GetPlayer(playerID)
	if !ok {
		return fmt.Errorf("player %d: %w", playerID, ErrNotOnline)
	}

	if err := m.saver.SaveInventory(ctx, player); err != nil {
		return fmt.Errorf("saving inventory of %d: %w", playerID, err)
	}

	m.world.RemoveObject(playerID)
	m.clients.UnregisterPlayer(playerID)

	slog.Info("player left world", "player", player.Name(), "objectID", playerID)
	return nil
}
