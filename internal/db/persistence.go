package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/aiongo/internal/model"
)

// InventoryPersistenceService атомарно сохраняет инвентарь игрока
// (предметы + stones armor/weapon) в одной транзакции.
type InventoryPersistenceService struct {
	pool      *pgxpool.Pool
	itemRepo  *ItemRepository
	stoneRepo *ItemStoneRepository
	cache     *ItemStoneCache
}

// NewInventoryPersistenceService создаёт новый сервис. cache может быть nil.
func NewInventoryPersistenceService(
	pool *pgxpool.Pool,
	itemRepo *ItemRepository,
	stoneRepo *ItemStoneRepository,
	cache *ItemStoneCache,
) *InventoryPersistenceService {
	return &InventoryPersistenceService{
		pool:      pool,
		itemRepo:  itemRepo,
		stoneRepo: stoneRepo,
		cache:     cache,
	}
}

// SaveInventory сохраняет снимок инвентаря. Снимок снимается под
// inventory operation lock, I/O идёт уже после unlock.
func (s *InventoryPersistenceService) SaveInventory(ctx context.Context, player *model.Player) error {
	ownerID := player.ObjectID()
	inv := player.Inventory()

	inv.Lock()
	items := inv.AllItems()
	if k := inv.KinahItem(); k != nil {
		items = append(items, k)
	}
	records := make([]model.ItemRecord, len(items))
	stones := make(map[uint32][]*model.ItemStone)
	for i, item := range items {
		records[i] = model.RecordOf(item)
		if item.IsArmor() || item.IsWeapon() {
			stones[item.ObjectID()] = item.ItemStones()
		}
	}
	inv.Unlock()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for owner %d: %w", ownerID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "ownerID", ownerID, "error", err)
		}
	}()

	if err := s.itemRepo.SaveInventoryTx(ctx, tx, ownerID, records); err != nil {
		return fmt.Errorf("saving items for owner %d: %w", ownerID, err)
	}
	for objID, list := range stones {
		if err := s.stoneRepo.SaveItemStonesTx(ctx, tx, objID, list); err != nil {
			return fmt.Errorf("saving stones for owner %d: %w", ownerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for owner %d: %w", ownerID, err)
	}

	if s.cache != nil {
		for objID := range stones {
			s.cache.Invalidate(objID)
		}
	}

	slog.Info("inventory saved",
		"ownerID", ownerID,
		"player", player.Name(),
		"items", len(records),
		"stoneItems", len(stones))

	return nil
}
