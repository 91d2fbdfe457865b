package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/aiongo/internal/model"
)

// ItemStoneRepository управляет manastones в БД.
type ItemStoneRepository struct {
	db *pgxpool.Pool
}

// NewItemStoneRepository создаёт новый ItemStoneRepository.
func NewItemStoneRepository(db *pgxpool.Pool) *ItemStoneRepository {
	return &ItemStoneRepository{db: db}
}

// LoadItemStones загружает stones предмета, отсортированные по slot.
// Template на stones не резолвится: это делает item service.
func (r *ItemStoneRepository) LoadItemStones(ctx context.Context, itemObjID uint32) ([]*model.ItemStone, error) {
	rows, err := r.db.Query(ctx,
		`SELECT stone_item_id, slot FROM item_stones WHERE item_object_id = $1 ORDER BY slot`,
		int64(itemObjID),
	)
	if err != nil {
		return nil, fmt.Errorf("querying item stones for %d: %w", itemObjID, err)
	}

	stones, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.ItemStone, error) {
		var stoneID, slot int32
		if err := row.Scan(&stoneID, &slot); err != nil {
			return nil, err
		}
		return model.NewItemStone(itemObjID, stoneID, slot), nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting item stones for %d: %w", itemObjID, err)
	}
	return stones, nil
}

const upsertStoneQuery = `
	INSERT INTO item_stones (item_object_id, slot, stone_item_id)
	VALUES ($1, $2, $3)
	ON CONFLICT (item_object_id, slot) DO UPDATE SET stone_item_id = EXCLUDED.stone_item_id
`

// Store сохраняет stone.
func (r *ItemStoneRepository) Store(ctx context.Context, stone *model.ItemStone) error {
	_, err := r.db.Exec(ctx, upsertStoneQuery,
		int64(stone.ItemObjectID()), stone.Slot(), stone.ItemID(),
	)
	if err != nil {
		return fmt.Errorf("storing stone %d/%d: %w", stone.ItemObjectID(), stone.Slot(), err)
	}
	return nil
}

// SaveItemStonesTx заменяет stones предмета в транзакции.
func (r *ItemStoneRepository) SaveItemStonesTx(ctx context.Context, tx pgx.Tx, itemObjID uint32, stones []*model.ItemStone) error {
	if _, err := tx.Exec(ctx, `DELETE FROM item_stones WHERE item_object_id = $1`, int64(itemObjID)); err != nil {
		return fmt.Errorf("clearing stones for %d: %w", itemObjID, err)
	}
	for _, s := range stones {
		if _, err := tx.Exec(ctx, upsertStoneQuery, int64(itemObjID), s.Slot(), s.ItemID()); err != nil {
			return fmt.Errorf("storing stone %d/%d: %w", itemObjID, s.Slot(), err)
		}
	}
	return nil
}

// Delete удаляет stone из сокета.
func (r *ItemStoneRepository) Delete(ctx context.Context, itemObjID uint32, slot int32) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM item_stones WHERE item_object_id = $1 AND slot = $2`,
		int64(itemObjID), slot,
	)
	if err != nil {
		return fmt.Errorf("deleting stone %d/%d: %w", itemObjID, slot, err)
	}
	return nil
}
