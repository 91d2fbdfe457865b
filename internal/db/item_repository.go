package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/aiongo/internal/model"
)

// ErrItemNotFound — строки с таким object_id нет.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository управляет предметами инвентаря в БД.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository создаёт новый ItemRepository.
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// LoadInventory загружает все предметы игрока (cube, экипировка, Kinah)
// в порядке object_id: это порядок, в котором они попадут в инвентарь.
func (r *ItemRepository) LoadInventory(ctx context.Context, ownerID uint32) ([]model.ItemRecord, error) {
	query := `
		SELECT object_id, item_id, count, equipped, slot
		FROM inventory_items
		WHERE owner_id = $1
		ORDER BY object_id
	`

	rows, err := r.db.Query(ctx, query, int64(ownerID))
	if err != nil {
		return nil, fmt.Errorf("querying inventory for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	// Pre-allocate для типичного инвентаря.
	records := make([]model.ItemRecord, 0, 50)

	for rows.Next() {
		var objectID int64
		var rec model.ItemRecord
		if err := rows.Scan(&objectID, &rec.ItemID, &rec.Count, &rec.Equipped, &rec.Slot); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		rec.ObjectID = uint32(objectID)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return records, nil
}

const upsertItemQuery = `
	INSERT INTO inventory_items (object_id, owner_id, item_id, count, equipped, slot, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	ON CONFLICT (object_id) DO UPDATE
	SET owner_id = EXCLUDED.owner_id,
	    count = EXCLUDED.count,
	    equipped = EXCLUDED.equipped,
	    slot = EXCLUDED.slot,
	    updated_at = now()
`

// Store вставляет или обновляет предмет.
func (r *ItemRepository) Store(ctx context.Context, ownerID uint32, rec model.ItemRecord) error {
	_, err := r.db.Exec(ctx, upsertItemQuery,
		int64(rec.ObjectID), int64(ownerID), rec.ItemID, rec.Count, rec.Equipped, rec.Slot,
	)
	if err != nil {
		return fmt.Errorf("storing item %d: %w", rec.ObjectID, err)
	}
	return nil
}

// SaveInventoryTx заменяет инвентарь владельца снимком records в транзакции tx:
// строки, которых нет в снимке, удаляются (проданные/слитые предметы).
func (r *ItemRepository) SaveInventoryTx(ctx context.Context, tx pgx.Tx, ownerID uint32, records []model.ItemRecord) error {
	keep := make([]int64, len(records))
	for i, rec := range records {
		keep[i] = int64(rec.ObjectID)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM inventory_items WHERE owner_id = $1 AND NOT (object_id = ANY($2))`,
		int64(ownerID), keep,
	); err != nil {
		return fmt.Errorf("deleting stale items for owner %d: %w", ownerID, err)
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(upsertItemQuery,
			int64(rec.ObjectID), int64(ownerID), rec.ItemID, rec.Count, rec.Equipped, rec.Slot,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting items for owner %d: %w", ownerID, err)
	}
	return nil
}

// Delete удаляет предмет из БД.
func (r *ItemRepository) Delete(ctx context.Context, objectID uint32) error {
	result, err := r.db.Exec(ctx, `DELETE FROM inventory_items WHERE object_id = $1`, int64(objectID))
	if err != nil {
		return fmt.Errorf("deleting item %d: %w", objectID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("deleting item %d: %w", objectID, ErrItemNotFound)
	}

	return nil
}

// UsedObjectIDs возвращает все сохранённые object ID: на старте они
// блокируются в IDFactory, чтобы новый предмет не получил ID из БД.
func (r *ItemRepository) UsedObjectIDs(ctx context.Context) ([]uint32, error) {
	rows, err := r.db.Query(ctx, `SELECT object_id FROM inventory_items`)
	if err != nil {
		return nil, fmt.Errorf("querying used object ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (uint32, error) {
		var id int64
		err := row.Scan(&id)
		return uint32(id), err
	})
	if err != nil {
		return nil, fmt.Errorf("collecting used object ids: %w", err)
	}
	return ids, nil
}
