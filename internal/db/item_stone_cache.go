package db

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/udisondev/aiongo/internal/metrics"
	"github.com/udisondev/aiongo/internal/model"
)

// StoneLoader загружает stones предмета из хранилища.
type StoneLoader interface {
	LoadItemStones(ctx context.Context, itemObjID uint32) ([]*model.ItemStone, error)
}

// ItemStoneCache — LRU с TTL поверх StoneLoader. Повторный вход игрока
// в пределах TTL не ходит в БД за stones.
//
// В кеше лежат stone-записи без template; каждый Get отдаёт свежие копии,
// чтобы SetTemplate у вызывающего не портил закешированные значения.
type ItemStoneCache struct {
	loader StoneLoader
	lru    *expirable.LRU[uint32, []stoneEntry]
}

type stoneEntry struct {
	itemID int32
	slot   int32
}

// NewItemStoneCache creates a cache. size <= 0 отключает кеширование.
func NewItemStoneCache(loader StoneLoader, size int, ttl time.Duration) *ItemStoneCache {
	c := &ItemStoneCache{loader: loader}
	if size > 0 {
		c.lru = expirable.NewLRU[uint32, []stoneEntry](size, nil, ttl)
	}
	return c
}

// LoadItemStones implements StoneLoader.
func (c *ItemStoneCache) LoadItemStones(ctx context.Context, itemObjID uint32) ([]*model.ItemStone, error) {
	if c.lru == nil {
		return c.loader.LoadItemStones(ctx, itemObjID)
	}

	if entries, ok := c.lru.Get(itemObjID); ok {
		metrics.StoneCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
		return materialize(itemObjID, entries), nil
	}
	metrics.StoneCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()

	stones, err := c.loader.LoadItemStones(ctx, itemObjID)
	if err != nil {
		return nil, err
	}

	entries := make([]stoneEntry, len(stones))
	for i, s := range stones {
		entries[i] = stoneEntry{itemID: s.ItemID(), slot: s.Slot()}
	}
	c.lru.Add(itemObjID, entries)

	return materialize(itemObjID, entries), nil
}

// Invalidate сбрасывает запись предмета (после вставки/снятия stone или удаления предмета).
func (c *ItemStoneCache) Invalidate(itemObjID uint32) {
	if c.lru != nil {
		c.lru.Remove(itemObjID)
	}
}

// Len returns number of cached items.
func (c *ItemStoneCache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

func materialize(itemObjID uint32, entries []stoneEntry) []*model.ItemStone {
	stones := make([]*model.ItemStone, len(entries))
	for i, e := range entries {
		stones[i] = model.NewItemStone(itemObjID, e.itemID, e.slot)
	}
	return stones
}
