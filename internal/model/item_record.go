package model

// ItemRecord — строка inventory_items: persisted состояние предмета
// до hydration через item service.
type ItemRecord struct {
	ObjectID uint32
	ItemID   int32
	Count    int64
	Equipped bool
	Slot     int32
}

// RecordOf снимает snapshot предмета для сохранения.
func RecordOf(item *Item) ItemRecord {
	item.mu.RLock()
	defer item.mu.RUnlock()
	return ItemRecord{
		ObjectID: item.objectID,
		ItemID:   item.itemID,
		Count:    item.count,
		Equipped: item.equipped,
		Slot:     item.slot,
	}
}
