package serverpackets

import "github.com/udisondev/aiongo/internal/model"

// InventoryUpdate — новые предметы в инвентаре (ItemsAdded).
// Один пакет может нести несколько предметов одной операции.
type InventoryUpdate struct {
	Items []ItemInfo
}

// NewInventoryUpdate creates an InventoryUpdate for the given items.
func NewInventoryUpdate(items ...*model.Item) *InventoryUpdate {
	infos := make([]ItemInfo, len(items))
	for i, item := range items {
		infos[i] = InfoOf(item)
	}
	return &InventoryUpdate{Items: infos}
}

// Kind implements Packet.
func (*InventoryUpdate) Kind() Kind { return KindInventoryUpdate }
