package model

import (
	"fmt"
	"slices"
	"sync"
)

// SlotUnassigned — предмет не занимает ни equipment slot, ни позицию в cube.
const SlotUnassigned int32 = -1

// Item — конкретный экземпляр предмета (weapon, armor, consumable, Kinah).
// Принадлежит ровно одному Inventory; objectID выдаётся IDFactory один раз
// и освобождается, когда предмет перестаёт существовать.
type Item struct {
	objectID uint32 // Unique ID в world
	itemID   int32  // Template ID (ссылка на ItemTemplate)
	count    int64  // Stack count
	equipped bool
	slot     int32 // equipment slot если equipped, иначе позиция в cube (или SlotUnassigned)

	template *ItemTemplate // nil только для hydrated предметов с удалённым шаблоном

	stones []*ItemStone // manastones, отсортированы по slot

	mu sync.RWMutex
}

// NewItem создаёт предмет с валидацией.
//
// Parameters:
//   - objectID: unique ID в world (from IDFactory или из БД)
//   - itemID: template ID
//   - template: ItemTemplate (nil допустим для предмета с удалённым шаблоном)
//   - count: stack count (>= 0; 0 допустим только для Kinah accumulator)
//   - equipped, slot: состояние экипировки
//
// Returns:
//   - *Item: новый предмет
//   - error: если валидация провалилась
func NewItem(objectID uint32, itemID int32, template *ItemTemplate, count int64, equipped bool, slot int32) (*Item, error) {
	if objectID == 0 {
		return nil, fmt.Errorf("objectID cannot be 0")
	}
	if count < 0 {
		return nil, fmt.Errorf("count cannot be negative, got %d", count)
	}
	if equipped && slot < 0 {
		return nil, fmt.Errorf("equipped item %d must have slot, got %d", objectID, slot)
	}

	return &Item{
		objectID: objectID,
		itemID:   itemID,
		count:    count,
		equipped: equipped,
		slot:     slot,
		template: template,
	}, nil
}

// ObjectID возвращает unique ID в world.
func (i *Item) ObjectID() uint32 {
	return i.objectID
}

// ItemID возвращает template ID.
func (i *Item) ItemID() int32 {
	return i.itemID
}

// Template возвращает ItemTemplate (immutable, может быть nil).
func (i *Item) Template() *ItemTemplate {
	return i.template
}

// Name возвращает название предмета из template.
func (i *Item) Name() string {
	if i.template == nil {
		return fmt.Sprintf("<missing template %d>", i.itemID)
	}
	return i.template.Name
}

// Count возвращает stack count.
func (i *Item) Count() int64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.count
}

// SetCount устанавливает stack count с валидацией.
func (i *Item) SetCount(count int64) error {
	if count < 0 {
		return fmt.Errorf("count cannot be negative, got %d", count)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.count = count
	return nil
}

// IncreaseCount увеличивает stack count на n (n >= 0).
func (i *Item) IncreaseCount(n int64) {
	if n <= 0 {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.count += n
}

// DecreaseCount уменьшает stack count на n.
// Возвращает false (и ничего не меняет) если n < 0 или n > count.
func (i *Item) DecreaseCount(n int64) bool {
	if n < 0 {
		return false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if n > i.count {
		return false
	}
	i.count -= n
	return true
}

// IsEquipped возвращает true если предмет надет.
func (i *Item) IsEquipped() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.equipped
}

// Slot возвращает equipment slot (equipped) или позицию в cube.
func (i *Item) Slot() int32 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.slot
}

// SetSlot устанавливает позицию в cube. Для надетых предметов игнорируется:
// equipment slot меняется только через Inventory.EquipItem/UnequipItem.
func (i *Item) SetSlot(slot int32) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.equipped {
		return
	}
	i.slot = slot
}

// setEquipped вызывается только из Inventory.
func (i *Item) setEquipped(equipped bool, slot int32) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.equipped = equipped
	i.slot = slot
}

// MaxStackCount возвращает потолок стака из template (0 = без ограничения).
func (i *Item) MaxStackCount() int64 {
	if i.template == nil {
		return 0
	}
	return i.template.MaxStackCount
}

// IsWeapon возвращает true если это оружие.
func (i *Item) IsWeapon() bool {
	return i.template != nil && i.template.IsWeapon()
}

// IsArmor возвращает true если это броня.
func (i *Item) IsArmor() bool {
	return i.template != nil && i.template.IsArmor()
}

// ItemStones возвращает копию списка manastones.
func (i *Item) ItemStones() []*ItemStone {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.stones)
}

// SetItemStones заменяет список manastones (после загрузки из БД).
func (i *Item) SetItemStones(stones []*ItemStone) {
	sorted := slices.Clone(stones)
	slices.SortFunc(sorted, func(a, b *ItemStone) int {
		return int(a.Slot() - b.Slot())
	})

	i.mu.Lock()
	defer i.mu.Unlock()
	i.stones = sorted
}

// ItemStone возвращает stone в указанном сокете (nil если пусто).
func (i *Item) ItemStone(slot int32) *ItemStone {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, s := range i.stones {
		if s.Slot() == slot {
			return s
		}
	}
	return nil
}

// AddItemStone вставляет stone. Returns false если сокет занят.
func (i *Item) AddItemStone(stone *ItemStone) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	idx, found := slices.BinarySearchFunc(i.stones, stone.Slot(), func(s *ItemStone, slot int32) int {
		return int(s.Slot() - slot)
	})
	if found {
		return false
	}
	i.stones = slices.Insert(i.stones, idx, stone)
	return true
}

// RemoveItemStone удаляет stone из сокета и возвращает его (nil если пусто).
func (i *Item) RemoveItemStone(slot int32) *ItemStone {
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx, s := range i.stones {
		if s.Slot() == slot {
			i.stones = slices.Delete(i.stones, idx, idx+1)
			return s
		}
	}
	return nil
}

// String implements fmt.Stringer для логов.
func (i *Item) String() string {
	return fmt.Sprintf("Item{objectID=%d, itemID=%d, count=%d}", i.objectID, i.itemID, i.Count())
}
