package model

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Equipment slots.
const (
	EquipSlotMainHand = 0
	EquipSlotSubHand  = 1
	EquipSlotHelmet   = 2
	EquipSlotTorso    = 3
	EquipSlotGloves   = 4
	EquipSlotBoots    = 5
	EquipSlotEarring1 = 6
	EquipSlotEarring2 = 7
	EquipSlotRing1    = 8
	EquipSlotRing2    = 9
	EquipSlotNecklace = 10
	EquipSlotShoulder = 11
	EquipSlotPants    = 12
	EquipSlotWing     = 13
	EquipSlotCount    = 14
)

// DefaultCubeLimit — размер cube без расширений.
const DefaultCubeLimit = 27

var (
	// ErrItemExists — предмет с таким objectID уже в инвентаре.
	ErrItemExists = errors.New("item already in inventory")
	// ErrItemNotInInventory — objectID не найден в инвентаре.
	ErrItemNotInInventory = errors.New("item not in inventory")
	// ErrInvalidSlot — equipment slot вне диапазона.
	ErrInvalidSlot = errors.New("invalid equipment slot")
)

// Inventory — cube персонажа + экипировка + Kinah.
//
// items хранит стаки в порядке добавления (включая надетые): grant сначала
// заполняет существующие стаки именно в этом порядке. Kinah не занимает слот
// cube и в items не входит.
//
// Два уровня блокировок:
//   - mu защищает структуру (items/byID/equipment/счётчики) для одиночных вызовов;
//   - opMu (Lock/Unlock) сериализует составные операции (split, merge, grant,
//     buy, sell): validation + mutation + сбор notifications под одним lock.
type Inventory struct {
	ownerID uint32 // objectID игрока-владельца
	limit   int

	items           []*Item          // insertion order
	byID            map[uint32]*Item // objectID → Item
	equipment       [EquipSlotCount]*Item
	unequippedCount int // O(1) счётчик для FreeSlots

	kinah *Item // currency accumulator (вне слотов)

	mu   sync.RWMutex
	opMu sync.Mutex
}

// NewInventory создаёт пустой инвентарь. limit <= 0 трактуется как DefaultCubeLimit.
func NewInventory(ownerID uint32, limit int) *Inventory {
	if limit <= 0 {
		limit = DefaultCubeLimit
	}
	return &Inventory{
		ownerID: ownerID,
		limit:   limit,
		byID:    make(map[uint32]*Item),
	}
}

// Lock захватывает operation lock для составной операции.
func (inv *Inventory) Lock() { inv.opMu.Lock() }

// Unlock освобождает operation lock.
func (inv *Inventory) Unlock() { inv.opMu.Unlock() }

// OwnerID возвращает objectID владельца.
func (inv *Inventory) OwnerID() uint32 {
	return inv.ownerID
}

// Limit возвращает размер cube.
func (inv *Inventory) Limit() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.limit
}

// SetLimit меняет размер cube (расширение). Уже лежащие предметы не вытесняются.
func (inv *Inventory) SetLimit(limit int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.limit = limit
}

// FreeSlots возвращает количество свободных слотов cube (>= 0).
func (inv *Inventory) FreeSlots() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return max(inv.limit-inv.unequippedCount, 0)
}

// IsFull returns true если в cube нет свободного слота.
func (inv *Inventory) IsFull() bool {
	return inv.FreeSlots() == 0
}

// UnequippedCount возвращает количество предметов, занимающих слоты cube.
func (inv *Inventory) UnequippedCount() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.unequippedCount
}

// PutToBag кладёт неэкипированный предмет в cube.
// Returns false если cube полон или предмет уже лежит в инвентаре.
func (inv *Inventory) PutToBag(item *Item) bool {
	if item == nil || item.IsEquipped() {
		return false
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.byID[item.ObjectID()]; exists {
		return false
	}
	if inv.unequippedCount >= inv.limit {
		return false
	}

	inv.insert(item)
	return true
}

// Restore кладёт hydrated предмет из БД без проверки лимита:
// сохранённое состояние могло быть создано при другом размере cube.
// Надетый предмет занимает свой equipment slot.
func (inv *Inventory) Restore(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.byID[item.ObjectID()]; exists {
		return fmt.Errorf("restoring objectID=%d: %w", item.ObjectID(), ErrItemExists)
	}

	if item.IsEquipped() {
		slot := item.Slot()
		if slot < 0 || slot >= EquipSlotCount {
			return fmt.Errorf("restoring objectID=%d slot %d: %w", item.ObjectID(), slot, ErrInvalidSlot)
		}
		if inv.equipment[slot] != nil {
			return fmt.Errorf("restoring objectID=%d: equipment slot %d occupied", item.ObjectID(), slot)
		}
		inv.equipment[slot] = item
		inv.items = append(inv.items, item)
		inv.byID[item.ObjectID()] = item
		return nil
	}

	inv.insert(item)
	return nil
}

// insert вызывается под inv.mu для неэкипированного предмета.
func (inv *Inventory) insert(item *Item) {
	inv.items = append(inv.items, item)
	inv.byID[item.ObjectID()] = item
	inv.unequippedCount++
}

// RemoveFromBag удаляет предмет из инвентаря (надетый также снимается со слота).
// Returns nil если не найден.
func (inv *Inventory) RemoveFromBag(objectID uint32) *Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, exists := inv.byID[objectID]
	if !exists {
		return nil
	}

	if item.IsEquipped() {
		slot := item.Slot()
		if slot >= 0 && slot < EquipSlotCount && inv.equipment[slot] == item {
			inv.equipment[slot] = nil
		}
		item.setEquipped(false, SlotUnassigned)
	} else {
		inv.unequippedCount--
	}

	delete(inv.byID, objectID)
	if idx := slices.Index(inv.items, item); idx >= 0 {
		inv.items = slices.Delete(inv.items, idx, idx+1)
	}
	return item
}

// GetItemByObjID ищет предмет по objectID (включая надетые и Kinah).
func (inv *Inventory) GetItemByObjID(objectID uint32) *Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	if item, ok := inv.byID[objectID]; ok {
		return item
	}
	if inv.kinah != nil && inv.kinah.ObjectID() == objectID {
		return inv.kinah
	}
	return nil
}

// GetAllItemsByItemID возвращает все стаки шаблона в порядке добавления,
// включая надетые (некоторые шаблоны стакаются и в надетом состоянии).
func (inv *Inventory) GetAllItemsByItemID(itemID int32) []*Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var result []*Item
	for _, item := range inv.items {
		if item.ItemID() == itemID {
			result = append(result, item)
		}
	}
	return result
}

// AllItems возвращает копию списка всех предметов (без Kinah) в порядке добавления.
func (inv *Inventory) AllItems() []*Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.items)
}

// UnequippedItems возвращает предметы, лежащие в cube.
func (inv *Inventory) UnequippedItems() []*Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	result := make([]*Item, 0, inv.unequippedCount)
	for _, item := range inv.items {
		if !item.IsEquipped() {
			result = append(result, item)
		}
	}
	return result
}

// EquippedItems возвращает надетые предметы в порядке слотов.
func (inv *Inventory) EquippedItems() []*Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	result := make([]*Item, 0, EquipSlotCount)
	for _, item := range inv.equipment {
		if item != nil {
			result = append(result, item)
		}
	}
	return result
}

// EquippedItem возвращает предмет в equipment slot (nil если пусто).
func (inv *Inventory) EquippedItem(slot int32) *Item {
	if slot < 0 || slot >= EquipSlotCount {
		return nil
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.equipment[slot]
}

// EquipItem надевает предмет из cube в slot.
// Если slot занят, прежний предмет возвращается в cube (освобождённый слот
// cube достаётся ему) и возвращается вызывающему.
func (inv *Inventory) EquipItem(item *Item, slot int32) (*Item, error) {
	if item == nil {
		return nil, fmt.Errorf("item cannot be nil")
	}
	if slot < 0 || slot >= EquipSlotCount {
		return nil, fmt.Errorf("equip slot %d: %w", slot, ErrInvalidSlot)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.byID[item.ObjectID()] != item {
		return nil, fmt.Errorf("equip objectID=%d: %w", item.ObjectID(), ErrItemNotInInventory)
	}
	if item.IsEquipped() {
		return nil, fmt.Errorf("item objectID=%d already equipped", item.ObjectID())
	}

	prev := inv.equipment[slot]
	if prev != nil {
		prev.setEquipped(false, SlotUnassigned)
		inv.unequippedCount++
	}

	inv.equipment[slot] = item
	item.setEquipped(true, slot)
	inv.unequippedCount--

	return prev, nil
}

// UnequipItem снимает предмет со slot в cube.
// Returns nil, nil если slot пуст; ErrInsufficientCapacity если cube полон.
func (inv *Inventory) UnequipItem(slot int32) (*Item, error) {
	if slot < 0 || slot >= EquipSlotCount {
		return nil, fmt.Errorf("unequip slot %d: %w", slot, ErrInvalidSlot)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	item := inv.equipment[slot]
	if item == nil {
		return nil, nil
	}
	if inv.unequippedCount >= inv.limit {
		return nil, fmt.Errorf("unequip slot %d: %w", slot, ErrInsufficientCapacity)
	}

	inv.equipment[slot] = nil
	item.setEquipped(false, SlotUnassigned)
	inv.unequippedCount++
	return item, nil
}

// KinahItem возвращает currency item (nil если ещё не создан).
func (inv *Inventory) KinahItem() *Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.kinah
}

// SetKinahItem устанавливает currency item. Returns false если он уже есть.
func (inv *Inventory) SetKinahItem(item *Item) bool {
	if item == nil {
		return false
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if inv.kinah != nil {
		return false
	}
	inv.kinah = item
	return true
}

// KinahCount возвращает количество Kinah (0 если currency item нет).
func (inv *Inventory) KinahCount() int64 {
	inv.mu.RLock()
	k := inv.kinah
	inv.mu.RUnlock()
	if k == nil {
		return 0
	}
	return k.Count()
}

// IncreaseKinah добавляет Kinah. Returns false если currency item нет или amount < 0.
func (inv *Inventory) IncreaseKinah(amount int64) bool {
	if amount < 0 {
		return false
	}
	k := inv.KinahItem()
	if k == nil {
		return false
	}
	k.IncreaseCount(amount)
	return true
}

// DecreaseKinah списывает Kinah. Returns false если не хватает.
func (inv *Inventory) DecreaseKinah(amount int64) bool {
	if amount < 0 {
		return false
	}
	k := inv.KinahItem()
	if k == nil {
		return amount == 0
	}
	return k.DecreaseCount(amount)
}
