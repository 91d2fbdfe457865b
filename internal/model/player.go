package model

import (
	"fmt"
	"sync"
)

// Access levels.
const (
	AccessLevelPlayer int32 = 0
	AccessLevelGM     int32 = 1
	AccessLevelAdmin  int32 = 100
)

// Player — персонаж игрока: инвентарь + производные stats.
type Player struct {
	*WorldObject

	inventory *Inventory
	stats     *PlayerGameStats

	accessLevel      int32
	lastAdminMessage string

	playerMu sync.RWMutex
}

// NewPlayer создаёт игрока с пустым инвентарём.
//
// Parameters:
//   - objectID: unique ID в world
//   - name: имя персонажа
//   - cubeLimit: размер cube (<= 0 → DefaultCubeLimit)
//   - base: базовые stats
func NewPlayer(objectID uint32, name string, cubeLimit int, base map[StatEnum]int32) (*Player, error) {
	if objectID == 0 {
		return nil, fmt.Errorf("objectID cannot be 0")
	}
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	p := &Player{
		WorldObject: NewWorldObject(objectID, name),
		inventory:   NewInventory(objectID, cubeLimit),
		stats:       NewPlayerGameStats(base),
	}
	p.Data = p
	return p, nil
}

// Inventory возвращает инвентарь игрока.
func (p *Player) Inventory() *Inventory {
	return p.inventory
}

// GameStats возвращает производные stats.
func (p *Player) GameStats() *PlayerGameStats {
	return p.stats
}

// AccessLevel возвращает уровень доступа (0 = игрок, 1+ = GM).
func (p *Player) AccessLevel() int32 {
	p.playerMu.RLock()
	defer p.playerMu.RUnlock()
	return p.accessLevel
}

// SetAccessLevel устанавливает уровень доступа.
func (p *Player) SetAccessLevel(level int32) {
	p.playerMu.Lock()
	defer p.playerMu.Unlock()
	p.accessLevel = level
}

// IsGM returns true если у игрока есть GM доступ.
func (p *Player) IsGM() bool {
	return p.AccessLevel() >= AccessLevelGM
}

// LastAdminMessage возвращает последний ответ admin command system.
func (p *Player) LastAdminMessage() string {
	p.playerMu.RLock()
	defer p.playerMu.RUnlock()
	return p.lastAdminMessage
}

// SetLastAdminMessage сохраняет ответ admin command system.
func (p *Player) SetLastAdminMessage(msg string) {
	p.playerMu.Lock()
	defer p.playerMu.Unlock()
	p.lastAdminMessage = msg
}

// EquipItem надевает предмет и пересчитывает stats под Inventory.Lock.
// Returns предмет, ранее занимавший slot (nil если slot был пуст).
func (p *Player) EquipItem(item *Item, slot int32) (*Item, error) {
	p.inventory.Lock()
	defer p.inventory.Unlock()

	prev, err := p.inventory.EquipItem(item, slot)
	if err != nil {
		return nil, fmt.Errorf("equipping item: %w", err)
	}
	p.stats.Recompute(p.inventory.EquippedItems())
	return prev, nil
}

// UnequipItem снимает предмет со slot и пересчитывает stats под Inventory.Lock.
func (p *Player) UnequipItem(slot int32) (*Item, error) {
	p.inventory.Lock()
	defer p.inventory.Unlock()

	item, err := p.inventory.UnequipItem(slot)
	if err != nil {
		return nil, fmt.Errorf("unequipping item: %w", err)
	}
	if item != nil {
		p.stats.Recompute(p.inventory.EquippedItems())
	}
	return item, nil
}

// RecomputeStats пересобирает бонусы по текущей экипировке.
func (p *Player) RecomputeStats() {
	p.inventory.Lock()
	defer p.inventory.Unlock()
	p.stats.Recompute(p.inventory.EquippedItems())
}
