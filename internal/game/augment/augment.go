// Package augment implements manastone socketing (item stones) for armor and weapons.
//
// Stone сам по себе не меняет stats: бонусы применяются к PlayerGameStats
// только пока предмет надет. AddStoneStats/RemoveStoneStats дают инкрементальный
// путь (hydration, socket/unsocket надетого предмета), полный пересчёт делает
// PlayerGameStats.Recompute.
package augment

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/aiongo/internal/model"
)

// Errors.
var (
	ErrNotSocketable  = errors.New("item cannot hold manastones")
	ErrSlotOutOfRange = errors.New("manastone slot out of range")
	ErrSlotOccupied   = errors.New("manastone slot occupied")
	ErrNoStone        = errors.New("no manastone in slot")
	ErrNotManastone   = errors.New("item is not a manastone")
)

// TemplateProvider резолвит manastone template по itemID.
type TemplateProvider interface {
	ItemTemplate(itemID int32) *model.ItemTemplate
}

// AddStoneStats применяет модификаторы stones к stats игрока.
func AddStoneStats(stones []*model.ItemStone, stats *model.PlayerGameStats) {
	if stats == nil {
		return
	}
	for _, stone := range stones {
		stats.AddModifiers(stone.Modifiers())
	}
}

// RemoveStoneStats откатывает модификаторы stones.
func RemoveStoneStats(stones []*model.ItemStone, stats *model.PlayerGameStats) {
	if stats == nil {
		return
	}
	for _, stone := range stones {
		stats.RemoveModifiers(stone.Modifiers())
	}
}

// Service handles socket/unsocket operations.
type Service struct {
	templates TemplateProvider

	mu sync.Mutex
}

// NewService creates a new manastone service.
func NewService(templates TemplateProvider) *Service {
	return &Service{templates: templates}
}

// ValidateTarget checks if item can take a stone into slot.
func (s *Service) ValidateTarget(item *model.Item, slot int32) error {
	if item == nil {
		return fmt.Errorf("item is nil")
	}
	tmpl := item.Template()
	if tmpl == nil || !tmpl.CanHaveItemStones() {
		return ErrNotSocketable
	}
	if slot < 0 || slot >= tmpl.ManastoneSlots {
		return fmt.Errorf("slot %d of %d: %w", slot, tmpl.ManastoneSlots, ErrSlotOutOfRange)
	}
	return nil
}

// SocketStone вставляет manastone stoneItemID в slot предмета.
// Если предмет надет на player, бонусы stone применяются сразу.
// Вызывающий не должен держать Inventory.Lock игрока.
func (s *Service) SocketStone(player *model.Player, item *model.Item, stoneItemID int32, slot int32) (*model.ItemStone, error) {
	if err := s.ValidateTarget(item, slot); err != nil {
		return nil, fmt.Errorf("validate target: %w", err)
	}

	stoneTmpl := s.templates.ItemTemplate(stoneItemID)
	if stoneTmpl == nil {
		return nil, fmt.Errorf("manastone %d: %w", stoneItemID, model.ErrTemplateNotFound)
	}
	if stoneTmpl.CanHaveItemStones() || stoneTmpl.IsCurrency() || len(stoneTmpl.Modifiers) == 0 {
		return nil, fmt.Errorf("item %d: %w", stoneItemID, ErrNotManastone)
	}

	stone := model.NewItemStone(item.ObjectID(), stoneItemID, slot)
	stone.SetTemplate(stoneTmpl)

	defer s.lock(player)()

	if !item.AddItemStone(stone) {
		return nil, fmt.Errorf("slot %d: %w", slot, ErrSlotOccupied)
	}
	if wornBy(player, item) {
		AddStoneStats([]*model.ItemStone{stone}, player.GameStats())
	}

	slog.Debug("manastone socketed",
		"item", item.ObjectID(),
		"stone", stoneItemID,
		"slot", slot)
	return stone, nil
}

// RemoveStone извлекает stone из slot. Бонусы надетого предмета откатываются.
func (s *Service) RemoveStone(player *model.Player, item *model.Item, slot int32) (*model.ItemStone, error) {
	if err := s.ValidateTarget(item, slot); err != nil {
		return nil, fmt.Errorf("validate target: %w", err)
	}

	defer s.lock(player)()

	stone := item.RemoveItemStone(slot)
	if stone == nil {
		return nil, fmt.Errorf("slot %d: %w", slot, ErrNoStone)
	}
	if wornBy(player, item) {
		RemoveStoneStats([]*model.ItemStone{stone}, player.GameStats())
	}
	return stone, nil
}

// lock сериализует socket/unsocket с equip/unequip через Inventory.Lock владельца.
// Без player (предмет вне инвентаря) хватает локального mutex.
func (s *Service) lock(player *model.Player) func() {
	if player == nil {
		s.mu.Lock()
		return s.mu.Unlock
	}
	inv := player.Inventory()
	inv.Lock()
	return inv.Unlock
}

func wornBy(player *model.Player, item *model.Item) bool {
	if player == nil || !item.IsEquipped() {
		return false
	}
	return player.Inventory().EquippedItem(item.Slot()) == item
}
