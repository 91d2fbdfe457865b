// Package item implements item creation, hydration from persistence and the
// inventory stack engine (split, merge, grant).
//
// Все составные операции над инвентарём выполняются под Inventory.Lock:
// validation, mutation и сборка уведомлений в serverpackets.Outbox. Отправка
// уведомлений строго после Unlock.
package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/aiongo/internal/constants"
	"github.com/udisondev/aiongo/internal/game/augment"
	"github.com/udisondev/aiongo/internal/gameserver/serverpackets"
	"github.com/udisondev/aiongo/internal/metrics"
	"github.com/udisondev/aiongo/internal/model"
)

// Errors.
var (
	// ErrItemEquipped — операция над надетым предметом запрещена.
	ErrItemEquipped = errors.New("item is equipped")
	// ErrTemplateMismatch — merge стаков разных шаблонов.
	ErrTemplateMismatch = errors.New("item templates differ")
)

// IDAllocator выдаёт и освобождает objectID предметов.
type IDAllocator interface {
	NextID() (uint32, error)
	ReleaseID(id uint32) error
}

// TemplateProvider — read-only каталог item templates.
type TemplateProvider interface {
	ItemTemplate(itemID int32) *model.ItemTemplate
}

// StoneLoader загружает manastones предмета из хранилища.
type StoneLoader interface {
	LoadItemStones(ctx context.Context, itemObjID uint32) ([]*model.ItemStone, error)
}

// PacketSender — канал уведомлений клиенту (fire-and-forget).
type PacketSender interface {
	SendPacket(playerObjectID uint32, pkt serverpackets.Packet)
}

// Service — item factory + stack engine.
// Не хранит состояния кроме зависимостей, безопасен для конкурентного использования.
type Service struct {
	ids       IDAllocator
	templates TemplateProvider
	stones    StoneLoader
	sender    PacketSender
}

// NewService creates a new item service.
//
// Parameters:
//   - ids: allocator objectID (world.IDFactory)
//   - templates: каталог шаблонов (data.ItemData)
//   - stones: загрузчик manastones (db.ItemStoneCache); nil отключает hydration stones
//   - sender: канал уведомлений (gameserver.ClientManager); nil: уведомления не шлются
func NewService(ids IDAllocator, templates TemplateProvider, stones StoneLoader, sender PacketSender) *Service {
	return &Service{
		ids:       ids,
		templates: templates,
		stones:    stones,
		sender:    sender,
	}
}

// Template возвращает шаблон по itemID (nil если нет в каталоге).
func (s *Service) Template(itemID int32) *model.ItemTemplate {
	return s.templates.ItemTemplate(itemID)
}

// NewItem создаёт новый предмет со свежим objectID.
// count больше MaxStackCount молча обрезается до потолка.
// Предмет не экипирован и не положен в инвентарь.
func (s *Service) NewItem(itemID int32, count int64) (*model.Item, error) {
	tmpl := s.templates.ItemTemplate(itemID)
	if tmpl == nil {
		return nil, fmt.Errorf("item %d: %w", itemID, model.ErrTemplateNotFound)
	}
	if count <= 0 {
		return nil, fmt.Errorf("item %d count %d: %w", itemID, count, model.ErrInsufficientQuantity)
	}
	if tmpl.MaxStackCount > 0 && count > tmpl.MaxStackCount {
		slog.Debug("item count clamped to stack ceiling",
			"itemID", itemID,
			"requested", count,
			"max", tmpl.MaxStackCount)
		count = tmpl.MaxStackCount
	}
	return s.allocate(tmpl, count)
}

// allocate выдаёт objectID и создаёт предмет. count не проверяется:
// Kinah accumulator создаётся с count 0.
func (s *Service) allocate(tmpl *model.ItemTemplate, count int64) (*model.Item, error) {
	id, err := s.ids.NextID()
	if err != nil {
		return nil, fmt.Errorf("allocating object id for item %d: %w", tmpl.ItemID, err)
	}

	item, err := model.NewItem(id, tmpl.ItemID, tmpl, count, false, model.SlotUnassigned)
	if err != nil {
		if relErr := s.ids.ReleaseID(id); relErr != nil {
			slog.Error("releasing object id after failed create", "objectID", id, "error", relErr)
		}
		return nil, fmt.Errorf("creating item %d: %w", tmpl.ItemID, err)
	}

	metrics.ItemsCreated.Inc()
	return item, nil
}

// LoadItem восстанавливает предмет из persisted состояния. objectID не
// выделяется: он уже занят (world.IDFactory.LockIDs на старте).
// Отсутствующий шаблон не ошибка: предмет живёт с nil template, это логируется.
func (s *Service) LoadItem(itemID int32, objectID uint32, count int64, equipped bool, slot int32) (*model.Item, error) {
	tmpl := s.templates.ItemTemplate(itemID)
	if tmpl == nil {
		slog.Error("item template not found on load",
			"itemID", itemID,
			"objectID", objectID)
	}

	item, err := model.NewItem(objectID, itemID, tmpl, count, equipped, slot)
	if err != nil {
		return nil, fmt.Errorf("loading item %d: %w", objectID, err)
	}
	return item, nil
}

// ReleaseItemID возвращает objectID предмета в allocator.
// Вызывается ровно один раз, когда предмет перестаёт существовать.
func (s *Service) ReleaseItemID(item *model.Item) error {
	if item == nil {
		return nil
	}
	if err := s.ids.ReleaseID(item.ObjectID()); err != nil {
		slog.Error("CHECKPOINT: item object id release failed",
			"objectID", item.ObjectID(),
			"itemID", item.ItemID(),
			"error", err)
		return fmt.Errorf("releasing item %d: %w", item.ObjectID(), err)
	}
	metrics.ItemIDsReleased.Inc()
	return nil
}

// releaseOrLog — release в середине операции, где ошибка не меняет исход.
func (s *Service) releaseOrLog(item *model.Item) {
	_ = s.ReleaseItemID(item)
}

// AttachItemStones загружает manastones armor/weapon из хранилища.
// Если предмет надет на player, бонусы stones применяются к stats сразу.
// Ошибка хранилища оборачивается в model.ErrPersistence.
func (s *Service) AttachItemStones(ctx context.Context, item *model.Item, player *model.Player) error {
	tmpl := item.Template()
	if tmpl == nil || !tmpl.CanHaveItemStones() || s.stones == nil {
		return nil
	}

	stones, err := s.stones.LoadItemStones(ctx, item.ObjectID())
	if err != nil {
		return fmt.Errorf("loading item stones for %d: %w: %w", item.ObjectID(), model.ErrPersistence, err)
	}

	for _, stone := range stones {
		if stone.Template() != nil {
			continue
		}
		st := s.templates.ItemTemplate(stone.ItemID())
		if st == nil {
			slog.Warn("manastone template not found",
				"itemObjID", item.ObjectID(),
				"stoneID", stone.ItemID(),
				"slot", stone.Slot())
		}
		stone.SetTemplate(st)
	}

	if player == nil {
		item.SetItemStones(stones)
		return nil
	}

	// I/O выше идёт без lock; замена stones и stats под Inventory.Lock.
	inv := player.Inventory()
	inv.Lock()
	defer inv.Unlock()

	worn := item.IsEquipped()
	if worn {
		augment.RemoveStoneStats(item.ItemStones(), player.GameStats())
	}
	item.SetItemStones(stones)
	if worn {
		augment.AddStoneStats(stones, player.GameStats())
	}
	return nil
}

// LoadItemStones загружает stones для набора предметов.
// Ошибки отдельных предметов не прерывают загрузку остальных.
func (s *Service) LoadItemStones(ctx context.Context, items []*model.Item, player *model.Player) error {
	var errs []error
	for _, item := range items {
		if err := s.AttachItemStones(ctx, item, player); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RestoreInventory наполняет инвентарь игрока persisted строками:
// строка Kinah становится accumulator, надетые предметы занимают equipment slots.
// После hydration пересчитывает stats и загружает stones armor/weapon.
func (s *Service) RestoreInventory(ctx context.Context, player *model.Player, records []model.ItemRecord) error {
	inv := player.Inventory()
	var errs []error

	inv.Lock()
	for _, rec := range records {
		item, err := s.LoadItem(rec.ItemID, rec.ObjectID, rec.Count, rec.Equipped, rec.Slot)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if rec.ItemID == constants.KinahItemID {
			if !inv.SetKinahItem(item) {
				errs = append(errs, fmt.Errorf("restoring kinah %d: duplicate currency item", rec.ObjectID))
			}
			continue
		}
		if err := inv.Restore(item); err != nil {
			errs = append(errs, err)
		}
	}
	inv.Unlock()

	// Бонусы шаблонов; stones добавятся инкрементально ниже.
	player.RecomputeStats()

	if err := s.LoadItemStones(ctx, inv.AllItems(), player); err != nil {
		errs = append(errs, err)
	}

	slog.Info("inventory restored",
		"player", player.Name(),
		"items", len(records),
		"kinah", inv.KinahCount(),
		"errors", len(errs))
	return errors.Join(errs...)
}
