package item

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/aiongo/internal/gameserver/serverpackets"
	"github.com/udisondev/aiongo/internal/model"
)

// SplitResult — исход успешного split.
type SplitResult struct {
	Source  *model.Item // уменьшенный исходный стак
	Created *model.Item // новый стак с отделённым количеством
}

// MergeOutcome — исход merge.
type MergeOutcome int

const (
	MergeNone     MergeOutcome = iota // ничего не изменилось
	MergeAbsorbed                     // source целиком влит в dest и удалён
	MergePartial                      // часть source перенесена в dest
)

// String returns outcome name for logs.
func (o MergeOutcome) String() string {
	switch o {
	case MergeNone:
		return "none"
	case MergeAbsorbed:
		return "absorbed"
	case MergePartial:
		return "partial"
	default:
		return "unknown"
	}
}

// SplitItem отделяет amount единиц стака objectID в новый стак (cube slot = slot).
//
// Любой отказ это no-op без уведомлений:
//   - ErrInvalidReference: предмета нет в инвентаре (или это Kinah)
//   - ErrInsufficientQuantity: amount <= 0 или amount >= count
//   - ErrInsufficientCapacity: нет свободного слота cube
//
// Успех: ItemsAdded(new) + ItemUpdated(source).
func (s *Service) SplitItem(player *model.Player, objectID uint32, amount int64, slot int32) (*SplitResult, error) {
	inv := player.Inventory()
	out := serverpackets.NewOutbox(player.ObjectID())

	inv.Lock()
	res, err := s.split(inv, objectID, amount, slot, out)
	inv.Unlock()

	out.Flush(s.sender)
	return res, err
}

func (s *Service) split(inv *model.Inventory, objectID uint32, amount int64, slot int32, out *serverpackets.Outbox) (*SplitResult, error) {
	source := inv.GetItemByObjID(objectID)
	if source == nil {
		slog.Warn("CHECKPOINT: split of missing item",
			"owner", inv.OwnerID(),
			"objectID", objectID)
		return nil, fmt.Errorf("split %d: %w", objectID, model.ErrInvalidReference)
	}
	if source == inv.KinahItem() {
		return nil, fmt.Errorf("split kinah %d: %w", objectID, model.ErrInvalidReference)
	}

	tmpl := source.Template()
	if tmpl == nil {
		return nil, fmt.Errorf("split %d item %d: %w", objectID, source.ItemID(), model.ErrTemplateNotFound)
	}

	count := source.Count()
	if amount <= 0 || amount >= count {
		return nil, fmt.Errorf("split %d of %d: %w", amount, count, model.ErrInsufficientQuantity)
	}
	if inv.IsFull() {
		return nil, fmt.Errorf("split %d: %w", objectID, model.ErrInsufficientCapacity)
	}

	created, err := s.allocate(tmpl, amount)
	if err != nil {
		return nil, fmt.Errorf("split %d: %w", objectID, err)
	}
	created.SetSlot(slot)

	if !inv.PutToBag(created) {
		s.releaseOrLog(created)
		return nil, fmt.Errorf("split %d: %w", objectID, model.ErrInsufficientCapacity)
	}
	if !source.DecreaseCount(amount) {
		inv.RemoveFromBag(created.ObjectID())
		s.releaseOrLog(created)
		return nil, fmt.Errorf("split %d of %d: %w", amount, source.Count(), model.ErrInsufficientQuantity)
	}

	out.Add(serverpackets.NewInventoryUpdate(created))
	out.Add(serverpackets.NewUpdateItem(source))
	return &SplitResult{Source: source, Created: created}, nil
}

// MergeItems переносит amount единиц из sourceID в destID.
//
//   - amount == source.count: dest поглощает source, source удаляется,
//     его objectID освобождается; ItemDeleted(source) + ItemUpdated(dest)
//   - amount < source.count: оба стака меняются; два ItemUpdated
//
// Отказы (MergeNone, без уведомлений): неизвестный handle, Kinah, разные шаблоны,
// надетый source, source.count < amount, переполнение стака dest.
func (s *Service) MergeItems(player *model.Player, sourceID uint32, amount int64, destID uint32) (MergeOutcome, error) {
	inv := player.Inventory()
	out := serverpackets.NewOutbox(player.ObjectID())

	inv.Lock()
	outcome, err := s.merge(inv, sourceID, amount, destID, out)
	inv.Unlock()

	out.Flush(s.sender)
	return outcome, err
}

func (s *Service) merge(inv *model.Inventory, sourceID uint32, amount int64, destID uint32, out *serverpackets.Outbox) (MergeOutcome, error) {
	if amount <= 0 {
		return MergeNone, fmt.Errorf("merge amount %d: %w", amount, model.ErrInsufficientQuantity)
	}
	if sourceID == destID {
		return MergeNone, fmt.Errorf("merge %d into itself: %w", sourceID, model.ErrInvalidReference)
	}

	source := inv.GetItemByObjID(sourceID)
	dest := inv.GetItemByObjID(destID)
	if source == nil || dest == nil {
		return MergeNone, fmt.Errorf("merge %d -> %d: %w", sourceID, destID, model.ErrInvalidReference)
	}
	if kinah := inv.KinahItem(); source == kinah || dest == kinah {
		return MergeNone, fmt.Errorf("merge kinah: %w", model.ErrInvalidReference)
	}
	if source.ItemID() != dest.ItemID() {
		return MergeNone, fmt.Errorf("merge %d -> %d: %w", source.ItemID(), dest.ItemID(), ErrTemplateMismatch)
	}
	if source.IsEquipped() {
		return MergeNone, fmt.Errorf("merge source %d: %w", sourceID, ErrItemEquipped)
	}

	count := source.Count()
	if count < amount {
		return MergeNone, fmt.Errorf("merge %d of %d: %w", amount, count, model.ErrInsufficientQuantity)
	}
	if tmpl := dest.Template(); tmpl != nil && tmpl.StackRoom(dest.Count()) < amount {
		return MergeNone, fmt.Errorf("merge %d into stack of %d: %w", amount, dest.Count(), model.ErrInsufficientCapacity)
	}

	if count == amount {
		inv.RemoveFromBag(sourceID)
		dest.IncreaseCount(amount)
		s.releaseOrLog(source)

		out.Add(serverpackets.NewDeleteItem(sourceID))
		out.Add(serverpackets.NewUpdateItem(dest))
		return MergeAbsorbed, nil
	}

	source.DecreaseCount(amount)
	dest.IncreaseCount(amount)

	out.Add(serverpackets.NewUpdateItem(source))
	out.Add(serverpackets.NewUpdateItem(dest))
	return MergePartial, nil
}
