package trade

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/udisondev/aiongo/internal/constants"
	"github.com/udisondev/aiongo/internal/game/item"
	"github.com/udisondev/aiongo/internal/gameserver/serverpackets"
	"github.com/udisondev/aiongo/internal/metrics"
	"github.com/udisondev/aiongo/internal/model"
)

// SellToShop продаёт предметы игрока (строки по objectID) NPC.
//
// Строка на весь стак удаляет предмет и освобождает его objectID, строка на
// часть стака уменьшает count. После всех строк Kinah += Σ(price × count) / SellPriceDivisor.
// Ошибочная строка прерывает продажу до начисления Kinah; уже применённые
// строки не откатываются, их уведомления отправляются.
func (s *Service) SellToShop(player *model.Player, tl *TradeList) error {
	log := slog.With(
		"tx", uuid.NewString(),
		"player", player.Name(),
		"npc", tl.NpcObjectID())

	if tl.Size() == 0 {
		recordOutcome(metrics.KindSell, metrics.OutcomeRejected)
		return fmt.Errorf("sell to npc %d: %w", tl.NpcObjectID(), ErrEmptyTradeList)
	}
	if _, ok := s.npcs.GetNpc(tl.NpcObjectID()); !ok {
		recordOutcome(metrics.KindSell, metrics.OutcomeRejected)
		log.Warn("sell rejected: unknown npc")
		return fmt.Errorf("sell to npc %d: %w", tl.NpcObjectID(), model.ErrInvalidReference)
	}

	inv := player.Inventory()
	out := serverpackets.NewOutbox(player.ObjectID())

	inv.Lock()
	outcome, credit, err := s.executeSell(inv, tl, out, log)
	inv.Unlock()

	out.Flush(s.sender)
	recordOutcome(metrics.KindSell, outcome)

	if err != nil {
		return fmt.Errorf("sell to npc %d: %w", tl.NpcObjectID(), err)
	}
	log.Info("sell completed", "lines", tl.Size(), "kinah", credit)
	return nil
}

// executeSell вызывается под inv.Lock.
func (s *Service) executeSell(inv *model.Inventory, tl *TradeList, out *serverpackets.Outbox, log *slog.Logger) (string, int64, error) {
	var (
		reward  int64
		applied int
	)
	for _, line := range tl.Items() {
		lineReward, err := s.sellLine(inv, line, out, log)
		if err != nil {
			outcome := metrics.OutcomeRejected
			if applied > 0 {
				outcome = metrics.OutcomePartial
			}
			return outcome, 0, err
		}
		if reward > math.MaxInt64-lineReward {
			return metrics.OutcomePartial, 0, ErrPriceOverflow
		}
		reward += lineReward
		applied++
	}

	credit := reward / s.cfg.SellPriceDivisor
	if credit > 0 {
		res, err := s.items.Grant(inv, constants.KinahItemID, credit)
		if err != nil {
			log.Error("crediting kinah after sell", "credit", credit, "error", err)
			return metrics.OutcomePartial, 0, fmt.Errorf("crediting %d kinah: %w", credit, err)
		}
		metrics.KinahFlow.WithLabelValues(metrics.DirectionEarned).Add(float64(credit))
		if res.KinahCreated {
			out.Add(serverpackets.NewInventoryUpdate(inv.KinahItem()))
			return metrics.OutcomeSuccess, credit, nil
		}
	}
	if kinah := inv.KinahItem(); kinah != nil {
		out.Add(serverpackets.NewUpdateItem(kinah))
	}
	return metrics.OutcomeSuccess, credit, nil
}

func (s *Service) sellLine(inv *model.Inventory, line TradeItem, out *serverpackets.Outbox, log *slog.Logger) (int64, error) {
	it := inv.GetItemByObjID(line.ObjectID)
	if it == nil || it == inv.KinahItem() {
		log.Warn("CHECKPOINT: sell of item not owned",
			"owner", inv.OwnerID(),
			"objectID", line.ObjectID)
		return 0, fmt.Errorf("item %d: %w", line.ObjectID, model.ErrInvalidReference)
	}
	if it.IsEquipped() {
		return 0, fmt.Errorf("item %d: %w", line.ObjectID, item.ErrItemEquipped)
	}
	tmpl := it.Template()
	if tmpl == nil {
		return 0, fmt.Errorf("item %d template %d: %w", line.ObjectID, it.ItemID(), model.ErrTemplateNotFound)
	}

	count := it.Count()
	if line.Count <= 0 || line.Count > count {
		return 0, fmt.Errorf("sell %d of %d: %w", line.Count, count, model.ErrInsufficientQuantity)
	}
	lineReward, ok := mulInt64(tmpl.Price, line.Count)
	if !ok {
		return 0, ErrPriceOverflow
	}

	if line.Count == count {
		inv.RemoveFromBag(it.ObjectID())
		if err := s.items.ReleaseItemID(it); err != nil {
			log.Error("releasing sold item id", "objectID", it.ObjectID(), "error", err)
		}
		out.Add(serverpackets.NewDeleteItem(it.ObjectID()))
		return lineReward, nil
	}

	if !it.DecreaseCount(line.Count) {
		return 0, fmt.Errorf("sell %d of %d: %w", line.Count, it.Count(), model.ErrInsufficientQuantity)
	}
	out.Add(serverpackets.NewUpdateItem(it))
	return lineReward, nil
}
