package trade

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/aiongo/internal/config"
	"github.com/udisondev/aiongo/internal/game/item"
	"github.com/udisondev/aiongo/internal/gameserver/serverpackets"
	"github.com/udisondev/aiongo/internal/metrics"
	"github.com/udisondev/aiongo/internal/model"
)

// BuyFromShop покупает строки tl у NPC за Kinah.
//
// Отказ без изменений: NPC/каталог (ErrInvalidReference, ErrNotForSale), цена
// (ErrPriceOverflow), Kinah < total (ErrInsufficientFunds), свободных слотов
// меньше, чем строк (ErrInsufficientCapacity).
//
// Если cube заполнился посреди выдачи: при политике debit выданное остаётся,
// Kinah списывается и возвращается ErrPartialPurchase; при rollback выдача
// откатывается и возвращается ErrCapacityExhausted.
func (s *Service) BuyFromShop(player *model.Player, tl *TradeList) error {
	log := slog.With(
		"tx", uuid.NewString(),
		"player", player.Name(),
		"npc", tl.NpcObjectID())

	if err := s.validatePurchase(tl); err != nil {
		recordOutcome(metrics.KindBuy, metrics.OutcomeRejected)
		log.Warn("buy rejected by catalog", "error", err)
		return fmt.Errorf("buy from npc %d: %w", tl.NpcObjectID(), err)
	}

	total, err := s.buyPrice(tl)
	if err != nil {
		recordOutcome(metrics.KindBuy, metrics.OutcomeRejected)
		log.Warn("buy rejected by price", "error", err)
		return fmt.Errorf("buy from npc %d: %w", tl.NpcObjectID(), err)
	}

	inv := player.Inventory()
	out := serverpackets.NewOutbox(player.ObjectID())

	inv.Lock()
	outcome, err := s.executeBuy(inv, tl, total, out, log)
	inv.Unlock()

	out.Flush(s.sender)
	recordOutcome(metrics.KindBuy, outcome)

	if err != nil {
		return fmt.Errorf("buy from npc %d: %w", tl.NpcObjectID(), err)
	}
	log.Info("buy completed", "lines", tl.Size(), "price", total)
	return nil
}

// executeBuy вызывается под inv.Lock. Возвращает outcome для метрик.
func (s *Service) executeBuy(inv *model.Inventory, tl *TradeList, total int64, out *serverpackets.Outbox, log *slog.Logger) (string, error) {
	if kinah := inv.KinahCount(); kinah < total {
		log.Warn("buy rejected: not enough kinah", "kinah", kinah, "price", total)
		return metrics.OutcomeRejected, fmt.Errorf("need %d kinah, have %d: %w", total, kinah, model.ErrInsufficientFunds)
	}
	// Консервативно: строка может целиком лечь в существующие стаки, но слот
	// всё равно резервируется.
	if free := inv.FreeSlots(); free < tl.Size() {
		log.Warn("buy rejected: not enough slots", "free", free, "lines", tl.Size())
		return metrics.OutcomeRejected, fmt.Errorf("need %d slots, have %d: %w", tl.Size(), free, model.ErrInsufficientCapacity)
	}

	var (
		grants  []*item.GrantResult
		failure error
	)
	for _, line := range tl.Items() {
		res, err := s.items.Grant(inv, line.ItemID, line.Count)
		if res != nil {
			grants = append(grants, res)
		}
		if err == nil && res.Remaining > 0 {
			err = fmt.Errorf("item %d: %d of %d not placed: %w", line.ItemID, res.Remaining, line.Count, model.ErrCapacityExhausted)
		}
		if err != nil {
			log.Warn("CHECKPOINT: could not grant all items on buy",
				"player", inv.OwnerID(),
				"itemID", line.ItemID,
				"count", line.Count,
				"error", err)
			failure = err
			break
		}
	}

	if failure != nil && s.cfg.PartialBuyPolicy == config.PartialBuyRollback {
		for i := len(grants) - 1; i >= 0; i-- {
			s.items.RevertGrant(inv, grants[i])
		}
		log.Warn("buy rolled back", "granted_lines", len(grants))
		return metrics.OutcomeRejected, failure
	}

	if !inv.DecreaseKinah(total) {
		// KinahCount проверен под тем же lock: сюда не попадаем.
		for i := len(grants) - 1; i >= 0; i-- {
			s.items.RevertGrant(inv, grants[i])
		}
		return metrics.OutcomeRejected, fmt.Errorf("debit %d: %w", total, model.ErrInsufficientFunds)
	}
	metrics.KinahFlow.WithLabelValues(metrics.DirectionSpent).Add(float64(total))

	if kinah := inv.KinahItem(); kinah != nil {
		if kinahCreated(grants) {
			out.Add(serverpackets.NewInventoryUpdate(kinah))
		} else {
			out.Add(serverpackets.NewUpdateItem(kinah))
		}
	}
	notifyPurchase(out, grants)

	if failure != nil {
		log.Warn("buy partially applied, kinah debited",
			"price", total,
			"granted_lines", len(grants),
			"error", failure)
		return metrics.OutcomePartial, fmt.Errorf("%w: %w", model.ErrPartialPurchase, failure)
	}
	return metrics.OutcomeSuccess, nil
}

// notifyPurchase: ItemUpdated на каждый дополненный стак, один ItemsAdded на все новые.
// Kinah уже отражён уведомлением о списании.
func notifyPurchase(out *serverpackets.Outbox, grants []*item.GrantResult) {
	var created []*model.Item
	for _, g := range grants {
		if g.Kinah {
			continue
		}
		for _, d := range g.Updated {
			out.Add(serverpackets.NewUpdateItem(d.Item))
		}
		created = append(created, g.Created...)
	}
	if len(created) > 0 {
		out.Add(serverpackets.NewInventoryUpdate(created...))
	}
}

func kinahCreated(grants []*item.GrantResult) bool {
	for _, g := range grants {
		if g.KinahCreated {
			return true
		}
	}
	return false
}
