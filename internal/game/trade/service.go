// Package trade implements NPC shop transactions: buy for Kinah and sell for Kinah.
//
// Транзакция проходит Requested → Validated → Executed или Requested → Rejected
// в одном вызове. Валидация каталога и цены идёт до inventory lock; проверка
// Kinah/слотов, mutation и сборка уведомлений идут под одним Inventory.Lock.
package trade

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/aiongo/internal/config"
	"github.com/udisondev/aiongo/internal/data"
	"github.com/udisondev/aiongo/internal/game/item"
	"github.com/udisondev/aiongo/internal/metrics"
	"github.com/udisondev/aiongo/internal/model"
)

// Errors.
var (
	// ErrNotForSale — item ID вне goods lists магазина NPC.
	ErrNotForSale = errors.New("item not sold by this npc")
	// ErrPriceOverflow — сумма сделки не помещается в int64.
	ErrPriceOverflow = errors.New("trade price overflow")
	// ErrEmptyTradeList — запрос без строк.
	ErrEmptyTradeList = errors.New("trade list is empty")
)

// NpcResolver резолвит objectID NPC в живой объект мира.
type NpcResolver interface {
	GetNpc(objectID uint32) (*model.Npc, bool)
}

// TradeListProvider — магазины по NPC template ID.
type TradeListProvider interface {
	TradeListTemplate(npcID int32) *data.TradeListTemplate
}

// GoodsListProvider — goods lists по tab ID.
type GoodsListProvider interface {
	GoodsList(id int32) *data.GoodsList
}

// Service — transaction engine магазинов NPC.
type Service struct {
	items      *item.Service
	npcs       NpcResolver
	tradeLists TradeListProvider
	goodsLists GoodsListProvider
	sender     item.PacketSender
	cfg        config.Trade
}

// NewService creates a new trade service.
func NewService(
	items *item.Service,
	npcs NpcResolver,
	tradeLists TradeListProvider,
	goodsLists GoodsListProvider,
	sender item.PacketSender,
	cfg config.Trade,
) *Service {
	if cfg.BuyPriceMultiplier <= 0 {
		cfg.BuyPriceMultiplier = config.DefaultTrade().BuyPriceMultiplier
	}
	if cfg.SellPriceDivisor <= 0 {
		cfg.SellPriceDivisor = config.DefaultTrade().SellPriceDivisor
	}
	if cfg.PartialBuyPolicy == "" {
		cfg.PartialBuyPolicy = config.PartialBuyDebit
	}
	return &Service{
		items:      items,
		npcs:       npcs,
		tradeLists: tradeLists,
		goodsLists: goodsLists,
		sender:     sender,
		cfg:        cfg,
	}
}

// ValidatePurchase returns true если NPC существует и все запрошенные item IDs
// есть хотя бы в одной вкладке его магазина.
func (s *Service) ValidatePurchase(tl *TradeList) bool {
	return s.validatePurchase(tl) == nil
}

func (s *Service) validatePurchase(tl *TradeList) error {
	if tl.Size() == 0 {
		return ErrEmptyTradeList
	}

	npc, ok := s.npcs.GetNpc(tl.NpcObjectID())
	if !ok {
		return fmt.Errorf("npc %d: %w", tl.NpcObjectID(), model.ErrInvalidReference)
	}
	tmpl := s.tradeLists.TradeListTemplate(npc.TemplateID())
	if tmpl == nil {
		return fmt.Errorf("npc %d has no trade list: %w", npc.TemplateID(), model.ErrInvalidReference)
	}

	allowed := make(map[int32]struct{})
	for _, tab := range tmpl.Tabs {
		goods := s.goodsLists.GoodsList(tab.ID)
		if goods == nil {
			continue
		}
		for _, id := range goods.Items {
			allowed[id] = struct{}{}
		}
	}

	for _, line := range tl.Items() {
		if _, ok := allowed[line.ItemID]; !ok {
			return fmt.Errorf("item %d at npc %d: %w", line.ItemID, npc.TemplateID(), ErrNotForSale)
		}
	}
	return nil
}

// buyPrice = Σ(price × count) × BuyPriceMultiplier с проверкой переполнения.
func (s *Service) buyPrice(tl *TradeList) (int64, error) {
	var sum int64
	for _, line := range tl.Items() {
		if line.Count <= 0 {
			return 0, fmt.Errorf("item %d count %d: %w", line.ItemID, line.Count, model.ErrInsufficientQuantity)
		}
		tmpl := s.items.Template(line.ItemID)
		if tmpl == nil {
			return 0, fmt.Errorf("item %d: %w", line.ItemID, model.ErrTemplateNotFound)
		}
		lineTotal, ok := mulInt64(tmpl.Price, line.Count)
		if !ok || sum > math.MaxInt64-lineTotal {
			return 0, ErrPriceOverflow
		}
		sum += lineTotal
	}

	total, ok := mulInt64(sum, s.cfg.BuyPriceMultiplier)
	if !ok {
		return 0, ErrPriceOverflow
	}
	return total, nil
}

func mulInt64(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}

func recordOutcome(kind, outcome string) {
	metrics.TradeTransactions.WithLabelValues(kind, outcome).Inc()
}
