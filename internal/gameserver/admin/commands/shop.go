package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/aiongo/internal/game/trade"
	"github.com/udisondev/aiongo/internal/model"
)

// Shop handles //buy <npcObjectID> <itemID> [count] and //sell <npcObjectID> <objectID> [count].
// Прогоняет обычную транзакцию магазина от имени GM, для проверки trade lists.
type Shop struct {
	trader ShopTrader
}

// NewShop creates //buy and //sell commands.
func NewShop(trader ShopTrader) *Shop {
	return &Shop{trader: trader}
}

func (c *Shop) Names() []string            { return []string{"buy", "sell"} }
func (c *Shop) RequiredAccessLevel() int32 { return model.AccessLevelGM }

func (c *Shop) Handle(player *model.Player, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: //buy <npcObjectID> <itemID> [count] | //sell <npcObjectID> <objectID> [count]")
	}

	npcObjID, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid npcObjectID %q: %w", args[1], err)
	}
	count := int64(1)
	if len(args) > 3 {
		count, err = strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", args[3], err)
		}
	}

	tl := trade.NewTradeList(uint32(npcObjID))

	if strings.EqualFold(args[0], "sell") {
		objectID, err := strconv.ParseUint(args[2], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid objectID %q: %w", args[2], err)
		}
		before := player.Inventory().KinahCount()
		tl.AddSellItem(uint32(objectID), count)
		if err := c.trader.SellToShop(player, tl); err != nil {
			return fmt.Errorf("sell: %w", err)
		}
		player.SetLastAdminMessage(fmt.Sprintf("Sold %d of %d for %d kinah",
			count, objectID, player.Inventory().KinahCount()-before))
		return nil
	}

	itemID, err := strconv.ParseInt(args[2], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid itemID %q: %w", args[2], err)
	}
	before := player.Inventory().KinahCount()
	tl.AddBuyItem(int32(itemID), count)
	if err := c.trader.BuyFromShop(player, tl); err != nil {
		if errors.Is(err, model.ErrPartialPurchase) {
			player.SetLastAdminMessage(fmt.Sprintf("Bought part of %d x %d, paid %d kinah",
				count, itemID, before-player.Inventory().KinahCount()))
			return nil
		}
		return fmt.Errorf("buy: %w", err)
	}
	player.SetLastAdminMessage(fmt.Sprintf("Bought %d x %d for %d kinah",
		count, itemID, before-player.Inventory().KinahCount()))
	return nil
}
