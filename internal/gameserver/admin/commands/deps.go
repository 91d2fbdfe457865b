package commands

import (
	"github.com/udisondev/aiongo/internal/game/trade"
	"github.com/udisondev/aiongo/internal/model"
)

// ItemGranter выдаёт предметы (item.Service).
type ItemGranter interface {
	// AddItem возвращает невыданный остаток.
	AddItem(player *model.Player, itemID int32, count int64, notable bool) (int64, error)
	// Template возвращает шаблон (nil если нет в каталоге).
	Template(itemID int32) *model.ItemTemplate
}

// StoneSocketer вставляет и извлекает manastones (augment.Service).
type StoneSocketer interface {
	SocketStone(player *model.Player, item *model.Item, stoneItemID int32, slot int32) (*model.ItemStone, error)
	RemoveStone(player *model.Player, item *model.Item, slot int32) (*model.ItemStone, error)
}

// ShopTrader проводит транзакции магазинов NPC (trade.Service).
type ShopTrader interface {
	BuyFromShop(player *model.Player, tl *trade.TradeList) error
	SellToShop(player *model.Player, tl *trade.TradeList) error
}
