package data

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/aiongo/internal/config"
)

// Catalog — весь статический каталог, загружаемый на старте.
type Catalog struct {
	Items      *ItemData
	GoodsLists *GoodsListData
	TradeLists *TradeListData
}

// LoadCatalog загружает items, goods lists и trade lists.
// Trade list, ссылающийся на несуществующий goods list, только логируется:
// такая вкладка просто ничего не разрешает.
func LoadCatalog(cfg config.Data) (*Catalog, error) {
	items, err := LoadItemData(cfg.ItemsPath)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	goods, err := LoadGoodsListData(cfg.GoodsListsPath)
	if err != nil {
		return nil, fmt.Errorf("loading goods lists: %w", err)
	}
	trades, err := LoadTradeListData(cfg.TradeListsPath)
	if err != nil {
		return nil, fmt.Errorf("loading trade lists: %w", err)
	}

	for _, tl := range trades.All() {
		for _, tab := range tl.Tabs {
			if goods.GoodsList(tab.ID) == nil {
				slog.Warn("trade list references missing goods list", "npcID", tl.NpcID, "goodsListID", tab.ID)
			}
		}
	}
	for id, gl := range goods.lists {
		for _, itemID := range gl.Items {
			if items.ItemTemplate(itemID) == nil {
				slog.Warn("goods list references missing item template", "goodsListID", id, "itemID", itemID)
			}
		}
	}

	return &Catalog{Items: items, GoodsLists: goods, TradeLists: trades}, nil
}
