package data

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// GoodsList — вкладка магазина: item IDs, которые NPC вправе продавать.
type GoodsList struct {
	ID    int32
	Items []int32
}

// Contains returns true если item ID есть в списке.
func (g *GoodsList) Contains(itemID int32) bool {
	return slices.Contains(g.Items, itemID)
}

type goodsListDef struct {
	ID    int32   `yaml:"id"`
	Items []int32 `yaml:"items"`
}

type goodsListsFile struct {
	GoodsLists []goodsListDef `yaml:"goods_lists"`
}

// GoodsListData — read-only каталог goods lists.
type GoodsListData struct {
	lists map[int32]*GoodsList
}

// NewGoodsListData строит каталог из готовых списков.
func NewGoodsListData(lists ...*GoodsList) *GoodsListData {
	d := &GoodsListData{lists: make(map[int32]*GoodsList, len(lists))}
	for _, l := range lists {
		d.lists[l.ID] = l
	}
	return d
}

// LoadGoodsListData читает goods_lists.yaml.
func LoadGoodsListData(path string) (*GoodsListData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading goods lists %s: %w", path, err)
	}

	var f goodsListsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing goods lists %s: %w", path, err)
	}

	d := &GoodsListData{lists: make(map[int32]*GoodsList, len(f.GoodsLists))}
	for _, def := range f.GoodsLists {
		if _, dup := d.lists[def.ID]; dup {
			return nil, fmt.Errorf("duplicate goods list id %d in %s", def.ID, path)
		}
		d.lists[def.ID] = &GoodsList{ID: def.ID, Items: def.Items}
	}

	slog.Info("loaded goods lists", "count", len(d.lists))
	return d, nil
}

// GoodsList возвращает список по ID (nil если нет).
func (d *GoodsListData) GoodsList(id int32) *GoodsList {
	return d.lists[id]
}

// Count возвращает количество списков.
func (d *GoodsListData) Count() int {
	return len(d.lists)
}
