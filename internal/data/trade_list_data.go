package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// TradeTab — вкладка trade list template, ссылается на goods list.
type TradeTab struct {
	ID int32 // goods list ID
}

// TradeListTemplate — магазин NPC: набор вкладок.
type TradeListTemplate struct {
	NpcID int32
	Name  string
	Tabs  []TradeTab
}

type tradeListDef struct {
	NpcID int32   `yaml:"npc_id"`
	Name  string  `yaml:"name"`
	Tabs  []int32 `yaml:"tabs"`
}

type tradeListsFile struct {
	TradeLists []tradeListDef `yaml:"trade_lists"`
}

// TradeListData — read-only каталог магазинов по NPC template ID.
type TradeListData struct {
	templates map[int32]*TradeListTemplate
}

// NewTradeListData строит каталог из готовых шаблонов.
func NewTradeListData(templates ...*TradeListTemplate) *TradeListData {
	d := &TradeListData{templates: make(map[int32]*TradeListTemplate, len(templates))}
	for _, t := range templates {
		d.templates[t.NpcID] = t
	}
	return d
}

// LoadTradeListData читает trade_lists.yaml.
func LoadTradeListData(path string) (*TradeListData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trade lists %s: %w", path, err)
	}

	var f tradeListsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing trade lists %s: %w", path, err)
	}

	d := &TradeListData{templates: make(map[int32]*TradeListTemplate, len(f.TradeLists))}
	for _, def := range f.TradeLists {
		if _, dup := d.templates[def.NpcID]; dup {
			return nil, fmt.Errorf("duplicate trade list for npc %d in %s", def.NpcID, path)
		}
		tabs := make([]TradeTab, len(def.Tabs))
		for i, id := range def.Tabs {
			tabs[i] = TradeTab{ID: id}
		}
		d.templates[def.NpcID] = &TradeListTemplate{NpcID: def.NpcID, Name: def.Name, Tabs: tabs}
	}

	slog.Info("loaded trade lists", "count", len(d.templates))
	return d, nil
}

// TradeListTemplate возвращает магазин NPC (nil если NPC не торгует).
func (d *TradeListData) TradeListTemplate(npcID int32) *TradeListTemplate {
	return d.templates[npcID]
}

// All возвращает все шаблоны (порядок не определён).
func (d *TradeListData) All() []*TradeListTemplate {
	result := make([]*TradeListTemplate, 0, len(d.templates))
	for _, t := range d.templates {
		result = append(result, t)
	}
	return result
}
