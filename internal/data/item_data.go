package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/aiongo/internal/model"
)

// itemDef — строка items.yaml.
type itemDef struct {
	ID             int32         `yaml:"id"`
	Name           string        `yaml:"name"`
	Category       string        `yaml:"category"`
	MaxStack       int64         `yaml:"max_stack"`
	Price          int64         `yaml:"price"`
	ManastoneSlots int32         `yaml:"manastone_slots"`
	Modifiers      []modifierDef `yaml:"modifiers"`
}

type modifierDef struct {
	Stat  string `yaml:"stat"`
	Func  string `yaml:"func"`
	Value int32  `yaml:"value"`
}

type itemsFile struct {
	Items []itemDef `yaml:"items"`
}

// ItemData — read-only каталог item templates. Безопасен для конкурентного
// чтения: после загрузки не мутируется.
type ItemData struct {
	templates map[int32]*model.ItemTemplate
}

// NewItemData строит каталог из готовых шаблонов (для тестов и tooling).
func NewItemData(templates ...*model.ItemTemplate) *ItemData {
	d := &ItemData{templates: make(map[int32]*model.ItemTemplate, len(templates))}
	for _, t := range templates {
		d.templates[t.ItemID] = t
	}
	return d
}

// LoadItemData читает items.yaml.
func LoadItemData(path string) (*ItemData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading item data %s: %w", path, err)
	}

	var f itemsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing item data %s: %w", path, err)
	}

	d := &ItemData{templates: make(map[int32]*model.ItemTemplate, len(f.Items))}
	for i := range f.Items {
		t, err := f.Items[i].toTemplate()
		if err != nil {
			return nil, fmt.Errorf("item %d in %s: %w", f.Items[i].ID, path, err)
		}
		if _, dup := d.templates[t.ItemID]; dup {
			return nil, fmt.Errorf("duplicate item id %d in %s", t.ItemID, path)
		}
		d.templates[t.ItemID] = t
	}

	slog.Info("loaded item templates", "count", len(d.templates))
	return d, nil
}

func (def *itemDef) toTemplate() (*model.ItemTemplate, error) {
	if def.MaxStack < 0 {
		return nil, fmt.Errorf("max_stack cannot be negative, got %d", def.MaxStack)
	}
	if def.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative, got %d", def.Price)
	}

	category, err := model.ParseItemCategory(def.Category)
	if err != nil {
		return nil, err
	}

	mods := make([]model.StatModifier, 0, len(def.Modifiers))
	for _, m := range def.Modifiers {
		stat, err := model.ParseStatEnum(m.Stat)
		if err != nil {
			return nil, err
		}
		fn, err := model.ParseStatFunc(m.Func)
		if err != nil {
			return nil, err
		}
		mods = append(mods, model.StatModifier{Stat: stat, Func: fn, Value: m.Value})
	}

	return &model.ItemTemplate{
		ItemID:         def.ID,
		Name:           def.Name,
		Category:       category,
		MaxStackCount:  def.MaxStack,
		Price:          def.Price,
		ManastoneSlots: def.ManastoneSlots,
		Modifiers:      mods,
	}, nil
}

// ItemTemplate возвращает шаблон по item ID (nil если нет).
func (d *ItemData) ItemTemplate(itemID int32) *model.ItemTemplate {
	return d.templates[itemID]
}

// Count возвращает количество шаблонов.
func (d *ItemData) Count() int {
	return len(d.templates)
}
