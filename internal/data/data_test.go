package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aiongo/internal/config"
	"github.com/udisondev/aiongo/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadItemData(t *testing.T) {
	path := writeFile(t, t.TempDir(), "items.yaml", `
items:
  - id: 100
    name: Potion
    max_stack: 10
    price: 5
  - id: 200
    name: Sword
    category: weapon
    max_stack: 1
    manastone_slots: 2
    modifiers:
      - {stat: physical_attack, func: add, value: 30}
`)

	d, err := LoadItemData(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Count())

	potion := d.ItemTemplate(100)
	require.NotNil(t, potion)
	assert.Equal(t, int64(10), potion.MaxStackCount)
	assert.Equal(t, model.ItemCategoryOther, potion.Category)

	sword := d.ItemTemplate(200)
	require.NotNil(t, sword)
	assert.True(t, sword.IsWeapon())
	require.Len(t, sword.Modifiers, 1)
	assert.Equal(t, model.StatPhysicalAttack, sword.Modifiers[0].Stat)

	assert.Nil(t, d.ItemTemplate(300))
}

func TestLoadItemData_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"duplicate id", "items:\n  - {id: 1}\n  - {id: 1}\n"},
		{"unknown category", "items:\n  - {id: 1, category: food}\n"},
		{"negative stack", "items:\n  - {id: 1, max_stack: -1}\n"},
		{"unknown stat", "items:\n  - id: 1\n    modifiers:\n      - {stat: luck, func: add, value: 1}\n"},
		{"bad yaml", "items: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "items.yaml", tt.content)
			_, err := LoadItemData(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog_SampleData(t *testing.T) {
	root := filepath.Join("..", "..", "data")
	cat, err := LoadCatalog(config.Data{
		ItemsPath:      filepath.Join(root, "items.yaml"),
		GoodsListsPath: filepath.Join(root, "goods_lists.yaml"),
		TradeListsPath: filepath.Join(root, "trade_lists.yaml"),
	})
	require.NoError(t, err)

	kinah := cat.Items.ItemTemplate(182400001)
	require.NotNil(t, kinah)
	assert.True(t, kinah.IsCurrency())

	tl := cat.TradeLists.TradeListTemplate(798100)
	require.NotNil(t, tl)
	require.Len(t, tl.Tabs, 2)

	gl := cat.GoodsLists.GoodsList(tl.Tabs[0].ID)
	require.NotNil(t, gl)
	assert.True(t, gl.Contains(162000010))
	assert.False(t, gl.Contains(100000001))
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(config.Data{
		ItemsPath:      filepath.Join(t.TempDir(), "none.yaml"),
		GoodsListsPath: "x",
		TradeListsPath: "y",
	})
	assert.Error(t, err)
}
