package model

import (
	"fmt"
	"math"
	"strings"
)

// ItemTemplate — статическое описание типа предмета из каталога.
// Read-only после загрузки, разделяется всеми экземплярами Item.
type ItemTemplate struct {
	ItemID   int32  // Template ID (unique, from catalog)
	Name     string // e.g. "Kinah", "Greater Life Potion"
	Category ItemCategory

	// MaxStackCount — потолок стака. 0 = без ограничения.
	MaxStackCount int64
	// Price — базовая цена у NPC (Kinah).
	Price int64

	// ManastoneSlots — количество сокетов под manastones (armor/weapon).
	ManastoneSlots int32
	// Modifiers — stat бонусы при надевании (или при вставке, для manastone).
	Modifiers []StatModifier
}

// ItemCategory определяет категорию предмета.
type ItemCategory int32

const (
	ItemCategoryOther ItemCategory = iota
	ItemCategoryArmor
	ItemCategoryWeapon
	ItemCategoryCurrency
)

// String returns human-readable category name.
func (c ItemCategory) String() string {
	switch c {
	case ItemCategoryOther:
		return "Other"
	case ItemCategoryArmor:
		return "Armor"
	case ItemCategoryWeapon:
		return "Weapon"
	case ItemCategoryCurrency:
		return "Currency"
	default:
		return "Unknown"
	}
}

// ParseItemCategory разбирает категорию из каталога. Пустая строка = Other.
func ParseItemCategory(name string) (ItemCategory, error) {
	switch strings.ToLower(name) {
	case "", "other":
		return ItemCategoryOther, nil
	case "armor":
		return ItemCategoryArmor, nil
	case "weapon":
		return ItemCategoryWeapon, nil
	case "currency":
		return ItemCategoryCurrency, nil
	default:
		return 0, fmt.Errorf("unknown item category %q", name)
	}
}

// IsArmor returns true if this template is armor.
func (t *ItemTemplate) IsArmor() bool {
	return t.Category == ItemCategoryArmor
}

// IsWeapon returns true if this template is a weapon.
func (t *ItemTemplate) IsWeapon() bool {
	return t.Category == ItemCategoryWeapon
}

// IsCurrency returns true if this template is the currency item.
func (t *ItemTemplate) IsCurrency() bool {
	return t.Category == ItemCategoryCurrency
}

// CanHaveItemStones — только armor и weapon хранят manastones.
func (t *ItemTemplate) CanHaveItemStones() bool {
	return t.IsArmor() || t.IsWeapon()
}

// StackRoom возвращает, сколько ещё единиц поместится в стак с current.
// Для MaxStackCount == 0 место не ограничено.
func (t *ItemTemplate) StackRoom(current int64) int64 {
	if t.MaxStackCount == 0 {
		return math.MaxInt64 - current
	}
	room := t.MaxStackCount - current
	if room < 0 {
		return 0
	}
	return room
}
