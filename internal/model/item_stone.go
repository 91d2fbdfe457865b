package model

// ItemStone — manastone, вставленный в сокет armor/weapon.
// Хранится в БД отдельно от предмета (item_stones), ключ: objectID владельца + slot.
type ItemStone struct {
	itemObjID uint32 // objectID предмета, в который вставлен stone
	itemID    int32  // template ID самого manastone
	slot      int32  // socket index

	template *ItemTemplate // manastone template (источник Modifiers)
}

// NewItemStone создаёт stone для указанного предмета и сокета.
func NewItemStone(itemObjID uint32, itemID int32, slot int32) *ItemStone {
	return &ItemStone{
		itemObjID: itemObjID,
		itemID:    itemID,
		slot:      slot,
	}
}

// ItemObjectID возвращает objectID предмета-владельца.
func (s *ItemStone) ItemObjectID() uint32 { return s.itemObjID }

// ItemID возвращает template ID manastone.
func (s *ItemStone) ItemID() int32 { return s.itemID }

// Slot возвращает socket index.
func (s *ItemStone) Slot() int32 { return s.slot }

// Template возвращает manastone template (может быть nil, пока не резолвлен).
func (s *ItemStone) Template() *ItemTemplate { return s.template }

// SetTemplate привязывает manastone template после загрузки из БД.
func (s *ItemStone) SetTemplate(t *ItemTemplate) { s.template = t }

// Modifiers возвращает stat модификаторы stone (nil если template неизвестен).
func (s *ItemStone) Modifiers() []StatModifier {
	if s.template == nil {
		return nil
	}
	return s.template.Modifiers
}
