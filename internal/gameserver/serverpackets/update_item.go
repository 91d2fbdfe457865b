package serverpackets

import "github.com/udisondev/aiongo/internal/model"

// UpdateItem — изменение существующего предмета (count, slot).
type UpdateItem struct {
	Item ItemInfo
}

// NewUpdateItem creates an UpdateItem packet.
func NewUpdateItem(item *model.Item) *UpdateItem {
	return &UpdateItem{Item: InfoOf(item)}
}

// Kind implements Packet.
func (*UpdateItem) Kind() Kind { return KindUpdateItem }
