package serverpackets

// DeleteItem — предмет удалён из инвентаря.
type DeleteItem struct {
	ObjectID uint32
}

// NewDeleteItem creates a DeleteItem packet.
func NewDeleteItem(objectID uint32) *DeleteItem {
	return &DeleteItem{ObjectID: objectID}
}

// Kind implements Packet.
func (*DeleteItem) Kind() Kind { return KindDeleteItem }
