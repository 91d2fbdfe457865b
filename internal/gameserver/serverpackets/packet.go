// Package serverpackets содержит уведомления клиента об изменениях инвентаря.
//
// Пакеты несут snapshot предмета (ItemInfo), снятый под inventory lock:
// отправка происходит после unlock, когда Item мог уже измениться.
package serverpackets

import "github.com/udisondev/aiongo/internal/model"

// Kind — тип уведомления.
type Kind uint8

const (
	KindInventoryUpdate Kind = iota + 1 // предметы добавлены
	KindUpdateItem                      // предмет изменён
	KindDeleteItem                      // предмет удалён
)

var kindNames = map[Kind]string{
	KindInventoryUpdate: "InventoryUpdate",
	KindUpdateItem:      "UpdateItem",
	KindDeleteItem:      "DeleteItem",
}

// String returns packet name for logs.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Packet — уведомление клиента. Сериализация в wire format вне этого пакета.
type Packet interface {
	Kind() Kind
}

// ItemInfo — snapshot состояния предмета для клиента.
type ItemInfo struct {
	ObjectID uint32
	ItemID   int32
	Count    int64
	Equipped bool
	Slot     int32
}

// InfoOf снимает snapshot предмета.
func InfoOf(item *model.Item) ItemInfo {
	r := model.RecordOf(item)
	return ItemInfo{
		ObjectID: r.ObjectID,
		ItemID:   r.ItemID,
		Count:    r.Count,
		Equipped: r.Equipped,
		Slot:     r.Slot,
	}
}
