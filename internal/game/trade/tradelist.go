package trade

// TradeItem — одна строка запроса покупки/продажи.
// Для покупки задан ItemID (template), для продажи ObjectID предмета игрока.
type TradeItem struct {
	ItemID   int32
	ObjectID uint32
	Count    int64
}

// TradeList — запрос игрока к магазину NPC. Живёт в рамках одного вызова.
type TradeList struct {
	npcObjID uint32
	items    []TradeItem
}

// NewTradeList creates an empty trade list for the NPC.
func NewTradeList(npcObjID uint32) *TradeList {
	return &TradeList{npcObjID: npcObjID}
}

// NpcObjectID возвращает objectID NPC-торговца.
func (tl *TradeList) NpcObjectID() uint32 {
	return tl.npcObjID
}

// AddBuyItem добавляет строку покупки по template ID.
func (tl *TradeList) AddBuyItem(itemID int32, count int64) {
	tl.items = append(tl.items, TradeItem{ItemID: itemID, Count: count})
}

// AddSellItem добавляет строку продажи по objectID предмета.
func (tl *TradeList) AddSellItem(objectID uint32, count int64) {
	tl.items = append(tl.items, TradeItem{ObjectID: objectID, Count: count})
}

// Items возвращает строки в порядке добавления.
func (tl *TradeList) Items() []TradeItem {
	return tl.items
}

// Size возвращает количество строк.
func (tl *TradeList) Size() int {
	return len(tl.items)
}
