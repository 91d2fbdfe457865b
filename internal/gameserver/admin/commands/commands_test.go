package commands

import (
	"strconv"
	"strings"
	"testing"

	"github.com/udisondev/aiongo/internal/config"
	"github.com/udisondev/aiongo/internal/constants"
	"github.com/udisondev/aiongo/internal/data"
	"github.com/udisondev/aiongo/internal/game/augment"
	"github.com/udisondev/aiongo/internal/game/item"
	"github.com/udisondev/aiongo/internal/game/trade"
	"github.com/udisondev/aiongo/internal/gameserver/admin"
	"github.com/udisondev/aiongo/internal/model"
	"github.com/udisondev/aiongo/internal/world"
)

const (
	potionID int32 = 162000010
	swordID  int32 = 100000001
	stoneID  int32 = 167000001

	merchantTemplateID int32  = 798100
	merchantObjID      uint32 = constants.ObjectIDNpcStart + 1
)

func newTestHandler(t *testing.T) *admin.Handler {
	t.Helper()

	ids, err := world.NewIDFactory(constants.ObjectIDItemStart, constants.ObjectIDItemStart+0xFF)
	if err != nil {
		t.Fatalf("NewIDFactory: %v", err)
	}
	catalog := data.NewItemData(
		&model.ItemTemplate{ItemID: constants.KinahItemID, Name: "Kinah", Category: model.ItemCategoryCurrency},
		&model.ItemTemplate{ItemID: potionID, Name: "Lesser Life Potion", MaxStackCount: 10, Price: 20},
		&model.ItemTemplate{ItemID: swordID, Name: "Training Sword", Category: model.ItemCategoryWeapon, MaxStackCount: 1, ManastoneSlots: 1},
		&model.ItemTemplate{ItemID: stoneID, Name: "Manastone: Accuracy +8",
			Modifiers: []model.StatModifier{{Stat: model.StatAccuracy, Func: model.StatFuncAdd, Value: 8}}},
	)

	w := world.New()
	if err := w.AddNpc(model.NewNpc(merchantObjID, merchantTemplateID, "Merchant")); err != nil {
		t.Fatalf("AddNpc: %v", err)
	}
	goods := data.NewGoodsListData(&data.GoodsList{ID: 1, Items: []int32{potionID}})
	shops := data.NewTradeListData(&data.TradeListTemplate{
		NpcID: merchantTemplateID,
		Name:  "Merchant",
		Tabs:  []data.TradeTab{{ID: 1}},
	})

	items := item.NewService(ids, catalog, nil, nil)
	h := admin.NewHandler()
	RegisterAll(h, items, augment.NewService(catalog), trade.NewService(items, w, shops, goods, nil, config.DefaultTrade()))
	return h
}

func newTestPlayer(t *testing.T, cubeLimit int, accessLevel int32) *model.Player {
	t.Helper()
	p, err := model.NewPlayer(constants.ObjectIDPlayerStart+1, "Admin", cubeLimit, map[model.StatEnum]int32{model.StatAccuracy: 100})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p.SetAccessLevel(accessLevel)
	return p
}

func TestRegisterAll(t *testing.T) {
	h := newTestHandler(t)
	// add, item, kinah, stone, unstone, buy, sell
	if got := h.AdminCommandCount(); got != 7 {
		t.Errorf("AdminCommandCount() = %d, want 7", got)
	}
}

func TestAddItem(t *testing.T) {
	h := newTestHandler(t)
	p := newTestPlayer(t, 0, model.AccessLevelAdmin)

	if !h.HandleAdminCommand(p, "add 162000010 25") {
		t.Fatal("HandleAdminCommand(add) = false, want true")
	}
	if got := len(p.Inventory().GetAllItemsByItemID(potionID)); got != 3 {
		t.Errorf("potion stacks = %d, want 3", got)
	}
	if msg := p.LastAdminMessage(); !strings.Contains(msg, "Added 25 Lesser Life Potion") {
		t.Errorf("LastAdminMessage() = %q, want added message", msg)
	}

	h.HandleAdminCommand(p, "item 162000010")
	if got := len(p.Inventory().GetAllItemsByItemID(potionID)); got != 3 {
		t.Errorf("potion stacks after //item = %d, want 3 (topped up)", got)
	}
}

func TestAddItem_Remainder(t *testing.T) {
	h := newTestHandler(t)
	p := newTestPlayer(t, 1, model.AccessLevelAdmin)

	h.HandleAdminCommand(p, "add 162000010 25")
	if msg := p.LastAdminMessage(); !strings.Contains(msg, "15 did not fit") {
		t.Errorf("LastAdminMessage() = %q, want remainder message", msg)
	}
}

func TestAddItem_Errors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMsg string
	}{
		{"no args", "add", "usage"},
		{"bad id", "add abc", "invalid itemID"},
		{"bad count", "add 162000010 x", "invalid count"},
		{"zero count", "add 162000010 0", "count must be between"},
		{"unknown template", "add 999 1", "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			p := newTestPlayer(t, 0, model.AccessLevelAdmin)
			h.HandleAdminCommand(p, tt.text)
			if msg := p.LastAdminMessage(); !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("LastAdminMessage() = %q, want contains %q", msg, tt.wantMsg)
			}
			if got := p.Inventory().UnequippedCount(); got != 0 {
				t.Errorf("UnequippedCount() = %d, want 0", got)
			}
		})
	}
}

func TestAddItem_RequiresAdmin(t *testing.T) {
	h := newTestHandler(t)
	p := newTestPlayer(t, 0, model.AccessLevelGM)

	if h.HandleAdminCommand(p, "add 162000010 5") {
		t.Error("HandleAdminCommand(add) by GM = true, want false")
	}
	if got := p.Inventory().UnequippedCount(); got != 0 {
		t.Errorf("UnequippedCount() = %d, want 0", got)
	}
}

func TestKinah(t *testing.T) {
	h := newTestHandler(t)
	p := newTestPlayer(t, 0, model.AccessLevelAdmin)

	h.HandleAdminCommand(p, "kinah 1500")
	h.HandleAdminCommand(p, "kinah 500")
	if got := p.Inventory().KinahCount(); got != 2000 {
		t.Errorf("KinahCount() = %d, want 2000", got)
	}
	if msg := p.LastAdminMessage(); !strings.Contains(msg, "balance 2000") {
		t.Errorf("LastAdminMessage() = %q, want balance", msg)
	}

	h.HandleAdminCommand(p, "kinah -5")
	if got := p.Inventory().KinahCount(); got != 2000 {
		t.Errorf("KinahCount() after negative = %d, want 2000", got)
	}
}

func TestStone(t *testing.T) {
	h := newTestHandler(t)
	p := newTestPlayer(t, 0, model.AccessLevelAdmin)

	h.HandleAdminCommand(p, "add 100000001")
	swords := p.Inventory().GetAllItemsByItemID(swordID)
	if len(swords) != 1 {
		t.Fatalf("sword stacks = %d, want 1", len(swords))
	}
	sword := swords[0]
	if _, err := p.EquipItem(sword, model.EquipSlotMainHand); err != nil {
		t.Fatalf("EquipItem: %v", err)
	}

	h.HandleAdminCommand(p, "stone "+itoa(sword.ObjectID())+" 0 167000001")
	if got := p.GameStats().Current(model.StatAccuracy); got != 108 {
		t.Errorf("Current(Accuracy) = %d, want 108", got)
	}

	h.HandleAdminCommand(p, "stone "+itoa(sword.ObjectID())+" 0 167000001")
	if msg := p.LastAdminMessage(); !strings.Contains(msg, "occupied") {
		t.Errorf("LastAdminMessage() = %q, want occupied error", msg)
	}

	h.HandleAdminCommand(p, "UNSTONE "+itoa(sword.ObjectID())+" 0")
	if got := p.GameStats().Current(model.StatAccuracy); got != 100 {
		t.Errorf("Current(Accuracy) after unstone = %d, want 100", got)
	}

	h.HandleAdminCommand(p, "stone 12345 0 167000001")
	if msg := p.LastAdminMessage(); !strings.Contains(msg, "invalid object reference") {
		t.Errorf("LastAdminMessage() = %q, want invalid reference", msg)
	}
}

func TestShop(t *testing.T) {
	h := newTestHandler(t)
	p := newTestPlayer(t, 0, model.AccessLevelAdmin)
	npc := itoa(merchantObjID)

	h.HandleAdminCommand(p, "kinah 1000")
	h.HandleAdminCommand(p, "buy "+npc+" 162000010 5")
	if msg := p.LastAdminMessage(); !strings.Contains(msg, "Bought 5 x 162000010 for 200 kinah") {
		t.Errorf("LastAdminMessage() = %q, want bought message", msg)
	}
	if got := p.Inventory().KinahCount(); got != 800 {
		t.Errorf("KinahCount() after buy = %d, want 800", got)
	}

	potions := p.Inventory().GetAllItemsByItemID(potionID)
	if len(potions) != 1 {
		t.Fatalf("potion stacks = %d, want 1", len(potions))
	}
	h.HandleAdminCommand(p, "sell "+npc+" "+itoa(potions[0].ObjectID())+" 5")
	if msg := p.LastAdminMessage(); !strings.Contains(msg, "for 50 kinah") {
		t.Errorf("LastAdminMessage() = %q, want sold message", msg)
	}
	if got := p.Inventory().KinahCount(); got != 850 {
		t.Errorf("KinahCount() after sell = %d, want 850", got)
	}

	h.HandleAdminCommand(p, "buy "+npc+" 100000001 1")
	if msg := p.LastAdminMessage(); !strings.Contains(msg, "not sold") {
		t.Errorf("LastAdminMessage() = %q, want not-for-sale error", msg)
	}
}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
