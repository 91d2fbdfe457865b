package commands

import "github.com/udisondev/aiongo/internal/gameserver/admin"

// RegisterAll registers all admin commands into the handler.
func RegisterAll(h *admin.Handler, items ItemGranter, stones StoneSocketer, trader ShopTrader) {
	h.RegisterAdmin(NewAddItem(items))
	h.RegisterAdmin(NewKinah(items))
	h.RegisterAdmin(NewStone(stones))
	h.RegisterAdmin(NewShop(trader))
}
