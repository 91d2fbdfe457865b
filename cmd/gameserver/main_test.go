package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aiongo/internal/data"
	"github.com/udisondev/aiongo/internal/model"
	"github.com/udisondev/aiongo/internal/world"
)

func TestSpawnMerchants(t *testing.T) {
	shops := data.NewTradeListData(
		&data.TradeListTemplate{NpcID: 798100, Name: "Weapon Merchant", Tabs: []data.TradeTab{{ID: 1}}},
		&data.TradeListTemplate{NpcID: 798101, Name: "General Goods", Tabs: []data.TradeTab{{ID: 2}}},
	)
	w := world.New()

	require.NoError(t, spawnMerchants(w, shops))
	assert.Equal(t, 2, countMerchants(w, shops))

	// NPC без trade list не считается торговцем.
	require.NoError(t, w.AddNpc(model.NewNpc(0x2FFFFFFF, 700001, "Guard")))
	assert.Equal(t, 2, countMerchants(w, shops))

	seen := map[int32]bool{}
	w.ForEachNpc(func(npc *model.Npc) bool {
		seen[npc.TemplateID()] = true
		return true
	})
	assert.Equal(t, map[int32]bool{798100: true, 798101: true, 700001: true}, seen)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), "parseLogLevel(%q)", tt.in)
	}
}
