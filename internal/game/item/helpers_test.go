package item

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aiongo/internal/constants"
	"github.com/udisondev/aiongo/internal/data"
	"github.com/udisondev/aiongo/internal/gameserver/serverpackets"
	"github.com/udisondev/aiongo/internal/model"
	"github.com/udisondev/aiongo/internal/world"
)

const (
	potionID int32 = 162000010
	breadID  int32 = 160000001
	shardID  int32 = 164000073
	swordID  int32 = 100000001
	stoneID  int32 = 167000001
	relicID  int32 = 186000001 // без потолка стака
)

var testTemplates = []*model.ItemTemplate{
	{ItemID: constants.KinahItemID, Name: "Kinah", Category: model.ItemCategoryCurrency},
	{ItemID: potionID, Name: "Lesser Life Potion", MaxStackCount: 10, Price: 20},
	{ItemID: breadID, Name: "Bread", MaxStackCount: 50, Price: 5},
	{ItemID: shardID, Name: "Power Shard", MaxStackCount: 1000, Price: 2},
	{ItemID: relicID, Name: "Ancient Relic"},
	{
		ItemID:         swordID,
		Name:           "Training Sword",
		Category:       model.ItemCategoryWeapon,
		MaxStackCount:  1,
		ManastoneSlots: 2,
		Modifiers:      []model.StatModifier{{Stat: model.StatPhysicalAttack, Func: model.StatFuncAdd, Value: 30}},
	},
	{
		ItemID:    stoneID,
		Name:      "Manastone: Accuracy +8",
		Modifiers: []model.StatModifier{{Stat: model.StatAccuracy, Func: model.StatFuncAdd, Value: 8}},
	},
}

// recordingSender запоминает отправленные пакеты.
type recordingSender struct {
	mu      sync.Mutex
	packets []serverpackets.Packet
}

func (r *recordingSender) SendPacket(_ uint32, pkt serverpackets.Packet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packets = append(r.packets, pkt)
}

func (r *recordingSender) kinds() []serverpackets.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]serverpackets.Kind, len(r.packets))
	for i, p := range r.packets {
		kinds[i] = p.Kind()
	}
	return kinds
}

func (r *recordingSender) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packets = nil
}

type mockStoneLoader struct {
	mock.Mock
}

func (m *mockStoneLoader) LoadItemStones(ctx context.Context, itemObjID uint32) ([]*model.ItemStone, error) {
	args := m.Called(ctx, itemObjID)
	if v := args.Get(0); v != nil {
		return v.([]*model.ItemStone), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixture struct {
	svc    *Service
	ids    *world.IDFactory
	sender *recordingSender
	stones *mockStoneLoader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ids, err := world.NewIDFactory(constants.ObjectIDItemStart, constants.ObjectIDItemStart+0xFFF)
	require.NoError(t, err)

	f := &fixture{
		ids:    ids,
		sender: &recordingSender{},
		stones: &mockStoneLoader{},
	}
	f.svc = NewService(ids, data.NewItemData(testTemplates...), f.stones, f.sender)
	return f
}

func newTestPlayer(t *testing.T, cubeLimit int) *model.Player {
	t.Helper()
	p, err := model.NewPlayer(constants.ObjectIDPlayerStart+1, "Tester", cubeLimit, map[model.StatEnum]int32{
		model.StatPhysicalAttack: 50,
		model.StatAccuracy:       100,
	})
	require.NoError(t, err)
	return p
}

// give кладёт в cube новый стак itemID x count.
func (f *fixture) give(t *testing.T, p *model.Player, itemID int32, count int64) *model.Item {
	t.Helper()
	it, err := f.svc.NewItem(itemID, count)
	require.NoError(t, err)
	require.True(t, p.Inventory().PutToBag(it))
	return it
}
