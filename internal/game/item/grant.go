package item

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/aiongo/internal/constants"
	"github.com/udisondev/aiongo/internal/gameserver/serverpackets"
	"github.com/udisondev/aiongo/internal/metrics"
	"github.com/udisondev/aiongo/internal/model"
)

// StackDelta — на сколько вырос существующий стак при grant.
type StackDelta struct {
	Item  *model.Item
	Added int64
}

// GrantResult — что именно изменил Grant. Нужен для уведомлений и RevertGrant.
type GrantResult struct {
	ItemID    int32
	Requested int64

	// Kinah — grant ушёл в currency accumulator (Updated содержит его delta).
	Kinah        bool
	KinahCreated bool

	Updated   []StackDelta  // существующие стаки, в порядке заполнения
	Created   []*model.Item // новые стаки, уже положенные в cube
	Remaining int64         // не поместилось
}

// Placed возвращает количество реально выданных единиц.
func (r *GrantResult) Placed() int64 {
	return r.Requested - r.Remaining
}

// Grant кладёт count единиц itemID в инвентарь. Вызывающий держит inv.Lock.
//
// Kinah идёт в accumulator (создаётся при отсутствии). Для остальных:
//  1. доливаются существующие стаки (включая надетые) в порядке добавления до MaxStackCount;
//  2. создаются новые стаки (по MaxStackCount или точный остаток), пока есть свободный слот.
//
// Remaining > 0 только если cube заполнился. Ошибка возвращается только когда
// шаблона нет (result nil) или allocator отказал (result отражает уже сделанное).
func (s *Service) Grant(inv *model.Inventory, itemID int32, count int64) (*GrantResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("grant %d count %d: %w", itemID, count, model.ErrInsufficientQuantity)
	}
	tmpl := s.templates.ItemTemplate(itemID)
	if tmpl == nil {
		return nil, fmt.Errorf("grant %d: %w", itemID, model.ErrTemplateNotFound)
	}

	res := &GrantResult{ItemID: itemID, Requested: count, Remaining: count}

	if itemID == constants.KinahItemID {
		return res, s.grantKinah(inv, tmpl, res)
	}

	for _, stack := range inv.GetAllItemsByItemID(itemID) {
		if res.Remaining == 0 {
			break
		}
		room := tmpl.StackRoom(stack.Count())
		if room <= 0 {
			continue
		}
		add := min(room, res.Remaining)
		stack.IncreaseCount(add)
		res.Updated = append(res.Updated, StackDelta{Item: stack, Added: add})
		res.Remaining -= add
	}

	for res.Remaining > 0 && !inv.IsFull() {
		size := res.Remaining
		if tmpl.MaxStackCount > 0 && size > tmpl.MaxStackCount {
			size = tmpl.MaxStackCount
		}

		created, err := s.allocate(tmpl, size)
		if err != nil {
			return res, fmt.Errorf("grant %d: %w", itemID, err)
		}
		if !inv.PutToBag(created) {
			s.releaseOrLog(created)
			break
		}
		res.Created = append(res.Created, created)
		res.Remaining -= size
	}

	return res, nil
}

func (s *Service) grantKinah(inv *model.Inventory, tmpl *model.ItemTemplate, res *GrantResult) error {
	kinah := inv.KinahItem()
	if kinah == nil {
		created, err := s.allocate(tmpl, 0)
		if err != nil {
			return fmt.Errorf("creating kinah: %w", err)
		}
		if !inv.SetKinahItem(created) {
			s.releaseOrLog(created)
			return fmt.Errorf("creating kinah for %d: currency item already set", inv.OwnerID())
		}
		kinah = created
		res.KinahCreated = true
	}

	if kinah.Count() > math.MaxInt64-res.Requested {
		return fmt.Errorf("kinah %d + %d: %w", kinah.Count(), res.Requested, model.ErrInsufficientCapacity)
	}
	inv.IncreaseKinah(res.Requested)

	res.Kinah = true
	res.Updated = append(res.Updated, StackDelta{Item: kinah, Added: res.Requested})
	res.Remaining = 0
	return nil
}

// RevertGrant откатывает Grant. Вызывающий держит тот же inv.Lock,
// под которым был сделан Grant. Созданные стаки удаляются, их objectID освобождаются.
func (s *Service) RevertGrant(inv *model.Inventory, res *GrantResult) {
	if res == nil {
		return
	}
	for _, created := range res.Created {
		if inv.RemoveFromBag(created.ObjectID()) != nil {
			s.releaseOrLog(created)
		}
	}
	for _, d := range res.Updated {
		if res.Kinah {
			inv.DecreaseKinah(d.Added)
			continue
		}
		d.Item.DecreaseCount(d.Added)
	}
	res.Created = nil
	res.Updated = nil
	res.Remaining = res.Requested
}

// notifyGrant: при notable доливка существующего стака показывается как ItemsAdded
// (важные выдачи, например квестовые), иначе ItemUpdated.
// Каждый новый стак шлёт отдельный ItemsAdded.
func notifyGrant(out *serverpackets.Outbox, res *GrantResult, notable bool) {
	if res.Kinah {
		for _, d := range res.Updated {
			if res.KinahCreated {
				out.Add(serverpackets.NewInventoryUpdate(d.Item))
				continue
			}
			out.Add(serverpackets.NewUpdateItem(d.Item))
		}
		return
	}
	for _, d := range res.Updated {
		if notable {
			out.Add(serverpackets.NewInventoryUpdate(d.Item))
			continue
		}
		out.Add(serverpackets.NewUpdateItem(d.Item))
	}
	for _, created := range res.Created {
		out.Add(serverpackets.NewInventoryUpdate(created))
	}
}

// AddItem выдаёт игроку count единиц itemID и возвращает невыданный остаток.
// Остаток > 0 сопровождается ErrCapacityExhausted; выданное при этом остаётся.
func (s *Service) AddItem(player *model.Player, itemID int32, count int64, notable bool) (int64, error) {
	inv := player.Inventory()
	out := serverpackets.NewOutbox(player.ObjectID())

	inv.Lock()
	res, err := s.Grant(inv, itemID, count)
	if res != nil {
		notifyGrant(out, res, notable)
	}
	inv.Unlock()

	out.Flush(s.sender)

	if res == nil {
		return max(count, 0), err
	}
	if err != nil {
		return res.Remaining, err
	}
	if res.Remaining > 0 {
		metrics.GrantRemainder.Add(float64(res.Remaining))
		slog.Warn("inventory full, grant incomplete",
			"player", player.Name(),
			"itemID", itemID,
			"requested", count,
			"remaining", res.Remaining)
		return res.Remaining, fmt.Errorf("grant %d x%d, %d left: %w", itemID, count, res.Remaining, model.ErrCapacityExhausted)
	}
	return 0, nil
}
