package world

import (
	"fmt"
	"sync"

	"github.com/udisondev/aiongo/internal/model"
)

// World — registry живых объектов: резолвит object ID в Player/Npc.
// Не владеет их lifecycle; spawn и logout управляют добавлением/удалением.
type World struct {
	objects sync.Map // map[uint32]*model.WorldObject
	players sync.Map // map[uint32]*model.Player
	npcs    sync.Map // map[uint32]*model.Npc
}

// New создаёт пустой world.
func New() *World {
	return &World{}
}

// AddPlayer регистрирует игрока.
func (w *World) AddPlayer(p *model.Player) error {
	if _, loaded := w.objects.LoadOrStore(p.ObjectID(), p.WorldObject); loaded {
		return fmt.Errorf("object %d already in world", p.ObjectID())
	}
	w.players.Store(p.ObjectID(), p)
	return nil
}

// AddNpc регистрирует NPC.
func (w *World) AddNpc(npc *model.Npc) error {
	if _, loaded := w.objects.LoadOrStore(npc.ObjectID(), npc.WorldObject); loaded {
		return fmt.Errorf("object %d already in world", npc.ObjectID())
	}
	w.npcs.Store(npc.ObjectID(), npc)
	return nil
}

// RemoveObject удаляет объект из всех индексов.
func (w *World) RemoveObject(objectID uint32) {
	w.objects.Delete(objectID)
	w.players.Delete(objectID)
	w.npcs.Delete(objectID)
}

// FindObject returns object by ID.
func (w *World) FindObject(objectID uint32) (*model.WorldObject, bool) {
	v, ok := w.objects.Load(objectID)
	if !ok {
		return nil, false
	}
	return v.(*model.WorldObject), true
}

// GetNpc returns NPC by objectID.
func (w *World) GetNpc(objectID uint32) (*model.Npc, bool) {
	v, ok := w.npcs.Load(objectID)
	if !ok {
		return nil, false
	}
	return v.(*model.Npc), true
}

// GetPlayer returns player by objectID.
func (w *World) GetPlayer(objectID uint32) (*model.Player, bool) {
	v, ok := w.players.Load(objectID)
	if !ok {
		return nil, false
	}
	return v.(*model.Player), true
}

// PlayerCount возвращает количество игроков в мире.
func (w *World) PlayerCount() int {
	n := 0
	w.players.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// ForEachNpc вызывает fn для каждого NPC; fn returns false для остановки.
func (w *World) ForEachNpc(fn func(*model.Npc) bool) {
	w.npcs.Range(func(_, v any) bool {
		return fn(v.(*model.Npc))
	})
}

// ForEachPlayer вызывает fn для каждого игрока; fn returns false для остановки.
func (w *World) ForEachPlayer(fn func(*model.Player) bool) {
	w.players.Range(func(_, v any) bool {
		return fn(v.(*model.Player))
	})
}
