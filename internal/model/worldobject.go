package model

import "sync"

// WorldObject — общая часть всех объектов мира (Player, Npc).
// Data хранит ссылку на конкретный объект для resolve через world registry.
type WorldObject struct {
	objectID uint32
	name     string
	Data     any // *Player или *Npc

	mu sync.RWMutex
}

// NewWorldObject создаёт объект мира.
func NewWorldObject(objectID uint32, name string) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name возвращает имя объекта.
func (w *WorldObject) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// SetName устанавливает имя объекта.
func (w *WorldObject) SetName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
}
