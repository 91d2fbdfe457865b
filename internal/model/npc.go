package model

// Npc — NPC в мире. Для торговли важен только templateID:
// по нему находится trade list template с вкладками goods lists.
type Npc struct {
	*WorldObject

	templateID int32
}

// NewNpc создаёт NPC.
func NewNpc(objectID uint32, templateID int32, name string) *Npc {
	n := &Npc{
		WorldObject: NewWorldObject(objectID, name),
		templateID:  templateID,
	}
	n.Data = n
	return n
}

// TemplateID возвращает NPC template ID.
func (n *Npc) TemplateID() int32 {
	return n.templateID
}
