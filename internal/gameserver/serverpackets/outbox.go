package serverpackets

// Sender — канал уведомлений игроку (fire-and-forget).
type Sender interface {
	SendPacket(playerObjectID uint32, pkt Packet)
}

// Outbox собирает пакеты одной операции под inventory lock;
// Flush вызывается после unlock.
type Outbox struct {
	playerObjectID uint32
	packets        []Packet
}

// NewOutbox creates an empty outbox for a player.
func NewOutbox(playerObjectID uint32) *Outbox {
	return &Outbox{playerObjectID: playerObjectID}
}

// Add appends a packet.
func (o *Outbox) Add(pkt Packet) {
	o.packets = append(o.packets, pkt)
}

// Len returns number of queued packets.
func (o *Outbox) Len() int {
	return len(o.packets)
}

// Packets returns queued packets in order.
func (o *Outbox) Packets() []Packet {
	return o.packets
}

// Flush отправляет все пакеты через sender и очищает outbox.
func (o *Outbox) Flush(sender Sender) {
	if sender == nil {
		o.packets = nil
		return
	}
	for _, pkt := range o.packets {
		sender.SendPacket(o.playerObjectID, pkt)
	}
	o.packets = nil
}
