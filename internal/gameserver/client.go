package gameserver

import (
	"log/slog"
	"sync"

	"github.com/udisondev/aiongo/internal/gameserver/serverpackets"
	"github.com/udisondev/aiongo/internal/metrics"
)

const defaultSendQueueSize = 256

// GameClient — сессия игрока со стороны core: буферизованный outbox
// уведомлений. Сетевой writer (вне core) читает из Packets().
type GameClient struct {
	playerObjectID uint32

	// Per-client write queue
	sendCh    chan serverpackets.Packet
	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewGameClient creates a session outbox for a player.
func NewGameClient(playerObjectID uint32, sendQueueSize int) *GameClient {
	if sendQueueSize <= 0 {
		sendQueueSize = defaultSendQueueSize
	}
	return &GameClient{
		playerObjectID: playerObjectID,
		sendCh:         make(chan serverpackets.Packet, sendQueueSize),
		closeCh:        make(chan struct{}),
	}
}

// PlayerObjectID returns owner player objectID.
func (c *GameClient) PlayerObjectID() uint32 {
	return c.playerObjectID
}

// Packets returns the outbox channel for the writer.
func (c *GameClient) Packets() <-chan serverpackets.Packet {
	return c.sendCh
}

// Done закрывается при Close.
func (c *GameClient) Done() <-chan struct{} {
	return c.closeCh
}

// Send queues a packet for async delivery.
// Non-blocking: при полной очереди пакет отбрасывается, returns false.
func (c *GameClient) Send(pkt serverpackets.Packet) bool {
	select {
	case <-c.closeCh:
		return false
	default:
	}

	select {
	case c.sendCh <- pkt:
		return true
	default:
		metrics.PacketsDropped.Inc()
		slog.Warn("send queue full, dropping packet",
			"playerObjectID", c.playerObjectID,
			"packet", pkt.Kind().String())
		return false
	}
}

// Close signals the writer to stop. Safe to call multiple times.
func (c *GameClient) Close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
	})
}
