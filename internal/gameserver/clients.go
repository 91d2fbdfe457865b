package gameserver

import (
	"log/slog"
	"sync"

	"github.com/udisondev/aiongo/internal/gameserver/serverpackets"
	"github.com/udisondev/aiongo/internal/metrics"
)

// ClientManager manages player sessions and routes notifications.
// Thread-safe for concurrent access.
type ClientManager struct {
	mu sync.RWMutex

	// objectIDIndex maps player objectID to GameClient for O(1) lookup
	objectIDIndex map[uint32]*GameClient

	sendQueueSize int
}

// NewClientManager creates a new client manager.
func NewClientManager(sendQueueSize int) *ClientManager {
	return &ClientManager{
		objectIDIndex: make(map[uint32]*GameClient, 1000), // pre-allocate for 1K players
		sendQueueSize: sendQueueSize,
	}
}

// RegisterPlayer создаёт outbox для игрока (enter world).
// Повторная регистрация закрывает прежнюю сессию.
func (cm *ClientManager) RegisterPlayer(playerObjectID uint32) *GameClient {
	client := NewGameClient(playerObjectID, cm.sendQueueSize)

	cm.mu.Lock()
	prev := cm.objectIDIndex[playerObjectID]
	cm.objectIDIndex[playerObjectID] = client
	cm.mu.Unlock()

	if prev != nil {
		prev.Close()
	} else {
		metrics.PlayersOnline.Inc()
	}
	return client
}

// UnregisterPlayer закрывает outbox игрока (logout).
func (cm *ClientManager) UnregisterPlayer(playerObjectID uint32) {
	cm.mu.Lock()
	client := cm.objectIDIndex[playerObjectID]
	delete(cm.objectIDIndex, playerObjectID)
	cm.mu.Unlock()

	if client != nil {
		client.Close()
		metrics.PlayersOnline.Dec()
	}
}

// GetClientByObjectID returns the client for given player objectID (nil if offline).
func (cm *ClientManager) GetClientByObjectID(objectID uint32) *GameClient {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.objectIDIndex[objectID]
}

// PlayerCount returns number of registered players.
func (cm *ClientManager) PlayerCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.objectIDIndex)
}

// SendPacket enqueues a notification for a player. Never blocks.
// Игрок offline: пакет отбрасывается.
func (cm *ClientManager) SendPacket(playerObjectID uint32, pkt serverpackets.Packet) {
	cm.mu.RLock()
	client := cm.objectIDIndex[playerObjectID]
	cm.mu.RUnlock()

	if client == nil {
		slog.Debug("packet for offline player dropped",
			"playerObjectID", playerObjectID,
			"packet", pkt.Kind().String())
		return
	}
	client.Send(pkt)
}
