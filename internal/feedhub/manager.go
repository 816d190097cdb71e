// Package feedhub fans grievance snapshots out to live subscribers. Every
// mutation published on the Redis grievance channel reaches the hub once and
// is delivered to each registered client in publish order; a slow client is
// dropped rather than allowed to stall the feed.
package feedhub

import (
	"log"

	"gramalert/backend/internal/models"
)

// ManagerService owns the subscriber set. All subscription and broadcast
// state is confined to the Run goroutine; other goroutines talk to it only
// through the channels.
type ManagerService struct {
	Clients map[string]Client

	// Channels
	BroadcastCh  chan models.GrievanceSnapshot
	RegisterCh   chan Client
	UnregisterCh chan Client
}

// NewManagerService creates an empty hub.
func NewManagerService() *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		BroadcastCh:  make(chan models.GrievanceSnapshot, 64),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
	}
}

// Run is the hub's main dispatch loop. Fan-out is non-blocking per client:
// a full send buffer unregisters that client instead of blocking everyone.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client.GetID()] = client
			log.Printf("Feed subscriber %s registered (%d live).", client.GetID(), len(m.Clients))

		case client := <-m.UnregisterCh:
			if _, ok := m.Clients[client.GetID()]; ok {
				delete(m.Clients, client.GetID())
				client.Close()
				log.Printf("Feed subscriber %s unregistered (%d live).", client.GetID(), len(m.Clients))
			}

		case snapshot := <-m.BroadcastCh:
			for id, client := range m.Clients {
				select {
				case client.GetSendChannel() <- snapshot:
				default:
					// Subscriber cannot keep up; drop it so the rest of
					// the feed stays live.
					delete(m.Clients, id)
					client.Close()
					log.Printf("Feed subscriber %s dropped: send buffer full.", id)
				}
			}
		}
	}
}
