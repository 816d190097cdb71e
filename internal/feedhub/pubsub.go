package feedhub

import (
	"encoding/json"
	"log"

	"gramalert/backend/internal/models"
	"gramalert/backend/internal/storage"
)

// StartPubSubListener starts a goroutine bridging the Redis grievance
// channel into the hub's broadcast loop, so snapshots published by any
// writer (this process or another) reach this hub's subscribers.
func (m *ManagerService) StartPubSubListener(s *storage.Service) {
	go func() {
		pubsub := s.SubscribeGrievances()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var snapshot models.GrievanceSnapshot
			if err := json.Unmarshal([]byte(msg.Payload), &snapshot); err != nil {
				log.Printf("Error unmarshalling feed message: %v", err)
				continue
			}

			m.BroadcastCh <- snapshot
		}
	}()
}
