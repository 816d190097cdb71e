package feedhub

import "gramalert/backend/internal/models"

// Client is the interface for any live subscriber to the grievance feed
// (e.g., a WebSocket watcher, the Telegram alert bot). It abstracts the
// underlying delivery channel, allowing the hub to manage different
// subscriber types uniformly.
type Client interface {
	// GetID returns the unique identifier of this subscription.
	GetID() string

	// GetSendChannel returns the channel to which the ManagerService (hub)
	// delivers grievance snapshots intended for this subscriber. It is a
	// send-only channel.
	GetSendChannel() chan<- models.GrievanceSnapshot

	// Run starts the client's pumps, which push outgoing snapshots to the
	// underlying connection.
	Run()

	// Close gracefully shuts down the client's connection and channels,
	// stopping further delivery.
	Close()
}
