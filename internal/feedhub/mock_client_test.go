package feedhub_test

import (
	"sync"

	"gramalert/backend/internal/models"
)

// mockClient is a minimal feedhub.Client whose delivery channel the test
// can drain and whose buffer size it controls.
type mockClient struct {
	id          string
	RecvChannel chan models.GrievanceSnapshot

	mu     sync.Mutex
	closed bool
}

func newMockClient(id string, buffer int) *mockClient {
	return &mockClient{
		id:          id,
		RecvChannel: make(chan models.GrievanceSnapshot, buffer),
	}
}

func (c *mockClient) GetID() string { return c.id }

func (c *mockClient) GetSendChannel() chan<- models.GrievanceSnapshot {
	return c.RecvChannel
}

func (c *mockClient) Run() {}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *mockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
