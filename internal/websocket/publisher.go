package websocket

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all clients connected for the specified user
	Publish(userID int64, event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// NopPublisher discards events, for tests and wiring without a hub
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(int64, Event) {}
