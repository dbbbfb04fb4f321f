package providers

import (
	"context"

	"github.com/timetocare/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to queue
// change events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.QueueEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.QueueEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelQueueUpdates is the channel carrying every queue change.
const EventChannelQueueUpdates = "queue:updates"

// EventChannelHospitalPrefix is the prefix for hospital-specific channels.
const EventChannelHospitalPrefix = "queue:"

// GetHospitalChannel returns the channel name for a specific hospital.
func GetHospitalChannel(hospitalID string) string {
	return EventChannelHospitalPrefix + hospitalID
}
