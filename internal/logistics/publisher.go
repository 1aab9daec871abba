package logistics

import (
	"github.com/nats-io/nats.go"
)

// SubjectRequestCreated carries a CreatedEvent for every stored request.
const SubjectRequestCreated = "logistics.request.created"

// Publisher is the subset of *nats.Conn used for events.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, []byte) error { return nil }

// ProvidePublisher returns nc, or a publisher that drops events when NATS
// is not configured.
func ProvidePublisher(nc *nats.Conn) Publisher {
	if nc == nil {
		return noopPublisher{}
	}
	return nc
}
