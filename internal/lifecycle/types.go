package lifecycle

import (
	"github.com/Koshercash/Sports-Queue-sub000/internal/metrics"
	"github.com/Koshercash/Sports-Queue-sub000/internal/pubsub"
)

// Processor advances games through their lifecycle states.
type Processor struct {
	store   Store
	pubsub  pubsub.PubSubClient
	metrics metrics.Metrics
}
