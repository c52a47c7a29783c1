package http

import (
	"net/http"

	"github.com/Koshercash/Sports-Queue-sub000/internal/config"
	"github.com/Koshercash/Sports-Queue-sub000/internal/fields"
	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/lifecycle"
	"github.com/Koshercash/Sports-Queue-sub000/internal/metrics"
	"github.com/Koshercash/Sports-Queue-sub000/internal/penalty"
	"github.com/Koshercash/Sports-Queue-sub000/internal/players"
	"github.com/Koshercash/Sports-Queue-sub000/internal/pubsub"
	"github.com/Koshercash/Sports-Queue-sub000/internal/queue"
)

type Server struct {
	Queue          *queue.Manager
	Players        players.PlayerStore
	Fields         fields.FieldIndex
	Games          games.GameStore
	Penalties      penalty.Ledger
	Lifecycle      *lifecycle.Processor
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
