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

func NewServer(
	queueMgr *queue.Manager,
	playerStore players.PlayerStore,
	fieldIndex fields.FieldIndex,
	gameStore games.GameStore,
	ledger penalty.Ledger,
	processor *lifecycle.Processor,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	pubsubClient pubsub.PubSubClient,
) *Server {
	server := &Server{
		Queue:          queueMgr,
		Players:        playerStore,
		Fields:         fieldIndex,
		Games:          gameStore,
		Penalties:      ledger,
		Lifecycle:      processor,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsubClient,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /queue/join", Chain(s.JoinQueueHandler(), paramsMiddleware))
	s.Router.Handle("POST /queue/leave", Chain(s.LeaveQueueHandler(), paramsMiddleware))
	s.Router.Handle("POST /penalty/leave", Chain(s.PenaltyLeaveHandler(), paramsMiddleware))
	s.Router.Handle("GET /penalty/status", Chain(s.PenaltyStatusHandler(), paramsMiddleware))
	s.Router.Handle("GET /games", Chain(s.ListGamesHandler(), paramsMiddleware))
	s.Router.Handle("GET /fields", Chain(s.ListFieldsHandler(), paramsMiddleware))
	s.Router.Handle("GET /members", Chain(s.ListMembersHandler(), paramsMiddleware))
	s.Router.Handle("POST /lifecycle/advance", Chain(s.AdvanceLifecycleHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
