package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		QueueJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sportsqueue_queue_joins_total",
			Help: "The total number of queue join requests accepted.",
		}),
		QueueLeaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sportsqueue_queue_leaves_total",
			Help: "The total number of queue leave requests honored.",
		}),
		MatchesFormed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sportsqueue_matches_formed_total",
			Help: "The total number of matches successfully formed and committed.",
		}),
		MatchAttemptsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sportsqueue_match_attempts_failed_total",
			Help: "The total number of match attempts that did not produce a game, by reason.",
		}, []string{"reason"}),
		PenaltiesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sportsqueue_penalties_applied_total",
			Help: "The total number of leaver penalties recorded.",
		}),
		GamesEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sportsqueue_games_ended_total",
			Help: "The total number of games advanced to the ended state.",
		}),
		SchedulingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sportsqueue_scheduling_duration_seconds",
			Help:    "The duration of individual field/slot searches.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sportsqueue_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.QueueJoins,
		s.QueueLeaves,
		s.MatchesFormed,
		s.MatchAttemptsFailed,
		s.PenaltiesApplied,
		s.GamesEnded,
		s.SchedulingDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncQueueJoins() {
	s.QueueJoins.Inc()
}

func (s *Service) IncQueueLeaves() {
	s.QueueLeaves.Inc()
}

func (s *Service) IncMatchesFormed() {
	s.MatchesFormed.Inc()
}

func (s *Service) IncMatchAttemptFailed(reason string) {
	s.MatchAttemptsFailed.WithLabelValues(reason).Inc()
}

func (s *Service) IncPenaltiesApplied() {
	s.PenaltiesApplied.Inc()
}

func (s *Service) IncGamesEnded() {
	s.GamesEnded.Inc()
}

func (s *Service) ObserveSchedulingDuration(duration float64) {
	s.SchedulingDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
