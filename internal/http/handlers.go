package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/pubsub"
	"github.com/Koshercash/Sports-Queue-sub000/internal/queue"
	"github.com/charmbracelet/log"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) JoinQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		mode, err := games.ParseMode(r.URL.Query().Get("mode"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := s.Queue.Join(playerID, mode, time.Now())
		if err != nil {
			if errors.Is(err, queue.ErrAlreadyQueued) {
				http.Error(w, "Player is already queued for this mode", http.StatusConflict)
				return
			}
			log.Error("Failed to join queue", "error", err, "playerID", playerID, "mode", mode)
			http.Error(w, "Failed to join queue", http.StatusInternalServerError)
			return
		}
		respondJSON(w, result)
	}
}

func (s *Server) LeaveQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		mode, err := games.ParseMode(r.URL.Query().Get("mode"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Queue.Leave(playerID, mode); err != nil {
			if errors.Is(err, queue.ErrNotQueued) {
				http.Error(w, "Player is not queued for this mode", http.StatusNotFound)
				return
			}
			log.Error("Failed to leave queue", "error", err, "playerID", playerID, "mode", mode)
			http.Error(w, "Failed to leave queue", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Left queue.")
	}
}

func (s *Server) PenaltyLeaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		gameStart, err := time.Parse(time.RFC3339, r.URL.Query().Get("gameStart"))
		if err != nil {
			http.Error(w, "gameStart must be RFC3339", http.StatusBadRequest)
			return
		}

		outcome, err := s.Penalties.RecordLeave(playerID, gameStart, time.Now())
		if err != nil {
			log.Error("Failed to record leave", "error", err, "playerID", playerID)
			http.Error(w, "Failed to record leave", http.StatusInternalServerError)
			return
		}
		if outcome.Applied {
			s.Metrics.IncPenaltiesApplied()
			if err := s.pubsub.SendMessage(pubsub.EventPenaltyApplied, outcome); err != nil {
				log.Error("Failed to publish penalty-applied event", "error", err, "playerID", playerID)
			}
		}
		respondJSON(w, outcome)
	}
}

func (s *Server) PenaltyStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}

		status, err := s.Penalties.Status(playerID, time.Now())
		if err != nil {
			log.Error("Failed to get penalty status", "error", err, "playerID", playerID)
			http.Error(w, "Failed to get penalty status", http.StatusInternalServerError)
			return
		}
		respondJSON(w, status)
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameList, err := s.Games.ListGames()
		if err != nil {
			http.Error(w, "Failed to get games", http.StatusInternalServerError)
			log.Error("Failed to get games from store", "error", err)
			return
		}
		respondJSON(w, gameList)
	}
}

func (s *Server) ListFieldsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldList, err := s.Fields.GetAllFields()
		if err != nil {
			http.Error(w, "Failed to get fields", http.StatusInternalServerError)
			log.Error("Failed to get fields from store", "error", err)
			return
		}
		respondJSON(w, fieldList)
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerList, err := s.Players.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		respondJSON(w, playerList)
	}
}

func (s *Server) AdvanceLifecycleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting game lifecycle advance...")
		isDryRun := isDryRunFromContext(r)

		// `now` can be overridden for operational replays and testing.
		now := time.Now()
		if raw := r.URL.Query().Get("now"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "now must be RFC3339", http.StatusBadRequest)
				return
			}
			now = parsed
		}

		s.Lifecycle.Advance(now, isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Lifecycle advance completed.")
		log.Info("Game lifecycle advance finished.")
	}
}

// respondJSON is a helper to write a JSON response body.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}
