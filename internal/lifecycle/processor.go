package lifecycle

import (
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/metrics"
	"github.com/Koshercash/Sports-Queue-sub000/internal/pubsub"
	"github.com/charmbracelet/log"
)

// New creates a new Processor.
func New(store Store, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:   store,
		pubsub:  pubsub,
		metrics: metrics,
	}
}

// Advance walks all non-ended games and moves each through its states as far
// as the given time allows. Time is an input, never the wall clock, so the
// processor stays deterministic.
func (p *Processor) Advance(now time.Time, dryRun bool) {
	log.Info("Starting game lifecycle pass...", "now", now)
	gameList, err := p.store.GamesForLifecycle()
	if err != nil {
		log.Error("Failed to get games for lifecycle pass", "error", err)
		return
	}

	if len(gameList) == 0 {
		log.Info("No games to advance.")
		return
	}

	log.Info("Found games to advance", "count", len(gameList))
	for _, game := range gameList {
		p.advanceGame(game, now, dryRun)
	}
	log.Info("Game lifecycle pass finished.")
}

func (p *Processor) advanceGame(game *games.Game, now time.Time, dryRun bool) {
	for {
		currentState := game.Status
		log.Debug("Evaluating game state", "gameID", game.ID, "status", currentState)

		switch currentState {
		case games.StatusScheduled:
			if now.Before(game.Start) {
				return
			}
			log.Info("Game start time reached. Marking in progress.", "gameID", game.ID, "start", game.Start)
			p.updateStatus(game, games.StatusInProgress, dryRun)
			if !dryRun {
				if err := p.pubsub.SendMessage(pubsub.EventGameStarted, game); err != nil {
					log.Error("Failed to publish game-started event", "error", err, "gameID", game.ID)
				}
			}

		case games.StatusInProgress:
			if now.Before(game.End) {
				return
			}
			log.Info("Game end time reached. Marking ended.", "gameID", game.ID, "end", game.End)
			p.updateStatus(game, games.StatusEnded, dryRun)
			p.metrics.IncGamesEnded()
			if !dryRun {
				if err := p.pubsub.SendMessage(pubsub.EventGameEnded, game); err != nil {
					log.Error("Failed to publish game-ended event", "error", err, "gameID", game.ID)
				}
			}

		case games.StatusEnded:
			log.Debug("Game already ended. No further processing needed.", "gameID", game.ID)
			return

		default:
			log.Warn("Unknown game status", "status", currentState, "gameID", game.ID)
			return
		}

		// If the status did not change, we're done with this game for now.
		if game.Status == currentState {
			return
		}
	}
}

func (p *Processor) updateStatus(game *games.Game, status games.GameStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update game status", "gameID", game.ID, "status", status)
		game.Status = status
		return
	}
	if err := p.store.UpdateStatus(game.ID, status); err != nil {
		log.Error("Failed to update game status", "error", err, "gameID", game.ID)
		return
	}
	game.Status = status
}
