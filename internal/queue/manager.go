package queue

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/balancer"
	"github.com/Koshercash/Sports-Queue-sub000/internal/fields"
	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/metrics"
	"github.com/Koshercash/Sports-Queue-sub000/internal/players"
	"github.com/Koshercash/Sports-Queue-sub000/internal/pubsub"
	"github.com/Koshercash/Sports-Queue-sub000/internal/scheduler"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// SlotFinder is the slice of the scheduler the manager needs: the search
// itself, plus the conflict check the commit re-runs under the field lock.
type SlotFinder interface {
	FindSlot(matched []players.PlayerInfo, mode games.Mode, duration time.Duration, now time.Time) (*scheduler.Booking, error)
	SlotClear(fieldID string, start, end time.Time) (bool, error)
}

// errSlotTaken marks a commit that lost its slot to a concurrent match on the
// same field. The entries stay queued; the caller reports no slot found.
var errSlotTaken = errors.New("slot taken by a concurrent match")

// Manager orchestrates matchmaking: it drains queued players for a mode,
// balances teams, finds a field slot and commits the resulting game.
type Manager struct {
	store     QueueStore
	players   players.PlayerStore
	index     fields.FieldIndex
	games     games.GameStore
	scheduler SlotFinder
	metrics   metrics.Metrics
	pubsub    pubsub.PubSubClient

	// GameDuration is the desired playing time per match.
	gameDuration time.Duration

	// One mutex per mode serializes the drain -> balance -> schedule ->
	// commit sequence, so two concurrent joins can never consume the same
	// entry twice.
	modeLocks map[games.Mode]*sync.Mutex

	// Mode locks are not enough for fields: a BOTH field is visible to both
	// mode queues, so commits additionally serialize per field and re-check
	// the calendar before booking.
	fieldMu    sync.Mutex
	fieldLocks map[string]*sync.Mutex
}

// NewManager creates a queue Manager.
func NewManager(store QueueStore, playerStore players.PlayerStore, index fields.FieldIndex, gameStore games.GameStore, slotFinder SlotFinder, metricsSvc metrics.Metrics, pubsubClient pubsub.PubSubClient, gameDuration time.Duration) *Manager {
	if gameDuration <= 0 {
		gameDuration = time.Hour
	}
	return &Manager{
		store:        store,
		players:      playerStore,
		index:        index,
		games:        gameStore,
		scheduler:    slotFinder,
		metrics:      metricsSvc,
		pubsub:       pubsubClient,
		gameDuration: gameDuration,
		modeLocks: map[games.Mode]*sync.Mutex{
			games.ModeSmall: {},
			games.ModeLarge: {},
		},
		fieldLocks: make(map[string]*sync.Mutex),
	}
}

// Join enqueues a player and attempts to form a match with them as anchor.
// On success the match is committed and the consumed entries are gone; on a
// recoverable failure the player stays queued and the result carries the
// reason.
func (m *Manager) Join(playerID string, mode games.Mode, now time.Time) (*JoinResult, error) {
	lock := m.modeLock(mode)
	lock.Lock()
	defer lock.Unlock()

	anchor, err := m.players.GetPlayer(playerID)
	if err != nil {
		return nil, fmt.Errorf("player lookup failed: %w", err)
	}

	if err := m.store.Enqueue(playerID, mode, now); err != nil {
		return nil, err
	}
	m.metrics.IncQueueJoins()
	log.Info("Player joined queue", "playerID", playerID, "mode", mode)

	result, err := m.attemptMatch(*anchor, mode, now)
	if err != nil {
		// The attempt failed hard (store or dependency error). The entry
		// stays; the join itself succeeded.
		return nil, err
	}
	return result, nil
}

// Leave removes a player's pending entry. Leaving when not queued is a
// reported no-op.
func (m *Manager) Leave(playerID string, mode games.Mode) error {
	lock := m.modeLock(mode)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Remove(playerID, mode); err != nil {
		return err
	}
	m.metrics.IncQueueLeaves()
	log.Info("Player left queue", "playerID", playerID, "mode", mode)
	return nil
}

// attemptMatch runs one matchmaking pass. Callers must hold the mode lock.
func (m *Manager) attemptMatch(anchor players.PlayerInfo, mode games.Mode, now time.Time) (*JoinResult, error) {
	roster := mode.RosterSize()

	entries, err := m.store.Entries(mode)
	if err != nil {
		return nil, fmt.Errorf("queue drain failed: %w", err)
	}
	if len(entries) > roster {
		// FIFO fairness: only the oldest entries are considered this pass.
		entries = entries[:roster]
	}

	pool, matchedIDs, err := m.buildPool(entries, anchor, mode)
	if err != nil {
		return nil, err
	}
	fillers := len(pool) - len(entries)

	teams, err := balancer.Balance(anchor, pool, mode)
	if err != nil {
		if errors.Is(err, balancer.ErrInsufficientPlayers) {
			log.Info("Not enough players for a match", "mode", mode, "queued", len(entries), "fillers", fillers)
			m.metrics.IncMatchAttemptFailed("insufficient_players")
			return &JoinResult{Reason: ReasonInsufficientPlayers}, nil
		}
		return nil, err
	}

	matched := append(append([]players.PlayerInfo{}, teams.A...), teams.B...)

	schedStart := time.Now()
	booking, err := m.scheduler.FindSlot(matched, mode, m.gameDuration, now)
	m.metrics.ObserveSchedulingDuration(time.Since(schedStart).Seconds())
	if err != nil {
		if errors.Is(err, scheduler.ErrNoSlotFound) {
			log.Info("No field slot found", "mode", mode)
			m.metrics.IncMatchAttemptFailed("no_slot_found")
			return &JoinResult{Reason: ReasonNoSlotFound}, nil
		}
		return nil, err
	}

	match, err := m.commit(teams, mode, booking, matchedIDs, now)
	if err != nil {
		if errors.Is(err, errSlotTaken) {
			log.Info("Slot lost to a concurrent match", "mode", mode, "fieldID", booking.Field.ID, "start", booking.Start)
			m.metrics.IncMatchAttemptFailed("slot_conflict")
			return &JoinResult{Reason: ReasonNoSlotFound}, nil
		}
		return nil, err
	}
	match.Fillers = fillers
	m.metrics.IncMatchesFormed()
	if err := m.pubsub.SendMessage(pubsub.EventMatchFormed, match); err != nil {
		log.Error("Failed to publish match-formed event", "error", err, "gameID", match.GameID)
	}
	return &JoinResult{Match: match, Reason: ReasonMatched}, nil
}

// buildPool resolves queue entries to player records and tops a short pool up
// with filler candidates matching the anchor's category. Returns the pool and
// the IDs of the real queued players in it (the entries a commit consumes).
func (m *Manager) buildPool(entries []Entry, anchor players.PlayerInfo, mode games.Mode) ([]balancer.Candidate, []string, error) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.PlayerID
	}

	records, err := m.players.GetPlayers(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("player lookup failed: %w", err)
	}
	byID := make(map[string]players.PlayerInfo, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	var pool []balancer.Candidate
	for i, e := range entries {
		record, ok := byID[e.PlayerID]
		if !ok {
			return nil, nil, fmt.Errorf("queued player has no record: %s", e.PlayerID)
		}
		pool = append(pool, balancer.Candidate{Player: record, EnqueuedAt: e.EnqueuedAt, QueuePos: i})
	}

	need := mode.RosterSize() - len(pool)
	if need > 0 {
		fillers, err := m.players.FillerCandidates(anchor.Category, ids, need)
		if err != nil {
			return nil, nil, fmt.Errorf("filler lookup failed: %w", err)
		}
		for i, f := range fillers {
			pool = append(pool, balancer.Candidate{Player: f, QueuePos: len(entries) + i})
		}
	}
	return pool, ids, nil
}

// commit makes the match visible: persist the game, consume the slot, remove
// the matched entries. The whole section holds the field lock and re-checks
// the calendar first, because the booking was found under the mode lock only
// and a concurrent match on the other mode may have booked the same field
// since. The game insert is the commit point; later failures compensate by
// deleting the game again so no partial match survives.
func (m *Manager) commit(teams balancer.Teams, mode games.Mode, booking *scheduler.Booking, matchedIDs []string, now time.Time) (*MatchResult, error) {
	lock := m.fieldLock(booking.Field.ID)
	lock.Lock()
	defer lock.Unlock()

	ok, err := m.scheduler.SlotClear(booking.Field.ID, booking.Start, booking.End)
	if err != nil {
		return nil, fmt.Errorf("slot re-validation failed: %w", err)
	}
	if !ok {
		return nil, errSlotTaken
	}

	game := &games.Game{
		ID:        uuid.New().String(),
		Mode:      mode,
		FieldID:   booking.Field.ID,
		Start:     booking.Start,
		End:       booking.End,
		Status:    games.StatusScheduled,
		CreatedAt: now,
	}
	for _, p := range teams.A {
		game.Players = append(game.Players, games.GamePlayer{PlayerID: p.ID, Name: p.Name, Team: games.TeamA})
	}
	for _, p := range teams.B {
		game.Players = append(game.Players, games.GamePlayer{PlayerID: p.ID, Name: p.Name, Team: games.TeamB})
	}

	if err := m.games.CreateGame(game); err != nil {
		return nil, fmt.Errorf("game persistence failed: %w", err)
	}

	if err := m.index.ConsumeSlot(booking.SlotRef); err != nil {
		m.rollback(game.ID)
		if errors.Is(err, fields.ErrSlotUnavailable) {
			return nil, errSlotTaken
		}
		return nil, fmt.Errorf("slot consumption failed: %w", err)
	}

	if err := m.store.RemoveAll(mode, matchedIDs); err != nil {
		m.rollback(game.ID)
		return nil, fmt.Errorf("queue entry removal failed: %w", err)
	}

	log.Info("Committed match", "gameID", game.ID, "mode", mode, "fieldID", booking.Field.ID, "start", booking.Start)
	return &MatchResult{
		GameID: game.ID,
		Mode:   mode,
		Field:  booking.Field,
		Start:  booking.Start,
		End:    booking.End,
		TeamA:  TeamSummary{Team: games.TeamA, Players: teams.A},
		TeamB:  TeamSummary{Team: games.TeamB, Players: teams.B},
	}, nil
}

func (m *Manager) rollback(gameID string) {
	if err := m.games.DeleteGame(gameID); err != nil {
		log.Error("Failed to roll back game after commit failure", "error", err, "gameID", gameID)
	}
}

func (m *Manager) fieldLock(fieldID string) *sync.Mutex {
	m.fieldMu.Lock()
	defer m.fieldMu.Unlock()
	lock, ok := m.fieldLocks[fieldID]
	if !ok {
		lock = &sync.Mutex{}
		m.fieldLocks[fieldID] = lock
	}
	return lock
}

func (m *Manager) modeLock(mode games.Mode) *sync.Mutex {
	if lock, ok := m.modeLocks[mode]; ok {
		return lock
	}
	// Unknown modes share the small-mode lock rather than panicking.
	return m.modeLocks[games.ModeSmall]
}
