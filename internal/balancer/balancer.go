// Package balancer partitions a candidate pool into two skill-balanced teams.
package balancer

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	"github.com/Koshercash/Sports-Queue-sub000/internal/players"
)

// ErrInsufficientPlayers is returned when the candidate pool is smaller than
// the roster the mode requires.
var ErrInsufficientPlayers = errors.New("not enough players to form teams")

// Candidate is a player considered for a match, carrying its queue position
// for FIFO tie-breaking.
type Candidate struct {
	Player     players.PlayerInfo
	EnqueuedAt time.Time
	// QueuePos is the candidate's position in enqueue order. Fillers get
	// positions after all real entries.
	QueuePos int
}

// Teams is one partition of the candidate pool.
type Teams struct {
	A []players.PlayerInfo
	B []players.PlayerInfo
}

// Balance partitions the pool into two equal teams. Candidates are sorted by
// skill distance to the anchor (ties broken by queue position, first-in
// first), then dealt to alternating teams. The interleaving spreads
// closely-matched players across both sides instead of stacking one team with
// everyone nearest the anchor's rating.
//
// The pool must contain exactly mode.RosterSize() candidates; the anchor is
// expected to be one of them. Balance never mutates its inputs.
func Balance(anchor players.PlayerInfo, pool []Candidate, mode games.Mode) (Teams, error) {
	size := mode.RosterSize()
	if len(pool) < size {
		return Teams{}, ErrInsufficientPlayers
	}
	pool = pool[:size]

	anchorSkill := anchor.SkillFor(mode)
	sorted := make([]Candidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		di := math.Abs(sorted[i].Player.SkillFor(mode) - anchorSkill)
		dj := math.Abs(sorted[j].Player.SkillFor(mode) - anchorSkill)
		if di != dj {
			return di < dj
		}
		return sorted[i].QueuePos < sorted[j].QueuePos
	})

	teams := Teams{
		A: make([]players.PlayerInfo, 0, size/2),
		B: make([]players.PlayerInfo, 0, size/2),
	}
	for i, c := range sorted {
		if i%2 == 0 {
			teams.A = append(teams.A, c.Player)
		} else {
			teams.B = append(teams.B, c.Player)
		}
	}
	return teams, nil
}
