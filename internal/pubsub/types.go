package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchFormed    EventType = "match-formed"
	EventGameStarted    EventType = "game-started"
	EventGameEnded      EventType = "game-ended"
	EventPenaltyApplied EventType = "penalty-applied"
)
