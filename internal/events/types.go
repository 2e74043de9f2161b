// Package events provides the in-process event bus used for cross-module
// notifications about profile and film lifecycle changes.
package events

import (
	"time"
)

// EventType represents the type of event
type EventType string

// System-wide event types
const (
	// Profile events
	EventProfileCreated EventType = "profile.created"
	EventProfileDeleted EventType = "profile.deleted"

	// Film events
	EventFilmAdded      EventType = "film.added"
	EventFilmDeleted    EventType = "film.deleted"
	EventFilmArchived   EventType = "film.archived"
	EventFilmUnarchived EventType = "film.unarchived"

	// Vote events
	EventVoteCast EventType = "vote.cast"

	// System events
	EventSystemStarted EventType = "system.started"
	EventSystemStopped EventType = "system.stopped"
)

// EventPriority represents the priority level of an event
type EventPriority int

const (
	PriorityLow      EventPriority = 1
	PriorityNormal   EventPriority = 5
	PriorityHigh     EventPriority = 10
	PriorityCritical EventPriority = 20
)

// Event represents a system event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"` // system, module:id
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
	Priority  EventPriority          `json:"priority"`
	Tags      []string               `json:"tags"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventHandler represents a function that handles events
type EventHandler func(event Event) error

// EventFilter represents filters for event subscriptions
type EventFilter struct {
	Types   []EventType `json:"types,omitempty"`
	Sources []string    `json:"sources,omitempty"`
}

// Subscription represents an event subscription
type Subscription struct {
	ID           string       `json:"id"`
	Filter       EventFilter  `json:"filter"`
	Handler      EventHandler `json:"-"`
	Created      time.Time    `json:"created"`
	TriggerCount int64        `json:"trigger_count"`
}

// EventBusConfig represents configuration for the event bus
type EventBusConfig struct {
	BufferSize int `json:"buffer_size"`
}

// DefaultEventBusConfig returns default configuration
func DefaultEventBusConfig() EventBusConfig {
	return EventBusConfig{
		BufferSize: 1000,
	}
}

// NewFilmEvent creates a film lifecycle event
func NewFilmEvent(eventType EventType, filmID uint32, title string, message string) Event {
	return Event{
		Type:     eventType,
		Source:   "module:film",
		Title:    title,
		Message:  message,
		Priority: PriorityNormal,
		Tags:     []string{"film"},
		Data: map[string]interface{}{
			"film_id": filmID,
		},
		Timestamp: time.Now(),
	}
}

// NewProfileEvent creates a profile lifecycle event
func NewProfileEvent(eventType EventType, profileID uint32, name string, message string) Event {
	return Event{
		Type:     eventType,
		Source:   "module:profile",
		Title:    "Profile Lifecycle",
		Message:  message,
		Priority: PriorityNormal,
		Tags:     []string{"profile"},
		Data: map[string]interface{}{
			"profile_id": profileID,
			"name":       name,
		},
		Timestamp: time.Now(),
	}
}

// NewVoteEvent creates a vote.cast event
func NewVoteEvent(filmID, profileID uint32, vote int, outcome string) Event {
	return Event{
		Type:     EventVoteCast,
		Source:   "module:film",
		Title:    "Vote Cast",
		Message:  "Vote " + outcome,
		Priority: PriorityLow,
		Tags:     []string{"vote", outcome},
		Data: map[string]interface{}{
			"film_id":    filmID,
			"profile_id": profileID,
			"vote":       vote,
			"outcome":    outcome,
		},
		Timestamp: time.Now(),
	}
}
