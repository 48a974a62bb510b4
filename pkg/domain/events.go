package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventEntryAdded  EventType = "entry_added"
	EventBuildDone   EventType = "build_done"
	EventQueryDone   EventType = "query_done"
	EventStoreAccess EventType = "store_access"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// EntryEvent is emitted for every entry appended to the automaton.
type EntryEvent struct {
	EventBase
	Entry  Entry `json:"entry"`
	States int   `json:"states"` // states added for this entry
}

// BuildEvent is emitted when a rule file has been compiled and saved.
type BuildEvent struct {
	EventBase
	Source   string        `json:"source"`
	Key      string        `json:"key"`
	Entries  int           `json:"entries"`
	Stats    Stats         `json:"stats"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// QueryEvent is emitted once per realization.
type QueryEvent struct {
	EventBase
	Query    string        `json:"query"`
	Output   string        `json:"output,omitempty"`
	Status   WalkStatus    `json:"status"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnEntryAdded func(context.Context, *EntryEvent)
	OnBuildDone  func(context.Context, *BuildEvent)
	OnQueryDone  func(context.Context, *QueryEvent)
}
