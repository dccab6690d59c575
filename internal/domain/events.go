package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventProjectLoaded    EventType = "ProjectLoaded"
	EventProjectSaved     EventType = "ProjectSaved"
	EventProjectReset     EventType = "ProjectReset"
	EventAtlasAdded       EventType = "AtlasAdded"
	EventAtlasRemoved     EventType = "AtlasRemoved"
	EventSelectionChanged EventType = "SelectionChanged"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchCleared    EventType = "SearchCleared"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ProjectLoadedEvent is emitted after a project descriptor is read
type ProjectLoadedEvent struct {
	Path    string
	Atlases int
}

func (e ProjectLoadedEvent) Type() EventType { return EventProjectLoaded }

// ProjectSavedEvent is emitted after a project descriptor is written
type ProjectSavedEvent struct {
	Path string
}

func (e ProjectSavedEvent) Type() EventType { return EventProjectSaved }

// ProjectResetEvent is emitted when the user starts a new project
type ProjectResetEvent struct{}

func (e ProjectResetEvent) Type() EventType { return EventProjectReset }

// AtlasAddedEvent is emitted when an atlas is registered
type AtlasAddedEvent struct {
	Name string
	File string
}

func (e AtlasAddedEvent) Type() EventType { return EventAtlasAdded }

// AtlasRemovedEvent is emitted when an atlas is removed from the project
type AtlasRemovedEvent struct {
	Name string
}

func (e AtlasRemovedEvent) Type() EventType { return EventAtlasRemoved }

// SelectionChangedEvent is emitted after a selection operation settles
type SelectionChangedEvent struct {
	Labels []string // node labels in selection order
	Total  int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Project string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// SearchCompletedEvent is emitted after a search query is evaluated
type SearchCompletedEvent struct {
	Query      string
	MatchCount int
	FirstMatch int // index of the best match, -1 if none
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchClearedEvent is emitted when the search query is dropped
type SearchClearedEvent struct{}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }
