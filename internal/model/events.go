package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Authentication events
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventLoginAcknowledged EventType = "login_acknowledged"
	EventUserSaved         EventType = "user_saved"

	// Navigation events
	EventScreenChanged  EventType = "screen_changed"
	EventProject1Chosen EventType = "project1_chosen"
	EventProject2Chosen EventType = "project2_chosen"

	// Resource loading events
	EventBundleLoaded     EventType = "bundle_loaded"
	EventBundleLoadFailed EventType = "bundle_load_failed"

	// Library events
	EventLibraryReady EventType = "library_ready"
	EventVideoChosen  EventType = "video_chosen"

	// Playback events
	EventPlayerReady     EventType = "player_ready"
	EventDurationKnown   EventType = "duration_known"
	EventPauseChanged    EventType = "pause_changed"
	EventPositionChanged EventType = "position_changed"
	EventPositionReport  EventType = "position_report"
	EventPlaybackEnded   EventType = "playback_ended"
	EventPlaybackStopped EventType = "playback_stopped"

	// Tour events
	EventSceneBuilt        EventType = "scene_built"
	EventTourStateChanged  EventType = "tour_state_changed"
	EventTeleportStarted   EventType = "teleport_started"
	EventTeleportCompleted EventType = "teleport_completed"
)

// Event is the base structure for all events published on the bus
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   any // Type-specific data
}

// LoginSucceededPayload carries the authenticated username
type LoginSucceededPayload struct {
	Username string
}

// LoginFailedPayload carries the user-facing failure reason
type LoginFailedPayload struct {
	Reason string
}

// UserSavedPayload carries the record that was just persisted
type UserSavedPayload struct {
	User UserRecord
}

// ScreenChangedPayload contains data for screen transition events
type ScreenChangedPayload struct {
	Previous ScreenState
	Current  ScreenState
}

// BundleLoadedPayload is the success terminal event of an async bundle load
type BundleLoadedPayload struct {
	RequestID RequestID
	Bundle    *Bundle
}

// BundleLoadFailedPayload is the failure terminal event of an async bundle load
type BundleLoadFailedPayload struct {
	RequestID RequestID
	Name      string
	Reason    string
}

// LibraryReadyPayload announces the built catalog
type LibraryReadyPayload struct {
	Count int
}

// VideoChosenPayload contains the selected catalog entry
type VideoChosenPayload struct {
	Index int
	Item  MediaItem
}

// DurationKnownPayload carries the formatted total playback time
type DurationKnownPayload struct {
	Seconds   float64
	Formatted string
}

// PauseChangedPayload contains data for pause toggle events
type PauseChangedPayload struct {
	IsPaused bool
}

// PositionPayload reports a playback position, either as a seek result
// (position_changed) or as the per-tick broadcast (position_report)
type PositionPayload struct {
	Seconds   float64
	Formatted string
}

// TourStateChangedPayload contains data for tour progression events
type TourStateChangedPayload struct {
	Previous TourState
	Current  TourState
}

// TeleportPayload describes a teleport transition
type TeleportPayload struct {
	Reverse bool
	Player  Vec3
	UI      Vec3
}
