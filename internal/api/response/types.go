package response

import (
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/services/playback"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Username string `json:"username"`
}

// ExistsResponse reports whether a username is registered
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// Screen represents the navigator state in API responses
type Screen struct {
	Current       string `json:"current"`
	OverlayActive bool   `json:"overlay_active"`
}

// MediaItem represents one library entry
type MediaItem struct {
	Label             string  `json:"label"`
	Name              string  `json:"name"`
	DurationSeconds   float64 `json:"duration_seconds"`
	DurationFormatted string  `json:"duration_formatted"`
}

// MediaItemFromModel converts a model.MediaItem to a response MediaItem
func MediaItemFromModel(m model.MediaItem) MediaItem {
	d := m.Duration()
	return MediaItem{
		Label:             m.Label,
		Name:              m.Name,
		DurationSeconds:   d,
		DurationFormatted: playback.FormatTimestamp(d),
	}
}

// Library represents the video catalog
type Library struct {
	Ready bool        `json:"ready"`
	Items []MediaItem `json:"items"`
}

// LibraryFromItems builds a Library response
func LibraryFromItems(ready bool, items []model.MediaItem) Library {
	out := Library{Ready: ready, Items: make([]MediaItem, len(items))}
	for i, item := range items {
		out.Items[i] = MediaItemFromModel(item)
	}
	return out
}

// LoadResponse carries the request id of a started bundle load
type LoadResponse struct {
	RequestID string `json:"request_id"`
}

// Playback represents the playback session state
type Playback struct {
	State             string     `json:"state"`
	Item              *MediaItem `json:"item,omitempty"`
	Paused            bool       `json:"paused"`
	Position          float64    `json:"position"`
	PositionFormatted string     `json:"position_formatted"`
	Duration          float64    `json:"duration"`
	DurationFormatted string     `json:"duration_formatted"`
}

// PlaybackFromSession builds a Playback response from the live session
func PlaybackFromSession(s *playback.Session) Playback {
	out := Playback{
		State:             string(s.State()),
		Paused:            s.IsPaused(),
		Position:          s.Position(),
		PositionFormatted: playback.FormatTimestamp(s.Position()),
		Duration:          s.Duration(),
		DurationFormatted: playback.FormatTimestamp(s.Duration()),
	}
	if item := s.Item(); item != nil {
		view := MediaItemFromModel(*item)
		out.Item = &view
	}
	return out
}

// Vec3 is a scene-space vector in API responses
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec3FromModel converts model.Vec3
func Vec3FromModel(v model.Vec3) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Tour represents the showroom tour state
type Tour struct {
	SceneBuilt    bool   `json:"scene_built"`
	State         string `json:"state,omitempty"`
	DisplayText   string `json:"display_text,omitempty"`
	SpriteVisible bool   `json:"sprite_visible"`
	NextVisible   bool   `json:"next_visible"`
	BackVisible   bool   `json:"back_visible"`
	Transitioning bool   `json:"transitioning"`
	Player        *Vec3  `json:"player_position,omitempty"`
}
