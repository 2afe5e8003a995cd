package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case ExistsResult:
		o.printExistsResult(v)
	case Screen:
		o.printScreen(v)
	case Library:
		o.printLibrary(v)
	case LoadResult:
		o.printLoadResult(v)
	case Playback:
		o.printPlayback(v)
	case Tour:
		o.printTour(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	Username string `json:"username"`
}

// ExistsResult response type
type ExistsResult struct {
	Exists bool `json:"exists"`
}

// Screen response type
type Screen struct {
	Current       string `json:"current"`
	OverlayActive bool   `json:"overlay_active"`
}

// MediaItem response type
type MediaItem struct {
	Label             string  `json:"label"`
	Name              string  `json:"name"`
	DurationSeconds   float64 `json:"duration_seconds"`
	DurationFormatted string  `json:"duration_formatted"`
}

// Library response type
type Library struct {
	Ready bool        `json:"ready"`
	Items []MediaItem `json:"items"`
}

// LoadResult response type
type LoadResult struct {
	RequestID string `json:"request_id"`
}

// Playback response type
type Playback struct {
	State             string     `json:"state"`
	Item              *MediaItem `json:"item,omitempty"`
	Paused            bool       `json:"paused"`
	Position          float64    `json:"position"`
	PositionFormatted string     `json:"position_formatted"`
	Duration          float64    `json:"duration"`
	DurationFormatted string     `json:"duration_formatted"`
}

// Vec3 response type
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Tour response type
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

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Logged in as: %s\n", a.Username)
}

func (o *Output) printExistsResult(e ExistsResult) {
	if e.Exists {
		fmt.Println("User exists")
	} else {
		fmt.Println("User does not exist")
	}
}

func (o *Output) printScreen(s Screen) {
	fmt.Printf("Screen: %s\n", s.Current)
	overlayStr := "off"
	if s.OverlayActive {
		overlayStr = "on"
	}
	fmt.Printf("Overlay: %s\n", overlayStr)
}

func (o *Output) printLibrary(l Library) {
	if !l.Ready {
		fmt.Println("Library not ready")
		return
	}
	fmt.Printf("Library (%d videos):\n", len(l.Items))
	for i, item := range l.Items {
		fmt.Printf("  %d. %s - %s (%s)\n", i, item.Label, item.Name, item.DurationFormatted)
	}
}

func (o *Output) printLoadResult(r LoadResult) {
	fmt.Printf("Load started: %s\n", r.RequestID)
}

func (o *Output) printPlayback(p Playback) {
	fmt.Printf("State: %s\n", p.State)
	if p.Item != nil {
		fmt.Printf("Playing: %s (%s)\n", p.Item.Label, p.Item.Name)
	}
	fmt.Printf("Position: %s / %s\n", p.PositionFormatted, p.DurationFormatted)
	if p.Paused {
		fmt.Println("Paused")
	}
}

func (o *Output) printTour(t Tour) {
	if !t.SceneBuilt {
		fmt.Println("Showroom not built")
		return
	}
	fmt.Printf("Tour: %s\n", t.State)
	fmt.Printf("Panel: %s\n", t.DisplayText)
	if t.SpriteVisible {
		fmt.Println("Image: shown")
	}
	if t.Transitioning {
		fmt.Println("Teleporting...")
	}
	if t.Player != nil {
		fmt.Printf("Player at: (%.2f, %.2f, %.2f)\n", t.Player.X, t.Player.Y, t.Player.Z)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
