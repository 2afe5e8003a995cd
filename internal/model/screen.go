package model

// ScreenState identifies the top-level application screens.
// Exactly one screen is active at a time.
type ScreenState string

const (
	ScreenHome          ScreenState = "home"
	ScreenProjectSelect ScreenState = "project_select"
	ScreenProject1      ScreenState = "project1"
	ScreenProject2      ScreenState = "project2"
)

// AllScreens lists every screen container managed by the navigator
func AllScreens() []ScreenState {
	return []ScreenState{ScreenHome, ScreenProjectSelect, ScreenProject1, ScreenProject2}
}

// PlaybackState represents the current phase of a playback session
type PlaybackState string

const (
	PlaybackIdle      PlaybackState = "idle"
	PlaybackPreparing PlaybackState = "preparing"
	PlaybackPlaying   PlaybackState = "playing"
	PlaybackPaused    PlaybackState = "paused"
	PlaybackEnded     PlaybackState = "ended"
)

// TourState represents the guided tour's reveal progression
type TourState string

const (
	TourText         TourState = "text"
	TourTextAndImage TourState = "text_and_image"
	TourTeleported   TourState = "teleported"
)
