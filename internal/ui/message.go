package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bop/internal/engine"
	"github.com/desertthunder/bop/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgFrame MsgKind = iota
	MsgFrameClosed
	MsgTracksLoaded
	MsgControlDone
)

// tracksPayload carries library rows for [MsgTracksLoaded].
type tracksPayload struct {
	tracks []models.Track
	err    error
}

// controlPayload carries the outcome of a dancer control call for [MsgControlDone].
type controlPayload struct {
	label string
	err   error
}

// frameMsg is the constructor for [MsgFrame]
func frameMsg(u engine.Update) Msg {
	return Msg{kind: MsgFrame, data: u}
}

// frameClosedMsg is the constructor for [MsgFrameClosed]
func frameClosedMsg() Msg {
	return Msg{kind: MsgFrameClosed}
}

// tracksLoadedMsg is the constructor for [MsgTracksLoaded]
func tracksLoadedMsg(tracks []models.Track, err error) Msg {
	return Msg{kind: MsgTracksLoaded, data: tracksPayload{tracks, err}}
}

// controlDoneMsg is the constructor for [MsgControlDone]
func controlDoneMsg(label string, err error) Msg {
	return Msg{kind: MsgControlDone, data: controlPayload{label, err}}
}
