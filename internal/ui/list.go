package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/bop/internal/models"
)

var (
	_ list.Item = trackItem{}
)

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Artist + " " + i.track.Title }
func (i trackItem) Title() string       { return i.track.String() }
func (i trackItem) Description() string {
	desc := ""
	if i.track.Key != "" {
		desc = string(i.track.Key)
	}
	if i.track.BPM > 0 {
		if desc != "" {
			desc = fmt.Sprintf("%s • %.0f bpm", desc, i.track.BPM)
		} else {
			desc = fmt.Sprintf("%.0f bpm", i.track.BPM)
		}
	}
	if i.track.Album != "" {
		if desc != "" {
			desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
		} else {
			desc = i.track.Album
		}
	}
	if desc == "" {
		desc = "no tags"
	}
	return desc
}
