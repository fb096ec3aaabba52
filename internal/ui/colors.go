package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#8ab4f8", "#b78cf2", "#04B575", "#FF5F5F", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	figure lipgloss.Style
	meter  lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
}

func NewPalette(t, f, m, e, h string) *Palette {
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		figure: NewStyle(f),
		meter:  NewStyle(m),
		err:    NewBold(e),
		help:   NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
