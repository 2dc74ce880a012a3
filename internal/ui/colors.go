package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/zhuifan/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF4F4F", "#FFA500", "#626262")

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	badge    lipgloss.Style
	modal    lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	selected lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		tab:      NewStyle(h).Padding(0, 1),
		tabOn:    NewBold("#FFFFFF").Background(lipgloss.Color(t)).Padding(0, 1),
		badge:    NewBold("#FFFFFF").Background(lipgloss.Color(e)).Padding(0, 1),
		modal:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)).Padding(1, 2),
		label:    NewStyle(h).Width(10),
		focused:  NewBold(t).Width(10),
		selected: NewBold(t).Underline(true),
	}
}

// On renders s on a background color.
func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

// As renders s in a foreground color.
func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

var _ Painter = (*Palette)(nil)

// statusColors maps each status to its badge color.
var statusColors = map[models.Status]lipgloss.Color{
	models.StatusWatching:  lipgloss.Color("#22C55E"),
	models.StatusCompleted: lipgloss.Color("#3B82F6"),
	models.StatusPaused:    lipgloss.Color("#EAB308"),
}

// statusLabel renders a status in its color, gray when unknown.
func statusLabel(s models.Status) string {
	c, ok := statusColors[s]
	if !ok {
		c = lipgloss.Color("#9CA3AF")
	}
	return styles.As(string(s), c)
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
