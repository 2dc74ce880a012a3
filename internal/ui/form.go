package ui

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/zhuifan/internal/models"
)

type fieldKind int

const (
	textField fieldKind = iota
	numberField
	enumField
)

// formField binds one row of a form view to a [models.Form] field.
type formField struct {
	label   string
	kind    fieldKind
	get     func(*models.Form) string
	set     func(*models.Form, string)
	options func() []string         // enum values, "" meaning unset
	visible func(*models.Form) bool // nil means always shown
}

// formFields is the single field table behind the creation form and the edit modal.
var formFields = []formField{
	{
		label: "标题",
		kind:  textField,
		get:   func(f *models.Form) string { return f.Title },
		set:   func(f *models.Form, v string) { f.Title = v },
	},
	{
		label: "当前集数",
		kind:  numberField,
		get:   func(f *models.Form) string { return strconv.Itoa(f.CurrentEpisode) },
		set: func(f *models.Form, v string) {
			if n, ok := parseCount(v); ok {
				f.CurrentEpisode = n
			}
		},
	},
	{
		label: "总集数",
		kind:  numberField,
		get: func(f *models.Form) string {
			if f.TotalEpisodes == nil {
				return ""
			}
			return strconv.Itoa(*f.TotalEpisodes)
		},
		set: func(f *models.Form, v string) {
			if n, ok := parseCount(v); ok {
				f.SetTotalEpisodes(n)
			}
		},
	},
	{
		label:   "平台",
		kind:    enumField,
		get:     func(f *models.Form) string { return f.Platform },
		set:     func(f *models.Form, v string) { f.Platform = v },
		options: func() []string { return append(append([]string{""}, models.Platforms()...), models.PlatformOther) },
	},
	{
		label:   "自定义平台",
		kind:    textField,
		get:     func(f *models.Form) string { return f.CustomPlatform },
		set:     func(f *models.Form, v string) { f.CustomPlatform = v },
		visible: func(f *models.Form) bool { return f.Platform == models.PlatformOther },
	},
	{
		label: "播放链接",
		kind:  textField,
		get:   func(f *models.Form) string { return f.PlatformURL },
		set:   func(f *models.Form, v string) { f.PlatformURL = v },
	},
	{
		label:   "状态",
		kind:    enumField,
		get:     func(f *models.Form) string { return string(f.Status) },
		set:     func(f *models.Form, v string) { f.Status = models.Status(v) },
		options: func() []string { return statusOptions()[1:] },
	},
	{
		label:   "更新日",
		kind:    enumField,
		get:     func(f *models.Form) string { return string(f.UpdateDay) },
		set:     func(f *models.Form, v string) { f.UpdateDay = models.Weekday(v) },
		options: weekdayOptions,
	},
	{
		label: "备注",
		kind:  textField,
		get:   func(f *models.Form) string { return f.Notes },
		set:   func(f *models.Form, v string) { f.Notes = v },
	},
}

func (ff formField) shown(f *models.Form) bool {
	return ff.visible == nil || ff.visible(f)
}

// cycle moves an enum field by delta through its options, wrapping at both ends.
// A value outside the options moves to the first option.
func (ff formField) cycle(f *models.Form, delta int) {
	opts := ff.options()
	i := slices.Index(opts, ff.get(f))
	if i < 0 {
		ff.set(f, opts[0])
		return
	}
	i = (i + delta + len(opts)) % len(opts)
	ff.set(f, opts[i])
}

// formCursor tracks which field of a form has focus and drives the shared text input.
//
// It holds no copy of the form: every read goes through a getter and every keystroke through a setter.
type formCursor struct {
	focus int
}

// load points input at the focused field of f.
func (c *formCursor) load(input *textinput.Model, f *models.Form) tea.Cmd {
	field := formFields[c.focus]
	if field.kind == enumField {
		input.Blur()
		return nil
	}
	input.SetValue(field.get(f))
	input.CursorEnd()
	input.Placeholder = field.label
	return input.Focus()
}

// move shifts focus by delta, skipping hidden fields, and reloads input.
func (c *formCursor) move(input *textinput.Model, f *models.Form, delta int) tea.Cmd {
	n := len(formFields)
	next := c.focus
	for range n {
		next = (next + delta + n) % n
		if formFields[next].shown(f) {
			break
		}
	}
	c.focus = next
	return c.load(input, f)
}

// reset moves focus back to the first field.
func (c *formCursor) reset(input *textinput.Model, f *models.Form) tea.Cmd {
	c.focus = 0
	return c.load(input, f)
}

// handleKey applies msg to f. It reports false for keys the form does not consume.
func (c *formCursor) handleKey(input *textinput.Model, f *models.Form, msg tea.KeyMsg) (bool, tea.Cmd) {
	field := formFields[c.focus]

	switch {
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyShiftTab:
		return true, c.move(input, f, -1)
	case msg.Type == tea.KeyDown, msg.Type == tea.KeyTab:
		return true, c.move(input, f, 1)
	case field.kind == enumField && msg.Type == tea.KeyLeft:
		field.cycle(f, -1)
		return true, nil
	case field.kind == enumField && msg.Type == tea.KeyRight:
		field.cycle(f, 1)
		return true, nil
	case field.kind == enumField:
		return msg.Type == tea.KeyRunes, nil
	}

	if field.kind == numberField {
		switch {
		case msg.Type == tea.KeySpace:
			return true, nil
		case msg.Type == tea.KeyRunes && !allDigits(msg.Runes):
			return true, nil
		}
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlA, tea.KeyCtrlE, tea.KeyCtrlU, tea.KeyCtrlK, tea.KeyCtrlW:
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		field.set(f, input.Value())
		if _, ok := parseCount(input.Value()); field.kind == numberField && !ok {
			// The input must always show what will be saved.
			input.SetValue(field.get(f))
			input.CursorEnd()
		}
		return true, cmd
	}
	return false, nil
}

// parseCount reads a number field. Empty clears it; anything else that is not a count is rejected.
func parseCount(v string) (int, bool) {
	if v == "" {
		return 0, true
	}
	if !allDigits([]rune(v)) {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(runes) > 0
}

// renderForm draws every visible field of f, the focused one through input.
func renderForm(f *models.Form, c formCursor, input textinput.Model) string {
	var b strings.Builder
	for i, field := range formFields {
		if !field.shown(f) {
			continue
		}

		label := styles.label.Render(field.label)
		if i == c.focus {
			label = styles.focused.Render("› " + field.label)
		}

		var value string
		switch {
		case field.kind == enumField:
			v := field.get(f)
			if v == "" {
				v = "(未选择)"
			}
			value = "‹ " + v + " ›"
			if i == c.focus {
				value = styles.selected.Render(value)
			}
		case i == c.focus:
			value = input.View()
		default:
			value = field.get(f)
		}

		b.WriteString(label + " " + value + "\n")
	}
	return b.String()
}
