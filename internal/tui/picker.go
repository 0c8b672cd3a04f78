package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Option is one choice in a Picker.
type Option struct {
	Key         string // value reported on selection
	Title       string
	Description string
	Badge       string // optional difficulty badge
}

// Picker is a vertical single-choice list. It reports the chosen key through
// onSelect and knows nothing about what the key means.
type Picker struct {
	title    string
	subtitle string
	options  []Option
	cursor   int
	onSelect func(key string) tea.Cmd
}

// NewPicker creates a picker with the cursor on the option whose key equals
// selected, or on the first option.
func NewPicker(title, subtitle string, options []Option, selected string, onSelect func(string) tea.Cmd) *Picker {
	p := &Picker{
		title:    title,
		subtitle: subtitle,
		options:  options,
		onSelect: onSelect,
	}
	for i, o := range options {
		if o.Key == selected {
			p.cursor = i
			break
		}
	}
	return p
}

// Selected returns the key under the cursor.
func (p *Picker) Selected() string {
	if p.cursor < 0 || p.cursor >= len(p.options) {
		return ""
	}
	return p.options[p.cursor].Key
}

// Update handles navigation keys.
func (p *Picker) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case "enter", "space":
		if key := p.Selected(); key != "" && p.onSelect != nil {
			return p.onSelect(key)
		}
	}
	return nil
}

// View renders the list.
func (p *Picker) View() string {
	var b strings.Builder

	b.WriteString(styleModalTitle.Render(p.title))
	b.WriteString("\n")
	if p.subtitle != "" {
		b.WriteString(styleSubtitle.Render(p.subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(p.options) == 0 {
		b.WriteString(styleError.Render("Nothing to choose from here."))
		b.WriteString("\n")
	}

	for i, o := range p.options {
		line := "  " + o.Title
		style := styleItem
		if i == p.cursor {
			line = "› " + o.Title
			style = styleItemSelected
		}
		b.WriteString(style.Render(line))
		if o.Badge != "" {
			b.WriteString(" " + difficultyStyle(o.Badge).Render(o.Badge))
		}
		b.WriteString("\n")
		if o.Description != "" {
			b.WriteString(styleItemDesc.Render(o.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar("↑↓", "navigate", "enter", "select", "esc", "back"))
	return b.String()
}
