package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/oszget/internal/osu"
	"github.com/desertthunder/oszget/internal/shared"
)

// Form field indices, in display order.
const (
	fieldUserID = iota
	fieldClientID
	fieldClientSecret
	fieldMode
	fieldLimit
	fieldOutDir
	fieldCount
)

// FormValues holds the parsed output of a completed form.
type FormValues struct {
	UserID       int
	ClientID     string
	ClientSecret string
	Mode         osu.Mode
	Limit        int
	OutDir       string
}

// keyMap defines the key bindings for the form.
type keyMap struct {
	next  key.Binding
	prev  key.Binding
	enter key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next/submit"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "abort"),
		),
	}
}

// FormModel is the bubbletea model for the configuration prompt.
type FormModel struct {
	inputs  []textinput.Model
	labels  []string
	focus   int
	done    bool
	aborted bool
	keys    keyMap
}

// NewFormModel creates a form pre-filled with the given defaults.
func NewFormModel(defaults *shared.Config) FormModel {
	labels := []string{
		"osu! user id",
		"osu! client id",
		"osu! client secret",
		"mode (osu / taiko / fruits / mania)",
		"number of top plays to fetch (max ~200)",
		"output directory",
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 256
		in.Width = 40
		inputs[i] = in
	}

	if defaults != nil {
		if defaults.UserID > 0 {
			inputs[fieldUserID].SetValue(strconv.Itoa(defaults.UserID))
		}
		inputs[fieldClientID].SetValue(defaults.ClientID)
		inputs[fieldClientSecret].SetValue(defaults.ClientSecret)
		inputs[fieldMode].SetValue(defaults.Mode)
		if defaults.Limit > 0 {
			inputs[fieldLimit].SetValue(strconv.Itoa(defaults.Limit))
		}
		inputs[fieldOutDir].SetValue(defaults.OutDir)
	}

	inputs[fieldClientSecret].EchoMode = textinput.EchoPassword
	inputs[fieldClientSecret].EchoCharacter = '•'
	inputs[fieldUserID].Focus()

	return FormModel{
		inputs: inputs,
		labels: labels,
		keys:   newKeyMap(),
	}
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.enter):
			if m.focus == len(m.inputs)-1 {
				m.done = true
				return m, tea.Quit
			}
			return m.moveFocus(1)
		case key.Matches(msg, m.keys.next):
			return m.moveFocus(1)
		case key.Matches(msg, m.keys.prev):
			return m.moveFocus(-1)
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m FormModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m, m.inputs[m.focus].Focus()
}

func (m *FormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m FormModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("osu! top plays downloader"))
	b.WriteString("\n")

	for i, in := range m.inputs {
		b.WriteString(styles.label.Render(m.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	b.WriteString(styles.help.Render("enter: next/submit • tab: move • esc: abort"))
	b.WriteString("\n")
	return b.String()
}

// Aborted reports whether the user backed out of the form.
func (m FormModel) Aborted() bool {
	return m.aborted
}

// Result parses the form fields into FormValues. Blank or invalid mode
// falls back to osu; blank limit and output directory fall back to the
// shared defaults.
func (m FormModel) Result() (*FormValues, error) {
	userRaw := strings.TrimSpace(m.inputs[fieldUserID].Value())
	userID, err := strconv.Atoi(userRaw)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be a positive integer, got %q", shared.ErrInvalidArgument, userRaw)
	}

	clientID := strings.TrimSpace(m.inputs[fieldClientID].Value())
	clientSecret := strings.TrimSpace(m.inputs[fieldClientSecret].Value())
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: client id and client secret are required", shared.ErrMissingCredentials)
	}

	limit := shared.DefaultLimit
	if raw := strings.TrimSpace(m.inputs[fieldLimit].Value()); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("%w: fetch count must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
		}
	}

	outDir := strings.TrimSpace(m.inputs[fieldOutDir].Value())
	if outDir == "" {
		outDir = shared.DefaultOutDir
	}

	return &FormValues{
		UserID:       userID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Mode:         osu.ParseMode(m.inputs[fieldMode].Value()),
		Limit:        limit,
		OutDir:       outDir,
	}, nil
}
