package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

	outcomeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

type modelState int

const (
	stateSelect modelState = iota
	stateLabel
	stateShowResult
)

type interactiveModel struct {
	err      error
	result   string
	input    textinput.Model
	selected int
	state    modelState
}

type resultMsg struct {
	err    error
	result string
}

func newInteractiveModel(label string) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "label: "
	ti.Placeholder = "S"
	ti.Width = 40
	ti.SetValue(label)

	return &interactiveModel{input: ti}
}

func runInteractive(label string) error {
	_, err := tea.NewProgram(newInteractiveModel(label)).Run()
	return err
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(resultMsg); ok {
		m.result, m.err = res.result, res.err
		m.state = stateShowResult
		return m, nil
	}

	key, isKey := msg.(tea.KeyMsg)
	if isKey && key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case stateSelect:
		if isKey {
			return m.updateSelect(key)
		}
	case stateLabel:
		return m.updateLabel(msg)
	case stateShowResult:
		if isKey {
			return m.updateResult(key)
		}
	}
	return m, nil
}

func (m *interactiveModel) updateSelect(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.selected = max(m.selected-1, 0)
	case "down", "j":
		m.selected = min(m.selected+1, len(scenarios)-1)
	case "enter":
		m.state = stateLabel
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *interactiveModel) updateLabel(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.input.Blur()
			return m, m.runSelected
		case tea.KeyEsc:
			m.input.Blur()
			m.state = stateSelect
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) updateResult(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "enter", "esc":
		m.state = stateSelect
		m.result, m.err = "", nil
	}
	return m, nil
}

func (m *interactiveModel) runSelected() tea.Msg {
	label := strings.TrimSpace(m.input.Value())
	if label == "" {
		label = "S"
	}
	result, err := scenarios[m.selected].run(context.Background(), label)
	return resultMsg{result: result, err: err}
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Ownership Playground"))
	b.WriteString("\n\n")

	sc := scenarios[m.selected]
	switch m.state {
	case stateSelect:
		for i, s := range scenarios {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
			}
			fmt.Fprintf(&b, "%s%s %s\n", cursor, nameStyle.Render(fmt.Sprintf("%-14s", s.name)), s.description)
		}
		b.WriteString("\n" + hintStyle.Render("↑/↓ select • enter run • q quit"))

	case stateLabel:
		fmt.Fprintf(&b, "%s\n%s\n\n", nameStyle.Render(sc.name), sc.description)
		b.WriteString(m.input.View())
		b.WriteString("\n\n" + hintStyle.Render("enter run • esc back"))

	case stateShowResult:
		outcome := passStyle.Render("PASS") + " " + m.result
		if m.err != nil {
			outcome = failStyle.Render("FAIL") + " " + m.err.Error()
		}
		b.WriteString(outcomeStyle.Render(nameStyle.Render(sc.name) + "\n" + outcome))
		b.WriteString("\n\n" + hintStyle.Render("enter back • q quit"))
	}

	return b.String()
}
