package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "docreq.dev/pkg/docreq/internal/model"
)

var browserStyle = lipgloss.NewStyle().Margin(1, 2)

// findingItem adapts a Finding to the bubbles list item interface.
type findingItem struct {
	finding m.Finding
}

func (i findingItem) Title() string {
	return i.finding.Name
}

func (i findingItem) Description() string {
	return fmt.Sprintf("%s:%d:%d", i.finding.Path, i.finding.Line, i.finding.Column)
}

func (i findingItem) FilterValue() string {
	return string(i.finding.Path) + " " + i.finding.Name
}

// browserModel is the Bubble Tea model for the interactive findings browser.
type browserModel struct {
	list list.Model
}

func newBrowserModel(findings []m.Finding) browserModel {
	items := make([]list.Item, 0, len(findings))
	for _, finding := range findings {
		items = append(items, findingItem{finding: finding})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("docreq: %d findings", len(findings))

	return browserModel{list: l}
}

// Init implements tea.Model.
func (b browserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return b, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := browserStyle.GetFrameSize()
		b.list.SetSize(msg.Width-h, msg.Height-v)

		return b, nil
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)

	return b, cmd
}

// View implements tea.Model.
func (b browserModel) View() string {
	return browserStyle.Render(b.list.View())
}

// BrowseFindings runs the interactive findings browser until the user quits.
func BrowseFindings(out io.Writer, findings []m.Finding) error {
	program := tea.NewProgram(newBrowserModel(findings), tea.WithOutput(out), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("findings browser failed: %w", err)
	}

	return nil
}
