package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BranchItem is one entry in the branch picker
type BranchItem struct {
	Name      string
	ParentOf  string
	IsCurrent bool
}

func (i BranchItem) Title() string {
	if i.IsCurrent {
		return "◉ " + i.Name
	}
	return "◯ " + i.Name
}

func (i BranchItem) Description() string {
	if i.ParentOf == "" {
		return ""
	}
	return "on " + i.ParentOf
}

func (i BranchItem) FilterValue() string {
	return i.Name
}

type pickerModel struct {
	list     list.Model
	selected string
	err      error
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Let the list handle keys while filtering
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.Type {
		case tea.KeyEnter:
			if item, ok := m.list.SelectedItem().(BranchItem); ok {
				m.selected = item.Name
			}
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = fmt.Errorf("canceled")
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.selected != "" || m.err != nil {
		return ""
	}
	return lipgloss.NewStyle().Margin(1, 2).Render(m.list.View())
}

// PickBranch shows an interactive filterable picker over the given branches
// and returns the selected name.
func PickBranch(title string, items []BranchItem) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", fmt.Errorf("no branches available")
	}

	listItems := make([]list.Item, len(items))
	initialIndex := 0
	for i, item := range items {
		listItems[i] = item
		if item.IsCurrent {
			initialIndex = i
		}
	}

	l := list.New(listItems, list.NewDefaultDelegate(), 60, 14)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Select(initialIndex)

	p := tea.NewProgram(pickerModel{list: l}, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	final, ok := model.(pickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if final.err != nil {
		return "", final.err
	}
	if final.selected == "" {
		return "", fmt.Errorf("no branch selected")
	}
	return final.selected, nil
}
