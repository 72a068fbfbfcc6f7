package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-moviegraph/pkg/graphload"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	dashboardView view = iota
	moviesView
	personsView
	similarView
	collaborationsView
	viewCount
)

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type model struct {
	run         *graphload.RunSet
	currentView view
	movieTable  table.Model
	personTable table.Model
	similarTab  table.Model
	workedTab   table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
}

func newDataTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func initialModel(run *graphload.RunSet) model {
	movieRows := make([]table.Row, len(run.Graph.Movies))
	for i, m := range run.Graph.Movies {
		movieRows[i] = table.Row{
			strconv.FormatInt(m.ID, 10), m.Title, m.ReleaseDate,
			strconv.FormatFloat(m.VoteAverage, 'f', 1, 64),
		}
	}

	personRows := make([]table.Row, len(run.Graph.Persons))
	for i, p := range run.Graph.Persons {
		personRows[i] = table.Row{
			strconv.FormatInt(p.ID, 10), p.Name,
			strconv.FormatFloat(p.Popularity, 'f', 1, 64),
		}
	}

	movieTitles := make(map[int64]string, len(run.Graph.Movies))
	for _, m := range run.Graph.Movies {
		movieTitles[m.ID] = m.Title
	}
	similarRows := make([]table.Row, len(run.Similar))
	for i, s := range run.Similar {
		similarRows[i] = table.Row{
			movieTitles[s.MovieA], movieTitles[s.MovieB],
			strconv.FormatInt(s.Score, 10),
		}
	}

	personNames := make(map[int64]string, len(run.Graph.Persons))
	for _, p := range run.Graph.Persons {
		personNames[p.ID] = p.Name
	}
	workedRows := make([]table.Row, len(run.Worked))
	for i, w := range run.Worked {
		workedRows[i] = table.Row{
			personNames[w.PersonA], personNames[w.PersonB],
			strconv.FormatInt(w.MovieCount, 10),
		}
	}

	return model{
		run:         run,
		currentView: dashboardView,
		movieTable: newDataTable([]table.Column{
			{Title: "ID", Width: 8},
			{Title: "Title", Width: 40},
			{Title: "Released", Width: 12},
			{Title: "Rating", Width: 8},
		}, movieRows),
		personTable: newDataTable([]table.Column{
			{Title: "ID", Width: 8},
			{Title: "Name", Width: 40},
			{Title: "Popularity", Width: 12},
		}, personRows),
		similarTab: newDataTable([]table.Column{
			{Title: "Movie", Width: 32},
			{Title: "Similar To", Width: 32},
			{Title: "Shared Genres", Width: 14},
		}, similarRows),
		workedTab: newDataTable([]table.Column{
			{Title: "Person", Width: 32},
			{Title: "Worked With", Width: 32},
			{Title: "Movies", Width: 8},
		}, workedRows),
		help: help.New(),
		keys: keys,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.currentView = viewCount - 1
			} else {
				m.currentView--
			}
		}
	}

	switch m.currentView {
	case moviesView:
		m.movieTable, cmd = m.movieTable.Update(msg)
		cmds = append(cmds, cmd)
	case personsView:
		m.personTable, cmd = m.personTable.Update(msg)
		cmds = append(cmds, cmd)
	case similarView:
		m.similarTab, cmd = m.similarTab.Update(msg)
		cmds = append(cmds, cmd)
	case collaborationsView:
		m.workedTab, cmd = m.workedTab.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Movie Graph - Run Browser"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case dashboardView:
		s.WriteString(m.renderDashboard())
	case moviesView:
		s.WriteString(contentStyle.Render(m.movieTable.View()))
	case personsView:
		s.WriteString(contentStyle.Render(m.personTable.View()))
	case similarView:
		s.WriteString(contentStyle.Render(m.similarTab.View()))
	case collaborationsView:
		s.WriteString(contentStyle.Render(m.workedTab.View()))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Dashboard", "Movies", "Persons", "Similarity", "Collaborations"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderDashboard() string {
	g := m.run.Graph

	nodes := fmt.Sprintf(`Nodes
--------------
Movies:    %d
Persons:   %d
Genres:    %d
Keywords:  %d
Companies: %d`,
		len(g.Movies), len(g.Persons), len(g.Genres), len(g.Keywords), len(g.Companies))

	rels := fmt.Sprintf(`Relationships
--------------
ACTED_IN:       %d
DIRECTED:       %d
PRODUCED:       %d
CATEGORIZED_AS: %d
TAGGED_WITH:    %d
SIMILAR_TO:     %d
WORKED_WITH:    %d`,
		len(g.ActedIn), len(g.Directed), len(g.Produced),
		len(g.CategorizedAs), len(g.TaggedWith), len(m.run.Similar), len(m.run.Worked))

	run := fmt.Sprintf(`Run
--------------
ID:      %s
Created: %s`,
		m.run.Manifest.RunID, m.run.Manifest.CreatedAt)

	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(nodes),
		statsBoxStyle.Render(rels),
		statsBoxStyle.Render(run),
	))
}

func main() {
	dir := flag.String("dir", "out", "Published output directory to browse")
	flag.Parse()

	run, err := graphload.ReadRun(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "moviegraph-tui:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(run), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "moviegraph-tui:", err)
		os.Exit(1)
	}
}
