package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	boardFetch     = 100 // rows loaded into the table
	boardChrome    = 8   // title, borders, header and help around the table
	dateColumnMax  = 20
	fixedColsWidth = 28 // rank + initials + score columns and padding
)

// ScoreboardKeys are the scoreboard's bindings.
type ScoreboardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

func (k ScoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

func (k ScoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top, k.Bottom}, {k.Quit}}
}

// DefaultScoreboardKeys returns vim-style bindings plus arrows.
func DefaultScoreboardKeys() ScoreboardKeys {
	bind := func(help, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
	}
	return ScoreboardKeys{
		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Top:    bind("g", "first", "home", "g"),
		Bottom: bind("G", "last", "end", "G"),
		Quit:   bind("q", "close", "q", "esc", "ctrl+c"),
	}
}

type scoreboardStyles struct {
	title lipgloss.Style
	frame lipgloss.Style
	muted lipgloss.Style
	note  lipgloss.Style
}

func newScoreboardStyles() scoreboardStyles {
	border := lipgloss.Color("240")
	return scoreboardStyles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		note:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

// ScoreboardModel browses the ledger in a scrollable table.
type ScoreboardModel struct {
	entries []storage.Entry
	err     error

	table  table.Model
	help   help.Model
	keys   ScoreboardKeys
	styles scoreboardStyles

	width, height int
	done          bool
}

// NewScoreboardModel reads the top of the ledger and lays it out for a
// width x height terminal.
func NewScoreboardModel(ledger storage.Ledger, width, height int) ScoreboardModel {
	entries, err := ledger.QueryTop(boardFetch)
	m := ScoreboardModel{
		entries: entries,
		err:     err,
		help:    help.New(),
		keys:    DefaultScoreboardKeys(),
		styles:  newScoreboardStyles(),
	}
	m.layout(width, height)
	return m
}

func (m *ScoreboardModel) layout(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	date := 14
	if avail := width - 4 - fixedColsWidth; avail > date {
		date = min(avail, dateColumnMax)
	}
	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Initials", Width: 10},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: date},
		}),
		table.WithRows(scoreRows(m.entries)),
		table.WithFocused(true),
		table.WithHeight(max(3, height-boardChrome)),
		table.WithStyles(tableStyles()),
	)
}

func scoreRows(entries []storage.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Initials,
			strconv.Itoa(e.Score),
			e.PlayedAt.Local().Format("Jan 02 15:04"),
		})
	}
	return rows
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.done {
		return ""
	}

	var body string
	switch {
	case m.err != nil:
		body = m.styles.note.Render("Could not load scores:\n" + m.err.Error())
	case len(m.entries) == 0:
		body = m.styles.note.Render("No scores recorded yet.\nPlay a game to set a high score!")
	default:
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(centerText("HIGH SCORES", m.width)),
		m.styles.frame.Render(body),
		m.styles.muted.Render(m.help.View(m.keys)),
	)
}

// centerText left-pads text to sit in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunScoreboard shows the scoreboard until the user closes it.
func RunScoreboard(ledger storage.Ledger, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(ledger, width, height), tea.WithAltScreen()).Run()
	return err
}
