// market-watch renders a live table of market summaries in the terminal,
// refreshed over the public API. No credentials required.
//
//	market-watch -filter BTC- -interval 10
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trexbot/gotrex/bittrex"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type summariesMsg []bittrex.MarketSummary

type errMsg struct{ err error }

type tickMsg time.Time

type model struct {
	client   *bittrex.Client
	filter   string
	interval time.Duration
	rows     int

	summaries []bittrex.MarketSummary
	fetchedAt time.Time
	err       error
}

func (m model) Init() tea.Cmd {
	return m.fetch
}

func (m model) fetch() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	summaries, err := m.client.GetMarketSummaries(ctx)
	if err != nil {
		return errMsg{err}
	}
	return summariesMsg(summaries)
}

func (m model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetch
		}

	case summariesMsg:
		filtered := make([]bittrex.MarketSummary, 0, len(msg))
		for _, s := range msg {
			if m.filter == "" || strings.Contains(s.MarketName, m.filter) {
				filtered = append(filtered, s)
			}
		}
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].BaseVolume.GreaterThan(filtered[j].BaseVolume)
		})
		m.summaries = filtered
		m.fetchedAt = time.Now()
		m.err = nil
		return m, m.scheduleTick()

	case errMsg:
		m.err = msg.err
		return m, m.scheduleTick()

	case tickMsg:
		return m, m.fetch
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("gotrex market watch"))
	if !m.fetchedAt.IsZero() {
		b.WriteString(dimStyle.Render("  updated " + m.fetchedAt.Format("15:04:05")))
	}
	b.WriteByte('\n')

	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteByte('\n')
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %14s %14s %14s %12s", "MARKET", "LAST", "BID", "ASK", "VOL(BASE)")))
	b.WriteByte('\n')

	rows := m.rows
	if rows > len(m.summaries) {
		rows = len(m.summaries)
	}
	for _, s := range m.summaries[:rows] {
		style := upStyle
		if s.Last.LessThan(s.PrevDay) {
			style = downStyle
		}
		line := fmt.Sprintf("%-12s %14s %14s %14s %12s",
			s.MarketName,
			s.Last.StringFixed(8),
			s.Bid.StringFixed(8),
			s.Ask.StringFixed(8),
			s.BaseVolume.StringFixed(2),
		)
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}

	b.WriteString(dimStyle.Render("q quit · r refresh"))
	b.WriteByte('\n')
	return b.String()
}

func main() {
	filter := flag.String("filter", "", "only show markets whose name contains this substring, e.g. BTC-")
	interval := flag.Int("interval", 15, "refresh interval in seconds")
	rows := flag.Int("rows", 25, "number of markets to show")
	flag.Parse()

	m := model{
		client:   bittrex.New(bittrex.DefaultConfig()),
		filter:   *filter,
		interval: time.Duration(*interval) * time.Second,
		rows:     *rows,
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "market-watch:", err)
		os.Exit(1)
	}
}
