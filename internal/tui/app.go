// Package tui provides the interactive dashboard over the ledger data.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brun04maral/agora-ledger/internal/cli"
	"github.com/brun04maral/agora-ledger/internal/config"
	"github.com/brun04maral/agora-ledger/internal/model"
	"github.com/brun04maral/agora-ledger/internal/pipeline"
	"github.com/brun04maral/agora-ledger/internal/settle"
	"github.com/brun04maral/agora-ledger/internal/tui/components"
	"github.com/brun04maral/agora-ledger/internal/tui/theme"
)

// dataLoadedMsg is sent when the ledger pipeline finishes.
type dataLoadedMsg struct {
	result     *pipeline.LoadResult
	settlement model.Settlement
	months     []model.MonthStats
}

// loadErrMsg is sent when the pipeline fails.
type loadErrMsg struct{ err error }

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config
	ref time.Time

	// Data
	loaded     bool
	loadErr    error
	result     *pipeline.LoadResult
	settlement model.Settlement
	months     []model.MonthStats

	// UI state
	width     int
	height    int
	activeTab int
	offset    int // expense list scroll offset

	spinner spinner.Model
}

// NewApp builds the dashboard model.
func NewApp(cfg config.Config, ref time.Time) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{cfg: cfg, ref: ref, spinner: sp}
}

// Init starts the spinner and kicks off the ledger load.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCmd())
}

func (a App) loadCmd() tea.Cmd {
	cfg, ref := a.cfg, a.ref
	return func() tea.Msg {
		result, err := pipeline.Load(cfg, "", "")
		if err != nil {
			return loadErrMsg{err: err}
		}
		return dataLoadedMsg{
			result:     result,
			settlement: settle.Aggregate(result.Eligible, ref),
			months:     settle.AggregateMonths(result.Eligible),
		}
	}
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case dataLoadedMsg:
		a.loaded = true
		a.result = msg.result
		a.settlement = msg.settlement
		a.months = msg.months
		return a, nil

	case loadErrMsg:
		a.loaded = true
		a.loadErr = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit

	case "tab", "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		a.offset = 0
		return a, nil

	case "shift+tab", "left":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		a.offset = 0
		return a, nil

	case "j", "down":
		if a.activeTab == 1 {
			a.offset++
			a.clampOffset()
		}
		return a, nil

	case "k", "up":
		if a.activeTab == 1 && a.offset > 0 {
			a.offset--
		}
		return a, nil

	case "r":
		a.loaded = false
		a.loadErr = nil
		return a, tea.Batch(a.spinner.Tick, a.loadCmd())
	}

	if r := []rune(msg.String()); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.activeTab = idx
			a.offset = 0
		}
	}
	return a, nil
}

func (a *App) clampOffset() {
	if a.result == nil {
		a.offset = 0
		return
	}
	max := len(a.result.Eligible) - a.listHeight()
	if max < 0 {
		max = 0
	}
	if a.offset > max {
		a.offset = max
	}
}

func (a App) listHeight() int {
	h := a.height - 8 // title, tab bar, header, footer
	if h < 5 {
		h = 5
	}
	return h
}

// View renders the dashboard.
func (a App) View() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn)

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(titleStyle.Render("AGORA LEDGER"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  as of %s", cli.FormatDate(a.ref))))
	b.WriteString("\n\n")

	if !a.loaded {
		b.WriteString(fmt.Sprintf(" %s Reading ledger...\n", a.spinner.View()))
		return b.String()
	}
	if a.loadErr != nil {
		b.WriteString(warnStyle.Render(fmt.Sprintf(" %v", a.loadErr)))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render(" q quit  r retry\n"))
		return b.String()
	}

	b.WriteString(components.RenderTabBar(a.activeTab))
	b.WriteString("\n\n")

	switch a.activeTab {
	case 1:
		b.WriteString(a.viewExpenses())
	case 2:
		b.WriteString(a.viewMonths())
	default:
		b.WriteString(a.viewOverview())
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(" tab switch  j/k scroll  r reload  q quit"))
	b.WriteString("\n")

	return b.String()
}

func (a App) viewOverview() string {
	t := theme.Active
	s := a.settlement

	width := a.width - 2
	if width < 45 {
		width = 45
	}
	if width > 90 {
		width = 90
	}
	widths := components.LayoutRow(width, 3)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		components.MetricCard("Paid", cli.FormatAmount(s.PaidTotal),
			fmt.Sprintf("%d records", s.PaidCount), t.Paid, widths[0]),
		components.MetricCard("Pending", cli.FormatAmount(s.PendingTotal),
			fmt.Sprintf("%d records", s.PendingCount), t.Pending, widths[1]),
		components.MetricCard("Per partner", cli.FormatAmount(s.PerPartnerShare),
			fmt.Sprintf("%s / %s", a.cfg.Partners.A, a.cfg.Partners.B), t.Accent, widths[2]),
	)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		" %d records on sheet %q, %d eligible, %d excluded by payroll keywords",
		len(a.result.Records), a.result.Sheet, len(a.result.Eligible), a.result.Excluded)))
	b.WriteString("\n")
	if a.result.RowErrors > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf(
			" %d cells could not be parsed and were zero-filled", a.result.RowErrors)))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) viewExpenses() string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	paidStyle := lipgloss.NewStyle().Foreground(t.Paid)
	pendingStyle := lipgloss.NewStyle().Foreground(t.Pending)

	eligible := a.result.Eligible
	if len(eligible) == 0 {
		return " No fixed-monthly expenses found.\n"
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf(" %-6s %-30s %-11s %-8s %14s",
		"#", "Description", "Due", "Status", "Amount")))
	b.WriteString("\n")

	end := a.offset + a.listHeight()
	if end > len(eligible) {
		end = len(eligible)
	}
	for _, rec := range eligible[a.offset:end] {
		status := pendingStyle.Render("pending")
		if rec.Paid(a.ref) {
			status = paidStyle.Render("paid   ")
		}
		b.WriteString(rowStyle.Render(fmt.Sprintf(" %-6s %-30s %-11s ",
			cli.Truncate(rec.Number, 6),
			cli.Truncate(rec.Description, 30),
			rec.Due.String())))
		b.WriteString(status)
		b.WriteString(rowStyle.Render(fmt.Sprintf(" %14s", cli.FormatAmount(rec.Amount))))
		b.WriteString("\n")
	}

	if end < len(eligible) || a.offset > 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted)
		b.WriteString(muted.Render(fmt.Sprintf(" %d-%d of %d", a.offset+1, end, len(eligible))))
		b.WriteString("\n")
	}

	return b.String()
}

func (a App) viewMonths() string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	if len(a.months) == 0 {
		return " No fixed-monthly expenses found.\n"
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf(" %-9s %7s %14s", "Month", "Count", "Total")))
	b.WriteString("\n")

	var spark []float64
	for _, ms := range a.months {
		label := "unknown"
		if !ms.Unknown {
			label = ms.Month.Format("2006-01")
			total, _ := ms.Total.Float64()
			spark = append(spark, total)
		}
		b.WriteString(rowStyle.Render(fmt.Sprintf(" %-9s %7d %14s",
			label, ms.Count, cli.FormatAmount(ms.Total))))
		b.WriteString("\n")
	}

	if len(spark) > 1 {
		b.WriteString("\n ")
		b.WriteString(cli.RenderSparkline(spark))
		b.WriteString("\n")
	}

	return b.String()
}
