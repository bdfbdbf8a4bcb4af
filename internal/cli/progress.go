package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arvogrid/floorsa/pkg/ledger"
)

const progressTickInterval = 250 * time.Millisecond

// progressTickMsg drives the periodic refresh of runProgressModel.
type progressTickMsg time.Time

// runProgressModel is the bubbletea model backing `floorsa run`'s live
// terminal view: elapsed/deadline, worker count, and the best cost the
// ledger has recorded so far.
type runProgressModel struct {
	led      *ledger.Ledger
	start    time.Time
	deadline time.Time
	strategy string
	workers  int

	cost    float64
	haveAny bool
	done    bool
}

func newRunProgressModel(led *ledger.Ledger, start, deadline time.Time, strategy string, workers int) runProgressModel {
	return runProgressModel{led: led, start: start, deadline: deadline, strategy: strategy, workers: workers}
}

func (m runProgressModel) Init() tea.Cmd {
	return tickProgress()
}

func tickProgress() tea.Cmd {
	return tea.Tick(progressTickInterval, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}

func (m runProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		}
	case progressTickMsg:
		if _, res, ok := m.led.Snapshot(); ok {
			m.cost, m.haveAny = res.Cost, true
		}
		if time.Time(msg).After(m.deadline) {
			m.done = true
			return m, tea.Quit
		}
		return m, tickProgress()
	}
	return m, nil
}

func (m runProgressModel) View() string {
	if m.done {
		return ""
	}

	total := m.deadline.Sub(m.start)
	elapsed := time.Since(m.start)
	frac := 0.0
	if total > 0 {
		frac = float64(elapsed) / float64(total)
	}
	if frac > 1 {
		frac = 1
	}

	const barWidth = 30
	filled := int(frac * float64(barWidth))
	bar := lipgloss.NewStyle().Foreground(colorCyan).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(colorDim).Render(strings.Repeat("░", barWidth-filled))

	costStr := "—"
	if m.haveAny {
		costStr = fmt.Sprintf("%.4f", m.cost)
	}

	return fmt.Sprintf("%s  [%s] %3.0f%%  elapsed %s / %s  workers %s  best cost %s",
		StyleTitle.Render(m.strategy),
		bar, frac*100,
		elapsed.Round(time.Second), total.Round(time.Second),
		StyleNumber.Render(fmt.Sprintf("%d", m.workers)),
		StyleNumber.Render(costStr),
	)
}
