package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/unklstewy/gcs-pfd/internal/refresh"
	"github.com/unklstewy/gcs-pfd/internal/station"
	"github.com/unklstewy/gcs-pfd/pkg/config"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
)

type model struct {
	updates <-chan *pfd.Display
	loop    *refresh.Loop
	display *pfd.Display
	err     error
}

// displayMsg carries a freshly derived display.
type displayMsg struct {
	display *pfd.Display
}

// closedMsg is sent when the refresh loop subscription ends.
type closedMsg struct{}

// waitForDisplay blocks until the loop publishes the next display.
func waitForDisplay(updates <-chan *pfd.Display) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return displayMsg{display: d}
	}
}

func (m model) Init() tea.Cmd {
	return waitForDisplay(m.updates)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case displayMsg:
		m.display = msg.display
		_, m.err = m.loop.Current()
		return m, waitForDisplay(m.updates)
	case closedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	if m.display == nil {
		b.WriteString(titleStyle.Render("PFD"))
		b.WriteString("\n\nWaiting for telemetry...\n")
	} else {
		b.WriteString(renderDisplay(m.display))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errStyle.Render("Last refresh failed: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	flag.Parse()
	_ = godotenv.Load()

	// The TUI owns the terminal; keep logs out of it.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := station.Open(ctx, cfg, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open telemetry source: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	updates, unsubscribe := st.Loop.Subscribe()
	defer unsubscribe()
	go st.Loop.Run(ctx)

	p := tea.NewProgram(model{updates: updates, loop: st.Loop}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
