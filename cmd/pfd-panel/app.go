package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/gcs-pfd/internal/refresh"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
)

// App is the table dashboard: the derived display on the left, status,
// key help and an event log on the right.
type App struct {
	loop *refresh.Loop

	tviewApp *tview.Application
	table    *tview.Table
	status   *tview.TextView
	controls *tview.TextView
	logs     *LogManager

	mu      sync.Mutex
	paused  bool
	frames  int64
	lastErr error
	now     func() time.Time
}

// NewApp builds the dashboard around a refresh loop.
func NewApp(loop *refresh.Loop) *App {
	a := &App{
		loop:     loop,
		tviewApp: tview.NewApplication(),
		logs:     NewLogManager(100),
		now:      time.Now,
	}
	a.setupUI()
	return a
}

func (a *App) setupUI() {
	a.table = tview.NewTable().SetBorders(false)
	a.table.SetBorder(true).SetTitle(" Primary Flight Display ")

	a.status = tview.NewTextView().SetDynamicColors(true)
	a.status.SetBorder(true).SetTitle(" Status ")
	a.status.SetText("[gray]Waiting for telemetry...[-]")

	a.controls = tview.NewTextView().SetDynamicColors(true)
	a.controls.SetBorder(true).SetTitle(" Controls ")
	a.controls.SetText(`[yellow]DISPLAY[-]
  [white]p[-]       Pause / resume
  [white]↑/↓[-]     Scroll

[yellow]CONTROL[-]
  [white]q, ESC[-]  Quit`)

	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.status, 7, 0, false).
		AddItem(a.controls, 8, 0, false).
		AddItem(a.logs.View(), 0, 1, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.table, 0, 3, true).
		AddItem(sidebar, 0, 2, false)

	a.tviewApp.SetRoot(root, true)
	a.tviewApp.SetInputCapture(a.handleKeyboard)
}

func (a *App) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyEscape || event.Rune() == 'q':
		a.tviewApp.Stop()
		return nil
	case event.Rune() == 'p':
		a.togglePause()
		return nil
	}
	return event
}

func (a *App) togglePause() {
	a.mu.Lock()
	a.paused = !a.paused
	paused := a.paused
	a.mu.Unlock()

	if paused {
		a.logs.Add(LogLevelInfo, "Display paused")
	} else {
		a.logs.Add(LogLevelInfo, "Display resumed")
	}
}

// Run shows the dashboard until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	updates, unsubscribe := a.loop.Subscribe()
	defer unsubscribe()

	go func() {
		<-ctx.Done()
		a.tviewApp.Stop()
	}()
	go a.consume(updates)

	a.logs.Add(LogLevelInfo, "Dashboard started")
	return a.tviewApp.Run()
}

func (a *App) consume(updates <-chan *pfd.Display) {
	for d := range updates {
		if !a.accept(d) {
			continue
		}
		a.tviewApp.QueueUpdateDraw(func() {
			a.show(d)
		})
	}
}

// accept records a published display and reports whether it should be
// drawn. Refresh errors are logged once per change.
func (a *App) accept(d *pfd.Display) bool {
	_, err := a.loop.Current()

	a.mu.Lock()
	changed := !sameError(err, a.lastErr)
	a.lastErr = err
	paused := a.paused
	if !paused {
		a.frames++
	}
	a.mu.Unlock()

	if changed {
		if err != nil {
			a.logs.Add(LogLevelError, "Refresh failed: %v", err)
		} else {
			a.logs.Add(LogLevelInfo, "Telemetry %s", d.VehicleID)
		}
	}
	return !paused
}

func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return errors.Is(a, b) || a.Error() == b.Error()
}

func (a *App) show(d *pfd.Display) {
	fillTable(a.table, displayRows(d))

	a.mu.Lock()
	frames := a.frames
	a.mu.Unlock()
	a.status.SetText(statusText(d, frames, a.now()))
}

// statusText summarises the vehicle, clock and snapshot age.
func statusText(d *pfd.Display, frames int64, now time.Time) string {
	return fmt.Sprintf("[yellow]VEHICLE:[-] [white]%s[-]\n"+
		"[gray]Clock:[-]    [white]%s[-]\n"+
		"[gray]Snapshot:[-] [white]%s[-]\n"+
		"[gray]Frames:[-]   [white]%s[-]",
		d.VehicleID,
		d.Clock.Format("2006-01-02 15:04:05"),
		humanize.RelTime(d.Timestamp, now, "old", "ahead"),
		humanize.Comma(frames),
	)
}
