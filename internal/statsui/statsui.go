// Package statsui is an interactive terminal explorer over a trie's
// structural statistics, adapted from the teacher's internal/services/cui
// panels: a search+highlight UI there becomes a single "refresh stats"
// panel here, since there is no query to run, only a tree to inspect.
package statsui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jroimartin/gocui"

	"fts-radix/internal/lib/logger/sl"
	"fts-radix/internal/trie"
	"fts-radix/internal/trieinfo"
)

// UI is the stats explorer; one instance wraps one trie for the lifetime
// of the process.
type UI struct {
	cui *gocui.Gui
	t   *trie.Trie
	log *slog.Logger
}

// New constructs a UI over t.
func New(log *slog.Logger, t *trie.Trie) *UI {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Error("failed to create GUI", sl.Err(err))
		os.Exit(1)
	}
	return &UI{cui: g, t: t, log: log}
}

// Close releases the underlying terminal GUI.
func (u *UI) Close() {
	u.cui.Close()
}

// Start runs the UI's main loop until the user quits with Ctrl-C.
func (u *UI) Start() error {
	u.cui.Cursor = true
	u.cui.SetManagerFunc(u.layout)
	defer u.cui.Close()

	if err := u.cui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		u.log.Error("failed to set keybinding", sl.Err(err))
	}
	if err := u.cui.SetKeybinding("", 'r', gocui.ModNone, u.refresh); err != nil {
		u.log.Error("failed to set keybinding", sl.Err(err))
	}

	if err := u.cui.MainLoop(); err != nil && err != gocui.ErrQuit {
		u.log.Error("GUI main loop failed", sl.Err(err))
	}
	return nil
}

func (u *UI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxX < 10 || maxY < 6 {
		return fmt.Errorf("terminal window is too small")
	}

	if v, err := g.SetView("stats", 0, 0, maxX-1, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Trie Stats (press r to refresh, Ctrl-C to quit)"
		v.Wrap = true
		u.render(v)
		_, _ = g.SetCurrentView("stats")
	}
	return nil
}

func (u *UI) refresh(g *gocui.Gui, _ *gocui.View) error {
	v, err := g.View("stats")
	if err != nil {
		return err
	}
	v.Clear()
	u.render(v)
	return nil
}

func (u *UI) render(v *gocui.View) {
	s := trieinfo.Compute(u.t)
	fmt.Fprintf(v, "\033[33mNodes:\033[0m %d\n", s.Nodes)
	fmt.Fprintf(v, "\033[32mExternal (words):\033[0m %d\n", s.ExternalNodes)
	fmt.Fprintf(v, "\033[32mInternal:\033[0m %d\n", s.InternalNodes)
	fmt.Fprintf(v, "\033[32mMax depth:\033[0m %d\n", s.MaxDepth)
	fmt.Fprintf(v, "\033[32mAvg depth:\033[0m %.2f\n", s.AvgDepth)
	fmt.Fprintf(v, "\033[32mTotal rank:\033[0m %d\n", s.TotalRank)
}

func quit(*gocui.Gui, *gocui.View) error {
	return gocui.ErrQuit
}
