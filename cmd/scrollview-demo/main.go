// Command scrollview-demo shows a list of wrapped paragraphs with an absolute
// scroll offset in the title. The list position survives restarts and
// suspension (ctrl+z) through a YAML state file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/scrollview"
)

func main() {
	configFlag := flag.String("config", "scrollview.yaml", "Path to the optional configuration file")
	stateFlag := flag.String("state", "", "Path to the list state file (disabled if empty)")
	flag.Parse()

	if err := run(*configFlag, *stateFlag); err != nil {
		fmt.Fprintln(os.Stderr, "scrollview-demo:", err)
		os.Exit(1)
	}
}

func run(configPath, statePath string) error {
	cfg, err := LoadOptional(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		level, _ := cfg.logLevel()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}
	scrollview.SetLogger(logger)

	v := newView(cfg)
	restore := func() {
		ss, ok, err := loadState(statePath)
		if err == nil && ok {
			err = v.RestoreState(ss)
		}
		if err != nil {
			logger.Warn("could not restore list state", slog.String("path", statePath), slog.Any("err", err))
		}
	}
	save := func() {
		if err := saveState(statePath, v.SaveState()); err != nil {
			logger.Warn("could not save list state", slog.String("path", statePath), slog.Any("err", err))
		}
	}
	restore()

	app := scrollview.NewApplication().
		SetLifecycleFuncs(save, restore).
		SetRoot(v)
	if err := app.Run(); err != nil {
		return err
	}
	save()
	return nil
}

// demoKeyMap holds the application level keybinds.
type demoKeyMap struct {
	Quit    scrollview.Keybind
	Suspend scrollview.Keybind
}

// view is an observable list with the scroll status in its title and the
// keybinds in its footer.
type view struct {
	*scrollview.ObservableList

	items []*scrollview.TextItem
	keys  demoKeyMap
	// Status of the last gesture, kept until the next one starts.
	released string
}

func newView(cfg *Config) *view {
	v := &view{
		items: make([]*scrollview.TextItem, cfg.Items),
		keys: demoKeyMap{
			Quit:    scrollview.NewKeybind("quit", "q", "ctrl+c"),
			Suspend: scrollview.NewKeybind("shell", "ctrl+z"),
		},
	}
	for i := range v.items {
		v.items[i] = scrollview.NewTextItem(paragraph(i))
	}

	list := scrollview.NewObservableList().
		SetBuilder(v.item).
		SetGap(cfg.Gap).
		SetScrollBar(cfg.scrollBar())
	list.SetScrollViewCallbacks(scrollview.ScrollViewCallbacksFuncs{
		ScrollChanged: func(scrollY int, firstScroll, dragging bool) {
			list.SetTitle(v.status(scrollY, list.Tracker().State(), dragging))
		},
		DownMotionEvent: func() {
			v.released = ""
		},
		UpOrCancelMotionEvent: func(state scrollview.ScrollState) {
			v.released = state.String()
			list.SetTitle(v.status(list.CurrentScrollY(), state, false))
		},
	})
	if set, _ := cfg.borderSet(); set != nil {
		style, _ := cfg.borderStyle()
		list.SetBorders(scrollview.BordersAll)
		list.SetBorderSet(*set)
		list.SetBorderStyle(style)
	}

	keys := scrollview.DefaultScrollKeyMap()
	list.SetTitle(v.status(0, scrollview.ScrollStateStop, false)).
		SetTitleAlignment(scrollview.AlignmentLeft)
	list.SetFooter(" "+scrollview.ShortHelp(" • ", append(keys.Keybinds(), v.keys.Suspend, v.keys.Quit)...)+" ").
		SetFooterAlignment(scrollview.AlignmentRight)
	v.ObservableList = list
	return v
}

func (v *view) status(scrollY int, state scrollview.ScrollState, dragging bool) string {
	status := fmt.Sprintf(" %d paragraphs  scrollY %d  %s", len(v.items), scrollY, state)
	if dragging {
		status += "  dragging"
	}
	if v.released != "" {
		status += "  released " + v.released
	}
	return status + " "
}

func (v *view) item(index, cursor int) scrollview.ListItem {
	if index < 0 || index >= len(v.items) {
		return nil
	}
	item := v.items[index]
	style := tcell.StyleDefault.Foreground(scrollview.Styles.PrimaryTextColor)
	if index == cursor {
		style = style.Foreground(scrollview.Styles.SecondaryTextColor)
	}
	item.SetStyle(style)
	return item
}

func (v *view) InputHandler(event *tcell.EventKey) scrollview.Command {
	switch {
	case scrollview.Matches(event, v.keys.Quit):
		return scrollview.QuitCommand{}
	case scrollview.Matches(event, v.keys.Suspend):
		return scrollview.SuspendCommand{Func: runShell}
	}
	return v.ObservableList.InputHandler(event)
}

// runShell runs an interactive shell until it exits.
func runShell() {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	fmt.Println("scrollview-demo suspended, exit the shell to resume.")
	cmd := exec.Command(shell)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	_ = cmd.Run()
}

var words = strings.Fields(`scroll offset list item height cache viewport
	gesture layout sample visible skipped index restore suspend terminal row
	cell wrap paragraph absolute relative accumulate measure`)

// paragraph returns deterministic text whose wrapped height varies with the
// index.
func paragraph(index int) string {
	n := 4 + (index*37)%29
	if index%9 == 4 {
		n *= 4
	}
	parts := make([]string, 0, n+1)
	parts = append(parts, fmt.Sprintf("#%d", index))
	for i := range n {
		parts = append(parts, words[(index*7+i*3)%len(words)])
	}
	return strings.Join(parts, " ")
}
