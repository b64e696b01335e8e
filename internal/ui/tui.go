// Package ui provides a read-only terminal viewer for todo.txt files.
package ui

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/HannesFeil/totui/internal/config"
	"github.com/HannesFeil/totui/todotxt"
)

// statusFilter narrows the item list by completion state.
type statusFilter int

const (
	filterAll statusFilter = iota
	filterPending
	filterDone
)

func (f statusFilter) String() string {
	switch f {
	case filterPending:
		return "pending"
	case filterDone:
		return "done"
	default:
		return "all"
	}
}

// RunTUI starts the viewer for the given todo file. The viewer only
// reads: it re-parses the file on a tick and on demand, and never
// writes it back.
func RunTUI(ctx context.Context, cfg *config.Config, todoPath string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newModel(cfg, todoPath)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	cfg          *config.Config
	todoPath     string
	tickInterval time.Duration

	items   []todotxt.Item
	loadErr error

	filter     statusFilter
	contexts   []string // distinct @contexts of the current file
	contextIdx int      // index into contexts plus one, 0 = no filter
	showHelp   bool
}

type tickMsg time.Time

func newModel(cfg *config.Config, todoPath string) *model {
	interval := time.Duration(cfg.TickSeconds) * time.Second
	return &model{
		cfg:          cfg,
		todoPath:     todoPath,
		tickInterval: interval,
	}
}

func (m *model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = filterPending
			return m, nil
		case "2":
			m.filter = filterDone
			return m, nil
		case "0":
			m.filter = filterAll
			return m, nil
		case "c":
			m.cycleContext(1)
			return m, nil
		case "C":
			m.contextIdx = 0
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	writeTitle(&b, m.todoPath)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading todo file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	visible := m.visibleItems()
	writeOverview(&b, m.items, visible)
	writeFilterLine(&b, m.filter, m.currentContext())
	writeItems(&b, visible)
	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads and re-parses the todo file.
func (m *model) refresh() {
	data, err := os.ReadFile(m.todoPath)
	if err != nil {
		m.loadErr = err
		m.items = nil
		return
	}
	items, err := todotxt.ParseDocument(string(data))
	if err != nil {
		m.loadErr = err
		m.items = nil
		return
	}
	m.loadErr = nil
	m.items = items
	m.contexts = distinctContexts(items)
	if m.contextIdx > len(m.contexts) {
		m.contextIdx = 0
	}
}

// cycleContext steps through the file's contexts, wrapping past the
// last one back to "no filter".
func (m *model) cycleContext(step int) {
	if len(m.contexts) == 0 {
		m.contextIdx = 0
		return
	}
	m.contextIdx = (m.contextIdx + step) % (len(m.contexts) + 1)
	if m.contextIdx < 0 {
		m.contextIdx += len(m.contexts) + 1
	}
}

// currentContext returns the active context filter, or "" for none.
func (m *model) currentContext() string {
	if m.contextIdx == 0 || m.contextIdx > len(m.contexts) {
		return ""
	}
	return m.contexts[m.contextIdx-1]
}

// visibleItems applies the status and context filters.
func (m *model) visibleItems() []todotxt.Item {
	ctx := m.currentContext()
	var visible []todotxt.Item
	for _, item := range m.items {
		if m.filter == filterPending && item.Completed {
			continue
		}
		if m.filter == filterDone && !item.Completed {
			continue
		}
		if ctx != "" && !hasContext(item, ctx) {
			continue
		}
		visible = append(visible, item)
	}
	return visible
}

func hasContext(item todotxt.Item, name string) bool {
	for _, c := range item.Contexts() {
		if c == name {
			return true
		}
	}
	return false
}

// distinctContexts collects the sorted distinct @context names of all
// items.
func distinctContexts(items []todotxt.Item) []string {
	seen := make(map[string]bool)
	for _, item := range items {
		for _, c := range item.Contexts() {
			seen[c] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeTitle(b *strings.Builder, path string) {
	title := "totui - " + path
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, all, visible []todotxt.Item) {
	done := 0
	for _, item := range all {
		if item.Completed {
			done++
		}
	}
	fmt.Fprintf(b, "Items: %d  Pending: %d  Done: %d  Shown: %d\n\n",
		len(all), len(all)-done, done, len(visible))
}

func writeFilterLine(b *strings.Builder, filter statusFilter, ctx string) {
	if filter == filterAll && ctx == "" {
		return
	}
	b.WriteString("Filter: " + filter.String())
	if ctx != "" {
		b.WriteString(" @" + ctx)
	}
	b.WriteString("\n\n")
}

func writeItems(b *strings.Builder, items []todotxt.Item) {
	if len(items) == 0 {
		b.WriteString("  No items.\n\n")
		return
	}
	for _, item := range items {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		fmt.Fprintf(b, "  [%s] %s\n", mark, item.String())
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keys:\n\n")
	b.WriteString("  1       show pending items\n")
	b.WriteString("  2       show done items\n")
	b.WriteString("  0       show all items\n")
	b.WriteString("  c       cycle context filter\n")
	b.WriteString("  C       clear context filter\n")
	b.WriteString("  r, f5   reload the file\n")
	b.WriteString("  h, ?    toggle this help\n")
	b.WriteString("  q       quit\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("q quit - h help - 1/2/0 status - c context\n")
}
