// Package cmd implements the CLI command structure for totui.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/HannesFeil/totui/internal/config"
	"github.com/HannesFeil/totui/internal/export"
	"github.com/HannesFeil/totui/internal/logging"
	"github.com/HannesFeil/totui/internal/ui"
	"github.com/HannesFeil/totui/todotxt"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the totui CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("totui", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewConsoleFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)

	// Determine the subcommand. With no args, or a leading flag,
	// default to "check".
	subcommand := "check"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "check":
		return checkCommand(ctx, cfg, logger, remainingArgs)
	case "ls":
		return lsCommand(ctx, cfg, logger, remainingArgs)
	case "contexts":
		return contextsCommand(ctx, cfg, logger, remainingArgs)
	case "projects":
		return projectsCommand(ctx, cfg, logger, remainingArgs)
	case "export":
		return exportCommand(ctx, cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// An unrecognized command that names an existing file is
		// treated as a todo file path for check.
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.TodoFile = subcommand
			return checkCommand(ctx, cfg, logger, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// logger is the narrow logging surface the commands need.
type logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
}

// resolveTodoPath picks the todo file for a command: the positional
// argument if given, else the configured file.
func resolveTodoPath(cfg *config.Config, remaining []string) (string, error) {
	if len(remaining) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		return remaining[0], nil
	}
	return cfg.TodoFile, nil
}

// loadItems reads and parses the todo file, using the parallel parser
// when more than one worker is configured.
func loadItems(ctx context.Context, cfg *config.Config, log logger, path string) ([]todotxt.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading todo file: %w", err)
	}
	log.Debug("parsing todo file", "path", path, "workers", cfg.Workers)
	items, err := todotxt.ParseDocumentParallel(ctx, string(data), cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return items, nil
}

// checkCommand parses the todo file and reports whether it is valid.
func checkCommand(ctx context.Context, cfg *config.Config, log logger, args []string) error {
	fs := flag.NewFlagSet("totui check", flag.ContinueOnError)
	quiet := fs.Bool("q", false, "Suppress output, use the exit code only")
	workers := fs.Int("workers", cfg.Workers, "Parallel parse workers (1 = sequential)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Workers = *workers
	todoPath, err := resolveTodoPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	items, err := loadItems(ctx, cfg, log, todoPath)
	if err != nil {
		return err
	}
	log.Info("todo file is valid", "path", todoPath, "items", len(items))
	if !*quiet {
		fmt.Printf("OK: %d items\n", len(items))
	}
	return nil
}

// itemFilter selects items for ls.
type itemFilter struct {
	context string
	project string
	done    bool
	pending bool
	due     string
}

func (f itemFilter) matches(item todotxt.Item) bool {
	if f.done && !item.Completed {
		return false
	}
	if f.pending && item.Completed {
		return false
	}
	if f.context != "" && !containsString(item.Contexts(), f.context) {
		return false
	}
	if f.project != "" && !containsString(item.Projects(), f.project) {
		return false
	}
	if f.due != "" {
		d, ok := item.DueDate()
		if !ok || d.String() != f.due {
			return false
		}
	}
	return true
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// filterItems returns the items matching f, in file order.
func filterItems(items []todotxt.Item, f itemFilter) []todotxt.Item {
	var out []todotxt.Item
	for _, item := range items {
		if f.matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// lsCommand lists items, optionally filtered.
func lsCommand(ctx context.Context, cfg *config.Config, log logger, args []string) error {
	fs := flag.NewFlagSet("totui ls", flag.ContinueOnError)
	var filter itemFilter
	fs.StringVar(&filter.context, "context", "", "Only items with this @context")
	fs.StringVar(&filter.project, "project", "", "Only items with this +project")
	fs.BoolVar(&filter.done, "done", false, "Only completed items")
	fs.BoolVar(&filter.pending, "pending", false, "Only pending items")
	fs.StringVar(&filter.due, "due", "", "Only items due on this date (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if filter.done && filter.pending {
		return fmt.Errorf("-done and -pending are mutually exclusive")
	}
	todoPath, err := resolveTodoPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	items, err := loadItems(ctx, cfg, log, todoPath)
	if err != nil {
		return err
	}

	matched := filterItems(items, filter)
	if len(matched) == 0 {
		fmt.Println("No items found.")
		return nil
	}
	for _, item := range matched {
		printItem(item)
	}
	return nil
}

// printItem prints one item with a completion marker.
func printItem(item todotxt.Item) {
	mark := " "
	if item.Completed {
		mark = "x"
	}
	fmt.Printf("[%s] %s\n", mark, item.String())
}

// nameCounts tallies how many items carry each name.
func nameCounts(items []todotxt.Item, names func(todotxt.Item) []string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		seen := make(map[string]bool)
		for _, name := range names(item) {
			if !seen[name] {
				counts[name]++
				seen[name] = true
			}
		}
	}
	return counts
}

// printNameCounts prints names sorted alphabetically with a sigil and
// the number of items carrying each.
func printNameCounts(sigil string, counts map[string]int) {
	if len(counts) == 0 {
		fmt.Println("None found.")
		return
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s%s (%d)\n", sigil, name, counts[name])
	}
}

// contextsCommand lists the distinct @contexts in the file.
func contextsCommand(ctx context.Context, cfg *config.Config, log logger, args []string) error {
	fs := flag.NewFlagSet("totui contexts", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	todoPath, err := resolveTodoPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	items, err := loadItems(ctx, cfg, log, todoPath)
	if err != nil {
		return err
	}
	printNameCounts("@", nameCounts(items, todotxt.Item.Contexts))
	return nil
}

// projectsCommand lists the distinct +projects in the file.
func projectsCommand(ctx context.Context, cfg *config.Config, log logger, args []string) error {
	fs := flag.NewFlagSet("totui projects", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	todoPath, err := resolveTodoPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	items, err := loadItems(ctx, cfg, log, todoPath)
	if err != nil {
		return err
	}
	printNameCounts("+", nameCounts(items, todotxt.Item.Projects))
	return nil
}

// exportCommand writes the parsed file as JSON.
func exportCommand(ctx context.Context, cfg *config.Config, log logger, args []string) error {
	fs := flag.NewFlagSet("totui export", flag.ContinueOnError)
	output := fs.String("o", "", "Output file (default stdout)")
	validate := fs.Bool("validate", false, "Validate the output against the bundled schema")

	if err := fs.Parse(args); err != nil {
		return err
	}
	todoPath, err := resolveTodoPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	items, err := loadItems(ctx, cfg, log, todoPath)
	if err != nil {
		return err
	}

	doc := export.FromItems(items)
	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	if *validate {
		if errs := export.Validate(data); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "schema: %v\n", e)
			}
			return fmt.Errorf("export failed schema validation with %d errors", len(errs))
		}
		log.Debug("export passed schema validation")
	}

	if *output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	log.Info("wrote export", "path", *output, "items", len(items))
	return nil
}

// tuiCommand launches the read-only terminal viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("totui tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	todoPath, err := resolveTodoPath(cfg, fs.Args())
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, cfg, todoPath)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("totui version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Totui - A todo.txt parser and viewer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  totui [command] [options] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  check [file]     Parse the todo file and report errors (default command)")
	fmt.Fprintln(w, "  ls [file]        List items, optionally filtered")
	fmt.Fprintln(w, "  contexts [file]  List the distinct @contexts")
	fmt.Fprintln(w, "  projects [file]  List the distinct +projects")
	fmt.Fprintln(w, "  export [file]    Write the parsed file as JSON")
	fmt.Fprintln(w, "  tui [file]       Launch the read-only terminal viewer")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Options (use with 'check' command):")
	fmt.Fprintln(w, "  -q    Suppress output, use the exit code only")
	fmt.Fprintln(w, "  -workers int")
	fmt.Fprintln(w, "        Parallel parse workers (1 = sequential)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -context string")
	fmt.Fprintln(w, "        Only items with this @context")
	fmt.Fprintln(w, "  -project string")
	fmt.Fprintln(w, "        Only items with this +project")
	fmt.Fprintln(w, "  -done")
	fmt.Fprintln(w, "        Only completed items")
	fmt.Fprintln(w, "  -pending")
	fmt.Fprintln(w, "        Only pending items")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Only items due on this date (YYYY-MM-DD)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output file (default stdout)")
	fmt.Fprintln(w, "  -validate")
	fmt.Fprintln(w, "        Validate the output against the bundled schema")
}
