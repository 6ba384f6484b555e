package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/docmd/internal/config"
	"github.com/gubarz/docmd/internal/content"
	"github.com/gubarz/docmd/internal/executor"
	"github.com/gubarz/docmd/internal/parser"
	"github.com/gubarz/docmd/internal/ui"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "docmd [path|url]",
	Short: "Browse Markdown documentation in the terminal",
	Long: `Documentation browser for a folder of Markdown files.

Sections are discovered from the folder (or the configured file list for a
remote base URL), ordered by their frontmatter, and shown with a table of
contents that follows your scroll position.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowser,
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render one Markdown file to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var listCmd = &cobra.Command{
	Use:   "list [path|url]",
	Short: "List discovered sections in navigation order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(renderCmd, listCmd)

	rootCmd.PersistentFlags().StringP("start", "s", "", "Section shown first (default getting-started)")
	rootCmd.PersistentFlags().String("theme", "", "Color theme: dark, light")
	rootCmd.PersistentFlags().String("log-file", "", "Write debug logs to this file")
	rootCmd.PersistentFlags().BoolP("benchmark", "b", false, "Benchmark discovery and exit")
	rootCmd.PersistentFlags().BoolP("watch", "w", false, "Reload the page when its file changes")

	renderCmd.Flags().Bool("toc", false, "Print the table of contents instead of the page")
	renderCmd.Flags().Bool("frontmatter", false, "Print the frontmatter instead of the page")
	renderCmd.Flags().IntP("width", "W", 80, "Wrap width")

	viper.BindPFlag("start", rootCmd.PersistentFlags().Lookup("start"))
	viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("watch", rootCmd.PersistentFlags().Lookup("watch"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// setupLogging routes the std logger to the configured file, or drops it so
// the alternate screen stays clean
func setupLogging() (func(), error) {
	path := config.GetLogFile()
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "docmd")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return func() { f.Close() }, nil
}

// openStore resolves the content location from args or config and wraps it
// with the document cache
func openStore(args []string) (string, *content.CachedStore, error) {
	location := config.GetPath()
	if len(args) > 0 {
		location = args[0]
		config.SetPath(location)
	}

	store, err := content.Open(location, config.GetFiles(), config.GetHTTPTimeout())
	if err != nil {
		return location, nil, fmt.Errorf("opening %s: %w", location, err)
	}
	cached, err := content.NewCachedStore(store, config.GetCacheSize())
	if err != nil {
		return location, nil, err
	}
	return location, cached, nil
}

func runBrowser(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	location, store, err := openStore(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if benchmark, _ := cmd.Flags().GetBool("benchmark"); benchmark {
		return runBenchmark(ctx, store)
	}

	opts := ui.Options{
		Store:    store,
		Executor: executor.NewExecutor(),
		Start:    config.GetStart(),
		Location: location,
		Ctx:      ctx,
	}

	if dir, ok := store.Store.(*content.DirStore); ok && config.GetWatch() {
		changes, err := content.Watch(ctx, dir.Root())
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			opts.Changes = changes
		}
	}

	return ui.Run(opts)
}

func runBenchmark(ctx context.Context, store content.Store) error {
	start := time.Now()
	sections, err := content.Discover(ctx, store)
	if err != nil {
		return fmt.Errorf("discovery: %w", err)
	}

	var size int
	var headings int
	for _, s := range sections {
		raw, err := store.Fetch(ctx, s.File)
		if err != nil {
			continue
		}
		size += len(raw)
		_, body := parser.ParseFrontmatter(raw)
		headings += len(parser.HeadingIDs(parser.Render(body)))
	}
	elapsed := time.Since(start)

	// Force GC and get memory stats
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("Loaded %d sections (%s, %d headings) in %v\n",
		len(sections), humanize.Bytes(uint64(size)), headings, elapsed)
	fmt.Printf("Memory: Alloc=%s, TotalAlloc=%s, Sys=%s, HeapObjects=%d\n",
		humanize.Bytes(m.Alloc), humanize.Bytes(m.TotalAlloc), humanize.Bytes(m.Sys), m.HeapObjects)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	fm, body := parser.ParseFrontmatter(string(data))

	if show, _ := cmd.Flags().GetBool("frontmatter"); show {
		printFrontmatter(cmd.OutOrStdout(), fm)
		return nil
	}

	if show, _ := cmd.Flags().GetBool("toc"); show {
		for _, item := range parser.ExtractTOC(body) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s #%s\n",
				strings.Repeat("  ", item.Level-1), item.Title, item.ID)
		}
		return nil
	}

	width, _ := cmd.Flags().GetInt("width")
	ui.RefreshStyles(config.GetTheme())
	text, _ := ui.RenderBlocks(parser.Render(body), width)
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func printFrontmatter(w io.Writer, fm parser.Frontmatter) {
	keys := make([]string, 0, len(fm))
	for k := range fm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, fm[k].String())
	}
}

func runList(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	location, store, err := openStore(args)
	if err != nil {
		return err
	}

	sections, err := content.Discover(cmd.Context(), store)
	if err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	if len(sections) == 0 {
		return fmt.Errorf("no content files found in %s", location)
	}

	groups := content.GroupByCategory(sections)
	showCategories := content.HasCategories(groups)
	out := cmd.OutOrStdout()
	for _, g := range groups {
		if showCategories {
			fmt.Fprintf(out, "%s\n", g.Category)
		}
		for _, s := range g.Sections {
			fmt.Fprintf(out, "  %-24s %-32s %8s\n", s.ID, s.Title, humanize.Bytes(uint64(s.Size)))
		}
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: %v (check the path or the files list)\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
