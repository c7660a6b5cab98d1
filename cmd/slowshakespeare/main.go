// Package main provides the CLI entrypoint for slowshakespeare.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matt5000/slowshakespeare/internal/browse"
	"github.com/matt5000/slowshakespeare/internal/catalog"
	"github.com/matt5000/slowshakespeare/internal/render"
	"github.com/matt5000/slowshakespeare/internal/schedule"
	"github.com/matt5000/slowshakespeare/internal/settings"
	"github.com/matt5000/slowshakespeare/internal/theme"
	"github.com/matt5000/slowshakespeare/internal/tui"
)

var (
	rootSonnet   string
	rootStart    string
	rootTheme    string
	rootLines    bool
	rootSelfTest bool
	rootReview   bool

	todaySonnet   string
	todayStart    string
	todayTheme    string
	todayLines    bool
	todaySelfTest bool
	todayReview   bool
	todayWidth    int

	shareBase string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "slowshakespeare",
		Short:         "Memorize a sonnet one line per day",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRootCmd,
	}
	addDisplayFlags(rootCmd, &rootSonnet, &rootStart, &rootTheme, &rootLines, &rootSelfTest, &rootReview)

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newSonnetsCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addDisplayFlags(cmd *cobra.Command, sonnet, start, themeKey *string, lines, selfTest, review *bool) {
	cmd.Flags().StringVar(sonnet, "sonnet", catalog.DefaultID, "sonnet id (see: slowshakespeare sonnets)")
	cmd.Flags().StringVar(start, "start", "", "plan start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(themeKey, "theme", theme.DefaultKey, "color theme key")
	cmd.Flags().BoolVar(lines, "lines", false, "show line numbers")
	cmd.Flags().BoolVar(selfTest, "self-test", false, "hide today's line until revealed")
	cmd.Flags().BoolVar(review, "review", false, "force review mode")
}

// applyDisplayFlags overlays flag values onto the stored settings. Only
// flags the user actually set override the file.
func applyDisplayFlags(cmd *cobra.Command, s *settings.Settings, sonnet, start, themeKey string, lines, selfTest, review bool) error {
	flags := cmd.Flags()
	if flags.Changed("sonnet") {
		s.Sonnet = sonnet
	}
	if flags.Changed("start") {
		parsed, ok := settings.ParseDate(start)
		if !ok {
			return fmt.Errorf("invalid --start value %q (want YYYY-MM-DD)", start)
		}
		s.Start = parsed
	}
	if flags.Changed("theme") {
		s.Theme = themeKey
	}
	if flags.Changed("lines") {
		s.LineNumbers = lines
	}
	if flags.Changed("self-test") {
		s.SelfTest = selfTest
	}
	if flags.Changed("review") {
		s.ForceReview = review
	}
	return nil
}

// loadState loads the catalog and the stored settings. A broken settings
// file degrades to the defaults with a warning; a broken catalog is fatal.
func loadState(now time.Time) (*catalog.Catalog, settings.Settings, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, settings.Settings{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	s, err := settings.Load(settings.DefaultPath(), now)
	if err != nil {
		logErrf("using defaults: %v\n", err)
	}
	return cat, s, nil
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	cat, s, err := loadState(now)
	if err != nil {
		return err
	}
	if err := applyDisplayFlags(cmd, &s, rootSonnet, rootStart, rootTheme, rootLines, rootSelfTest, rootReview); err != nil {
		return err
	}
	s = s.Normalize(cat, now)

	save := func(snapshot settings.Settings) error {
		return settings.Save(settings.DefaultPath(), snapshot)
	}
	model := tui.NewModel(cat, s, save)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's line without the TUI",
		Args:  cobra.NoArgs,
		RunE:  runTodayCmd,
	}
	addDisplayFlags(cmd, &todaySonnet, &todayStart, &todayTheme, &todayLines, &todaySelfTest, &todayReview)
	cmd.Flags().IntVar(&todayWidth, "width", 0, "output width (default: terminal width)")
	return cmd
}

func runTodayCmd(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	cat, s, err := loadState(now)
	if err != nil {
		return err
	}
	if err := applyDisplayFlags(cmd, &s, todaySonnet, todayStart, todayTheme, todayLines, todaySelfTest, todayReview); err != nil {
		return err
	}
	s = s.Normalize(cat, now)

	prog := schedule.Compute(s.Start, schedule.Midnight(now), cat, s.Sonnet)
	pres := schedule.Decide(now, prog, s.Options())
	view := render.View{
		Progression:  prog,
		Presentation: pres,
		LineNumbers:  s.LineNumbers,
		SelfTest:     s.SelfTest,
		Width:        todayWidth,
	}
	if pres.Mode == schedule.Review {
		return render.Review(cmd.OutOrStdout(), view)
	}
	return render.Today(cmd.OutOrStdout(), view)
}

func newSonnetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sonnets",
		Short: "List the sonnet cycle",
		Args:  cobra.NoArgs,
		RunE:  runSonnetsCmd,
	}
}

func runSonnetsCmd(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	cat, s, err := loadState(now)
	if err != nil {
		return err
	}
	s = s.Normalize(cat, now)
	prog := schedule.Compute(s.Start, schedule.Midnight(now), cat, s.Sonnet)
	return render.Sonnets(cmd.OutOrStdout(), cat, prog.Sonnet.ID, 0)
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a sonnet interactively",
		Args:  cobra.NoArgs,
		RunE:  runBrowseCmd,
	}
}

func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	cat, s, err := loadState(now)
	if err != nil {
		return err
	}
	s = s.Normalize(cat, now)

	save := func(snapshot settings.Settings) error {
		return settings.Save(settings.DefaultPath(), snapshot)
	}
	model := browse.NewModel(cat, s, save)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run picker: %w", err)
	}
	picker, ok := final.(*browse.Model)
	if !ok {
		return nil
	}
	id, chosen := picker.Choice()
	if !chosen {
		return nil
	}
	sonnet, _ := cat.ByID(id)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Selected %s.\n", sonnet.Title()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link that carries the current plan",
		Args:  cobra.NoArgs,
		RunE:  runShareCmd,
	}
	cmd.Flags().StringVar(&shareBase, "base", "", "base URL to prepend")
	return cmd
}

func runShareCmd(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	cat, s, err := loadState(now)
	if err != nil {
		return err
	}
	s = s.Normalize(cat, now)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), settings.ShareURL(shareBase, s)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the settings schema as JSON",
		Args:  cobra.NoArgs,
		RunE:  runSchemaCmd,
	}
}

func runSchemaCmd(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	out, err := json.MarshalIndent(settings.Schema(cat), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open the settings file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := settings.DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat settings: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultSettingsTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write settings: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultSettingsTemplate() string {
	return fmt.Sprintf(`# slowshakespeare settings
# Uncomment a value to set it. The TUI writes this file when settings
# change; CLI flags override it for a single run.

# sonnet = %q              # Sonnet id (see: slowshakespeare sonnets)
# start = %q       # Plan start date (YYYY-MM-DD)
# theme = %q           # Color theme key
# line-numbers = false     # Show line numbers
# self-test = false        # Hide today's line until revealed
`,
		catalog.DefaultID,
		time.Now().Format(settings.DateLayout),
		theme.DefaultKey,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
