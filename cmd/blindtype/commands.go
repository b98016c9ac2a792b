package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/blindtype/internal/config"
	"github.com/verte-zerg/blindtype/internal/model"
	"github.com/verte-zerg/blindtype/internal/results"
	"github.com/verte-zerg/blindtype/internal/stats"
	"github.com/verte-zerg/blindtype/internal/store"
	"github.com/verte-zerg/blindtype/internal/texts"
)

const terminalWidthBackup = 80

var (
	resultsLetter string

	resetYes     bool
	resetHistory bool

	historySince  string
	historyLast   int
	historyWindow int
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# blindtype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# texts = %q             # Sentence file or glob
# focus-weak = false      # Bias sentence choice toward weak letters
# weak-top = %d           # Number of weak letters to focus on
# weak-factor = %.1f      # Weight factor for weak letters
# weak-window = %d        # Number of recent sessions to compute weak letters
# history = true          # Record sessions in the history database

[texts]
# endpoint = %q
# model = %q
# count = %d
# api-key-env = %q      # Environment variable holding the API key

[log]
# level = "warn"          # debug, info, warn or error
`,
		config.DefaultTextsPath(),
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		texts.DefaultEndpoint,
		texts.DefaultModel,
		texts.DefaultCount,
		texts.DefaultAPIKeyEnv,
	)
}

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show aggregated typing results",
		Args:  cobra.NoArgs,
		RunE:  runResultsCmd,
	}
	cmd.Flags().StringVar(&resultsLetter, "letter", "", "show the breakdown of one letter")
	return cmd
}

func runResultsCmd(cmd *cobra.Command, _ []string) error {
	st := results.New(config.DefaultResultsPath())
	out := cmd.OutOrStdout()

	if resultsLetter != "" {
		if utf8.RuneCountInString(resultsLetter) != 1 {
			return fmt.Errorf("--letter must be a single character")
		}
		letter, _ := utf8.DecodeRuneInString(resultsLetter)
		d, err := st.LoadLetter(letter)
		if errors.Is(err, results.ErrLetterNotFound) {
			return writeLine(out, "No data for letter %q", stats.LetterLabel(resultsLetter))
		}
		if err != nil {
			return err
		}
		return renderLetterDisplay(cmd, d)
	}

	d := st.LoadForDisplay()
	if len(d.Letters) == 0 {
		return writeLine(out, "No results yet.")
	}
	if err := writeLine(out, "WPM: %.1f", d.WPM); err != nil {
		return err
	}
	if err := writeLine(out, "Accuracy: %.1f%%", d.TotalAccuracy); err != nil {
		return err
	}
	if err := writeLine(out, ""); err != nil {
		return err
	}
	for _, la := range d.Letters {
		if err := writeLine(out, "%-8s %5.1f%%  %d", stats.LetterLabel(string(la.Letter)), la.Accuracy, la.Presses); err != nil {
			return err
		}
	}
	return nil
}

func renderLetterDisplay(cmd *cobra.Command, d results.LetterDisplay) error {
	out := cmd.OutOrStdout()
	if err := writeLine(out, "Letter %s: %.1f%% over %d presses", stats.LetterLabel(string(d.Letter)), d.Accuracy, d.Presses); err != nil {
		return err
	}
	for _, share := range d.Shares {
		if share.Pressed == d.Letter {
			continue
		}
		if err := writeLine(out, "  %-8s %5.1f%%  %d", stats.LetterLabel(string(share.Pressed)), share.Share, share.Count); err != nil {
			return err
		}
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete aggregated typing results",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&resetHistory, "history", false, "also clear the session history")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		var confirm bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Delete typing results?").
					Description(resetDescription()).
					Affirmative("Yes, delete").
					Negative("No, keep them").
					Value(&confirm),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("failed to ask for confirmation: %w", err)
		}
		if !confirm {
			return writeLine(cmd.OutOrStdout(), "Cancelled")
		}
	}

	if err := results.New(config.DefaultResultsPath()).Reset(); err != nil {
		return err
	}
	if resetHistory {
		st, err := store.Open(config.DefaultHistoryPath())
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer func() { _ = st.Close() }()
		if err := st.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
	}
	return writeLine(cmd.OutOrStdout(), "Results deleted.")
}

func resetDescription() string {
	if resetHistory {
		return "The aggregated results and the session history will be removed."
	}
	return "The aggregated results will be removed. Session history is kept."
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&historyWindow, "window", defaultCurveWindow, "moving average window")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultHistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() { _ = st.Close() }()

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build history: %w", err)
	}
	if len(report.Sessions) == 0 {
		return writeLine(cmd.OutOrStdout(), "No sessions recorded yet.")
	}
	return report.Render(cmd.OutOrStdout(), cfg.CurveWindow, terminalWidth())
}

func historyConfig() (model.HistoryConfig, error) {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if historyWindow <= 0 {
		return model.HistoryConfig{}, fmt.Errorf("--window must be > 0")
	}
	return model.HistoryConfig{Since: sinceTime, Last: historyLast, CurveWindow: historyWindow}, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func newTextsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texts",
		Short: "Manage practice sentences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "fetch",
		Short: "Fetch new practice sentences",
		Args:  cobra.NoArgs,
		RunE:  runTextsFetchCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the practice sentences",
		Args:  cobra.NoArgs,
		RunE:  runTextsListCmd,
	})
	return cmd
}

func runTextsFetchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	target := fetchTarget(textsPattern(fileCfg))
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	sentences, err := newFetcher(fileCfg).FetchTo(ctx, target)
	if err != nil {
		return err
	}
	return writeLine(cmd.OutOrStdout(), "Wrote %d sentences to %s", len(sentences), target)
}

func runTextsListCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	sentences, _, err := texts.LoadOrDefault(textsPattern(fileCfg))
	if err != nil {
		return err
	}
	for _, s := range sentences {
		if err := writeLine(cmd.OutOrStdout(), "%s", s); err != nil {
			return err
		}
	}
	return nil
}

func textsPattern(fileCfg config.FileConfig) string {
	pattern := config.DefaultTextsPath()
	applyValue(&pattern, fileCfg.Practice.Texts)
	return pattern
}
