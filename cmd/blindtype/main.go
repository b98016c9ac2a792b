// Package main provides the CLI entrypoint for blindtype.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/blindtype/internal/config"
	"github.com/verte-zerg/blindtype/internal/engine"
	"github.com/verte-zerg/blindtype/internal/log"
	"github.com/verte-zerg/blindtype/internal/model"
	"github.com/verte-zerg/blindtype/internal/results"
	"github.com/verte-zerg/blindtype/internal/stats"
	"github.com/verte-zerg/blindtype/internal/store"
	"github.com/verte-zerg/blindtype/internal/texts"
	"github.com/verte-zerg/blindtype/internal/tui"
)

const (
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
)

var (
	practiceTexts      string
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int
	practiceNoHistory  bool

	logLevel string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "blindtype",
		Short:             "Terminal blind typing trainer",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupAmbient,
		RunE:              runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&practiceTexts, "texts", config.DefaultTextsPath(), "sentence file or glob")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias sentence choice toward weak letters")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak letters to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak letters")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak letters")
	rootCmd.Flags().BoolVar(&practiceNoHistory, "no-history", false, "do not record sessions in the history database")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newResultsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTextsCmd())

	return rootCmd
}

// setupAmbient loads the .env file and configures the stderr logger.
func setupAmbient(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(config.DefaultEnvPath()); err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetDefault(log.New(log.Options{Level: lvl, Prefix: "blindtype", Output: cmd.ErrOrStderr()}))
	return nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := practiceConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	sentences, usedDefault, err := texts.LoadOrDefault(cfg.TextsPattern)
	if err != nil {
		return fmt.Errorf("failed to load sentences: %w", err)
	}
	if usedDefault {
		log.Info("no sentence file found, using built-in sentences", "texts", cfg.TextsPattern)
	}

	var history *store.Store
	weakSet := map[rune]struct{}{}
	if cfg.History {
		history, err = store.Open(config.DefaultHistoryPath())
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer func() {
			if cerr := history.Close(); cerr != nil {
				log.Warn("failed to close history", "err", cerr)
			}
		}()
		if cfg.FocusWeak {
			weakSet = loadWeakSet(cmd.Context(), history, cfg)
		}
	} else if cfg.FocusWeak {
		log.Warn("--focus-weak needs session history; ignoring")
	}

	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logFile, err := log.OpenFile(config.DefaultLogPath(), lvl)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	m := tui.NewModel(tui.Options{
		Config:    cfg,
		Engine:    engine.New(nil),
		Results:   results.New(config.DefaultResultsPath()),
		History:   history,
		Fetcher:   newFetcher(fileCfg),
		Picker:    texts.NewPicker(),
		Sentences: sentences,
		TextsPath: fetchTarget(cfg.TextsPattern),
		WeakSet:   weakSet,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// practiceConfig merges the config file under the practice flags. Flags set on
// the command line win.
func practiceConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	applyStringConfig(cmd, "texts", &practiceTexts, fileCfg.Practice.Texts)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)

	history := !practiceNoHistory
	if fileCfg.Practice.History != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.Practice.History
	}

	cfg := model.Config{
		TextsPattern: practiceTexts,
		FocusWeak:    practiceFocusWeak,
		WeakTop:      practiceWeakTop,
		WeakFactor:   practiceWeakFactor,
		WeakWindow:   practiceWeakWindow,
		History:      history,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func loadWeakSet(ctx context.Context, st *store.Store, cfg model.Config) map[rune]struct{} {
	if ctx == nil {
		ctx = context.Background()
	}
	aggs, err := st.GetWeakLetters(ctx, cfg.WeakWindow)
	if err != nil {
		log.Warn("failed to load weak letters", "err", err)
		return map[rune]struct{}{}
	}
	weakSet := stats.SelectWeakLetters(aggs, cfg.WeakTop)
	if len(weakSet) == 0 {
		log.Info("no history for weak-letter focus yet; picking sentences uniformly")
	}
	return weakSet
}

func newFetcher(fileCfg config.FileConfig) *texts.Fetcher {
	fc := model.FetchConfig{}
	applyValue(&fc.Endpoint, fileCfg.Texts.Endpoint)
	applyValue(&fc.Model, fileCfg.Texts.Model)
	applyValue(&fc.Count, fileCfg.Texts.Count)
	applyValue(&fc.APIKeyEnv, fileCfg.Texts.APIKeyEnv)
	return texts.NewFetcher(fc.Endpoint, fc.Model, fc.Count, fc.APIKeyEnv)
}

// fetchTarget is the file fetched sentences are written to. A glob cannot be
// written, so the default sentence file is used instead.
func fetchTarget(pattern string) string {
	if pattern == "" || strings.ContainsAny(pattern, "*?[{") {
		return config.DefaultTextsPath()
	}
	return texts.ExpandHome(pattern)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.TextsPattern) == "" {
		return fmt.Errorf("--texts must not be empty")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func applyValue[T any](target, value *T) {
	if value == nil {
		return
	}
	*target = *value
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if cmd.Flags().Changed(name) {
		return
	}
	applyValue(target, value)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if cmd.Flags().Changed(name) {
		return
	}
	applyValue(target, value)
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if cmd.Flags().Changed(name) {
		return
	}
	applyValue(target, value)
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if cmd.Flags().Changed(name) {
		return
	}
	applyValue(target, value)
}

func writeLine(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
