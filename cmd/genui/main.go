package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"genui/cmd/genui/chat"
	"genui/internal/config"
	"genui/internal/engine"
	"genui/internal/logging"
	"genui/internal/speech"
	"genui/internal/store"
)

const version = "0.3.0"

var (
	// Global flags
	verbose   bool
	workspace string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "genui",
	Short: "genui - a voice-driven generative interface",
	Long: `genui is a conversational productivity and travel assistant.

Speak or type natural language ("remind me to buy milk", "schedule
dentist tomorrow at 3pm", "plan a trip") and the interface reshapes
itself around the request: tasks, habits, calendar, notes, trip
planning.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "genui" && cmd.CalledAs() == "genui" {
			return nil
		}

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// sayCmd processes a single utterance without the TUI
var sayCmd = &cobra.Command{
	Use:   "say [utterance]",
	Short: "Interpret a single utterance and print the outcome",
	Long: `Runs one utterance through the interpretation pipeline and prints
the assistant's response. Useful for scripting and for inspecting how
an utterance is understood.

Example:
  genui say remind me to buy milk high priority`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSay,
}

// historyCmd prints the utterance transcript
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently interpreted utterances",
	RunE:  runHistory,
}

var historyLimit int

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the genui version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("genui " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")

	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// runInteractive starts the interactive interface
func runInteractive() error {
	p := tea.NewProgram(
		chat.InitChat(chat.Config{Workspace: resolveWorkspace()}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// runSay interprets one utterance with a throwaway engine
func runSay(cmd *cobra.Command, args []string) error {
	ws := resolveWorkspace()
	logging.Initialize(ws)
	defer logging.CloseAll()

	cfg, err := config.Load(config.Path(ws))
	if err != nil {
		return err
	}

	var history *store.History
	if h, err := store.OpenHistory(cfg.HistoryPath(ws)); err == nil {
		history = h
		defer history.Close()
	} else {
		logger.Warn("history unavailable", zap.Error(err))
	}

	eng := engine.New(engine.Options{
		Speaker:   speech.Writer{W: os.Stdout},
		History:   history,
		HabitTime: cfg.Assistant.HabitTime,
	})

	utterance := strings.Join(args, " ")
	logger.Debug("interpreting", zap.String("utterance", utterance))

	res := eng.Process(utterance)
	if !res.Handled {
		fmt.Println("(ignored as noise)")
		return nil
	}
	fmt.Printf("action: %s\nlayout: %s\ntab: %s\n", res.Action, res.Layout, res.Tab)
	return nil
}

// runHistory prints the recent utterance transcript
func runHistory(cmd *cobra.Command, args []string) error {
	ws := resolveWorkspace()
	cfg, err := config.Load(config.Path(ws))
	if err != nil {
		return err
	}

	h, err := store.OpenHistory(cfg.HistoryPath(ws))
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer h.Close()

	entries, err := h.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No utterances recorded yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-24s %q\n", e.HeardAt.Format("2006-01-02 15:04"), e.Action, e.Utterance)
	}
	return nil
}
