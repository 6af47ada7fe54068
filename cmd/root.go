package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"opostudy/internal/app"
	"opostudy/internal/config"
	"opostudy/internal/explain"
	"opostudy/internal/mistakes"
	"opostudy/internal/provider"
	"opostudy/internal/session"
	"opostudy/internal/stats"
	"opostudy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "opostudy",
	Short: "Terminal study companion for competitive exams",
	Long:  "OpoStudy — exam simulations, block drills and a mistake review queue, in your terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides OPOSTUDY_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(mistakesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then OPOSTUDY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the SQLite store for a command invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg := config.FromEnv()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	tracker := stats.NewTracker(st.StatsRepo())
	ledger := mistakes.NewLedger(st.MistakesRepo(), cfg.LookbackDays)

	bank, err := provider.NewClient(cfg.ProviderURL, cfg.ProviderKey)
	if err != nil {
		return fmt.Errorf("question bank: %w (set OPOSTUDY_PROVIDER_URL and OPOSTUDY_PROVIDER_KEY)", err)
	}

	composer := session.NewComposer(bank, ledger)
	evaluator := session.NewEvaluator(tracker, ledger)

	// AI explanations are optional; the app works without a key.
	var explainer explain.Explainer
	if cfg.Explain.APIKey != "" {
		explainer, err = explain.NewOpenAI(cfg.Explain)
		if err != nil {
			fmt.Fprintln(os.Stderr, "AI explanations not configured:", err)
			explainer = nil
		}
	}

	return app.Run(composer, evaluator, tracker, ledger, st, explainer)
}
