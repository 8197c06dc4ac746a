package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "examgen",
	Short: "Reading-comprehension exam generator",
	Long: "examgen turns a topic or a PDF into a reading-comprehension exam: a passage, " +
		"a chart of fabricated data and multiple-choice questions with answers.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := llm.LoadEnvFile(envFile); err != nil {
			return err
		}

		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = os.Getenv("EXAMGEN_LOG_LEVEL")
		}
		logger, err := newLogger(os.Stderr, level)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envFile := os.Getenv("EXAMGEN_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	flags := rootCmd.PersistentFlags()
	flags.String("db", "", `Path to the SQLite usage log ("default" for the XDG path); overrides EXAMGEN_DB. Off when unset`)
	flags.String("provider", "", "LLM provider: gemini, openai, openrouter, anthropic or mock (overrides EXAMGEN_LLM_PROVIDER)")
	flags.String("model", "", "Model name (overrides EXAMGEN_MODEL and the model list default)")
	flags.String("env-file", envFile, "dotenv file holding server-side API keys")
	flags.String("log-level", "", "Log level: debug, info, warn or error (overrides EXAMGEN_LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the usage log path from --db or EXAMGEN_DB.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	flag, _ := cmd.Flags().GetString("db")
	p, ok, err := storeDBPath(flag)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("usage log is disabled: pass --db or set EXAMGEN_DB")
	}
	return p, nil
}
