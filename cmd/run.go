package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/app"
	"github.com/abhisek/examgen/internal/examgen"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	provider, err := d.factory.For(cmd.Context(), "")
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	return app.Run(app.Options{
		Generator: examgen.New(provider, examgen.DefaultConfig()),
		Model:     d.selectModel(cmd, provider),
		Timeout:   d.timeout(),
	})
}
