package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		provider, err := d.factory.For(cmd.Context(), "")
		if err != nil {
			return err
		}
		cat := resolveCatalog(cmd, provider, d.cfg)
		return printCatalog(cmd.OutOrStdout(), cmd.ErrOrStderr(), cat)
	},
}

func resolveCatalog(cmd *cobra.Command, p llm.Provider, cfg llm.Config) llm.ModelCatalog {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return examgen.Models(ctx, p, cfg.PreferredModel, cfg.Model())
}

// printCatalog writes one model per line and marks the default with "*".
func printCatalog(out, errOut io.Writer, cat llm.ModelCatalog) error {
	if cat.Err != nil {
		fmt.Fprintf(errOut, "Error %v\n", cat.Err)
	}
	for _, m := range cat.Models {
		mark := " "
		if m == cat.Default {
			mark = "*"
		}
		if _, err := fmt.Fprintf(out, "%s %s\n", mark, m); err != nil {
			return err
		}
	}
	return nil
}
