package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/store"
)

var storeDBPath = store.ConfiguredDBPath

// deps bundles what every generating command needs.
type deps struct {
	cfg     llm.Config
	store   *store.Store
	factory *llm.Factory
	logger  *slog.Logger
}

// resolveConfig layers the --provider and --model flags over the
// environment. EXAMGEN_MODEL follows the provider the flag selects.
func resolveConfig(cmd *cobra.Command) (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg = cfg.WithProvider(p)
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		cfg = cfg.WithModel(m)
	}
	if err := cfg.Validate(); err != nil {
		return llm.Config{}, err
	}
	return cfg, nil
}

// buildDeps resolves the LLM configuration and opens the usage log when
// enabled.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, logger: slog.Default()}

	var repo store.EventRepo = store.NopEventRepo{}
	flag, _ := cmd.Flags().GetString("db")
	path, ok, err := storeDBPath(flag)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if ok {
		st, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.store = st
		repo = st.EventRepo()
		d.logger.Debug("usage log enabled", "path", path)
	}

	d.factory = llm.NewFactory(cfg, repo, d.logger)
	return d, nil
}

// Close releases the usage log.
func (d *deps) Close() error {
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// timeout returns the configured per-generation limit.
func (d *deps) timeout() time.Duration {
	return d.cfg.Timeout
}

// selectModel returns the --model value if given, else the catalog
// default. Listing failures are logged and fall back to the configured model.
func (d *deps) selectModel(cmd *cobra.Command, p llm.Provider) string {
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		return m
	}
	cat := resolveCatalog(cmd, p, d.cfg)
	if cat.Err != nil {
		d.logger.Warn("using fallback model", "model", cat.Default, "error", cat.Err)
	}
	return cat.Default
}
