package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/bounce/internal/config"
	"github.com/abhisek/bounce/internal/difficulty"
	"github.com/abhisek/bounce/internal/requirement"
	"github.com/abhisek/bounce/internal/skilldef"
)

// env bundles what every command needs after configuration is resolved.
type env struct {
	cfg          config.Config
	logger       *slog.Logger
	scorer       *difficulty.Scorer
	catalog      *skilldef.Catalog
	requirements *requirement.Registry
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}

	if womens, _ := cmd.Flags().GetBool("womens"); womens {
		cfg.Scoring.System = string(difficulty.Womens)
	}

	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	catalog, err := skilldef.LoadCatalog(logger, cfg.Data.SkillSources...)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}

	scorer := cfg.Scorer()
	reqs, err := requirement.LoadRegistry(logger, scorer, cfg.Data.RequirementSources...)
	if err != nil {
		return nil, fmt.Errorf("load requirements: %w", err)
	}

	return &env{
		cfg:          cfg,
		logger:       logger,
		scorer:       scorer,
		catalog:      catalog,
		requirements: reqs,
	}, nil
}
