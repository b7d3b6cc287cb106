// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/backfill"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/bootstrap"
	"github.com/spf13/cobra"
)

const (
	targetSkills     = "skills"
	targetCandidates = "candidates"
	targetAll        = "all"
)

var (
	backfillTarget string
	backfillForce  bool
)

// backfillCmd represents the backfill command
var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Generate missing embeddings and re-mirror stored ones",
	Long: `Walk every skill and/or candidate and run it through the normal
embedding write path. Records that already have an embedding only have it
mirrored into the vector column again unless --force is given.

Skills run before candidates so candidate bios pick up fresh group text.

Examples:
  # Embed everything that has no embedding yet
  talent-matcher backfill --target all

  # Re-embed every candidate
  talent-matcher backfill --target candidates --force`,
	Args: cobra.NoArgs,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().StringVarP(&backfillTarget, "target", "t", targetAll, "what to backfill: skills, candidates or all")
	backfillCmd.Flags().BoolVar(&backfillForce, "force", false, "regenerate embeddings that already exist")
	rootCmd.AddCommand(backfillCmd)
}

func backfillJobs(server *bootstrap.Server, target string) ([]backfill.Job, error) {
	skills := backfill.Job{
		Name:      targetSkills,
		List:      backfill.SkillLister(server.SkillFacade()),
		Reindexer: server.SkillService(),
	}
	candidates := backfill.Job{
		Name:      targetCandidates,
		List:      backfill.CandidateLister(server.CandidateFacade()),
		Reindexer: server.CandidateService(),
	}

	switch target {
	case targetSkills:
		return []backfill.Job{skills}, nil
	case targetCandidates:
		return []backfill.Job{candidates}, nil
	case targetAll:
		return []backfill.Job{skills, candidates}, nil
	default:
		return nil, fmt.Errorf("unknown backfill target %q", target)
	}
}

func runBackfill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	server, err := bootstrap.NewServer(cfg)
	if err != nil {
		return err
	}
	defer server.Stop()

	jobs, err := backfillJobs(server, backfillTarget)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := backfill.NewRunner(cfg.Backfill)
	for _, job := range jobs {
		stats, err := runner.Run(ctx, job, backfillForce)
		if err != nil {
			return fmt.Errorf("backfill %s: %w", job.Name, err)
		}
		fmt.Printf("%s: %s\n", job.Name, stats)
	}
	return nil
}
