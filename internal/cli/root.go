// Package cli implements campusctl, the operator command line for the
// scheduling engine.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/app"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/service"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/config"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/logger"
)

type conflictSweep interface {
	RunOnce(ctx context.Context) (*models.ConflictReport, error)
}

var (
	// loadConfig and openSweeper are swapped out in tests.
	loadConfig  = config.Load
	openSweeper = openAppSweeper
)

var rootCmd = &cobra.Command{
	Use:           "campusctl",
	Short:         "Operate the campus scheduling engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func schedulingConfig(cfg *config.Config) (service.SchedulingConfig, error) {
	return service.NewSchedulingConfig(
		cfg.Scheduler.GridStart,
		cfg.Scheduler.GridEnd,
		cfg.Scheduler.SlotMinutes,
		cfg.Scheduler.Days,
		cfg.Scheduler.TopN,
		cfg.Scheduler.HorizonDays,
		cfg.Scheduler.MaxRoomAlternatives,
	)
}

func openAppSweeper(ctx context.Context, cfg *config.Config) (conflictSweep, func(), error) {
	logr, err := logger.New(cfg)
	if err != nil {
		logr = zap.NewNop()
	}
	application, err := app.New(ctx, cfg, logr)
	if err != nil {
		return nil, nil, err
	}
	return application.Sweeper, func() {
		application.Close()
		_ = logr.Sync()
	}, nil
}
