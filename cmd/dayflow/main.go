package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/adapter/cli/plan"
	"github.com/dayflow/dayflow/adapter/cli/profile"
	"github.com/dayflow/dayflow/adapter/cli/recommend"
	"github.com/dayflow/dayflow/adapter/cli/score"
	"github.com/dayflow/dayflow/adapter/cli/task"
	"github.com/dayflow/dayflow/internal/app"
	"github.com/dayflow/dayflow/pkg/config"
	"github.com/dayflow/dayflow/pkg/observability"
	"github.com/google/uuid"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development"}
	}

	// Setup logger
	logCfg := observability.DefaultLogConfig()
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			// In development, allow the CLI to run without a database
			// so help and validation errors still work.
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		cliApp = &cli.App{
			CreateTaskHandler:            container.CreateTaskHandler,
			UpdateTaskHandler:            container.UpdateTaskHandler,
			CompleteTaskHandler:          container.CompleteTaskHandler,
			PostponeTaskHandler:          container.PostponeTaskHandler,
			GetTaskHandler:               container.GetTaskHandler,
			ListTasksHandler:             container.ListTasksHandler,
			PlanDayHandler:               container.PlanDayHandler,
			AddManualSlotHandler:         container.AddManualSlotHandler,
			RemoveManualSlotHandler:      container.RemoveManualSlotHandler,
			ConfirmRecommendationHandler: container.ConfirmRecommendationHandler,
			UpsertEnergyProfileHandler:   container.UpsertEnergyProfileHandler,
			GetDayPlanHandler:            container.GetDayPlanHandler,
			RecommendSlotHandler:         container.RecommendSlotHandler,
			ComputeDailyScoreHandler:     container.ComputeDailyScoreHandler,
			GetDailyScoreHandler:         container.GetDailyScoreHandler,
			GetScoreHistoryHandler:       container.GetScoreHistoryHandler,
			GetTrendHandler:              container.GetTrendHandler,
		}

		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			logger.Error("invalid DAYFLOW_USER_ID", "error", err)
			os.Exit(1)
		}
		cliApp.SetCurrentUserID(userID)
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(plan.Cmd)
	cli.AddCommand(recommend.Cmd)
	cli.AddCommand(score.Cmd)
	cli.AddCommand(profile.Cmd)

	cli.Execute()
}
