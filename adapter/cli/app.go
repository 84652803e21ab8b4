package cli

import (
	analyticsCommands "github.com/dayflow/dayflow/internal/analytics/application/commands"
	analyticsQueries "github.com/dayflow/dayflow/internal/analytics/application/queries"
	planningCommands "github.com/dayflow/dayflow/internal/planning/application/commands"
	planningQueries "github.com/dayflow/dayflow/internal/planning/application/queries"
	taskCommands "github.com/dayflow/dayflow/internal/tasks/application/commands"
	taskQueries "github.com/dayflow/dayflow/internal/tasks/application/queries"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Task Command Handlers
	CreateTaskHandler   *taskCommands.CreateTaskHandler
	UpdateTaskHandler   *taskCommands.UpdateTaskHandler
	CompleteTaskHandler *taskCommands.CompleteTaskHandler
	PostponeTaskHandler *taskCommands.PostponeTaskHandler

	// Task Query Handlers
	GetTaskHandler   *taskQueries.GetTaskHandler
	ListTasksHandler *taskQueries.ListTasksHandler

	// Planning Command Handlers
	PlanDayHandler               *planningCommands.PlanDayHandler
	AddManualSlotHandler         *planningCommands.AddManualSlotHandler
	RemoveManualSlotHandler      *planningCommands.RemoveManualSlotHandler
	ConfirmRecommendationHandler *planningCommands.ConfirmRecommendationHandler
	UpsertEnergyProfileHandler   *planningCommands.UpsertEnergyProfileHandler

	// Planning Query Handlers
	GetDayPlanHandler    *planningQueries.GetDayPlanHandler
	RecommendSlotHandler *planningQueries.RecommendSlotHandler

	// Analytics Handlers
	ComputeDailyScoreHandler *analyticsCommands.ComputeDailyScoreHandler
	GetDailyScoreHandler     *analyticsQueries.GetDailyScoreHandler
	GetScoreHistoryHandler   *analyticsQueries.GetScoreHistoryHandler
	GetTrendHandler          *analyticsQueries.GetTrendHandler

	// CurrentUserID is the user all commands act on behalf of.
	CurrentUserID uuid.UUID
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

var appInstance *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	appInstance = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return appInstance
}
