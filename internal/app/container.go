package app

import (
	"context"
	"fmt"
	"log/slog"

	analyticsCommands "github.com/dayflow/dayflow/internal/analytics/application/commands"
	analyticsQueries "github.com/dayflow/dayflow/internal/analytics/application/queries"
	analyticsServices "github.com/dayflow/dayflow/internal/analytics/application/services"
	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	analyticsPersistence "github.com/dayflow/dayflow/internal/analytics/infrastructure/persistence"
	planningCommands "github.com/dayflow/dayflow/internal/planning/application/commands"
	planningQueries "github.com/dayflow/dayflow/internal/planning/application/queries"
	planningServices "github.com/dayflow/dayflow/internal/planning/application/services"
	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	planningPersistence "github.com/dayflow/dayflow/internal/planning/infrastructure/persistence"
	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/eventbus"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/migrations"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/dayflow/dayflow/internal/shared/infrastructure/persistence"
	taskCommands "github.com/dayflow/dayflow/internal/tasks/application/commands"
	taskQueries "github.com/dayflow/dayflow/internal/tasks/application/queries"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	taskPersistence "github.com/dayflow/dayflow/internal/tasks/infrastructure/persistence"
	"github.com/dayflow/dayflow/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DB *pgxpool.Pool

	// Redis
	RedisClient *redis.Client

	// Repositories
	TaskRepo     taskDomain.Repository
	PlanRepo     planningDomain.PlanRepository
	ProfileRepo  planningDomain.EnergyProfileRepository
	DecisionRepo planningDomain.DecisionRepository
	ScoreRepo    analyticsDomain.ScoreRepository
	ScoreCache   analyticsDomain.ScoreCache
	OutboxRepo   outbox.Repository

	// Publishers
	EventPublisher eventbus.Publisher

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Domain services
	ScoringModel    *planningServices.ScoringModel
	Resolver        *planningServices.AvailabilityResolver
	PlanningEngine  *planningServices.PlanningEngine
	Recommender     *planningServices.SmartRecommender
	ScoreCalculator *analyticsServices.ScoreCalculator

	// Task command handlers
	CreateTaskHandler   *taskCommands.CreateTaskHandler
	UpdateTaskHandler   *taskCommands.UpdateTaskHandler
	CompleteTaskHandler *taskCommands.CompleteTaskHandler
	PostponeTaskHandler *taskCommands.PostponeTaskHandler

	// Task query handlers
	GetTaskHandler   *taskQueries.GetTaskHandler
	ListTasksHandler *taskQueries.ListTasksHandler

	// Planning command handlers
	PlanDayHandler               *planningCommands.PlanDayHandler
	AddManualSlotHandler         *planningCommands.AddManualSlotHandler
	RemoveManualSlotHandler      *planningCommands.RemoveManualSlotHandler
	ConfirmRecommendationHandler *planningCommands.ConfirmRecommendationHandler
	UpsertEnergyProfileHandler   *planningCommands.UpsertEnergyProfileHandler

	// Planning query handlers
	GetDayPlanHandler    *planningQueries.GetDayPlanHandler
	RecommendSlotHandler *planningQueries.RecommendSlotHandler

	// Analytics handlers
	ComputeDailyScoreHandler *analyticsCommands.ComputeDailyScoreHandler
	GetDailyScoreHandler     *analyticsQueries.GetDailyScoreHandler
	GetScoreHistoryHandler   *analyticsQueries.GetScoreHistoryHandler
	GetTrendHandler          *analyticsQueries.GetTrendHandler
}

// NewContainer creates and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	// Connect to PostgreSQL
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	c.DB = pool
	logger.Info("connected to database")

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Connect to Redis (optional in development)
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				pool.Close()
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, score cache disabled", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					pool.Close()
					return nil, fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, score cache disabled", "error", err)
			} else {
				c.RedisClient = redisClient
				c.ScoreCache = analyticsPersistence.NewRedisScoreCache(redisClient, 0)
				logger.Info("connected to Redis")
			}
		}
	}

	// Create repositories
	c.TaskRepo = taskPersistence.NewPostgresTaskRepository(pool)
	c.PlanRepo = planningPersistence.NewPostgresPlanRepository(pool)
	c.ProfileRepo = planningPersistence.NewPostgresEnergyProfileRepository(pool)
	c.DecisionRepo = planningPersistence.NewPostgresDecisionRepository(pool)
	c.ScoreRepo = analyticsPersistence.NewPostgresScoreRepository(pool)
	c.OutboxRepo = outbox.NewPostgresRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)

	// Create event publisher
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		// Fall back to noop publisher in development
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher")
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			pool.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		c.EventPublisher = eventbus.NewBreakerPublisher(publisher, eventbus.DefaultBreakerConfig(), logger)
	}

	// Create domain services
	c.ScoringModel = planningServices.NewScoringModel(planningServices.DefaultScoringConfig())
	workSpan := planningServices.WorkSpan{Start: cfg.WorkDayStart, End: cfg.WorkDayEnd}
	c.Resolver = planningServices.NewAvailabilityResolver(workSpan)
	c.PlanningEngine = planningServices.NewPlanningEngine(c.ScoringModel, planningServices.PlannerConfig{
		MaxContinuousWork: cfg.MaxContinuousWork,
		BreakDuration:     cfg.BreakDuration,
	})
	c.Recommender = planningServices.NewSmartRecommender(c.ScoringModel, planningServices.DefaultRecommenderConfig())
	c.ScoreCalculator = analyticsServices.NewScoreCalculator(analyticsServices.DefaultScoreConfig())

	// Create task command handlers
	c.CreateTaskHandler = taskCommands.NewCreateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateTaskHandler = taskCommands.NewUpdateTaskHandler(c.TaskRepo, c.UnitOfWork)
	c.CompleteTaskHandler = taskCommands.NewCompleteTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.PostponeTaskHandler = taskCommands.NewPostponeTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)

	// Create task query handlers
	c.GetTaskHandler = taskQueries.NewGetTaskHandler(c.TaskRepo)
	c.ListTasksHandler = taskQueries.NewListTasksHandler(c.TaskRepo)

	// Create planning command handlers
	c.PlanDayHandler = planningCommands.NewPlanDayHandler(
		c.TaskRepo, c.PlanRepo, c.ProfileRepo, c.Resolver, c.PlanningEngine, c.OutboxRepo, c.UnitOfWork)
	c.AddManualSlotHandler = planningCommands.NewAddManualSlotHandler(c.PlanRepo, c.OutboxRepo, c.UnitOfWork)
	c.RemoveManualSlotHandler = planningCommands.NewRemoveManualSlotHandler(c.PlanRepo, c.UnitOfWork)
	c.ConfirmRecommendationHandler = planningCommands.NewConfirmRecommendationHandler(
		c.TaskRepo, c.PlanRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpsertEnergyProfileHandler = planningCommands.NewUpsertEnergyProfileHandler(c.ProfileRepo, c.UnitOfWork)

	// Create planning query handlers
	c.GetDayPlanHandler = planningQueries.NewGetDayPlanHandler(c.PlanRepo)
	c.RecommendSlotHandler = planningQueries.NewRecommendSlotHandler(
		c.TaskRepo, c.PlanRepo, c.ProfileRepo, c.DecisionRepo, c.Resolver, c.Recommender, cfg.HorizonDays)

	// Create analytics handlers
	c.ComputeDailyScoreHandler = analyticsCommands.NewComputeDailyScoreHandler(
		c.TaskRepo, c.PlanRepo, c.ScoreRepo, c.ScoreCache, c.ScoreCalculator, c.ScoringModel, workSpan, c.UnitOfWork)
	c.GetDailyScoreHandler = analyticsQueries.NewGetDailyScoreHandler(c.ScoreRepo, c.ScoreCache, nil)
	c.GetScoreHistoryHandler = analyticsQueries.NewGetScoreHistoryHandler(c.ScoreRepo)
	c.GetTrendHandler = analyticsQueries.NewGetTrendHandler(c.ScoreRepo, c.ScoreCalculator, cfg.TrendWindowDays)

	return c, nil
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("PostgreSQL connection closed")
	}
}
