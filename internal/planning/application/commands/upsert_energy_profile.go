package commands

import (
	"context"
	"time"

	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/google/uuid"
)

// UpsertEnergyProfileCommand replaces a user's energy curve.
type UpsertEnergyProfileCommand struct {
	UserID           uuid.UUID
	Hourly           [24]float64
	WeekdayOverrides map[time.Weekday][24]float64
}

// UpsertEnergyProfileHandler handles the UpsertEnergyProfileCommand.
type UpsertEnergyProfileHandler struct {
	profileRepo planningDomain.EnergyProfileRepository
	uow         sharedApplication.UnitOfWork
}

// NewUpsertEnergyProfileHandler creates a new handler.
func NewUpsertEnergyProfileHandler(
	profileRepo planningDomain.EnergyProfileRepository,
	uow sharedApplication.UnitOfWork,
) *UpsertEnergyProfileHandler {
	return &UpsertEnergyProfileHandler{profileRepo: profileRepo, uow: uow}
}

// Handle executes the command.
func (h *UpsertEnergyProfileHandler) Handle(ctx context.Context, cmd UpsertEnergyProfileCommand) error {
	profile, err := h.profileRepo.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		profile, err = planningDomain.NewEnergyProfile(cmd.UserID, cmd.Hourly)
		if err != nil {
			return err
		}
	} else if err := profile.SetHourly(cmd.Hourly); err != nil {
		return err
	}

	for day := range profile.WeekdayOverrides() {
		if _, keep := cmd.WeekdayOverrides[day]; !keep {
			profile.ClearWeekdayOverride(day)
		}
	}
	for day, curve := range cmd.WeekdayOverrides {
		if err := profile.SetWeekdayOverride(day, curve); err != nil {
			return err
		}
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		return h.profileRepo.Save(ctx, profile)
	})
}
