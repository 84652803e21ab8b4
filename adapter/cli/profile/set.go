package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/planning/application/commands"
	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	"github.com/spf13/cobra"
)

var (
	hourlyLevels  string
	weekdayLevels []string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the energy curve",
	Long: `Set the base hourly energy curve, with optional per-weekday
overrides. A curve is 24 comma-separated levels in [0,1], one per hour
starting at midnight. Hours you omit keep the default level.

Examples:
  dayflow profile set --hourly 0.3,0.3,0.3,0.3,0.3,0.4,0.5,0.7,0.9,0.9,0.8,0.7,0.5,0.6,0.7,0.8,0.7,0.6,0.5,0.4,0.4,0.3,0.3,0.3
  dayflow profile set --hourly ... --weekday "Friday=0.5,0.5,...(24 values)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpsertEnergyProfileHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		hourly, err := parseCurve(hourlyLevels)
		if err != nil {
			return fmt.Errorf("invalid --hourly: %w", err)
		}

		overrides := make(map[time.Weekday][24]float64)
		for _, spec := range weekdayLevels {
			day, curve, err := parseWeekdaySpec(spec)
			if err != nil {
				return fmt.Errorf("invalid --weekday: %w", err)
			}
			overrides[day] = curve
		}

		err = app.UpsertEnergyProfileHandler.Handle(cmd.Context(), commands.UpsertEnergyProfileCommand{
			UserID:           app.CurrentUserID,
			Hourly:           hourly,
			WeekdayOverrides: overrides,
		})
		if err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		fmt.Println("Energy profile saved.")
		return nil
	},
}

// parseCurve reads 24 comma-separated levels. An empty string yields
// the flat default curve.
func parseCurve(value string) ([24]float64, error) {
	var curve [24]float64
	if value == "" {
		for i := range curve {
			curve[i] = planningDomain.DefaultEnergyLevel
		}
		return curve, nil
	}

	parts := strings.Split(value, ",")
	if len(parts) != 24 {
		return curve, fmt.Errorf("expected 24 values, got %d", len(parts))
	}
	for i, part := range parts {
		level, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return curve, fmt.Errorf("value %d: %w", i+1, err)
		}
		if level < 0 || level > 1 {
			return curve, fmt.Errorf("value %d: %g is outside [0,1]", i+1, level)
		}
		curve[i] = level
	}
	return curve, nil
}

func parseWeekdaySpec(spec string) (time.Weekday, [24]float64, error) {
	name, levels, found := strings.Cut(spec, "=")
	if !found {
		return 0, [24]float64{}, fmt.Errorf("expected WEEKDAY=levels, got %q", spec)
	}
	day, err := parseWeekday(strings.TrimSpace(name))
	if err != nil {
		return 0, [24]float64{}, err
	}
	curve, err := parseCurve(levels)
	if err != nil {
		return 0, [24]float64{}, err
	}
	return day, curve, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), name) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

func init() {
	setCmd.Flags().StringVar(&hourlyLevels, "hourly", "", "24 comma-separated energy levels in [0,1]")
	setCmd.Flags().StringArrayVar(&weekdayLevels, "weekday", nil, "per-weekday override, WEEKDAY=24 levels (repeatable)")
}
