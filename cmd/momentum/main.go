package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/config"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/pacing"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	rootCmd := &cobra.Command{
		Use:   "momentum",
		Short: "Admin tools for the Momentum server",
	}

	rootCmd.AddCommand(migrateCmd(cfg))
	rootCmd.AddCommand(seedCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer database.Close()
			return db.RunMigrations(database.DB, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer database.Close()
			return db.MigrateDown(database.DB, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer database.Close()
			return db.MigrationStatus(database.DB, cfg.DBDriver)
		},
	})

	return cmd
}

// seedCmd creates a demo account with a running cycle, a few goals,
// and one check-in so a fresh install has something on the dashboard.
func seedCmd(cfg *config.Config) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a demo account with a cycle, goals, and a check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := a.Close(); closeErr != nil {
					slog.Error("failed to close app", "error", closeErr)
				}
			}()

			return seed(a, email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "demo@example.com", "Email for the demo account")

	return cmd
}

func seed(a *app.App, email string) error {
	user, err := a.AuthService.AuthenticateOAuth(email, "seed")
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	if err := a.AuthService.CompleteOnboarding(user.ID, "Demo User"); err != nil {
		return fmt.Errorf("failed to complete onboarding: %w", err)
	}

	health, err := a.CategoryService.Create(user.ID, service.CategoryInput{
		Name:  "Health",
		Color: "#22c55e",
		Icon:  "heart",
	})
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	now := time.Now().UTC()
	start := pacing.WeekStart(now.AddDate(0, 0, -21))

	cycle, err := a.CycleService.Create(user.ID, service.CycleInput{
		Name:      fmt.Sprintf("Q%d push", (int(now.Month())-1)/3+1),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 84),
	})
	if err != nil {
		return fmt.Errorf("failed to create cycle: %w", err)
	}

	healthID := health.ID
	goals := []service.GoalInput{
		{
			CycleID:     cycle.ID,
			CategoryID:  &healthID,
			Title:       "Run 120 km",
			Unit:        "km",
			StartValue:  0,
			TargetValue: 120,
			Direction:   model.DirectionIncrease,
		},
		{
			CycleID:     cycle.ID,
			CategoryID:  &healthID,
			Title:       "Get down to 78 kg",
			Unit:        "kg",
			StartValue:  84,
			TargetValue: 78,
			Direction:   model.DirectionDecrease,
		},
		{
			CycleID:     cycle.ID,
			Title:       "Read 6 books",
			Unit:        "books",
			StartValue:  0,
			TargetValue: 6,
			Direction:   model.DirectionIncrease,
		},
	}

	updates := map[string]service.GoalUpdateInput{}
	values := []float64{32, 82.5, 2}
	for i, input := range goals {
		goal, err := a.GoalService.Create(user.ID, input)
		if err != nil {
			return fmt.Errorf("failed to create goal %q: %w", input.Title, err)
		}
		updates[goal.ID] = service.GoalUpdateInput{Value: values[i]}
	}

	_, err = a.CheckInService.Submit(user.ID, service.CheckInInput{
		CycleID:   cycle.ID,
		WeekStart: now.AddDate(0, 0, -7),
		Notes:     "Solid week, kept the runs short but consistent.",
		Updates:   updates,
	})
	if err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}

	slog.Info("seed complete", "email", email, "cycle", cycle.Name)
	return nil
}
