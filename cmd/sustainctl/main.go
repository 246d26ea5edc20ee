// cmd/sustainctl/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/config"
	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/seed"
	"github.com/javajoker/sustainchain-backend/internal/services"
)

var (
	// Global flags
	verbose bool

	// reset flags
	force bool

	// validate flags
	baseURL    string
	username   string
	password   string
	reseedData bool
)

var rootCmd = &cobra.Command{
	Use:   "sustainctl",
	Short: "Operations tool for the SustainChain Navigator API",
	Long: `sustainctl manages the SustainChain Navigator database and checks a
running deployment.

Database commands read the same environment variables as the server
(DB_DRIVER, DB_HOST, DB_NAME, DB_SQLITE_PATH, ...), including a .env file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *gorm.DB) error {
			if err := database.RunMigrations(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demonstration dataset",
	Long: `Loads 3 organizations, 4 users (password "password123") and the related
suppliers, products, supply chain, grievances, alerts, KPIs and surveys.
Fails if the demonstration users already exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(db *gorm.DB) error {
			if err := database.RunMigrations(db); err != nil {
				return err
			}
			seeder, err := seed.NewSeeder(db)
			if err != nil {
				return err
			}
			summary, err := seeder.Run(cmd.Context())
			if errors.Is(err, services.ErrConflict) {
				return fmt.Errorf("database already seeded, run \"sustainctl reset --force\" first")
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop every table and recreate the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !force {
			return fmt.Errorf("reset deletes all data, pass --force to confirm")
		}
		return withDatabase(func(db *gorm.DB) error {
			seeder, err := seed.NewSeeder(db)
			if err != nil {
				return err
			}
			if err := seeder.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database reset")
			return nil
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Smoke-check a running API",
	Long: `Signs in to a running API and exercises every module: listings, the
cross-module lookups (supplier grievances, product nodes, KPI calculation,
grievance heatmap) and the admin-only routes.

With --reseed the database is reset and seeded through the seed endpoints
first, which must be enabled on the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := newPlatformValidator(baseURL, cmd.OutOrStdout())
		return v.Run(cmd.Context(), username, password, reseedData)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	resetCmd.Flags().BoolVar(&force, "force", false, "Confirm dropping all data")

	validateCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	validateCmd.Flags().StringVarP(&username, "username", "u", "admin", "Admin username")
	validateCmd.Flags().StringVarP(&password, "password", "p", "password123", "Admin password")
	validateCmd.Flags().BoolVar(&reseedData, "reseed", false, "Reset and seed through the API before validating")

	rootCmd.AddCommand(migrateCmd, seedCmd, resetCmd, validateCmd)
}

func withDatabase(fn func(db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(db)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
