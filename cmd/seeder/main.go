package main

import (
	"fmt"
	"os"
	"precinct-backend/config"
	"precinct-backend/internal/database"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seeder",
		Short:         "Seed the precinct database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSeedCmd(), newCreateAdminCmd())
	return cmd
}

func connect() *database.Seeder {
	cfg := config.Load()
	config.ConnectDB(cfg)
	return database.NewSeeder(config.DB)
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin, shifts, sample officers and this month's roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Seeding database...")
			result, err := connect().SeedAll(time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Done: %d shifts, %d officers, %d roster rows (%d preserved)\n",
				result.Shifts, result.Officers, result.Roster.Written, result.Roster.Preserved)
			fmt.Printf("Admin login: badge 9000, password %s\n", database.DefaultAdminPassword)
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var badge, name, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account or promote an existing badge",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := connect().CreateAdmin(badge, name, password)
			if err != nil {
				return err
			}
			fmt.Printf("Admin %s (badge %s) is ready\n", user.Name, user.BadgeNumber)
			return nil
		},
	}
	cmd.Flags().StringVar(&badge, "badge", "", "badge number used to log in")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("badge")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
