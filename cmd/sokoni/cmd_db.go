package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/sokoni/config"
	"github.com/shashiranjanraj/sokoni/database/seeders"
	"github.com/shashiranjanraj/sokoni/pkg/database"
	"github.com/shashiranjanraj/sokoni/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// sokoni migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.Run(database.DB)
	},
}

// sokoni migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.Rollback(database.DB)
	},
}

// sokoni migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		status, err := migration.Status(database.DB)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(status))
		for name := range status {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tBATCH")
		fmt.Fprintln(w, "---------\t-----")
		for _, name := range names {
			batch := "pending"
			if status[name] > 0 {
				batch = fmt.Sprintf("%d", status[name])
			}
			fmt.Fprintf(w, "%s\t%s\n", name, batch)
		}
		return w.Flush()
	},
}

// sokoni seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return seeders.RunAll(database.DB)
	},
}
