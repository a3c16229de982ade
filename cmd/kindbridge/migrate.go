package main

import (
	"fmt"

	"kindbridge/internal/db"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply pending database migrations",
	Action: func(c *cli.Context) error {
		config, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := db.Migrate(config); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		logrus.Info("migrations applied")
		return nil
	},
}
