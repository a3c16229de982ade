package main

import (
	"context"
	"fmt"

	"kindbridge/internal/db"
	"kindbridge/internal/seed"
	"kindbridge/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo accounts and listings",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		users, err := seed.Run(ctx, seed.Repos{
			Users:     store.NewUserRepository(pool),
			Requests:  store.NewNeedyRequestRepository(pool),
			Offers:    store.NewDonorOfferRepository(pool),
			Programs:  store.NewFundProgramRepository(pool),
			Donations: store.NewDonationRepository(pool),
		})
		if err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}

		pp.Println(users)
		logrus.WithField("password", seed.DemoPassword).Info("Demo data seeded")

		return nil
	},
}
