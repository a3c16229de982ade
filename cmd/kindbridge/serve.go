package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kindbridge/internal/db"
	"kindbridge/internal/server"
	"kindbridge/internal/service"
	"kindbridge/internal/storage"
	"kindbridge/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	var photos *storage.PhotoStorage
	if !config.UploadDisabled {
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}
		photos = storage.NewPhotoStorage(s3.NewFromConfig(awsConfig), config.UploadBucket, config.UploadPrefix)
	}

	userRepo := store.NewUserRepository(pool)
	requestRepo := store.NewNeedyRequestRepository(pool)
	offerRepo := store.NewDonorOfferRepository(pool)
	programRepo := store.NewFundProgramRepository(pool)
	responseRepo := store.NewResponseRepository(pool)
	donationRepo := store.NewDonationRepository(pool)

	accounts := service.NewAccountService(userRepo)
	listings := service.NewListingService(requestRepo, offerRepo, programRepo)
	responses := service.NewResponseService(listings, responseRepo)
	donations := service.NewDonationService(programRepo, donationRepo)

	srv, err := server.New(
		config,
		logger,
		accounts,
		listings,
		responses,
		donations,
		photos,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
