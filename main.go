package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	api "farmvet-backend/cmd/api"
	"farmvet-backend/internal/notify/delivery"
	"farmvet-backend/internal/notify/domain"
	"farmvet-backend/internal/notify/repository"
	"farmvet-backend/internal/notify/usecase"
	"farmvet-backend/pkg/config"
	"farmvet-backend/pkg/database"
	"farmvet-backend/pkg/events"
	"farmvet-backend/pkg/fcm"
	"farmvet-backend/pkg/firebase"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database for the delivery audit log
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&domain.DeliveryLog{}); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Firebase (auth, messaging, firestore)
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentials)
	if err != nil {
		logrus.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer firebaseApp.FirestoreClient.Close()

	// Initialize repositories (dependency injection)
	userRepo := repository.NewUserRepository(firebaseApp.FirestoreClient)
	logRepo := repository.NewDeliveryLogRepository(db)

	// Initialize the notification pipeline
	fcmClient := fcm.NewClient(firebaseApp.MessagingClient)
	resolver := usecase.NewResolver(userRepo)
	dispatcher := usecase.NewDispatcher(fcmClient, logRepo)
	notifier := usecase.NewNotifier(resolver, dispatcher, userRepo, cfg.AdminCode)

	// Start the document event consumer if a project is configured
	if cfg.GoogleProjectID != "" {
		router := events.NewRouter(notifier.Registrations())
		consumer, err := events.NewConsumer(ctx, cfg.GoogleProjectID, cfg.PubSubSubscription, cfg.FirebaseCredentials, router)
		if err != nil {
			logrus.Errorf("Failed to initialize event consumer: %v", err)
		} else {
			defer consumer.Close()
			go consumer.Start(ctx)
		}
	} else {
		logrus.Warn("GOOGLE_PROJECT_ID not configured, document event triggers disabled")
	}

	// Start server
	handler := api.NewHandler(notifier, logRepo, delivery.FirebaseAuth(firebaseApp.AuthClient))
	logrus.Infof("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
