package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and the clients the notification
// layer needs. Built once in main and passed down; nothing else initializes
// Firebase.
type App struct {
	AuthClient      *auth.Client
	MessagingClient *messaging.Client
	FirestoreClient *firestore.Client
}

// InitFirebase initializes the Firebase application with its auth, messaging
// and firestore clients.
func InitFirebase(ctx context.Context, credentialsFile string) (*App, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	firebaseApp, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %w", err)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}

	logrus.Info("[Firebase] App, auth, messaging and firestore clients initialized")
	return &App{
		AuthClient:      authClient,
		MessagingClient: messagingClient,
		FirestoreClient: firestoreClient,
	}, nil
}
