package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"farmvet-backend/internal/notify/domain"
)

const usersCollection = "users"

// UserRepository defines the document-store operations the notification
// layer needs
type UserRepository interface {
	// FindByID returns nil without error when the user does not exist.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByRole returns users in query order; callers must not rely on it.
	FindByRole(ctx context.Context, role string) ([]domain.User, error)
	// SaveToken merges the token and an update timestamp into the user
	// record. Re-saving the same token is a plain overwrite.
	SaveToken(ctx context.Context, userID, token string) error
}

// firestoreUserRepository implements UserRepository on the users collection
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a new instance of firestoreUserRepository
func NewUserRepository(client *firestore.Client) UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}

	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) FindByRole(ctx context.Context, role string) ([]domain.User, error) {
	iter := r.client.Collection(usersCollection).Where("role", "==", role).Documents(ctx)
	defer iter.Stop()

	var users []domain.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query users by role %s: %w", role, err)
		}

		var user domain.User
		if err := snap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", snap.Ref.ID, err)
		}
		user.ID = snap.Ref.ID
		users = append(users, user)
	}
	return users, nil
}

func (r *firestoreUserRepository) SaveToken(ctx context.Context, userID, token string) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Set(ctx, map[string]interface{}{
		"fcmToken":          token,
		"fcmTokenUpdatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to merge token for user %s: %w", userID, err)
	}
	return nil
}
