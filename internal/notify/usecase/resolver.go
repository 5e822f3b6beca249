package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"farmvet-backend/internal/notify/domain"
	"farmvet-backend/internal/notify/repository"
)

// Resolver translates a role or user id into deliverable tokens.
type Resolver struct {
	users repository.UserRepository
}

// NewResolver creates a new Resolver
func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{
		users: users,
	}
}

// ResolveByRole collects the delivery token of every user holding the given
// role. Users without a token are skipped. An empty result is a valid
// terminal state, not an error.
func (r *Resolver) ResolveByRole(ctx context.Context, role string) ([]string, error) {
	users, err := r.users.FindByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role %s: %w", role, err)
	}

	var tokens []string
	for _, user := range users {
		if user.FCMToken != "" {
			tokens = append(tokens, user.FCMToken)
		}
	}

	logrus.Infof("[Resolver] Role %s: %d users, %d deliverable tokens", role, len(users), len(tokens))
	return tokens, nil
}

// ResolveByUserID returns the user's delivery token. A missing user is
// domain.ErrUserNotFound; an existing user without a token resolves to an
// empty token and no error, meaning "cannot deliver, skip silently".
func (r *Resolver) ResolveByUserID(ctx context.Context, userID string) (string, error) {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user %s: %w", userID, err)
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	return user.FCMToken, nil
}
