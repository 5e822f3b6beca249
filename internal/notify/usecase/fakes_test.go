package usecase

import (
	"context"

	"farmvet-backend/internal/notify/domain"
	"farmvet-backend/pkg/fcm"
)

// fakeUserRepo serves a fixed user fixture from memory.
type fakeUserRepo struct {
	users     []domain.User
	saved     map[string]string
	saveCalls int
	failWith  error
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByRole(_ context.Context, role string) ([]domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.User
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SaveToken(_ context.Context, userID, token string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[userID] = token
	f.saveCalls++
	return nil
}

// fakeSender records calls and plays back a scripted batch result.
type fakeSender struct {
	singleCalls int
	multiCalls  int
	lastToken   string
	lastTokens  []string
	lastData    fcm.NotificationData
	result      *fcm.BatchResult
	sendErr     error
}

func (f *fakeSender) SendToDevice(_ context.Context, token string, notification fcm.NotificationData) error {
	f.singleCalls++
	f.lastToken = token
	f.lastData = notification
	return f.sendErr
}

func (f *fakeSender) SendToDevices(_ context.Context, tokens []string, notification fcm.NotificationData) (*fcm.BatchResult, error) {
	f.multiCalls++
	f.lastTokens = tokens
	f.lastData = notification
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return &fcm.BatchResult{SuccessCount: len(tokens)}, nil
}

// fakeLogRepo accumulates audit rows in memory.
type fakeLogRepo struct {
	entries []*domain.DeliveryLog
}

func (f *fakeLogRepo) Record(entry *domain.DeliveryLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLogRepo) FindRecent(limit int) ([]domain.DeliveryLog, error) {
	var out []domain.DeliveryLog
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.entries[i])
	}
	return out, nil
}
