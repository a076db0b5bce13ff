package instagramaccount

import (
	"context"
	"errors"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
)

var ErrNotFound = errors.New("instagram account not found or not connected")

//go:generate go run go.uber.org/mock/mockgen -source=instagramaccount.go -destination=mocks/mock.go
type Repository interface {
	// GetByAccountID returns the connected account for the given account id and owner.
	GetByAccountID(ctx context.Context, accountID, userID string) (*domain.InstagramAccount, error)

	// Upsert stores or refreshes an account connection.
	Upsert(ctx context.Context, account domain.InstagramAccount) error
}
