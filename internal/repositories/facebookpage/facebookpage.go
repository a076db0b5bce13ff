package facebookpage

import (
	"context"
	"errors"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
)

var ErrNotFound = errors.New("facebook page not found or not connected")

//go:generate go run go.uber.org/mock/mockgen -source=facebookpage.go -destination=mocks/mock.go
type Repository interface {
	// GetByPageID returns the connected page for the given page id and owner.
	GetByPageID(ctx context.Context, pageID, userID string) (*domain.FacebookPage, error)

	// Upsert stores or refreshes a page connection.
	Upsert(ctx context.Context, page domain.FacebookPage) error
}
