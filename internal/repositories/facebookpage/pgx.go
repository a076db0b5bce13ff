package facebookpage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/repositories"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("FacebookPageRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// GetByPageID returns the connected page for the given page id and owner.
func (p *Pgx) GetByPageID(ctx context.Context, pageID, userID string) (*domain.FacebookPage, error) {
	query, args, err := repositories.SqBuilder.
		Select("page_id", "user_id", "name", "access_token", "is_connected", "created_at").
		From("facebook_pages").
		Where(sq.Eq{"page_id": pageID, "user_id": userID, "is_connected": true}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var page domain.FacebookPage
	err = p.pg.QueryRow(ctx, query, args...).
		Scan(&page.PageID, &page.UserID, &page.Name, &page.AccessToken, &page.IsConnected, &page.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Upsert stores or refreshes a page connection.
func (p *Pgx) Upsert(ctx context.Context, page domain.FacebookPage) error {
	query, args, err := repositories.SqBuilder.
		Insert("facebook_pages").
		Columns("page_id", "user_id", "name", "access_token", "is_connected", "created_at").
		Values(page.PageID, page.UserID, page.Name, page.AccessToken, true, time.Now().UTC()).
		Suffix("ON CONFLICT (page_id) DO UPDATE SET name = EXCLUDED.name, access_token = EXCLUDED.access_token, is_connected = EXCLUDED.is_connected").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}
