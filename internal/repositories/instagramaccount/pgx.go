package instagramaccount

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
		logger: logger.WithComponent("InstagramAccountRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// GetByAccountID returns the connected account for the given account id and owner.
func (p *Pgx) GetByAccountID(ctx context.Context, accountID, userID string) (*domain.InstagramAccount, error) {
	query, args, err := repositories.SqBuilder.
		Select("account_id", "user_id", "username", "page_access_token", "is_connected", "created_at").
		From("instagram_accounts").
		Where(sq.Eq{"account_id": accountID, "user_id": userID, "is_connected": true}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var account domain.InstagramAccount
	err = p.pg.QueryRow(ctx, query, args...).
		Scan(&account.AccountID, &account.UserID, &account.Username, &account.PageAccessToken,
			&account.IsConnected, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Upsert stores or refreshes an account connection.
func (p *Pgx) Upsert(ctx context.Context, account domain.InstagramAccount) error {
	query, args, err := repositories.SqBuilder.
		Insert("instagram_accounts").
		Columns("account_id", "user_id", "username", "page_access_token", "is_connected", "created_at").
		Values(account.AccountID, account.UserID, account.Username, account.PageAccessToken, true, time.Now().UTC()).
		Suffix("ON CONFLICT (account_id) DO UPDATE SET username = EXCLUDED.username, page_access_token = EXCLUDED.page_access_token, is_connected = EXCLUDED.is_connected").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}
