package post

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
		logger: logger.WithComponent("ScheduledPostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

const postColumns = "id, user_id, platform, account_id, content, images, scheduled_time, status, external_id, error_message, created_at, published_at"

// Create inserts a new post in scheduled status and returns its id.
func (p *Pgx) Create(ctx context.Context, post domain.ScheduledPost) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Insert("scheduled_posts").
		Columns("user_id", "platform", "account_id", "content", "images", "scheduled_time", "status", "created_at").
		Values(post.UserID, string(post.Platform), post.AccountID, post.Content, post.Images,
			post.ScheduledTime.UTC(), string(domain.StatusScheduled), time.Now().UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var id int64
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID returns a single post by its identifier.
func (p *Pgx) GetByID(ctx context.Context, id int64) (*domain.ScheduledPost, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("scheduled_posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	post, err := scanPost(p.pg.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListByStatus returns all posts currently in the given status.
func (p *Pgx) ListByStatus(ctx context.Context, status domain.PostStatus) ([]*domain.ScheduledPost, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("scheduled_posts").
		Where(sq.Eq{"status": string(status)}).
		OrderBy("scheduled_time ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.ScheduledPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// MarkPublished transitions the post to published while it is still scheduled.
func (p *Pgx) MarkPublished(ctx context.Context, id int64, externalID string, publishedAt time.Time) error {
	query, args, err := repositories.SqBuilder.
		Update("scheduled_posts").
		Set("status", string(domain.StatusPublished)).
		Set("external_id", externalID).
		Set("published_at", publishedAt.UTC()).
		Where(sq.Eq{"id": id, "status": string(domain.StatusScheduled)}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAlreadyFinalized
	}
	return nil
}

// MarkFailed transitions the post to failed while it is still scheduled.
func (p *Pgx) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	query, args, err := repositories.SqBuilder.
		Update("scheduled_posts").
		Set("status", string(domain.StatusFailed)).
		Set("error_message", errorMessage).
		Where(sq.Eq{"id": id, "status": string(domain.StatusScheduled)}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAlreadyFinalized
	}
	return nil
}

func scanPost(row pgx.Row) (*domain.ScheduledPost, error) {
	var (
		post         domain.ScheduledPost
		platform     string
		status       string
		externalID   *string
		errorMessage *string
	)
	if err := row.Scan(&post.ID, &post.UserID, &platform, &post.AccountID, &post.Content, &post.Images,
		&post.ScheduledTime, &status, &externalID, &errorMessage, &post.CreatedAt, &post.PublishedAt); err != nil {
		return nil, err
	}
	post.Platform = domain.Platform(platform)
	post.Status = domain.PostStatus(status)
	if externalID != nil {
		post.ExternalID = *externalID
	}
	if errorMessage != nil {
		post.ErrorMessage = *errorMessage
	}
	return &post, nil
}
