package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddPostIndexes, downAddPostIndexes)
}

func upAddPostIndexes(ctx context.Context, tx *sql.Tx) error {
	// The publish tick always reads by status then filters on time.
	_, err := tx.ExecContext(ctx, `
	CREATE INDEX idx_scheduled_posts_status_time ON scheduled_posts (status, scheduled_time);
	CREATE INDEX idx_scheduled_posts_user ON scheduled_posts (user_id);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downAddPostIndexes(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP INDEX idx_scheduled_posts_status_time;
	DROP INDEX idx_scheduled_posts_user;
	`)
	if err != nil {
		return err
	}
	return nil
}
