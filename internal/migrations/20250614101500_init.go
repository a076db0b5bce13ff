package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE scheduled_posts (
		id BIGSERIAL PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		platform VARCHAR NOT NULL,
		account_id VARCHAR NOT NULL,
		content TEXT NOT NULL,
		images TEXT[] NOT NULL DEFAULT '{}',
		scheduled_time TIMESTAMP WITH TIME ZONE NOT NULL,
		status VARCHAR NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'published', 'failed')),
		external_id VARCHAR,
		error_message TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		published_at TIMESTAMP WITH TIME ZONE
	);

	CREATE TABLE facebook_pages (
		page_id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL DEFAULT '',
		access_token VARCHAR NOT NULL,
		is_connected BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE TABLE instagram_accounts (
		account_id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		username VARCHAR NOT NULL DEFAULT '',
		page_access_token VARCHAR NOT NULL,
		is_connected BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE TABLE linkedin_accounts (
		account_id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		first_name VARCHAR NOT NULL DEFAULT '',
		last_name VARCHAR NOT NULL DEFAULT '',
		access_token VARCHAR NOT NULL,
		is_connected BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE scheduled_posts;
	DROP TABLE facebook_pages;
	DROP TABLE instagram_accounts;
	DROP TABLE linkedin_accounts;
	`)
	if err != nil {
		return err
	}
	return nil
}
