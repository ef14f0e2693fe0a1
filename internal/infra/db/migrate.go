package db

import (
	"database/sql"
)

// MigrateUp bootstraps the schema read by this service. The tables are owned
// by the ingestion pipeline in production; this bootstrap exists for local
// development and tests against a fresh database.
func MigrateUp(db *sql.DB) error {
	// pgvector is required for the embedding column and the <-> operator.
	// Errors are ignored when the extension already exists or the role lacks
	// superuser rights (production databases ship with it enabled).
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`)

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    uuid                            UUID PRIMARY KEY,
    instagram_id                    TEXT NOT NULL,
    username                        TEXT NOT NULL,
    full_name                       TEXT NOT NULL DEFAULT '',
    profile_picture                 TEXT NOT NULL DEFAULT '',
    biography                       TEXT NOT NULL DEFAULT '',
    is_private                      BOOLEAN NOT NULL DEFAULT FALSE,
    is_verified                     BOOLEAN NOT NULL DEFAULT FALSE,
    media_count                     BIGINT NOT NULL DEFAULT 0,
    follower_count                  BIGINT NOT NULL DEFAULT 0,
    following_count                 BIGINT NOT NULL DEFAULT 0,
    allow_auto_update_stories       BOOLEAN NOT NULL DEFAULT FALSE,
    allow_auto_update_profile       BOOLEAN NOT NULL DEFAULT FALSE,
    auto_update_stories_limit_count BIGINT NOT NULL DEFAULT 0,
    auto_update_profile_limit_count BIGINT NOT NULL DEFAULT 0,
    created_at                      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at                      TIMESTAMPTZ NOT NULL DEFAULT now(),
    api_updated_at                  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS stories (
    id               BIGSERIAL PRIMARY KEY,
    story_id         TEXT NOT NULL UNIQUE,
    user_uuid        UUID NOT NULL REFERENCES users(uuid),
    thumbnail        TEXT NOT NULL DEFAULT '',
    blur_data_url    TEXT NOT NULL DEFAULT '',
    media            TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    story_created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    embedding        vector(1536)
)`); err != nil {
		return err
	}

	// Append-only audit log for user changes, written by the ingestion
	// pipeline. Only queried for existence here.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS user_history (
    id         BIGSERIAL PRIMARY KEY,
    uuid       UUID NOT NULL,
    changed_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// ORDER BY created_at DESC, id DESC drives every list query
		`CREATE INDEX IF NOT EXISTS idx_stories_created_at_id ON stories(created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_stories_user_uuid ON stories(user_uuid)`,
		`CREATE INDEX IF NOT EXISTS idx_user_history_uuid ON user_history(uuid)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE search over username/full_name/biography.
	// Ignored when unavailable, as with the vector extension above.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_users_username_gin ON users USING gin(username gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_users_full_name_gin ON users USING gin(full_name gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_users_biography_gin ON users USING gin(biography gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		_, _ = db.Exec(idx)
	}

	return nil
}
