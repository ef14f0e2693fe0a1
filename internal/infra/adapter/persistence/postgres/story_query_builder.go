// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storyfeed/internal/repository"
)

// StoryQueryBuilder builds WHERE and ORDER BY clauses for the story list
// query. The builder is shared between the forward and reverse keyset
// directions so the predicate and the ordering always agree.
// PostgreSQL-specific: uses ILIKE and numbered placeholders ($1, $2, ...).
type StoryQueryBuilder struct{}

// NewStoryQueryBuilder creates a new query builder instance.
func NewStoryQueryBuilder() *StoryQueryBuilder {
	return &StoryQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for the list query.
// Search matches case-insensitively as a substring against the owning user's
// username, full_name, or biography (OR across the three). The user filter
// and the keyset predicate compose with AND. Returns an empty clause when no
// condition applies.
func (qb *StoryQueryBuilder) BuildWhereClause(search string, userUUID *uuid.UUID, keyset *repository.Keyset) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(u.username ILIKE $%d OR u.full_name ILIKE $%d OR u.biography ILIKE $%d)",
			paramIndex, paramIndex, paramIndex))
		args = append(args, pattern)
		paramIndex++
	}

	if userUUID != nil {
		conditions = append(conditions, fmt.Sprintf("s.user_uuid = $%d", paramIndex))
		args = append(args, userUUID.String())
		paramIndex++
	}

	if keyset != nil {
		// Row comparison keeps the predicate aligned with the composite
		// (created_at, id) ordering key.
		op := "<"
		if keyset.Reverse {
			op = ">"
		}
		conditions = append(conditions, fmt.Sprintf(
			"(s.created_at, s.id) %s ($%d, $%d)", op, paramIndex, paramIndex+1))
		args = append(args, time.UnixMicro(keyset.CreatedAtMicro).UTC(), keyset.ID)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildOrderClause returns the ORDER BY clause for the given keyset.
// A reverse keyset fetches ascending; the caller restores display order.
func (qb *StoryQueryBuilder) BuildOrderClause(keyset *repository.Keyset) string {
	if keyset != nil && keyset.Reverse {
		return "ORDER BY s.created_at ASC, s.id ASC"
	}
	return "ORDER BY s.created_at DESC, s.id DESC"
}

// escapeLike escapes the ILIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
