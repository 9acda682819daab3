package repository

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"vas_import/internal/config/connections/postgres"
)

type PersonalAccessToken struct {
	ID        int64
	TokenHash string
	UserID    string
	Abilities string
	ExpiresAt *time.Time
}

type PersonalAccessTokenRepository struct {
	pg *postgres.Postgres
}

func NewPersonalAccessTokenRepository(pg *postgres.Postgres) *PersonalAccessTokenRepository {
	return &PersonalAccessTokenRepository{pg: pg}
}

// FindTokenByPlainToken resolves a bearer token of the form "id|secret" (or a
// bare secret) against personal_access_tokens. Secrets are stored sha256
// hashed; plain storage is accepted for legacy rows.
func (r *PersonalAccessTokenRepository) FindTokenByPlainToken(ctx context.Context, plainToken string) (*PersonalAccessToken, error) {
	plainToken = strings.TrimSpace(plainToken)
	if plainToken == "" {
		return nil, errors.New("empty token")
	}

	var (
		tokenID   *int64
		tokenPart string
	)

	if idx := strings.Index(plainToken, "|"); idx > 0 {
		idStr := plainToken[:idx]
		tokenPart = plainToken[idx+1:]
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			tokenID = &id
		} else {
			log.Printf("[TOKEN] failed to parse id %q: %v", idStr, err)
		}
	} else {
		tokenPart = plainToken
	}

	sum := sha256.Sum256([]byte(tokenPart))
	hashStr := fmt.Sprintf("%x", sum)

	var pat PersonalAccessToken

	if tokenID != nil {
		query := `
            SELECT id, token, user_id, abilities, expires_at
            FROM personal_access_tokens
            WHERE id = $1
              AND (expires_at IS NULL OR expires_at > $2)
        `

		err := r.pg.Pool.QueryRow(ctx, query, *tokenID, time.Now()).Scan(
			&pat.ID,
			&pat.TokenHash,
			&pat.UserID,
			&pat.Abilities,
			&pat.ExpiresAt,
		)
		if err != nil {
			log.Printf("[TOKEN] query by id error: %v", err)
		} else {
			if pat.TokenHash == hashStr || pat.TokenHash == tokenPart {
				return &pat, nil
			}
			log.Printf("[TOKEN] token mismatch for id=%d", pat.ID)
		}
	}

	// fallback by token value (hash or plain)
	query := `
        SELECT id, token, user_id, abilities, expires_at
        FROM personal_access_tokens
        WHERE token IN ($1, $2)
          AND (expires_at IS NULL OR expires_at > $3)
        ORDER BY created_at DESC
        LIMIT 1
    `

	err := r.pg.Pool.QueryRow(ctx, query, hashStr, tokenPart, time.Now()).Scan(
		&pat.ID,
		&pat.TokenHash,
		&pat.UserID,
		&pat.Abilities,
		&pat.ExpiresAt,
	)
	if err != nil {
		log.Printf("[TOKEN] fallback query error: %v", err)
		return nil, errors.New("token not found")
	}

	return &pat, nil
}
