package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	"github.com/allisson/idvault/internal/database"
	apperrors "github.com/allisson/idvault/internal/errors"
)

// PostgreSQLTokenRepository implements Token persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts a new Token.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tokens (id, token_hash, client_id, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.ClientID,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByTokenHash retrieves a Token by its hash. Returns ErrTokenNotFound if not found.
func (p *PostgreSQLTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, client_id, expires_at, revoked_at, created_at
			  FROM tokens WHERE token_hash = $1`

	var token authDomain.Token
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.ClientID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by hash")
	}
	return &token, nil
}

// DeleteExpired removes tokens whose expires_at is before olderThan.
func (p *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at < $1`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

// CountExpired counts tokens whose expires_at is before olderThan.
func (p *PostgreSQLTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens WHERE expires_at < $1`, olderThan).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired tokens")
	}
	return count, nil
}
