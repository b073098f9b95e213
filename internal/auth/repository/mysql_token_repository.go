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

// MySQLTokenRepository implements Token persistence for MySQL.
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a new MySQL token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts a new Token using BINARY(16) for UUIDs.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	clientID, err := token.ClientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `INSERT INTO tokens (id, token_hash, client_id, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		clientID,
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
func (m *MySQLTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, client_id, expires_at, revoked_at, created_at
			  FROM tokens WHERE token_hash = ?`

	var token authDomain.Token
	var id, clientID []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&id,
		&token.TokenHash,
		&clientID,
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

	if err := token.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}
	if err := token.ClientID.UnmarshalBinary(clientID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}
	return &token, nil
}

// DeleteExpired removes tokens whose expires_at is before olderThan.
func (m *MySQLTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at < ?`, olderThan)
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
func (m *MySQLTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens WHERE expires_at < ?`, olderThan).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired tokens")
	}
	return count, nil
}
