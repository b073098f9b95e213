package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	"github.com/allisson/idvault/internal/database"
	apperrors "github.com/allisson/idvault/internal/errors"
)

// PostgreSQLClientRepository implements Client persistence for PostgreSQL.
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// NewPostgreSQLClientRepository creates a new PostgreSQL client repository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}

// Create inserts a new Client. Capabilities are stored as a JSON array.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	capabilities, err := marshalCapabilities(client.Capabilities)
	if err != nil {
		return err
	}

	query := `INSERT INTO clients (id, secret, name, is_active, capabilities, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = querier.ExecContext(
		ctx,
		query,
		client.ID,
		client.Secret,
		client.Name,
		client.IsActive,
		capabilities,
		client.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// Get retrieves a Client by ID. Returns ErrClientNotFound if the client doesn't exist.
func (p *PostgreSQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, secret, name, is_active, capabilities, created_at FROM clients WHERE id = $1`

	var client authDomain.Client
	var capabilities []byte

	err := querier.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID,
		&client.Secret,
		&client.Name,
		&client.IsActive,
		&capabilities,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}

	if client.Capabilities, err = unmarshalCapabilities(capabilities); err != nil {
		return nil, err
	}
	return &client, nil
}
