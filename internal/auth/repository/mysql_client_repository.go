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

// MySQLClientRepository implements Client persistence for MySQL.
type MySQLClientRepository struct {
	db *sql.DB
}

// NewMySQLClientRepository creates a new MySQL client repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}

// Create inserts a new Client using BINARY(16) for the ID.
func (m *MySQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	capabilities, err := marshalCapabilities(client.Capabilities)
	if err != nil {
		return err
	}

	query := `INSERT INTO clients (id, secret, name, is_active, capabilities, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `SELECT id, secret, name, is_active, capabilities, created_at FROM clients WHERE id = ?`

	var client authDomain.Client
	var rawID, capabilities []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
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

	if err := client.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}
	if client.Capabilities, err = unmarshalCapabilities(capabilities); err != nil {
		return nil, err
	}
	return &client, nil
}
