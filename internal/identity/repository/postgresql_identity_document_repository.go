// Package repository implements identity document persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/idvault/internal/database"
	apperrors "github.com/allisson/idvault/internal/errors"
	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

// PostgreSQLIdentityDocumentRepository implements IdentityDocument persistence for PostgreSQL.
type PostgreSQLIdentityDocumentRepository struct {
	db *sql.DB
}

// NewPostgreSQLIdentityDocumentRepository creates a new PostgreSQL identity document repository.
func NewPostgreSQLIdentityDocumentRepository(db *sql.DB) *PostgreSQLIdentityDocumentRepository {
	return &PostgreSQLIdentityDocumentRepository{db: db}
}

// Create inserts a new identity document.
func (p *PostgreSQLIdentityDocumentRepository) Create(
	ctx context.Context,
	document *identityDomain.IdentityDocument,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO identity_documents (id, subject_ref, ciphertext, iv, fingerprint, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		document.ID,
		document.SubjectRef,
		document.Ciphertext,
		document.IV,
		document.Fingerprint,
		document.CreatedAt,
		document.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return identityDomain.ErrIdentityDocumentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create identity document")
	}
	return nil
}

// Get retrieves an identity document by ID.
func (p *PostgreSQLIdentityDocumentRepository) Get(
	ctx context.Context,
	documentID uuid.UUID,
) (*identityDomain.IdentityDocument, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, subject_ref, ciphertext, iv, fingerprint, created_at, updated_at
			  FROM identity_documents
			  WHERE id = $1`

	document, err := scanPostgreSQLDocument(querier.QueryRowContext(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrIdentityDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get identity document")
	}
	return document, nil
}

// GetByFingerprint retrieves an identity document by identifier fingerprint.
func (p *PostgreSQLIdentityDocumentRepository) GetByFingerprint(
	ctx context.Context,
	fingerprint string,
) (*identityDomain.IdentityDocument, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, subject_ref, ciphertext, iv, fingerprint, created_at, updated_at
			  FROM identity_documents
			  WHERE fingerprint = $1`

	document, err := scanPostgreSQLDocument(querier.QueryRowContext(ctx, query, fingerprint))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrIdentityDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get identity document by fingerprint")
	}
	return document, nil
}

// List retrieves identity documents ordered by created_at descending.
func (p *PostgreSQLIdentityDocumentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.IdentityDocument, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, subject_ref, ciphertext, iv, fingerprint, created_at, updated_at
			  FROM identity_documents
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list identity documents")
	}
	defer rows.Close() //nolint:errcheck

	documents := make([]*identityDomain.IdentityDocument, 0)
	for rows.Next() {
		document, err := scanPostgreSQLDocument(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan identity document")
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate identity documents")
	}

	return documents, nil
}

// Delete permanently removes an identity document.
func (p *PostgreSQLIdentityDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM identity_documents WHERE id = $1`, documentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete identity document")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrIdentityDocumentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLDocument(row rowScanner) (*identityDomain.IdentityDocument, error) {
	var document identityDomain.IdentityDocument
	err := row.Scan(
		&document.ID,
		&document.SubjectRef,
		&document.Ciphertext,
		&document.IV,
		&document.Fingerprint,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &document, nil
}
