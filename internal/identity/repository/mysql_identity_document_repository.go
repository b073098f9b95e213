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

// MySQLIdentityDocumentRepository implements IdentityDocument persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLIdentityDocumentRepository struct {
	db *sql.DB
}

// NewMySQLIdentityDocumentRepository creates a new MySQL identity document repository.
func NewMySQLIdentityDocumentRepository(db *sql.DB) *MySQLIdentityDocumentRepository {
	return &MySQLIdentityDocumentRepository{db: db}
}

// Create inserts a new identity document.
func (m *MySQLIdentityDocumentRepository) Create(
	ctx context.Context,
	document *identityDomain.IdentityDocument,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := document.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal identity document id")
	}

	query := `INSERT INTO identity_documents (id, subject_ref, ciphertext, iv, fingerprint, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLIdentityDocumentRepository) Get(
	ctx context.Context,
	documentID uuid.UUID,
) (*identityDomain.IdentityDocument, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := documentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal identity document id")
	}

	query := `SELECT id, subject_ref, ciphertext, iv, fingerprint, created_at, updated_at
			  FROM identity_documents
			  WHERE id = ?`

	document, err := scanMySQLDocument(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrIdentityDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get identity document")
	}
	return document, nil
}

// GetByFingerprint retrieves an identity document by identifier fingerprint.
func (m *MySQLIdentityDocumentRepository) GetByFingerprint(
	ctx context.Context,
	fingerprint string,
) (*identityDomain.IdentityDocument, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, subject_ref, ciphertext, iv, fingerprint, created_at, updated_at
			  FROM identity_documents
			  WHERE fingerprint = ?`

	document, err := scanMySQLDocument(querier.QueryRowContext(ctx, query, fingerprint))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrIdentityDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get identity document by fingerprint")
	}
	return document, nil
}

// List retrieves identity documents ordered by created_at descending.
func (m *MySQLIdentityDocumentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.IdentityDocument, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, subject_ref, ciphertext, iv, fingerprint, created_at, updated_at
			  FROM identity_documents
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list identity documents")
	}
	defer rows.Close() //nolint:errcheck

	documents := make([]*identityDomain.IdentityDocument, 0)
	for rows.Next() {
		document, err := scanMySQLDocument(rows)
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
func (m *MySQLIdentityDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := documentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal identity document id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM identity_documents WHERE id = ?`, id)
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

func scanMySQLDocument(row rowScanner) (*identityDomain.IdentityDocument, error) {
	var document identityDomain.IdentityDocument
	var id []byte
	err := row.Scan(
		&id,
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
	if err := document.ID.UnmarshalBinary(id); err != nil {
		return nil, err
	}
	return &document, nil
}
