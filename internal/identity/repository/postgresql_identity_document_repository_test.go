package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/idvault/internal/errors"
	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

var documentColumns = []string{"id", "subject_ref", "ciphertext", "iv", "fingerprint", "created_at", "updated_at"}

func newTestDocument() *identityDomain.IdentityDocument {
	now := time.Now().UTC()
	return &identityDomain.IdentityDocument{
		ID:          uuid.Must(uuid.NewV7()),
		SubjectRef:  "customer-1",
		Ciphertext:  "q83vEjRWeJq83vEjRWeJqw==",
		IV:          "AAECAwQFBgcICQoLDA0ODw==",
		Fingerprint: "6d7fce9fee471194aa8b5b6e47267f03f2cb7c0f8b7e6f1b1c2c0b6a1c0f9a11",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestPostgreSQLIdentityDocumentRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		document := newTestDocument()
		mock.ExpectExec("INSERT INTO identity_documents").
			WithArgs(
				document.ID,
				document.SubjectRef,
				document.Ciphertext,
				document.IV,
				document.Fingerprint,
				document.CreatedAt,
				document.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		require.NoError(t, repo.Create(ctx, document))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateFingerprint", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO identity_documents").WillReturnError(&pq.Error{Code: "23505"})

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		err = repo.Create(ctx, newTestDocument())
		assert.ErrorIs(t, err, identityDomain.ErrIdentityDocumentAlreadyExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO identity_documents").WillReturnError(errors.New("connection reset"))

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		err = repo.Create(ctx, newTestDocument())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create identity document")
	})
}

func TestPostgreSQLIdentityDocumentRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		document := newTestDocument()
		rows := sqlmock.NewRows(documentColumns).AddRow(
			document.ID.String(),
			document.SubjectRef,
			document.Ciphertext,
			document.IV,
			document.Fingerprint,
			document.CreatedAt,
			document.UpdatedAt,
		)
		mock.ExpectQuery("SELECT (.+) FROM identity_documents WHERE id = \\$1").
			WithArgs(document.ID).
			WillReturnRows(rows)

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		got, err := repo.Get(ctx, document.ID)
		require.NoError(t, err)
		assert.Equal(t, document, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT (.+) FROM identity_documents").
			WillReturnRows(sqlmock.NewRows(documentColumns))

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		got, err := repo.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, identityDomain.ErrIdentityDocumentNotFound)
		assert.Nil(t, got)
	})
}

func TestPostgreSQLIdentityDocumentRepository_GetByFingerprint(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	document := newTestDocument()
	mock.ExpectQuery("SELECT (.+) FROM identity_documents WHERE fingerprint = \\$1").
		WithArgs(document.Fingerprint).
		WillReturnRows(sqlmock.NewRows(documentColumns).AddRow(
			document.ID.String(),
			document.SubjectRef,
			document.Ciphertext,
			document.IV,
			document.Fingerprint,
			document.CreatedAt,
			document.UpdatedAt,
		))
	mock.ExpectQuery("SELECT (.+) FROM identity_documents WHERE fingerprint = \\$1").
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows(documentColumns))

	repo := NewPostgreSQLIdentityDocumentRepository(db)

	got, err := repo.GetByFingerprint(ctx, document.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, document.ID, got.ID)

	got, err = repo.GetByFingerprint(ctx, "unknown")
	assert.ErrorIs(t, err, identityDomain.ErrIdentityDocumentNotFound)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLIdentityDocumentRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		first, second := newTestDocument(), newTestDocument()
		rows := sqlmock.NewRows(documentColumns)
		for _, d := range []*identityDomain.IdentityDocument{second, first} {
			rows.AddRow(d.ID.String(), d.SubjectRef, d.Ciphertext, d.IV, d.Fingerprint, d.CreatedAt, d.UpdatedAt)
		}
		mock.ExpectQuery("ORDER BY created_at DESC, id DESC LIMIT \\$1 OFFSET \\$2").
			WithArgs(10, 0).
			WillReturnRows(rows)

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		documents, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, documents, 2)
		assert.Equal(t, second.ID, documents[0].ID)
		assert.Equal(t, first.ID, documents[1].ID)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT (.+) FROM identity_documents").WillReturnRows(sqlmock.NewRows(documentColumns))

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		documents, err := repo.List(ctx, 100, 10)
		require.NoError(t, err)
		assert.NotNil(t, documents)
		assert.Empty(t, documents)
	})
}

func TestPostgreSQLIdentityDocumentRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectExec("DELETE FROM identity_documents WHERE id = \\$1").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		assert.NoError(t, repo.Delete(ctx, id))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("DELETE FROM identity_documents").WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLIdentityDocumentRepository(db)
		err = repo.Delete(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, identityDomain.ErrIdentityDocumentNotFound)
	})
}
