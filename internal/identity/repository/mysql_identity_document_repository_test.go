package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLIdentityDocumentRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StoresBinaryID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		document := newTestDocument()
		mock.ExpectExec("INSERT INTO identity_documents").
			WithArgs(
				mustBinary(t, document.ID),
				document.SubjectRef,
				document.Ciphertext,
				document.IV,
				document.Fingerprint,
				document.CreatedAt,
				document.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewMySQLIdentityDocumentRepository(db)
		require.NoError(t, repo.Create(ctx, document))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateFingerprint", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO identity_documents").
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		repo := NewMySQLIdentityDocumentRepository(db)
		err = repo.Create(ctx, newTestDocument())
		assert.ErrorIs(t, err, identityDomain.ErrIdentityDocumentAlreadyExists)
	})
}

func TestMySQLIdentityDocumentRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		document := newTestDocument()
		idBytes := mustBinary(t, document.ID)
		mock.ExpectQuery("SELECT (.+) FROM identity_documents WHERE id = \\?").
			WithArgs(idBytes).
			WillReturnRows(sqlmock.NewRows(documentColumns).AddRow(
				idBytes,
				document.SubjectRef,
				document.Ciphertext,
				document.IV,
				document.Fingerprint,
				document.CreatedAt,
				document.UpdatedAt,
			))

		repo := NewMySQLIdentityDocumentRepository(db)
		got, err := repo.Get(ctx, document.ID)
		require.NoError(t, err)
		assert.Equal(t, document, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT (.+) FROM identity_documents").WillReturnRows(sqlmock.NewRows(documentColumns))

		repo := NewMySQLIdentityDocumentRepository(db)
		got, err := repo.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, identityDomain.ErrIdentityDocumentNotFound)
		assert.Nil(t, got)
	})
}

func TestMySQLIdentityDocumentRepository_GetByFingerprint(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT (.+) FROM identity_documents WHERE fingerprint = \\?").
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows(documentColumns))

	repo := NewMySQLIdentityDocumentRepository(db)
	got, err := repo.GetByFingerprint(ctx, "abc")
	assert.ErrorIs(t, err, identityDomain.ErrIdentityDocumentNotFound)
	assert.Nil(t, got)
}

func TestMySQLIdentityDocumentRepository_List(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	document := newTestDocument()
	mock.ExpectQuery("LIMIT \\? OFFSET \\?").
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(documentColumns).AddRow(
			mustBinary(t, document.ID),
			document.SubjectRef,
			document.Ciphertext,
			document.IV,
			document.Fingerprint,
			document.CreatedAt,
			document.UpdatedAt,
		))

	repo := NewMySQLIdentityDocumentRepository(db)
	documents, err := repo.List(ctx, 0, 50)
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, document.ID, documents[0].ID)
}

func TestMySQLIdentityDocumentRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.Must(uuid.NewV7())
	mock.ExpectExec("DELETE FROM identity_documents WHERE id = \\?").
		WithArgs(mustBinary(t, id)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMySQLIdentityDocumentRepository(db)
	assert.ErrorIs(t, repo.Delete(ctx, id), identityDomain.ErrIdentityDocumentNotFound)
}
