package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/revenda/backend/internal/domain/billing"
	"github.com/revenda/backend/internal/domain/shared"
)

// newMockDB creates a GORM DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockDocumentRepository(t *testing.T) (*GormDocumentRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormDocumentRepository(gormDB), mock, mockDB
}

func TestGormDocumentRepository_FindByID(t *testing.T) {
	t.Run("finds existing document with installments", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()
		itemID := uuid.New()

		docRows := sqlmock.NewRows([]string{"id", "number", "kind", "customer_name", "item_id", "contract_type"}).
			AddRow(documentID, int64(3), "FINAL", "Maria dos Santos", itemID, "TWO_INSTALLMENTS")

		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(documentID, 1).
			WillReturnRows(docRows)

		instRows := sqlmock.NewRows([]string{"id", "document_id", "ordinal", "label", "status"}).
			AddRow(uuid.New(), documentID, 1, "Down payment", "PENDING").
			AddRow(uuid.New(), documentID, 2, "Installment 1", "PENDING")

		mock.ExpectQuery(`SELECT \* FROM "document_installments" WHERE .*"document_id" = \$1.* ORDER BY ordinal ASC`).
			WithArgs(documentID).
			WillReturnRows(instRows)

		doc, err := repo.FindByID(context.Background(), documentID)

		require.NoError(t, err)
		assert.Equal(t, documentID, doc.ID)
		assert.Equal(t, int64(3), doc.Number)
		assert.Len(t, doc.Installments, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing document", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(documentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		doc, err := repo.FindByID(context.Background(), documentID)

		assert.Nil(t, doc)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentRepository_NextNumber(t *testing.T) {
	t.Run("returns max plus one within the kind", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COALESCE\(MAX\(number\), 0\) FROM "documents" WHERE kind = \$1`).
			WithArgs("FINAL").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(4)))

		number, err := repo.NextNumber(context.Background(), billing.KindFinal)

		require.NoError(t, err)
		assert.Equal(t, int64(5), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at one for an empty sequence", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COALESCE\(MAX\(number\), 0\) FROM "documents" WHERE kind = \$1`).
			WithArgs("PROFORMA").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

		number, err := repo.NextNumber(context.Background(), billing.KindProforma)

		require.NoError(t, err)
		assert.Equal(t, int64(1), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentRepository_SumPayableByKind(t *testing.T) {
	repo, mock, mockDB := newMockDocumentRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(payable_amount\), 0\) FROM "documents" WHERE kind = \$1`).
		WithArgs("FINAL").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("115000"))

	total, err := repo.SumPayableByKind(context.Background(), billing.KindFinal)

	require.NoError(t, err)
	assert.Equal(t, "115000", total.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDocumentRepository_Delete(t *testing.T) {
	t.Run("deletes document and installments", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "document_installments" WHERE document_id = \$1`).
			WithArgs(documentID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "documents" WHERE id = \$1`).
			WithArgs(documentID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), documentID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "document_installments" WHERE document_id = \$1`).
			WithArgs(documentID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "documents" WHERE id = \$1`).
			WithArgs(documentID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), documentID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentRepository_FindFinalsByItem(t *testing.T) {
	repo, mock, mockDB := newMockDocumentRepository(t)
	defer mockDB.Close()

	itemID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "number", "kind", "item_id"}).
		AddRow(uuid.New(), int64(1), "FINAL", itemID)

	mock.ExpectQuery(`SELECT \* FROM "documents" WHERE kind = \$1 AND item_id = \$2`).
		WithArgs("FINAL", itemID).
		WillReturnRows(rows)

	docs, err := repo.FindFinalsByItem(context.Background(), itemID)

	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, billing.KindFinal, docs[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
