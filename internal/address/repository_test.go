package address

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "user_id",
	"first_name", "last_name", "phone",
	"line1", "building", "floor", "unit",
	"subdistrict", "district", "province", "postal_code",
	"created_at", "updated_at",
}

func addressRow(rows *sqlmock.Rows, id, userID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id.String(), userID.String(),
		"Somchai", "Jaidee", "0812345678",
		"", "", "", "",
		"Lumphini", "Pathum Wan", "Bangkok", "10330",
		now, now)
}

func TestRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := addressRow(sqlmock.NewRows(columns), uuid.New(), userID)
		mock.ExpectQuery(`FROM addresses WHERE user_id = \$1 ORDER BY created_at DESC`).
			WithArgs(userID).
			WillReturnRows(rows)

		list, err := repo.ListByUser(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Somchai", list[0].FirstName)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery(`FROM addresses`).WillReturnError(errors.New("db error"))

		_, err := repo.ListByUser(context.Background(), userID)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id, userID := uuid.New(), uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`FROM addresses WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(addressRow(sqlmock.NewRows(columns), id, userID))

		a, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, userID, a.UserID)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM addresses WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateUpdateDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	addr := &Address{ID: uuid.New(), UserID: uuid.New(), Shipping: validShipping()}
	now := time.Now()

	t.Run("Create", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO addresses`).
			WithArgs(addr.ID, addr.UserID,
				"Somchai", "Jaidee", "0812345678",
				"", "", "", "",
				"Lumphini", "Pathum Wan", "Bangkok", "10330").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, repo.Create(ctx, addr))
		assert.Equal(t, now, addr.CreatedAt)
	})

	t.Run("Update missing", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE addresses SET`).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

		assert.ErrorIs(t, repo.Update(ctx, addr), ErrAddressNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE addresses SET`).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		assert.NoError(t, repo.Update(ctx, addr))
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM addresses WHERE id = \$1 AND user_id = \$2`).
			WithArgs(addr.ID, addr.UserID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, addr.UserID, addr.ID))
	})

	t.Run("Delete missing", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM addresses`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, addr.UserID, addr.ID), ErrAddressNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
