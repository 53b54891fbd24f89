package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventgate/internal/domain"
)

func TestCheckInRepository_Create(t *testing.T) {
	ctx := context.Background()

	record := &domain.CheckInRecord{
		ID:          "rec-1",
		AttendeeID:  "att-1",
		EventID:     "ev-1",
		OperatorID:  "op-1",
		CouponCount: 3,
		CheckedInAt: time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO checkin_records`).
					WithArgs("rec-1", "att-1", "ev-1", "op-1", 3, record.CheckedInAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate attendee returns ErrAlreadyCheckedIn",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO checkin_records`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrAlreadyCheckedIn,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO checkin_records`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewCheckInRepository(db)
			err = repo.Create(ctx, record)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCheckInRepository_GetByAttendeeID(t *testing.T) {
	ctx := context.Background()
	checkedInAt := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, attendee_id, event_id, operator_id, coupon_count, checked_in_at`).
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "attendee_id", "event_id", "operator_id", "coupon_count", "checked_in_at"}).
				AddRow("rec-1", "att-1", "ev-1", "op-1", 3, checkedInAt))

		repo := NewCheckInRepository(db)
		got, err := repo.GetByAttendeeID(ctx, "att-1")
		require.NoError(t, err)
		require.Equal(t, "op-1", got.OperatorID)
		require.Equal(t, 3, got.CouponCount)
		require.Equal(t, checkedInAt, got.CheckedInAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not checked in returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, attendee_id, event_id, operator_id, coupon_count, checked_in_at`).
			WithArgs("att-2").
			WillReturnError(sql.ErrNoRows)

		repo := NewCheckInRepository(db)
		_, err = repo.GetByAttendeeID(ctx, "att-2")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
