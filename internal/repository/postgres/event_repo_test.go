package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventregistration/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{"id", "name", "location", "start_time", "end_time", "max_capacity"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("Conf 2025", "Hall A", start, end, 500),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, location, start_time, end_time, max_capacity\)`).
					WithArgs("Conf 2025", "Hall A", start, end, 500).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
			},
			wantID:  42,
			wantErr: false,
		},
		{
			name:  "db error",
			event: domain.NewEvent("Conf", "Hall", start, end, 1),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantID:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	ist := time.FixedZone("IST", 5*3600+1800)

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success normalizes timestamps to UTC",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location, start_time, end_time, max_capacity FROM events WHERE id = \$1$`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow(int64(1), "Conf", "Hall", time.Date(2025, 7, 1, 15, 30, 0, 0, ist), time.Date(2025, 7, 1, 17, 30, 0, 0, ist), 10))
			},
			want: &domain.Event{
				ID:          1,
				Name:        "Conf",
				Location:    "Hall",
				StartTime:   time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
				EndTime:     time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
				MaxCapacity: 10,
			},
		},
		{
			name: "not found",
			id:   99999,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location`).
					WithArgs(int64(99999)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location`).
					WithArgs(int64(2)).
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
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByIDForUpdate_LocksRowInsideTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM events WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(eventCols).AddRow(int64(5), "Conf", "Hall", start, start.Add(time.Hour), 3))
	mock.ExpectCommit()

	repo := NewEventRepository(db)
	var got *domain.Event
	err = NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
		var err error
		got, err = repo.GetByIDForUpdate(ctx, 5)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 3, got.MaxCapacity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListUpcoming(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE end_time > \$1\s+ORDER BY start_time ASC, id ASC\s+OFFSET \$2 LIMIT \$3`).
			WithArgs(now, 5, 10).
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow(int64(1), "A", "Hall", start, start.Add(time.Hour), 10).
				AddRow(int64(2), "B", "Hall", start.Add(time.Hour), start.Add(2*time.Hour), 20))

		repo := NewEventRepository(db)
		got, err := repo.ListUpcoming(ctx, now, 5, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "A", got[0].Name)
		require.Equal(t, "B", got[1].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty returns empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events`).
			WillReturnRows(sqlmock.NewRows(eventCols))

		got, err := NewEventRepository(db).ListUpcoming(ctx, now, 0, 10)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events`).WillReturnError(sql.ErrConnDone)

		_, err = NewEventRepository(db).ListUpcoming(ctx, now, 0, 10)
		require.Error(t, err)
	})
}

func TestEventRepository_CountAttendees(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM attendees WHERE event_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := NewEventRepository(db).CountAttendees(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
