package repositories

import (
	"testing"

	"abcbus/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDecrementSeatsGuardPasses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE schedules").
		WithArgs(2, int64(7), "scheduled", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ScheduleRepo{DB: db}
	if err := repo.DecrementSeats(db, 7, 2); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecrementSeatsClassifiesRejection(t *testing.T) {
	cases := []struct {
		name      string
		status    string
		available int
		check     func(error) bool
	}{
		{"departed trip", "departed", 10, domain.IsConflict},
		{"not enough seats", "scheduled", 1, domain.IsConflict},
	}

	for _, tc := range cases {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("%s: sqlmock init error: %v", tc.name, err)
		}

		mock.ExpectExec("UPDATE schedules").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status, available_seats FROM schedules").
			WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats"}).
				AddRow(tc.status, tc.available))

		repo := ScheduleRepo{DB: db}
		if err := repo.DecrementSeats(db, 7, 2); !tc.check(err) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		db.Close()
	}
}

func TestDecrementSeatsMissingSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE schedules").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status, available_seats FROM schedules").
		WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats"}))

	repo := ScheduleRepo{DB: db}
	if err := repo.DecrementSeats(db, 404, 1); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRestoreSeatsClampsToCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE schedules").
		WithArgs(3, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE schedules").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ScheduleRepo{DB: db}
	if err := repo.RestoreSeats(db, 7, 3); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
