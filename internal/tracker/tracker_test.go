package tracker

import (
	"database/sql"
	"math"
	"math/rand"
	"testing"
	"time"

	"abcbus/internal/repositories"
	"abcbus/internal/seed"

	_ "github.com/mattn/go-sqlite3"
)

func newTrackerDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := seed.New(db)
	s.Days = 0
	if err := s.Run(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func TestTickDriftsAroundBase(t *testing.T) {
	db := newTrackerDB(t)
	trk := New(repositories.BusRepo{DB: db}, time.Second)
	trk.Rand = rand.New(rand.NewSource(1))

	trk.tick()

	pos, ok := trk.Location(1)
	if !ok {
		t.Fatalf("no position for bus 1 after tick")
	}
	if math.Abs(pos.Lat-baseLat) > 0.005+1e-9 || math.Abs(pos.Lng-baseLng) > 0.005+1e-9 {
		t.Fatalf("first fix too far from base: %+v", pos)
	}
	if pos.Timestamp.IsZero() {
		t.Fatalf("fix has no timestamp")
	}
}

func TestTickPersistsPosition(t *testing.T) {
	db := newTrackerDB(t)
	trk := New(repositories.BusRepo{DB: db}, time.Second)

	trk.tick()

	bus, err := repositories.BusRepo{DB: db}.GetByID(1)
	if err != nil {
		t.Fatalf("get bus: %v", err)
	}
	if bus.CurrentLat == nil || bus.CurrentLng == nil {
		t.Fatalf("position not persisted: %+v", bus)
	}
	pos, _ := trk.Location(1)
	if *bus.CurrentLat != pos.Lat || *bus.CurrentLng != pos.Lng {
		t.Fatalf("stored fix %v,%v differs from tracker %v,%v",
			*bus.CurrentLat, *bus.CurrentLng, pos.Lat, pos.Lng)
	}
	if bus.Status != "active" {
		t.Fatalf("bus not marked active: %s", bus.Status)
	}
}

func TestConsecutiveTicksDriftFromLastFix(t *testing.T) {
	db := newTrackerDB(t)
	trk := New(repositories.BusRepo{DB: db}, time.Second)

	trk.tick()
	first, _ := trk.Location(1)
	trk.tick()
	second, _ := trk.Location(1)

	if math.Abs(second.Lat-first.Lat) > 0.005+1e-9 || math.Abs(second.Lng-first.Lng) > 0.005+1e-9 {
		t.Fatalf("second fix did not drift from the first: %+v -> %+v", first, second)
	}
}
