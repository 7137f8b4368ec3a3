package tracker

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"abcbus/internal/repositories"
	"abcbus/internal/utils"
)

// Default center: Manila. Buses without a stored fix start here.
const (
	baseLat = 14.5995
	baseLng = 120.9842
)

// Position is one simulated GPS fix.
type Position struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// Tracker simulates live bus positions: each tick every bus drifts a
// little around its last fix, and the fix is persisted so the REST
// location endpoint agrees with the push channel. There is no real
// GPS ingestion; this exists to feed the tracking demo.
type Tracker struct {
	BusRepo  repositories.BusRepo
	Interval time.Duration
	Rand     *rand.Rand

	mu        sync.RWMutex
	positions map[int64]Position
}

func New(busRepo repositories.BusRepo, interval time.Duration) *Tracker {
	return &Tracker{
		BusRepo:   busRepo,
		Interval:  interval,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		positions: make(map[int64]Position),
	}
}

// Run blocks until ctx is cancelled.
func (t *Tracker) Run(ctx context.Context) {
	interval := t.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	utils.LogEvent("", "tracker", "start", fmt.Sprintf("interval=%s", interval))
	for {
		select {
		case <-ctx.Done():
			utils.LogEvent("", "tracker", "stop", "")
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

func (t *Tracker) tick() {
	ids, err := t.BusRepo.ListIDs()
	if err != nil {
		utils.LogEvent("", "tracker", "tick_failed", err.Error())
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		prev, ok := t.positions[id]
		if !ok {
			prev = Position{Lat: baseLat, Lng: baseLng}
		}
		next := Position{
			Lat:       prev.Lat + (t.Rand.Float64()-0.5)*0.01,
			Lng:       prev.Lng + (t.Rand.Float64()-0.5)*0.01,
			Timestamp: time.Now(),
		}
		t.positions[id] = next
		if err := t.BusRepo.UpdatePosition(id, next.Lat, next.Lng); err != nil {
			utils.LogEvent("", "tracker", "persist_failed", err.Error())
		}
	}
}

// Location returns the latest simulated fix for a bus.
func (t *Tracker) Location(busID int64) (Position, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.positions[busID]
	return p, ok
}
