package seed

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"abcbus/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// Seeder populates the schema and demo fixtures. Rand is injectable so
// tests can pin the generated schedules.
type Seeder struct {
	DB   *sql.DB
	Rand *rand.Rand
	// Days is the rolling schedule window starting today.
	Days int
}

func New(db *sql.DB) *Seeder {
	return &Seeder{
		DB:   db,
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		Days: 3,
	}
}

// Run creates tables and inserts demo data. Idempotent: existing rows
// are left alone.
func (s *Seeder) Run() error {
	if err := s.createTables(); err != nil {
		return err
	}
	if err := s.insertDemoUser(); err != nil {
		return err
	}
	if err := s.insertRoutes(); err != nil {
		return err
	}
	if err := s.insertBuses(); err != nil {
		return err
	}
	return s.insertSchedules()
}

func (s *Seeder) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			phone TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS routes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance INTEGER NOT NULL,
			duration INTEGER NOT NULL,
			fare REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (origin, destination)
		)`,
		`CREATE TABLE IF NOT EXISTS buses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bus_number TEXT UNIQUE NOT NULL,
			capacity INTEGER NOT NULL DEFAULT 40,
			route_id INTEGER,
			current_lat REAL,
			current_lng REAL,
			status TEXT DEFAULT 'inactive',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (route_id) REFERENCES routes(id)
		)`,
		`CREATE TABLE IF NOT EXISTS schedules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			route_id INTEGER NOT NULL,
			bus_id INTEGER NOT NULL,
			departure_time TEXT NOT NULL,
			arrival_time TEXT NOT NULL,
			departure_date TEXT NOT NULL,
			available_seats INTEGER NOT NULL DEFAULT 40 CHECK (available_seats >= 0),
			status TEXT DEFAULT 'scheduled',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (route_id) REFERENCES routes(id),
			FOREIGN KEY (bus_id) REFERENCES buses(id)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			booking_reference TEXT UNIQUE NOT NULL,
			user_id INTEGER NOT NULL,
			schedule_id INTEGER NOT NULL,
			seat_numbers TEXT NOT NULL,
			total_amount REAL NOT NULL,
			payment_status TEXT DEFAULT 'pending',
			payment_method TEXT,
			payment_reference TEXT,
			qr_code TEXT,
			status TEXT DEFAULT 'pending',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (schedule_id) REFERENCES schedules(id)
		)`,
		`CREATE TABLE IF NOT EXISTS booking_seats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			booking_id INTEGER NOT NULL,
			schedule_id INTEGER NOT NULL,
			seat_code TEXT NOT NULL,
			released INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (booking_id) REFERENCES bookings(id)
		)`,
		// A seat label can be held by at most one live booking per
		// schedule; released rows fall out of the index.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_live_seat
			ON booking_seats (schedule_id, seat_code) WHERE released = 0`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("seed: create tables: %w", err)
		}
	}
	return nil
}

func (s *Seeder) insertDemoUser() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash demo password: %w", err)
	}
	_, err = s.DB.Exec(`
		INSERT OR IGNORE INTO users (id, username, email, password, phone)
		VALUES (1, 'Demo User', 'demo@abcbus.com', ?, '09171234567')`, string(hash))
	if err != nil {
		return fmt.Errorf("seed: insert demo user: %w", err)
	}
	return nil
}

type routeRow struct {
	origin, destination string
	distance, duration  int
	fare                float64
}

func (s *Seeder) insertRoutes() error {
	for _, r := range demoRoutes {
		_, err := s.DB.Exec(`
			INSERT OR IGNORE INTO routes (origin, destination, distance, duration, fare)
			VALUES (?, ?, ?, ?, ?)`,
			r.origin, r.destination, r.distance, r.duration, r.fare)
		if err != nil {
			return fmt.Errorf("seed: insert route %s-%s: %w", r.origin, r.destination, err)
		}
	}
	return nil
}

func (s *Seeder) insertBuses() error {
	for _, b := range demoBuses {
		_, err := s.DB.Exec(`
			INSERT OR IGNORE INTO buses (bus_number, capacity, route_id)
			VALUES (?, ?, ?)`, b.number, b.capacity, b.routeID)
		if err != nil {
			return fmt.Errorf("seed: insert bus %s: %w", b.number, err)
		}
	}
	return nil
}

// Departure pools mirror popular real-world slots.
var (
	morningTimes   = []string{"05:00", "05:30", "06:00", "06:30", "07:00", "07:30", "08:00", "08:30", "09:00"}
	afternoonTimes = []string{"12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00"}
	eveningTimes   = []string{"17:00", "17:30", "18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00"}
)

// insertSchedules generates 3-6 departures per route per day across
// the rolling window. Skipped entirely when schedules already exist so
// restarts do not multiply the fixture set.
func (s *Seeder) insertSchedules() error {
	var existing int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM schedules`).Scan(&existing); err != nil {
		return fmt.Errorf("seed: count schedules: %w", err)
	}
	if existing > 0 {
		return nil
	}

	var maxBus int64
	if err := s.DB.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM buses`).Scan(&maxBus); err != nil {
		return fmt.Errorf("seed: count buses: %w", err)
	}
	if maxBus == 0 {
		return nil
	}

	allTimes := append(append(append([]string{}, morningTimes...), afternoonTimes...), eveningTimes...)

	rows, err := s.DB.Query(`SELECT id FROM routes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("seed: query routes: %w", err)
	}
	var routeIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("seed: scan route id: %w", err)
		}
		routeIDs = append(routeIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	stmt := `INSERT INTO schedules (route_id, bus_id, departure_time, arrival_time, departure_date, available_seats)
			 VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()

	for _, routeID := range routeIDs {
		for day := 0; day < s.Days; day++ {
			date := now.AddDate(0, 0, day).Format("2006-01-02")
			trips := s.Rand.Intn(4) + 3 // 3-6 per day

			for trip := 0; trip < trips; trip++ {
				departure := allTimes[(int(routeID)*trips+trip)%len(allTimes)]
				busID := routeID + int64(s.Rand.Intn(3))
				if busID > maxBus {
					busID = maxBus
				}
				duration := time.Duration(s.Rand.Intn(11)+1)*time.Hour +
					time.Duration(s.Rand.Intn(60))*time.Minute
				arrival := utils.AddClock(departure, duration)
				seats := s.Rand.Intn(35) + 5 // 5-40

				if _, err := s.DB.Exec(stmt, routeID, busID, departure, arrival, date, seats); err != nil {
					return fmt.Errorf("seed: insert schedule: %w", err)
				}
			}
		}
	}
	return nil
}
