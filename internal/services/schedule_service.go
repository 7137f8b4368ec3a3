package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
	"abcbus/internal/repositories"
	"abcbus/internal/utils"
)

// ScheduleService answers trip searches.
type ScheduleService struct {
	ScheduleRepo repositories.ScheduleRepo
	// DemoFallback fabricates schedule rows when a search matches
	// nothing. Demo-only behavior; production search returns an empty
	// list.
	DemoFallback bool
	DB           *sql.DB
	RequestID    string
}

func (s ScheduleService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ScheduleService) schedules() repositories.ScheduleRepo {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepo{DB: s.db()}
}

// Search returns bookable schedules. An empty result means no trips;
// callers get an empty list, never an error.
func (s ScheduleService) Search(origin, destination, date string) ([]models.ScheduleDetail, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	date = strings.TrimSpace(date)

	if date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD"}
		}
	}

	results, err := s.schedules().Search(origin, destination, date)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 && s.DemoFallback && origin != "" && destination != "" {
		utils.LogEvent(s.RequestID, "schedule", "demo_fallback",
			fmt.Sprintf("origin=%s destination=%s date=%s", origin, destination, date))
		return demoSchedules(origin, destination, date), nil
	}
	return results, nil
}

// demoSchedules fabricates three trips for the demo UI; ids at and
// above 999001 mark them as synthetic.
func demoSchedules(origin, destination, date string) []models.ScheduleDetail {
	mk := func(id int64, busID int64, dep, arr, busNumber string, seats int) models.ScheduleDetail {
		return models.ScheduleDetail{
			Schedule: models.Schedule{
				ID:             id,
				RouteID:        1,
				BusID:          busID,
				DepartureTime:  dep,
				ArrivalTime:    arr,
				DepartureDate:  date,
				AvailableSeats: seats,
				Status:         models.ScheduleStatusScheduled,
			},
			Origin:      origin,
			Destination: destination,
			Fare:        580.00,
			BusNumber:   busNumber,
			Capacity:    40,
		}
	}
	return []models.ScheduleDetail{
		mk(999001, 1, "08:00", "14:00", "ABC-DEMO1", 25),
		mk(999002, 2, "14:30", "20:30", "ABC-DEMO2", 18),
		mk(999003, 3, "21:00", "03:00", "ABC-DEMO3", 32),
	}
}
