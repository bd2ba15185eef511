package calendar

import (
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/apperrors"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Service resolves trading-day windows against the calendar.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new calendar service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "calendar").Logger(),
	}
}

// PreviousTradingDays returns the n trading days ending at or before the given
// ISO date, formatted for the trading-days endpoint.
func (s *Service) PreviousTradingDays(date string, n int) (*TradingDaysResponse, error) {
	if err := validateParams(date, n); err != nil {
		return nil, err
	}

	days, err := s.ResolveWindow(date, n)
	if err != nil {
		return nil, err
	}

	formatted := make([]string, 0, len(days))
	for _, d := range days {
		formatted = append(formatted, d.ISODate())
	}

	return &TradingDaysResponse{
		StartDate:        formatted[0],
		EndDate:          formatted[len(formatted)-1],
		TradingDaysCount: len(formatted),
		TradingDays:      formatted,
		OriginalInput:    TradingDaysRequest{Date: date, N: n},
	}, nil
}

// ResolveWindow returns exactly size trading days ending at the given ISO date
// (or its nearest preceding trading day), ordered ascending by date.
func (s *Service) ResolveWindow(date string, size int) ([]TradingDay, error) {
	targetDay := FormatCompact(date)

	endDay, err := s.repo.FindByDay(targetDay)
	if err != nil {
		return nil, err
	}
	if endDay == nil {
		return nil, apperrors.NotFound("trading day not found for date: %s", date)
	}

	// If the target is not itself a trading day, fall back to the nearest
	// earlier one.
	if !endDay.IsTradingDay {
		endDay, err = s.repo.FindPreviousTradingDay(targetDay)
		if err != nil {
			return nil, err
		}
		if endDay == nil {
			return nil, apperrors.NotFound("no trading day found before %s", date)
		}
	}

	days, err := s.repo.FindPreviousNTradingDays(endDay.Day, size)
	if err != nil {
		return nil, err
	}

	if len(days) < size {
		return nil, apperrors.InsufficientData(
			"not enough trading days found, required: %d, found: %d", size, len(days))
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days, nil
}

func validateParams(date string, n int) error {
	if date == "" {
		return apperrors.BadRequest("missing required parameters: date and n")
	}
	if !datePattern.MatchString(date) {
		return apperrors.BadRequest("invalid date format, should be YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return apperrors.BadRequest("invalid date format, should be YYYY-MM-DD")
	}
	if n <= 0 {
		return apperrors.BadRequest("parameter n must be a positive integer")
	}
	return nil
}
