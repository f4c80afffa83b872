// Package admin assembles the HR dashboard from the directory, verification
// and appeal stores.
package admin

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	amodels "veriport/internal/appeal/models"
	"veriport/internal/comparison"
	vmodels "veriport/internal/verification/models"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/requestcontext"
)

const (
	trendDays    = 7
	recentLimit  = 10
	statsTimeout = 5 * time.Second
)

type EmployeeCounter interface {
	Count(ctx context.Context) (int, error)
}

type VerificationStats interface {
	CountByStatus(ctx context.Context) (map[comparison.Status]int, error)
	DailyCounts(ctx context.Context, from time.Time) (map[string]int, error)
	ListRecent(ctx context.Context, limit int) ([]*vmodels.Record, error)
}

type AppealStats interface {
	CountByStatus(ctx context.Context) (map[amodels.Status]int, error)
}

// DayCount is the number of verifications completed on one UTC day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Dashboard struct {
	TotalEmployees       int
	VerificationsTotal   int
	VerificationsByState map[comparison.Status]int
	AppealsByStatus      map[amodels.Status]int
	Trend                []DayCount
	Recent               []*vmodels.Record
	GeneratedAt          time.Time
}

type Service struct {
	employees     EmployeeCounter
	verifications VerificationStats
	appeals       AppealStats
}

func NewService(employees EmployeeCounter, verifications VerificationStats, appeals AppealStats) *Service {
	return &Service{employees: employees, verifications: verifications, appeals: appeals}
}

// Dashboard reads every aggregate concurrently. The first failure cancels
// the rest.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := requestcontext.Now(ctx).UTC()
	ctx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, -(trendDays - 1))

	d := &Dashboard{GeneratedAt: now}
	var daily map[string]int

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.employees.Count(ctx)
		d.TotalEmployees = n
		return err
	})
	g.Go(func() error {
		counts, err := s.verifications.CountByStatus(ctx)
		d.VerificationsByState = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.appeals.CountByStatus(ctx)
		d.AppealsByStatus = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.verifications.DailyCounts(ctx, from)
		daily = counts
		return err
	})
	g.Go(func() error {
		recent, err := s.verifications.ListRecent(ctx, recentLimit)
		d.Recent = recent
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dashboard")
	}

	for _, n := range d.VerificationsByState {
		d.VerificationsTotal += n
	}
	d.Trend = make([]DayCount, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		day := from.AddDate(0, 0, i).Format(time.DateOnly)
		d.Trend = append(d.Trend, DayCount{Date: day, Count: daily[day]})
	}
	return d, nil
}
