package service

import (
	"context"
	"time"

	"cashdesk-backend/internal/logger"
	"cashdesk-backend/internal/repository"
)

type resetService struct {
	lineRepo repository.CashLineRepository
	loc      *time.Location
	now      func() time.Time
}

func NewResetService(lineRepo repository.CashLineRepository, loc *time.Location) ResetService {
	return &resetService{lineRepo: lineRepo, loc: loc, now: time.Now}
}

// localDay truncates t to its calendar day in the business time zone.
func (s *resetService) localDay(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

func (s *resetService) ResetDailyLimits(ctx context.Context) (int64, error) {
	lines, err := s.lineRepo.List(ctx, false)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	today := s.localDay(now)

	var due []int32
	for i := range lines {
		last := lines[i].CreatedAt
		if lines[i].LastResetDate != nil {
			last = *lines[i].LastResetDate
		}
		if today.After(s.localDay(last)) {
			due = append(due, lines[i].ID)
		}
	}
	if len(due) == 0 {
		logger.Info("daily limit reset: nothing due")
		return 0, nil
	}

	n, err := s.lineRepo.ResetDailyCounters(ctx, due, now)
	if err != nil {
		return 0, err
	}
	logger.Info("daily limit reset", "lines", n)
	return n, nil
}

func (s *resetService) ResetMonthlyLimits(ctx context.Context) (int64, error) {
	now := s.now().UTC()
	if now.In(s.loc).Day() != 1 {
		logger.Info("monthly limit reset: not the first of the month, skipping")
		return 0, nil
	}
	n, err := s.lineRepo.ResetMonthlyCounters(ctx, now)
	if err != nil {
		return 0, err
	}
	logger.Info("monthly limit reset", "lines", n)
	return n, nil
}
