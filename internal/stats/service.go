// Package stats renders the daily summary and handles the log-reset
// commands.
package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nutribot_backend/internal/i18n"
	"nutribot_backend/internal/records"
)

// Repository is the slice of the records repository the service needs.
type Repository interface {
	DailyStats(ctx context.Context, userID int64, since time.Time) (records.DailyStats, error)
	ResetToday(ctx context.Context, userID int64, since time.Time) error
	ResetAll(ctx context.Context, userID int64) error
}

// Service formats stats replies for the dispatcher.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates the stats service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Today renders the localized daily summary.
func (s *Service) Today(ctx context.Context, userID int64, lang string) (string, error) {
	stats, err := s.repo.DailyStats(ctx, userID, startOfDay(s.now()))
	if err != nil {
		return "", fmt.Errorf("daily stats: %w", err)
	}

	lines := []string{i18n.T(lang, "stats_today_title")}
	if stats.HasMeals() {
		lines = append(lines, i18n.T(lang, "stats_today_line",
			num(stats.Calories), num(stats.ProteinG), num(stats.FatG), num(stats.CarbsG)))
		if stats.FiberG != nil || stats.SugarG != nil {
			lines = append(lines, i18n.T(lang, "stats_today_extra", num(stats.FiberG), num(stats.SugarG)))
		}
	} else {
		lines = append(lines, i18n.T(lang, "stats_today_no_meals"))
	}
	lines = append(lines, i18n.T(lang, "stats_today_water_line", int(stats.WaterML)))
	if stats.LastWeight != nil {
		lines = append(lines, i18n.T(lang, "stats_last_weight_line",
			formatWeight(stats.LastWeight.WeightKg),
			stats.LastWeight.LoggedAt.Format("2006-01-02")))
	}
	return strings.Join(lines, "\n"), nil
}

// ResetToday clears today's meals and water.
func (s *Service) ResetToday(ctx context.Context, userID int64) error {
	return s.repo.ResetToday(ctx, userID, startOfDay(s.now()))
}

// ResetAll clears every meal, water and weight log.
func (s *Service) ResetAll(ctx context.Context, userID int64) error {
	return s.repo.ResetAll(ctx, userID)
}

func num(v *float64) string {
	if v == nil {
		return "0"
	}
	return formatWeight(*v)
}

func formatWeight(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
