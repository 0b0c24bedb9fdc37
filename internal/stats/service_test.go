package stats

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"nutribot_backend/internal/records"
)

type fakeRepo struct {
	stats records.DailyStats
	err   error

	since      time.Time
	resetToday bool
	resetAll   bool
}

func (f *fakeRepo) DailyStats(_ context.Context, _ int64, since time.Time) (records.DailyStats, error) {
	f.since = since
	return f.stats, f.err
}

func (f *fakeRepo) ResetToday(_ context.Context, _ int64, since time.Time) error {
	f.resetToday = true
	f.since = since
	return nil
}

func (f *fakeRepo) ResetAll(_ context.Context, _ int64) error {
	f.resetAll = true
	return nil
}

func fp(v float64) *float64 { return &v }

func TestToday_WithMealsAndWeight(t *testing.T) {
	repo := &fakeRepo{stats: records.DailyStats{
		Calories: fp(1850),
		ProteinG: fp(95.5),
		FatG:     fp(60),
		CarbsG:   fp(210),
		WaterML:  1250,
		LastWeight: &records.WeightLog{
			WeightKg: 72.5,
			LoggedAt: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		},
	}}
	svc := New(repo)

	out, err := svc.Today(context.Background(), 1, "en")
	if err != nil {
		t.Fatalf("today: %v", err)
	}

	for _, want := range []string{
		"Today's summary",
		"1850 kcal",
		"protein 95.5 g",
		"Water: 1250 ml",
		"Last weight: 72.5 kg (2026-03-14)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Fiber") {
		t.Fatal("fiber line must be absent when fiber and sugar are unknown")
	}
}

func TestToday_NoMeals(t *testing.T) {
	repo := &fakeRepo{stats: records.DailyStats{WaterML: 500}}
	svc := New(repo)

	out, err := svc.Today(context.Background(), 1, "en")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !strings.Contains(out, "No meals logged today.") {
		t.Fatalf("expected no-meals line:\n%s", out)
	}
	if !strings.Contains(out, "Water: 500 ml") {
		t.Fatalf("expected water line even without meals:\n%s", out)
	}
	if strings.Contains(out, "Last weight") {
		t.Fatal("weight line must be absent without a weight log")
	}
}

func TestToday_QueriesSinceStartOfDay(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 17, 45, 12, 0, time.UTC)
	}

	if _, err := svc.Today(context.Background(), 1, "en"); err != nil {
		t.Fatalf("today: %v", err)
	}

	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !repo.since.Equal(want) {
		t.Fatalf("expected since %v, got %v", want, repo.since)
	}
}

func TestToday_RepositoryError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("boom")}
	svc := New(repo)

	if _, err := svc.Today(context.Background(), 1, "en"); err == nil {
		t.Fatal("expected error")
	}
}

func TestResets(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	if err := svc.ResetToday(context.Background(), 1); err != nil {
		t.Fatalf("reset today: %v", err)
	}
	if !repo.resetToday {
		t.Fatal("expected ResetToday delegated")
	}
	if err := svc.ResetAll(context.Background(), 1); err != nil {
		t.Fatalf("reset all: %v", err)
	}
	if !repo.resetAll {
		t.Fatal("expected ResetAll delegated")
	}
}
