package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"nutribot_backend/internal/records"
)

func TestNutrition_NilClientDegrades(t *testing.T) {
	n := NewNutrition(nil)

	est := n.EstimateMealFromText(context.Background(), "pasta", "en")
	if !est.Degraded() {
		t.Fatal("expected a degraded estimate without a client")
	}

	est = n.EstimateMealFromPhoto(context.Background(), nil, "", "pasta", "en")
	if !est.Degraded() {
		t.Fatal("expected a degraded photo estimate without a client")
	}
}

func TestEstimate_Degraded(t *testing.T) {
	if !(Estimate{}).Degraded() {
		t.Fatal("the zero estimate must be degraded")
	}

	cal := 300.0
	if (Estimate{Calories: &cal}).Degraded() {
		t.Fatal("an estimate with calories is not degraded")
	}

	notes := "rough guess"
	if !(Estimate{Notes: &notes}).Degraded() {
		t.Fatal("notes alone do not make an estimate usable")
	}
}

func TestDietitian_NilClientUnavailable(t *testing.T) {
	d := NewDietitian(nil)

	_, err := d.GenerateReply(context.Background(), "no profile data", nil, "q", "en")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	_, err = d.SuggestRecipe(context.Background(), "soup", "en")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestDocumentParser_HeuristicClassification(t *testing.T) {
	p := NewDocumentParser(nil)
	ctx := context.Background()

	cases := []struct {
		text string
		want string
	}{
		{"Hemoglobin 140 g/L", records.DocClassLabReport},
		{"Гемоглобин 140 г/л", records.DocClassLabReport},
		{"WBC within reference range", records.DocClassLabReport},
		{"Knee MRI, no abnormalities", records.DocClassOther},
		{"", records.DocClassOther},
	}
	for _, tc := range cases {
		if got := p.Classify(ctx, tc.text); got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestDocumentParser_FallbackExamTruncates(t *testing.T) {
	p := NewDocumentParser(nil)

	long := strings.Repeat("a", 900)
	draft := p.ParseExamination(context.Background(), long)
	if draft.ExamType != records.DocClassOther {
		t.Fatalf("expected other exam type, got %q", draft.ExamType)
	}
	if draft.Summary == nil || len(*draft.Summary) != 500 {
		t.Fatalf("expected a 500-char summary, got %v", draft.Summary)
	}

	// Cyrillic is two bytes per letter; the cut must not split a rune.
	cyrillic := strings.Repeat("a", 499) + strings.Repeat("гемоглобин", 20)
	draft = p.ParseExamination(context.Background(), cyrillic)
	if draft.Summary == nil {
		t.Fatal("expected a summary for long cyrillic text")
	}
	if !utf8.ValidString(*draft.Summary) {
		t.Fatalf("summary is not valid UTF-8: %q", *draft.Summary)
	}
	if got := len(*draft.Summary); got != 499 {
		t.Fatalf("expected cut before the split rune at 499 bytes, got %d", got)
	}

	draft = p.ParseExamination(context.Background(), "   ")
	if draft.Summary != nil {
		t.Fatal("blank text must not produce a summary")
	}
}

func TestDocumentParser_NilClientLabReport(t *testing.T) {
	p := NewDocumentParser(nil)

	items, takenAt := p.ParseLabReport(context.Background(), "Hemoglobin 140")
	if len(items) != 0 {
		t.Fatalf("heuristic parsing extracts no items, got %d", len(items))
	}
	if takenAt != nil {
		t.Fatalf("expected no sample date, got %v", takenAt)
	}
}
