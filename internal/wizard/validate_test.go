package wizard

import (
	"testing"

	"nutribot_backend/internal/transport"
)

func textEvent(text string) transport.InboundEvent {
	return transport.InboundEvent{SenderID: 1, Text: text}
}

func callbackEvent(token string) transport.InboundEvent {
	return transport.InboundEvent{SenderID: 1, Callback: token}
}

func TestValidate_NumberAcceptsBothSeparators(t *testing.T) {
	step := Step{Name: "weight", Kind: KindPositiveNumber}

	for _, input := range []string{"72.5", "72,5", " 72.5 "} {
		out := step.Validate(textEvent(input), "en")
		if out.Rejected || out.Skip {
			t.Fatalf("expected %q accepted, got %+v", input, out)
		}
		if out.Value != "72.5" {
			t.Fatalf("expected canonical 72.5 for %q, got %q", input, out.Value)
		}
	}
}

func TestValidate_NumberRejectsGarbage(t *testing.T) {
	step := Step{Name: "weight", Kind: KindPositiveNumber}

	for _, input := range []string{"abc", "", "12.3.4"} {
		out := step.Validate(textEvent(input), "en")
		if !out.Rejected {
			t.Fatalf("expected %q rejected", input)
		}
		if out.ErrorKey != "invalid_number" {
			t.Fatalf("expected invalid_number error key, got %q", out.ErrorKey)
		}
	}
}

func TestValidate_PositiveNumberRejectsZeroAndNegative(t *testing.T) {
	step := Step{Name: "height", Kind: KindPositiveNumber}

	for _, input := range []string{"0", "-5", "-0,1"} {
		out := step.Validate(textEvent(input), "en")
		if !out.Rejected {
			t.Fatalf("expected %q rejected", input)
		}
	}

	out := Step{Name: "delta", Kind: KindNumber}.Validate(textEvent("-5"), "en")
	if out.Rejected {
		t.Fatalf("plain number step must accept negatives, got %+v", out)
	}
	if out.Value != "-5" {
		t.Fatalf("expected -5, got %q", out.Value)
	}
}

func TestValidate_DateAcceptsTwoLayouts(t *testing.T) {
	step := Step{Name: "dob", Kind: KindDate}

	for _, input := range []string{"2020-12-31", "31.12.2020"} {
		out := step.Validate(textEvent(input), "en")
		if out.Rejected {
			t.Fatalf("expected %q accepted", input)
		}
		if out.Value != "2020-12-31" {
			t.Fatalf("expected canonical 2020-12-31 for %q, got %q", input, out.Value)
		}
	}

	for _, input := range []string{"31/12/2020", "2020-13-01", "yesterday"} {
		out := step.Validate(textEvent(input), "en")
		if !out.Rejected {
			t.Fatalf("expected %q rejected", input)
		}
	}
}

func TestValidate_DashSkipsDateWithoutRejection(t *testing.T) {
	step := Step{Name: "taken_at", Kind: KindDate}

	out := step.Validate(textEvent("-"), "en")
	if out.Rejected {
		t.Fatal("dash on a date step must skip, not reject")
	}
	if !out.Skip {
		t.Fatal("dash on a date step must report Skip")
	}
	if out.Value != "" {
		t.Fatalf("skipped outcome must carry no value, got %q", out.Value)
	}
}

func TestValidate_SkippableStep(t *testing.T) {
	step := Step{Name: "allergies", Kind: KindText, Skippable: true}

	for _, input := range []string{"-", "__skip__", "Skip", "skip"} {
		out := step.Validate(textEvent(input), "en")
		if !out.Skip {
			t.Fatalf("expected %q to skip, got %+v", input, out)
		}
	}

	// Localized skip word.
	out := step.Validate(textEvent("Пропустить"), "ru")
	if !out.Skip {
		t.Fatalf("expected localized skip word to skip, got %+v", out)
	}

	out = step.Validate(textEvent("pollen"), "en")
	if out.Skip || out.Rejected || out.Value != "pollen" {
		t.Fatalf("expected pollen accepted, got %+v", out)
	}
}

func TestValidate_NonSkippableIgnoresDashOnText(t *testing.T) {
	step := Step{Name: "title", Kind: KindText}

	out := step.Validate(textEvent("-"), "en")
	if out.Skip {
		t.Fatal("non-skippable text step must not skip on dash")
	}
	if out.Rejected || out.Value != "-" {
		t.Fatalf("expected dash stored verbatim, got %+v", out)
	}
}

func TestValidate_ChoiceMatchesTokenAndLabel(t *testing.T) {
	step := Step{
		Name: "sex",
		Kind: KindChoice,
		Options: []Option{
			{LabelKey: "sex_m", Value: "m"},
			{LabelKey: "sex_f", Value: "f"},
		},
	}

	out := step.Validate(callbackEvent("m"), "en")
	if out.Rejected || out.Value != "m" {
		t.Fatalf("expected token match, got %+v", out)
	}

	out = step.Validate(textEvent("male"), "en")
	if out.Rejected || out.Value != "m" {
		t.Fatalf("expected case-insensitive label match, got %+v", out)
	}

	out = step.Validate(textEvent("dragon"), "en")
	if !out.Rejected || out.ErrorKey != "invalid_choice" {
		t.Fatalf("expected invalid_choice rejection, got %+v", out)
	}
}

func TestValidate_TypedOKChoiceAcceptsNumbers(t *testing.T) {
	step := Step{
		Name:     "amount",
		Kind:     KindChoice,
		TypedOK:  true,
		ErrorKey: "water_invalid_amount",
		Options: []Option{
			{Label: "250", Value: "250"},
			{Label: "500", Value: "500"},
		},
	}

	out := step.Validate(callbackEvent("250"), "en")
	if out.Rejected || out.Value != "250" {
		t.Fatalf("expected preset accepted, got %+v", out)
	}

	out = step.Validate(textEvent("330"), "en")
	if out.Rejected || out.Value != "330" {
		t.Fatalf("expected typed amount accepted, got %+v", out)
	}

	out = step.Validate(textEvent("-200"), "en")
	if !out.Rejected || out.ErrorKey != "water_invalid_amount" {
		t.Fatalf("expected negative amount rejected with step error key, got %+v", out)
	}
}

func TestValidate_AttachmentRequiresFile(t *testing.T) {
	step := Step{Name: "photo", Kind: KindAttachment, ErrorKey: "error_no_photo"}

	out := step.Validate(textEvent("here you go"), "en")
	if !out.Rejected || out.ErrorKey != "error_no_photo" {
		t.Fatalf("expected rejection without attachment, got %+v", out)
	}

	event := transport.InboundEvent{SenderID: 1, Attachment: &transport.Attachment{FileID: "f-123"}}
	out = step.Validate(event, "en")
	if out.Rejected || out.Value != "f-123" {
		t.Fatalf("expected file id accepted, got %+v", out)
	}
}

func TestValidate_ContentAcceptsTextOrAttachment(t *testing.T) {
	step := Step{Name: "content", Kind: KindContent, ErrorKey: "document_need_content"}

	out := step.Validate(textEvent("Hemoglobin 140 g/L"), "en")
	if out.Rejected || out.Value != "Hemoglobin 140 g/L" {
		t.Fatalf("expected pasted text accepted, got %+v", out)
	}

	event := transport.InboundEvent{SenderID: 1, Attachment: &transport.Attachment{FileID: "doc-9"}}
	out = step.Validate(event, "en")
	if out.Rejected || out.Value != "doc-9" {
		t.Fatalf("expected attachment accepted, got %+v", out)
	}

	out = step.Validate(textEvent(""), "en")
	if !out.Rejected || out.ErrorKey != "document_need_content" {
		t.Fatalf("expected empty content rejected, got %+v", out)
	}
}

func TestParseNumber(t *testing.T) {
	if v, ok := ParseNumber("12,5"); !ok || v != 12.5 {
		t.Fatalf("expected 12.5, got %v %v", v, ok)
	}
	if _, ok := ParseNumber(""); ok {
		t.Fatal("empty input must not parse")
	}
	if _, ok := ParseNumber("1 000"); ok {
		t.Fatal("grouped digits must not parse")
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(2000); got != "2000" {
		t.Fatalf("expected 2000, got %q", got)
	}
	if got := FormatNumber(72.5); got != "72.5" {
		t.Fatalf("expected 72.5, got %q", got)
	}
}
