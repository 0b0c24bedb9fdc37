package wizard

import (
	"strconv"
	"strings"
	"time"

	"nutribot_backend/internal/i18n"
	"nutribot_backend/internal/transport"
)

const skipToken = "__skip__"

// Outcome is the result of validating one reply against one step.
type Outcome struct {
	Value    string // canonical encoding, empty when skipped or rejected
	Skip     bool   // the optional field stays absent
	Rejected bool
	ErrorKey string // localization key for the re-prompt, set when Rejected
}

func accept(value string) Outcome { return Outcome{Value: value} }
func skipped() Outcome            { return Outcome{Skip: true} }
func reject(key string) Outcome   { return Outcome{Rejected: true, ErrorKey: key} }

// Validate checks the event against the step and produces the canonical
// value to store. Rejection never advances a wizard; the dispatcher
// re-prompts with ErrorKey and the step keyboard.
func (s Step) Validate(event transport.InboundEvent, lang string) Outcome {
	input := strings.TrimSpace(event.Input())

	if s.Skippable && isSkip(input, lang) {
		return skipped()
	}

	switch s.Kind {
	case KindText:
		if input == "" {
			return reject(s.errorKey("need_text"))
		}
		return accept(input)

	case KindNumber, KindPositiveNumber:
		v, ok := ParseNumber(input)
		if !ok || (s.Kind == KindPositiveNumber && v <= 0) {
			return reject(s.errorKey("invalid_number"))
		}
		return accept(FormatNumber(v))

	case KindDate:
		if input == "-" {
			return skipped()
		}
		t, ok := ParseDate(input)
		if !ok {
			return reject(s.errorKey("invalid_date"))
		}
		return accept(t.Format("2006-01-02"))

	case KindChoice:
		if value, ok := s.matchOption(input, lang); ok {
			return accept(value)
		}
		if s.TypedOK {
			if v, ok := ParseNumber(input); ok && v > 0 {
				return accept(FormatNumber(v))
			}
		}
		return reject(s.errorKey("invalid_choice"))

	case KindAttachment:
		if event.Attachment == nil || event.Attachment.FileID == "" {
			return reject(s.errorKey("error_no_photo"))
		}
		return accept(event.Attachment.FileID)

	case KindContent:
		if input != "" {
			return accept(input)
		}
		if event.Attachment != nil && event.Attachment.FileID != "" {
			return accept(event.Attachment.FileID)
		}
		return reject(s.errorKey("document_need_content"))

	case KindYesNo:
		if value, ok := s.matchOption(input, lang); ok {
			return accept(value)
		}
		return reject(s.errorKey("invalid_choice"))
	}

	return reject("unknown_command")
}

func (s Step) matchOption(input string, lang string) (string, bool) {
	for _, opt := range s.Options {
		if input == opt.Value || strings.EqualFold(input, opt.label(lang)) {
			return opt.Value, true
		}
	}
	return "", false
}

func (s Step) errorKey(fallback string) string {
	if s.ErrorKey != "" {
		return s.ErrorKey
	}
	return fallback
}

func isSkip(input, lang string) bool {
	return input == "-" || input == skipToken ||
		strings.EqualFold(input, i18n.T(lang, "skip"))
}

// ParseNumber parses a decimal with either "." or "," as separator.
func ParseNumber(input string) (float64, bool) {
	input = strings.TrimSpace(strings.ReplaceAll(input, ",", "."))
	if input == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatNumber renders the canonical number encoding ("72.5", "2000").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseDate accepts "2006-01-02" or "02.01.2006" and nothing else.
func ParseDate(input string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "02.01.2006"} {
		if t, err := time.Parse(layout, input); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
