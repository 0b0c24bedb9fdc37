package ai

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"

	"nutribot_backend/internal/records"
)

const summaryFallbackLimit = 500

// ExamDraft is the parser's view of an examination report.
type ExamDraft struct {
	ExamType   string  `json:"exam_type"`
	BodyRegion *string `json:"body_region"`
	ExamDate   *string `json:"exam_date"` // ISO date when detected
	Summary    *string `json:"summary"`
}

// DocumentParser classifies and extracts medical documents. Every method
// degrades to a heuristic result instead of failing; document intake must
// always store something.
type DocumentParser struct {
	client *Client
}

// NewDocumentParser creates the parser; client may be nil.
func NewDocumentParser(client *Client) *DocumentParser {
	return &DocumentParser{client: client}
}

var classifySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"class": {Type: genai.TypeString, Enum: []string{
			records.DocClassLabReport, records.DocClassExamination, records.DocClassOther,
		}},
	},
	Required: []string{"class"},
}

const classifyPrompt = `Classify this medical document as one of: lab_report (blood/urine test
results with analytes and values), examination (imaging or procedure report
such as MRI, ultrasound, endoscopy), other. Language %q is irrelevant to the
class.

Document:
%s`

// Classify labels the document text. The heuristic fallback looks for lab
// analyte markers in the text itself.
func (p *DocumentParser) Classify(ctx context.Context, text string) string {
	if p.client != nil {
		raw, err := p.client.generate(ctx, textContent(formatPrompt(classifyPrompt, "any", text)),
			&genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				ResponseSchema:   classifySchema,
			})
		if err == nil {
			var out struct {
				Class string `json:"class"`
			}
			if json.Unmarshal([]byte(raw), &out) == nil && out.Class != "" {
				return out.Class
			}
		} else {
			p.client.log.CollaboratorDegraded("document_parser", err)
		}
	}
	return heuristicClass(text)
}

var labItemsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"taken_at": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"items": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"analyte":         {Type: genai.TypeString},
					"value":           {Type: genai.TypeString, Nullable: genai.Ptr(true)},
					"unit":            {Type: genai.TypeString, Nullable: genai.Ptr(true)},
					"reference_range": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
					"flag":            {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				},
				Required: []string{"analyte"},
			},
		},
	},
	Required: []string{"items"},
}

const labPrompt = `Extract every analyte row from this lab report. taken_at is the sample
date as YYYY-MM-DD when present, null otherwise. flag is "high", "low" or
null. Keep values and units exactly as written. Language hint: %q.

Report:
%s`

// ParseLabReport extracts analyte rows plus the sample date. A degraded
// parse returns no items; the caller still stores the source text.
func (p *DocumentParser) ParseLabReport(ctx context.Context, text string) ([]records.LabItemInput, *string) {
	if p.client == nil {
		return nil, nil
	}
	raw, err := p.client.generate(ctx, textContent(formatPrompt(labPrompt, "any", text)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   labItemsSchema,
		})
	if err != nil {
		p.client.log.CollaboratorDegraded("document_parser", err)
		return nil, nil
	}

	var out struct {
		TakenAt *string                `json:"taken_at"`
		Items   []records.LabItemInput `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		p.client.log.CollaboratorDegraded("document_parser", err)
		return nil, nil
	}
	return out.Items, out.TakenAt
}

var examSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"exam_type":   {Type: genai.TypeString},
		"body_region": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"exam_date":   {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"summary":     {Type: genai.TypeString, Nullable: genai.Ptr(true)},
	},
	Required: []string{"exam_type"},
}

const examPrompt = `Summarize this examination report. exam_type is a short lowercase label
(mri, ultrasound, endoscopy, xray, other). exam_date is YYYY-MM-DD when
present. summary is 2-3 sentences in the document's own language (%q hint).

Report:
%s`

// ParseExamination summarizes an examination report. Degraded parses fall
// back to a generic type with the leading text as summary.
func (p *DocumentParser) ParseExamination(ctx context.Context, text string) ExamDraft {
	if p.client != nil {
		raw, err := p.client.generate(ctx, textContent(formatPrompt(examPrompt, "any", text)),
			&genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				ResponseSchema:   examSchema,
			})
		if err == nil {
			var draft ExamDraft
			if json.Unmarshal([]byte(raw), &draft) == nil && draft.ExamType != "" {
				return draft
			}
		} else {
			p.client.log.CollaboratorDegraded("document_parser", err)
		}
	}
	return fallbackExam(text)
}

func heuristicClass(text string) string {
	lower := strings.ToLower(text)
	for _, marker := range []string{"hemoglobin", "гемоглобин", "leukocyte", "лейкоцит", "reference range"} {
		if strings.Contains(lower, marker) {
			return records.DocClassLabReport
		}
	}
	return records.DocClassOther
}

func fallbackExam(text string) ExamDraft {
	summary := strings.TrimSpace(text)
	if len(summary) > summaryFallbackLimit {
		// Cut on a rune boundary so multi-byte text stays valid UTF-8.
		cut := summaryFallbackLimit
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut]
	}
	draft := ExamDraft{ExamType: records.DocClassOther}
	if summary != "" {
		draft.Summary = &summary
	}
	return draft
}
