package ai

import (
	"context"
	"encoding/json"

	"google.golang.org/genai"
)

// Estimate is a best-effort macro breakdown of one meal. Every field is
// optional; the zero Estimate is the degraded result and is always safe
// to commit.
type Estimate struct {
	Calories *float64 `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	FatG     *float64 `json:"fat_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FiberG   *float64 `json:"fiber_g"`
	SugarG   *float64 `json:"sugar_g"`
	Notes    *string  `json:"notes"`
}

// Degraded reports whether the estimator produced nothing usable.
func (e Estimate) Degraded() bool {
	return e.Calories == nil && e.ProteinG == nil && e.FatG == nil &&
		e.CarbsG == nil && e.FiberG == nil && e.SugarG == nil
}

// Nutrition estimates meal macros. Estimation never fails the calling
// flow: any model error yields a zero Estimate.
type Nutrition struct {
	client *Client
}

// NewNutrition creates the estimator; client may be nil.
func NewNutrition(client *Client) *Nutrition {
	return &Nutrition{client: client}
}

var estimateSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"calories":  {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
		"protein_g": {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
		"fat_g":     {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
		"carbs_g":   {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
		"fiber_g":   {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
		"sugar_g":   {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
		"notes":     {Type: genai.TypeString, Nullable: genai.Ptr(true)},
	},
}

const estimatePrompt = `You are a nutritionist. Estimate the nutritional content of the meal below.
Return totals for the whole described portion. Use null for anything you cannot estimate.
Answer notes in language %q.

Meal: %s`

// EstimateMealFromText estimates macros from a meal description.
func (n *Nutrition) EstimateMealFromText(ctx context.Context, text, lang string) Estimate {
	if n.client == nil {
		return Estimate{}
	}
	return n.estimate(ctx, textContent(formatPrompt(estimatePrompt, lang, text)))
}

// EstimateMealFromPhoto estimates macros from a meal photo, using the
// caption as extra context when present. Without image bytes it falls back
// to a caption-only estimate.
func (n *Nutrition) EstimateMealFromPhoto(ctx context.Context, photo []byte, mimeType, caption, lang string) Estimate {
	if n.client == nil {
		return Estimate{}
	}
	if len(photo) == 0 {
		if caption == "" {
			return Estimate{}
		}
		return n.EstimateMealFromText(ctx, caption, lang)
	}

	prompt := formatPrompt(estimatePrompt, lang, "(see attached photo) "+caption)
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: photo}},
			genai.NewPartFromText(prompt),
		},
	}}
	return n.estimate(ctx, contents)
}

func (n *Nutrition) estimate(ctx context.Context, contents []*genai.Content) Estimate {
	raw, err := n.client.generate(ctx, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   estimateSchema,
	})
	if err != nil {
		n.client.log.CollaboratorDegraded("nutrition", err)
		return Estimate{}
	}

	var est Estimate
	if err := json.Unmarshal([]byte(raw), &est); err != nil {
		n.client.log.CollaboratorDegraded("nutrition", err)
		return Estimate{}
	}
	return est
}
