package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Message is one turn of prior dialog passed back as context.
type Message struct {
	Role    string
	Content string
}

// Dietitian answers free-form nutrition questions and drafts recipes.
// Unlike the estimator its failures are surfaced: the asking flow shows a
// localized error and clears its state.
type Dietitian struct {
	client *Client
}

// NewDietitian creates the dialog adapter; client may be nil.
func NewDietitian(client *Client) *Dietitian {
	return &Dietitian{client: client}
}

// ErrUnavailable is returned when no collaborator is configured.
var ErrUnavailable = fmt.Errorf("ai collaborator not configured")

const dietitianSystem = `You are a careful dietitian assistant inside a nutrition tracking app.
Answer briefly and practically in language %q. You are not a doctor; recommend
seeing one for anything clinical. User profile:
%s`

// GenerateReply answers a user question given the profile summary and the
// recent dialog window.
func (d *Dietitian) GenerateReply(ctx context.Context, profile string, history []Message, question, lang string) (string, error) {
	if d.client == nil {
		return "", ErrUnavailable
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.RoleUser
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(m.Content)},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(question)},
	})

	reply, err := d.client.generate(ctx, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(fmt.Sprintf(dietitianSystem, lang, profile))},
		},
	})
	if err != nil {
		d.client.log.CollaboratorDegraded("dietitian", err)
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

const recipePrompt = `Write a simple recipe in language %q for: %s
Plain text, short ingredient list, numbered steps, no markdown.`

// SuggestRecipe drafts a recipe body for the given title.
func (d *Dietitian) SuggestRecipe(ctx context.Context, title, lang string) (string, error) {
	if d.client == nil {
		return "", ErrUnavailable
	}
	body, err := d.client.generate(ctx, textContent(formatPrompt(recipePrompt, lang, title)), nil)
	if err != nil {
		d.client.log.CollaboratorDegraded("dietitian", err)
		return "", err
	}
	return strings.TrimSpace(body), nil
}
