// Package dispatch routes inbound events: identity resolution, top-level
// command matching, wizard step advancement and the terminal finishers
// that turn a completed wizard into a committed record.
package dispatch

import (
	"context"

	"nutribot_backend/internal/ai"
	"nutribot_backend/internal/conversation"
	"nutribot_backend/internal/i18n"
	"nutribot_backend/internal/identity"
	"nutribot_backend/internal/records"
	"nutribot_backend/internal/transport"
	"nutribot_backend/internal/wizard"
	"nutribot_backend/platform/apperr"
	"nutribot_backend/platform/logger"
)

// Committer is the persistence commit layer.
type Committer interface {
	Commit(ctx context.Context, wizard string, userID int64, fields map[string]string) (records.Result, error)
}

// Repository is the slice of the records repository the dispatcher needs
// outside of commits.
type Repository interface {
	EnsureUser(ctx context.Context, externalID int64, username, firstName, lastName *string) (records.User, error)
	UpdateUserLanguage(ctx context.Context, userID int64, language string) error
	ListRecipes(ctx context.Context, userID int64) ([]records.Recipe, error)
	GetRecipe(ctx context.Context, userID, recipeID int64) (records.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID int64) error
	RecentMessages(ctx context.Context, userID int64, n int) ([]records.ConversationMessage, error)
	ListMedications(ctx context.Context, userID int64) ([]records.Medication, error)
	ListSupplements(ctx context.Context, userID int64) ([]records.Supplement, error)
	GetDietPreferences(ctx context.Context, userID int64) (records.DietPreferences, error)
}

// StatsService renders the summary and reset commands.
type StatsService interface {
	Today(ctx context.Context, userID int64, lang string) (string, error)
	ResetToday(ctx context.Context, userID int64) error
	ResetAll(ctx context.Context, userID int64) error
}

// NutritionAI estimates meal macros; degraded results are zero Estimates.
type NutritionAI interface {
	EstimateMealFromText(ctx context.Context, text, lang string) ai.Estimate
	EstimateMealFromPhoto(ctx context.Context, photo []byte, mimeType, caption, lang string) ai.Estimate
}

// DietitianAI answers questions and drafts recipes.
type DietitianAI interface {
	GenerateReply(ctx context.Context, profile string, history []ai.Message, question, lang string) (string, error)
	SuggestRecipe(ctx context.Context, title, lang string) (string, error)
}

// DocumentAI classifies and extracts medical documents.
type DocumentAI interface {
	Classify(ctx context.Context, text string) string
	ParseLabReport(ctx context.Context, text string) ([]records.LabItemInput, *string)
	ParseExamination(ctx context.Context, text string) ai.ExamDraft
}

const dialogWindow = 10

// Dispatcher handles one inbound event at a time per user, holding that
// user's lock across validation, state I/O, AI calls and the commit.
type Dispatcher struct {
	resolver  *identity.Resolver
	store     conversation.Store
	registry  *wizard.Registry
	committer Committer
	repo      Repository
	stats     StatsService
	nutrition NutritionAI
	dietitian DietitianAI
	docs      DocumentAI
	locks     *conversation.UserLocks
	log       *logger.Logger
}

// New wires the dispatcher. All collaborators are injected explicitly.
func New(
	resolver *identity.Resolver,
	store conversation.Store,
	registry *wizard.Registry,
	committer Committer,
	repo Repository,
	stats StatsService,
	nutrition NutritionAI,
	dietitian DietitianAI,
	docs DocumentAI,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		resolver:  resolver,
		store:     store,
		registry:  registry,
		committer: committer,
		repo:      repo,
		stats:     stats,
		nutrition: nutrition,
		dietitian: dietitian,
		docs:      docs,
		locks:     conversation.NewUserLocks(),
		log:       log,
	}
}

// Handle processes one inbound event and returns the ordered replies.
// Events for the same sender are serialized; distinct senders proceed in
// parallel.
func (d *Dispatcher) Handle(ctx context.Context, event transport.InboundEvent) []transport.Response {
	d.locks.Lock(event.SenderID)
	defer d.locks.Unlock(event.SenderID)

	id, err := d.resolver.Resolve(ctx, event)
	if err != nil {
		d.log.DatabaseError("resolve", err)
		return []transport.Response{transport.Text(i18n.T("en", "internal_error"))}
	}

	// Top-level commands win over any active wizard.
	if cmd, ok := d.matchCommand(event, id.Language); ok {
		if err := d.store.Clear(ctx, id.ExternalID); err != nil {
			d.log.DatabaseError("clear state", err)
		}
		return d.runCommand(ctx, cmd, id)
	}

	state, active, err := d.store.Get(ctx, id.ExternalID)
	if err != nil {
		d.log.DatabaseError("get state", err)
		return []transport.Response{transport.Text(i18n.T(id.Language, "internal_error"))}
	}
	if active {
		return d.advanceWizard(ctx, id, state, event)
	}

	return []transport.Response{transport.Text(i18n.T(id.Language, "unknown_command"))}
}

// advanceWizard validates the event against the active step and either
// re-prompts, stores the field and moves on, or finishes the wizard.
func (d *Dispatcher) advanceWizard(ctx context.Context, id identity.Identity, state conversation.State, event transport.InboundEvent) []transport.Response {
	w, ok := d.registry.Get(state.Wizard)
	if !ok {
		// A state for a wizard this build no longer knows. Drop it.
		d.clearState(ctx, id.ExternalID)
		return []transport.Response{transport.Text(i18n.T(id.Language, "unknown_command"))}
	}
	step, ok := w.Step(state.Step)
	if !ok {
		d.clearState(ctx, id.ExternalID)
		return []transport.Response{transport.Text(i18n.T(id.Language, "unknown_command"))}
	}

	// Everything except onboarding requires a stored user.
	if !id.Known() && state.Wizard != records.WizardOnboarding {
		d.clearState(ctx, id.ExternalID)
		return []transport.Response{transport.Text(i18n.T(id.Language, "profile_missing"))}
	}

	if resp, handled := d.stepIntercept(ctx, id, state, step, event); handled {
		return resp
	}

	step = d.effectiveStep(state, step)

	outcome := step.Validate(event, id.Language)
	if outcome.Rejected {
		d.log.WizardEvent("rejected", state.Wizard, state.Step, id.ExternalID)
		return []transport.Response{
			transport.WithKeyboard(i18n.T(id.Language, outcome.ErrorKey), step.Keyboard(id.Language)),
		}
	}

	fieldKey, value := step.FieldKey, outcome.Value
	if outcome.Skip {
		fieldKey, value = "", ""
	}

	var extra []transport.Response
	if state.Wizard == records.WizardOnboarding && step.Name == "language" {
		resp, err := d.createOnboardingUser(ctx, id, event, outcome.Value)
		if err != nil {
			d.log.DatabaseError("create user", err)
			return []transport.Response{transport.Text(i18n.T(id.Language, "internal_error"))}
		}
		id.Language = outcome.Value
		extra = append(extra, resp)
	}

	if step.Next == "" {
		return append(extra, d.finish(ctx, id, state, step, event, fieldKey, value)...)
	}

	next, err := d.store.Advance(ctx, id.ExternalID, fieldKey, value, step.Next)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNoActiveState {
			return []transport.Response{transport.Text(i18n.T(id.Language, "unknown_command"))}
		}
		d.log.DatabaseError("advance state", err)
		return []transport.Response{transport.Text(i18n.T(id.Language, "internal_error"))}
	}
	d.log.WizardEvent("advanced", next.Wizard, next.Step, id.ExternalID)

	nextStep, _ := w.Step(next.Step)
	return append(extra, d.stepPrompt(next.Wizard, nextStep, id.Language))
}

// effectiveStep specializes data-driven steps that depend on an earlier
// answer: numeric biometry metrics demand a positive number.
func (d *Dispatcher) effectiveStep(state conversation.State, step wizard.Step) wizard.Step {
	if state.Wizard == records.WizardBiometry && step.Name == "value" {
		if metric, ok := state.Field(records.FieldBiometryMetric); ok && wizard.NumericBiometryMetric(metric) {
			step.Kind = wizard.KindPositiveNumber
		}
	}
	return step
}

// createOnboardingUser materializes the user record as soon as a language
// is chosen, so the rest of onboarding runs against a stored identity.
func (d *Dispatcher) createOnboardingUser(ctx context.Context, id identity.Identity, event transport.InboundEvent, language string) (transport.Response, error) {
	u, err := d.repo.EnsureUser(ctx, id.ExternalID,
		optionalStr(event.Username), optionalStr(event.FirstName), optionalStr(event.LastName))
	if err != nil {
		return transport.Response{}, err
	}
	if err := d.repo.UpdateUserLanguage(ctx, u.ID, language); err != nil {
		return transport.Response{}, err
	}
	return transport.Text(i18n.T(language, "language_selected", languageName(language))), nil
}

func (d *Dispatcher) clearState(ctx context.Context, externalID int64) {
	if err := d.store.Clear(ctx, externalID); err != nil {
		d.log.DatabaseError("clear state", err)
	}
}

func optionalStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func languageName(code string) string {
	switch code {
	case "ru":
		return "Русский"
	default:
		return "English"
	}
}
