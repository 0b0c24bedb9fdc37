package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

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

type fakeRepo struct {
	users map[int64]records.User

	nextUserID  int64
	langByUser  map[int64]string
	recipes     []records.Recipe
	messages    []records.ConversationMessage
	medications []records.Medication
	supplements []records.Supplement
	dietPrefs   *records.DietPreferences
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:      make(map[int64]records.User),
		nextUserID: 1,
		langByUser: make(map[int64]string),
	}
}

func (f *fakeRepo) GetUserByExternalID(_ context.Context, externalID int64) (records.User, error) {
	u, ok := f.users[externalID]
	if !ok {
		return records.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeRepo) EnsureUser(_ context.Context, externalID int64, username, firstName, lastName *string) (records.User, error) {
	if u, ok := f.users[externalID]; ok {
		return u, nil
	}
	u := records.User{ID: f.nextUserID, ExternalID: externalID, Language: "en",
		Username: username, FirstName: firstName, LastName: lastName}
	f.nextUserID++
	f.users[externalID] = u
	return u, nil
}

func (f *fakeRepo) UpdateUserLanguage(_ context.Context, userID int64, language string) error {
	f.langByUser[userID] = language
	for ext, u := range f.users {
		if u.ID == userID {
			u.Language = language
			f.users[ext] = u
		}
	}
	return nil
}

func (f *fakeRepo) ListRecipes(_ context.Context, _ int64) ([]records.Recipe, error) {
	return f.recipes, nil
}

func (f *fakeRepo) GetRecipe(_ context.Context, _, recipeID int64) (records.Recipe, error) {
	for _, r := range f.recipes {
		if r.ID == recipeID {
			return r, nil
		}
	}
	return records.Recipe{}, apperr.NotFound("recipe not found")
}

func (f *fakeRepo) DeleteRecipe(_ context.Context, _, recipeID int64) error {
	for i, r := range f.recipes {
		if r.ID == recipeID {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("recipe not found")
}

func (f *fakeRepo) RecentMessages(_ context.Context, _ int64, _ int) ([]records.ConversationMessage, error) {
	return f.messages, nil
}

func (f *fakeRepo) ListMedications(_ context.Context, _ int64) ([]records.Medication, error) {
	return f.medications, nil
}

func (f *fakeRepo) ListSupplements(_ context.Context, _ int64) ([]records.Supplement, error) {
	return f.supplements, nil
}

func (f *fakeRepo) GetDietPreferences(_ context.Context, _ int64) (records.DietPreferences, error) {
	if f.dietPrefs == nil {
		return records.DietPreferences{}, apperr.NotFound("diet preferences not set")
	}
	return *f.dietPrefs, nil
}

type commitCall struct {
	wizard string
	userID int64
	fields map[string]string
}

type fakeCommitter struct {
	calls  []commitCall
	result records.Result
	err    error
}

func (f *fakeCommitter) Commit(_ context.Context, wizName string, userID int64, fields map[string]string) (records.Result, error) {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	f.calls = append(f.calls, commitCall{wizard: wizName, userID: userID, fields: copied})
	if f.err != nil {
		return records.Result{}, f.err
	}
	return f.result, nil
}

type fakeStats struct {
	today string
}

func (f *fakeStats) Today(_ context.Context, _ int64, _ string) (string, error) {
	return f.today, nil
}
func (f *fakeStats) ResetToday(_ context.Context, _ int64) error { return nil }
func (f *fakeStats) ResetAll(_ context.Context, _ int64) error   { return nil }

type fakeNutrition struct {
	estimate ai.Estimate
}

func (f *fakeNutrition) EstimateMealFromText(_ context.Context, _, _ string) ai.Estimate {
	return f.estimate
}

func (f *fakeNutrition) EstimateMealFromPhoto(_ context.Context, _ []byte, _, _, _ string) ai.Estimate {
	return f.estimate
}

type fakeDietitian struct {
	reply  string
	recipe string
	err    error
}

func (f *fakeDietitian) GenerateReply(_ context.Context, _ string, _ []ai.Message, _, _ string) (string, error) {
	return f.reply, f.err
}

func (f *fakeDietitian) SuggestRecipe(_ context.Context, _, _ string) (string, error) {
	return f.recipe, f.err
}

type fakeDocs struct {
	class string
	items []records.LabItemInput
	exam  ai.ExamDraft
}

func (f *fakeDocs) Classify(_ context.Context, _ string) string { return f.class }

func (f *fakeDocs) ParseLabReport(_ context.Context, _ string) ([]records.LabItemInput, *string) {
	return f.items, nil
}

func (f *fakeDocs) ParseExamination(_ context.Context, _ string) ai.ExamDraft { return f.exam }

type harness struct {
	dispatcher *Dispatcher
	repo       *fakeRepo
	committer  *fakeCommitter
	store      *conversation.MemoryStore
	dietitian  *fakeDietitian
	nutrition  *fakeNutrition
	docs       *fakeDocs
}

func newHarness() *harness {
	repo := newFakeRepo()
	committer := &fakeCommitter{}
	store := conversation.NewMemoryStore()
	dietitian := &fakeDietitian{reply: "drink more water"}
	nutrition := &fakeNutrition{}
	docs := &fakeDocs{class: records.DocClassOther, exam: ai.ExamDraft{ExamType: records.DocClassOther}}

	d := New(
		identity.NewResolver(repo, "en"),
		store,
		wizard.NewRegistry(),
		committer,
		repo,
		&fakeStats{today: "summary"},
		nutrition,
		dietitian,
		docs,
		logger.New("test"),
	)
	return &harness{dispatcher: d, repo: repo, committer: committer, store: store,
		dietitian: dietitian, nutrition: nutrition, docs: docs}
}

func (h *harness) addUser(externalID int64, lang string) records.User {
	u := records.User{ID: h.repo.nextUserID, ExternalID: externalID, Language: lang}
	h.repo.nextUserID++
	h.repo.users[externalID] = u
	return u
}

func (h *harness) text(sender int64, text string) []transport.Response {
	return h.dispatcher.Handle(context.Background(), transport.InboundEvent{SenderID: sender, Text: text})
}

func (h *harness) callback(sender int64, token string) []transport.Response {
	return h.dispatcher.Handle(context.Background(), transport.InboundEvent{SenderID: sender, Callback: token})
}

func firstText(t *testing.T, out []transport.Response) string {
	t.Helper()
	if len(out) == 0 {
		t.Fatal("expected at least one response")
	}
	return out[0].Text
}

func wantContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Fatalf("expected %q in %q", want, got)
	}
}

func TestHandle_StartForUnknownSenderBeginsOnboarding(t *testing.T) {
	h := newHarness()

	out := h.text(100, "/start")
	wantContains(t, firstText(t, out), i18n.T("en", "choose_language"))

	st, active, _ := h.store.Get(context.Background(), 100)
	if !active || st.Wizard != records.WizardOnboarding || st.Step != "language" {
		t.Fatalf("expected onboarding at language step, got %+v active=%v", st, active)
	}
}

func TestHandle_StartForKnownSenderShowsMenu(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")

	out := h.text(100, "/start")
	wantContains(t, firstText(t, out), i18n.T("en", "welcome"))
	if len(out[0].Keyboard) == 0 {
		t.Fatal("expected the main menu keyboard")
	}
}

func TestHandle_LanguageChoiceCreatesUser(t *testing.T) {
	h := newHarness()
	h.text(100, "/start")

	out := h.callback(100, "ru")
	if len(out) < 2 {
		t.Fatalf("expected language confirmation plus next prompt, got %d responses", len(out))
	}
	wantContains(t, out[0].Text, "Русский")
	wantContains(t, out[1].Text, i18n.T("ru", "ask_sex"))

	u, ok := h.repo.users[100]
	if !ok {
		t.Fatal("expected a user row after the language step")
	}
	if h.repo.langByUser[u.ID] != "ru" {
		t.Fatalf("expected language ru stored, got %q", h.repo.langByUser[u.ID])
	}

	st, active, _ := h.store.Get(context.Background(), 100)
	if !active || st.Step != "sex" {
		t.Fatalf("expected sex step, got %+v", st)
	}
}

func TestHandle_WeightWizardCommitsCanonicalValue(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	weight := 82.5
	h.committer.result = records.Result{Weight: &records.WeightLog{WeightKg: weight}}

	out := h.text(100, "/weight")
	wantContains(t, firstText(t, out), i18n.T("en", "ask_weight"))

	out = h.text(100, "82,5")
	wantContains(t, firstText(t, out), i18n.T("en", "weight_saved"))
	wantContains(t, firstText(t, out), i18n.T("en", "weight_no_previous"))

	if len(h.committer.calls) != 1 {
		t.Fatalf("expected exactly one commit, got %d", len(h.committer.calls))
	}
	call := h.committer.calls[0]
	if call.wizard != records.WizardWeight {
		t.Fatalf("expected weight commit, got %s", call.wizard)
	}
	if call.fields[records.FieldWeightKg] != "82.5" {
		t.Fatalf("expected canonical 82.5, got %q", call.fields[records.FieldWeightKg])
	}

	if _, active, _ := h.store.Get(context.Background(), 100); active {
		t.Fatal("expected state cleared after the commit")
	}
}

func TestHandle_RejectionKeepsStepAndFields(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.result = records.Result{Weight: &records.WeightLog{WeightKg: 80}}

	h.text(100, "/weight")
	out := h.text(100, "abc")
	wantContains(t, firstText(t, out), i18n.T("en", "weight_invalid"))

	st, active, _ := h.store.Get(context.Background(), 100)
	if !active || st.Step != "weight" {
		t.Fatalf("rejection must keep the step, got %+v", st)
	}
	if len(h.committer.calls) != 0 {
		t.Fatal("rejection must not commit")
	}

	out = h.text(100, "80")
	wantContains(t, firstText(t, out), i18n.T("en", "weight_saved"))
	if len(h.committer.calls) != 1 {
		t.Fatalf("expected one commit after the retry, got %d", len(h.committer.calls))
	}
}

func TestHandle_CommandCancelsActiveWizard(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")

	h.text(100, "/weight")
	out := h.text(100, "/stats")
	if firstText(t, out) != "summary" {
		t.Fatalf("expected the stats summary, got %q", out[0].Text)
	}

	if _, active, _ := h.store.Get(context.Background(), 100); active {
		t.Fatal("a top-level command must cancel the active wizard")
	}
	if len(h.committer.calls) != 0 {
		t.Fatal("cancelling must not commit")
	}
}

func TestHandle_CommitFailureKeepsStateForRetry(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.err = errors.New("db down")

	h.text(100, "/weight")
	out := h.text(100, "80")
	wantContains(t, firstText(t, out), i18n.T("en", "commit_failed"))

	if _, active, _ := h.store.Get(context.Background(), 100); !active {
		t.Fatal("a failed commit must keep the state")
	}

	h.committer.err = nil
	h.committer.result = records.Result{Weight: &records.WeightLog{WeightKg: 80}}
	out = h.text(100, "80")
	wantContains(t, firstText(t, out), i18n.T("en", "weight_saved"))
	if len(h.committer.calls) != 2 {
		t.Fatalf("expected the retry to commit again, got %d calls", len(h.committer.calls))
	}
}

func TestHandle_ConcurrentTerminalAnswersCommitOnce(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.result = records.Result{Weight: &records.WeightLog{WeightKg: 80}}

	h.text(100, "/weight")

	const workers = 8
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if out := h.text(100, "80"); len(out) > 0 {
				results[i] = out[0].Text
			}
		}(i)
	}
	wg.Wait()

	if len(h.committer.calls) != 1 {
		t.Fatalf("expected exactly one commit for the wizard instance, got %d", len(h.committer.calls))
	}
	saved := 0
	for _, r := range results {
		if strings.Contains(r, i18n.T("en", "weight_saved")) {
			saved++
		}
	}
	if saved != 1 {
		t.Fatalf("expected exactly one saved confirmation, got %d", saved)
	}
}

func TestHandle_ProfileIncludesHealthLog(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	dosage := "20 mg"
	schedule := "morning"
	vegan := "vegan"
	disliked := "celery"
	h.repo.medications = []records.Medication{{ID: 1, UserID: 1, Name: "Omeprazole", Dosage: &dosage, Schedule: &schedule}}
	h.repo.supplements = []records.Supplement{{ID: 1, UserID: 1, Name: "Vitamin D"}}
	h.repo.dietPrefs = &records.DietPreferences{UserID: 1, DietaryType: &vegan, Disliked: &disliked}

	got := firstText(t, h.text(100, "/profile"))
	wantContains(t, got, i18n.T("en", "profile_section_medications"))
	wantContains(t, got, "Omeprazole (20 mg, morning)")
	wantContains(t, got, i18n.T("en", "profile_section_supplements"))
	wantContains(t, got, "Vitamin D")
	wantContains(t, got, i18n.T("en", "profile_section_diet"))
	wantContains(t, got, i18n.T("en", "profile_field_diet_type")+": vegan")
	wantContains(t, got, i18n.T("en", "profile_field_disliked")+": celery")
}

func TestHandle_ProfileOmitsEmptyHealthSections(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")

	got := firstText(t, h.text(100, "/profile"))
	wantContains(t, got, i18n.T("en", "profile_title"))
	for _, key := range []string{"profile_section_medications", "profile_section_supplements", "profile_section_diet"} {
		if strings.Contains(got, i18n.T("en", key)) {
			t.Fatalf("empty section %s must be omitted, got %q", key, got)
		}
	}
}

func TestHandle_UserGoneAtCommitClearsState(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.err = apperr.UserMissing("user not found")

	h.text(100, "/weight")
	out := h.text(100, "80")
	wantContains(t, firstText(t, out), i18n.T("en", "profile_missing"))

	if _, active, _ := h.store.Get(context.Background(), 100); active {
		t.Fatal("a vanished user must not leave the wizard retryable")
	}

	out = h.text(100, "80")
	wantContains(t, firstText(t, out), i18n.T("en", "unknown_command"))
	if len(h.committer.calls) != 1 {
		t.Fatalf("expected no retry after the user is gone, got %d calls", len(h.committer.calls))
	}
}

func TestHandle_RecipeGoneAtCommitClearsState(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.repo.recipes = []records.Recipe{{ID: 7, UserID: 1, Title: "Soup", Body: "Simmer."}}
	h.committer.err = apperr.NotFound("recipe not found")

	h.callback(100, "recipe:edit_title:7")
	out := h.text(100, "Stew")
	wantContains(t, firstText(t, out), i18n.T("en", "recipes_not_found"))

	if _, active, _ := h.store.Get(context.Background(), 100); active {
		t.Fatal("a deleted recipe must not leave the edit wizard retryable")
	}
	if len(h.committer.calls) != 1 {
		t.Fatalf("expected exactly one commit attempt, got %d", len(h.committer.calls))
	}
}

func TestHandle_UnknownSenderCannotEnterLoggingWizards(t *testing.T) {
	h := newHarness()

	out := h.text(100, "/weight")
	wantContains(t, firstText(t, out), i18n.T("en", "profile_missing"))
	if _, active, _ := h.store.Get(context.Background(), 100); active {
		t.Fatal("no state must be opened for an unknown sender")
	}
}

func TestHandle_UnknownInputWithoutState(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")

	out := h.text(100, "hello there")
	wantContains(t, firstText(t, out), i18n.T("en", "unknown_command"))
}

func TestHandle_DeleteMeDeclineDoesNotCommit(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")

	h.text(100, "/delete_me")
	out := h.callback(100, "no")
	wantContains(t, firstText(t, out), i18n.T("en", "delete_me_cancelled"))

	if len(h.committer.calls) != 0 {
		t.Fatal("declining must not commit a delete")
	}
	if _, active, _ := h.store.Get(context.Background(), 100); active {
		t.Fatal("declining must clear the state")
	}
}

func TestHandle_DeleteMeConfirmCommits(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.result = records.Result{Deleted: true}

	h.text(100, "/delete_me")
	out := h.callback(100, "yes")
	wantContains(t, firstText(t, out), i18n.T("en", "delete_me_done"))

	if len(h.committer.calls) != 1 || h.committer.calls[0].wizard != records.WizardDeleteMe {
		t.Fatalf("expected one delete commit, got %+v", h.committer.calls)
	}
}

func TestHandle_DegradedEstimateStillCommitsMeal(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.result = records.Result{Meal: &records.Meal{}}

	h.text(100, "/meal")
	h.callback(100, "lunch")
	out := h.text(100, "buckwheat with chicken")

	wantContains(t, firstText(t, out), i18n.T("en", "meal_saved"))
	wantContains(t, firstText(t, out), i18n.T("en", "ai_note_unavailable"))

	if len(h.committer.calls) != 1 {
		t.Fatalf("expected one meal commit, got %d", len(h.committer.calls))
	}
	call := h.committer.calls[0]
	if call.fields[records.FieldMealType] != "lunch" {
		t.Fatalf("expected lunch, got %q", call.fields[records.FieldMealType])
	}
	if _, ok := call.fields[records.FieldAICalories]; ok {
		t.Fatal("degraded estimate must not write macro fields")
	}
}

func TestHandle_MealEstimateInSummary(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.result = records.Result{Meal: &records.Meal{}}
	cal, prot := 520.0, 32.5
	h.nutrition.estimate = ai.Estimate{Calories: &cal, ProteinG: &prot}

	h.text(100, "/meal")
	h.callback(100, "dinner")
	out := h.text(100, "salmon and rice")

	got := firstText(t, out)
	wantContains(t, got, "520")
	wantContains(t, got, "32.5")
	// Unknown macros render as "?".
	wantContains(t, got, "?")

	call := h.committer.calls[0]
	if call.fields[records.FieldAICalories] != "520" {
		t.Fatalf("expected ai_calories 520, got %q", call.fields[records.FieldAICalories])
	}
	if _, ok := call.fields[records.FieldAIFatG]; ok {
		t.Fatal("nil macros must stay absent")
	}
}

func TestHandle_SkippedOnboardingFieldsStayAbsent(t *testing.T) {
	h := newHarness()
	h.committer.result = records.Result{User: &records.User{ID: 1}}

	h.text(100, "/start")
	h.callback(100, "en")
	h.callback(100, "f")
	h.text(100, "1990-04-01")
	h.text(100, "170")
	h.text(100, "64")
	h.text(100, "-")          // goal weight skipped
	h.text(100, "gastritis")  // gi diagnoses
	h.text(100, "__skip__")   // other diagnoses
	h.text(100, "-")          // medications
	h.text(100, "peanuts")    // allergies
	h.callback(100, "medium") // activity
	out := h.callback(100, "maintenance")

	wantContains(t, firstText(t, out), i18n.T("en", "profile_saved"))
	if len(out[0].Keyboard) == 0 {
		t.Fatal("expected the main menu keyboard after onboarding")
	}

	if len(h.committer.calls) != 1 {
		t.Fatalf("expected one onboarding commit, got %d", len(h.committer.calls))
	}
	fields := h.committer.calls[0].fields
	if _, ok := fields[records.FieldGoalWeight]; ok {
		t.Fatal("skipped goal weight must be absent")
	}
	if _, ok := fields[records.FieldOtherDiagnoses]; ok {
		t.Fatal("skipped other diagnoses must be absent")
	}
	if fields[records.FieldGIDiagnoses] != "gastritis" {
		t.Fatalf("expected gastritis, got %q", fields[records.FieldGIDiagnoses])
	}
	if fields[records.FieldDateOfBirth] != "1990-04-01" {
		t.Fatalf("expected canonical date, got %q", fields[records.FieldDateOfBirth])
	}

	if _, active, _ := h.store.Get(context.Background(), 100); active {
		t.Fatal("expected state cleared after onboarding")
	}
}

func TestHandle_CrossUserIsolation(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.addUser(200, "en")
	h.committer.result = records.Result{Weight: &records.WeightLog{WeightKg: 70}}

	h.text(100, "/weight")
	h.text(200, "/water")

	st, _, _ := h.store.Get(context.Background(), 100)
	if st.Wizard != records.WizardWeight {
		t.Fatalf("user 100 must be in the weight wizard, got %s", st.Wizard)
	}
	st, _, _ = h.store.Get(context.Background(), 200)
	if st.Wizard != records.WizardWater {
		t.Fatalf("user 200 must be in the water wizard, got %s", st.Wizard)
	}

	h.text(100, "70")
	if len(h.committer.calls) != 1 || h.committer.calls[0].wizard != records.WizardWeight {
		t.Fatalf("unexpected commits: %+v", h.committer.calls)
	}
	if _, active, _ := h.store.Get(context.Background(), 200); !active {
		t.Fatal("user 200's wizard must survive user 100's commit")
	}
}

func TestHandle_WaterAcceptsTypedAmount(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.result = records.Result{WaterTotalML: 330}

	h.text(100, "/water")
	out := h.text(100, "330")
	wantContains(t, firstText(t, out), i18n.T("en", "water_saved"))
	wantContains(t, firstText(t, out), "330")

	if h.committer.calls[0].fields[records.FieldVolumeML] != "330" {
		t.Fatalf("expected volume 330, got %q", h.committer.calls[0].fields[records.FieldVolumeML])
	}
}

func TestHandle_AskFlowRepliesAndCommits(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.dietitian.reply = "eat smaller portions"

	out := h.text(100, "/ask")
	if len(out) != 3 {
		t.Fatalf("expected intro, disclaimer and prompt, got %d responses", len(out))
	}

	out = h.text(100, "why am I bloated?")
	if firstText(t, out) != "eat smaller portions" {
		t.Fatalf("expected the dietitian reply, got %q", out[0].Text)
	}

	call := h.committer.calls[0]
	if call.wizard != records.WizardAsk {
		t.Fatalf("expected ask commit, got %s", call.wizard)
	}
	if call.fields[records.FieldQuestion] != "why am I bloated?" {
		t.Fatalf("unexpected question: %q", call.fields[records.FieldQuestion])
	}
	if call.fields[records.FieldAnswer] != "eat smaller portions" {
		t.Fatalf("unexpected answer: %q", call.fields[records.FieldAnswer])
	}
}

func TestHandle_AskFlowErrorClearsState(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.dietitian.err = errors.New("model offline")

	h.text(100, "/ask")
	out := h.text(100, "question")
	wantContains(t, firstText(t, out), i18n.T("en", "ask_dietitian_error"))

	if len(h.committer.calls) != 0 {
		t.Fatal("a failed ask must not commit")
	}
	if _, active, _ := h.store.Get(context.Background(), 100); active {
		t.Fatal("a failed ask must clear the state")
	}
}

func TestHandle_MenuLabelActsAsCommand(t *testing.T) {
	h := newHarness()
	h.addUser(100, "ru")

	out := h.text(100, i18n.T("ru", "menu_weight"))
	wantContains(t, firstText(t, out), i18n.T("ru", "ask_weight"))

	st, active, _ := h.store.Get(context.Background(), 100)
	if !active || st.Wizard != records.WizardWeight {
		t.Fatalf("expected weight wizard, got %+v", st)
	}
}

func TestHandle_RecipeAIDraftFlow(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.dietitian.recipe = "1. Boil oats.\n2. Add berries."
	h.committer.result = records.Result{Recipe: &records.Recipe{ID: 1}}

	h.callback(100, "recipe:add")
	h.text(100, "Morning oats")

	out := h.callback(100, "draft:ai")
	if len(out) != 2 {
		t.Fatalf("expected ready note plus draft, got %d responses", len(out))
	}
	wantContains(t, out[1].Text, "Boil oats")

	out = h.callback(100, "draft:use")
	wantContains(t, firstText(t, out), i18n.T("en", "recipes_saved"))

	call := h.committer.calls[0]
	if call.wizard != records.WizardRecipeCreate {
		t.Fatalf("expected recipe commit, got %s", call.wizard)
	}
	if call.fields[records.FieldRecipeTitle] != "Morning oats" {
		t.Fatalf("unexpected title: %q", call.fields[records.FieldRecipeTitle])
	}
	if !strings.Contains(call.fields[records.FieldRecipeBody], "Boil oats") {
		t.Fatalf("expected the draft as body, got %q", call.fields[records.FieldRecipeBody])
	}
	if _, ok := call.fields[draftFieldKey]; ok {
		t.Fatal("the draft stash must not leak into the commit")
	}
}

func TestHandle_RecipeViewAndDelete(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.repo.recipes = []records.Recipe{{ID: 7, UserID: 1, Title: "Soup", Body: "Simmer."}}

	out := h.callback(100, "recipe:view:7")
	wantContains(t, firstText(t, out), "Soup")
	if len(out[0].Keyboard) != 2 {
		t.Fatalf("expected two action rows, got %d", len(out[0].Keyboard))
	}

	out = h.callback(100, "recipe:del:7")
	wantContains(t, firstText(t, out), i18n.T("en", "recipes_deleted"))
	if len(h.repo.recipes) != 0 {
		t.Fatal("expected the recipe removed")
	}

	out = h.callback(100, "recipe:view:7")
	wantContains(t, firstText(t, out), i18n.T("en", "recipes_not_found"))
}

func TestHandle_ProfileEditCallback(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.committer.result = records.Result{User: &records.User{ID: 1}}

	h.callback(100, "profile:edit:weight")
	st, active, _ := h.store.Get(context.Background(), 100)
	if !active || st.Wizard != records.WizardProfileEditWeight {
		t.Fatalf("expected the weight edit wizard, got %+v", st)
	}

	out := h.text(100, "71")
	wantContains(t, firstText(t, out), i18n.T("en", "updated"))
	if h.committer.calls[0].wizard != records.WizardProfileEditWeight {
		t.Fatalf("unexpected commit wizard: %s", h.committer.calls[0].wizard)
	}
}

func TestHandle_DocumentLabReportFlow(t *testing.T) {
	h := newHarness()
	h.addUser(100, "en")
	h.docs.class = records.DocClassLabReport
	value := "140"
	h.docs.items = []records.LabItemInput{{Analyte: "Hemoglobin", Value: &value}}
	h.committer.result = records.Result{DocClass: records.DocClassLabReport, LabItemCount: 1}

	h.text(100, "/document")
	out := h.text(100, "Hemoglobin 140 g/L (ref 120-160)")
	wantContains(t, firstText(t, out), "1")

	call := h.committer.calls[0]
	if call.fields[records.FieldDocClass] != records.DocClassLabReport {
		t.Fatalf("expected lab_report class, got %q", call.fields[records.FieldDocClass])
	}
	if !strings.Contains(call.fields[records.FieldLabItems], "Hemoglobin") {
		t.Fatalf("expected lab items JSON, got %q", call.fields[records.FieldLabItems])
	}
}
