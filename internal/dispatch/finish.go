package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nutribot_backend/internal/ai"
	"nutribot_backend/internal/conversation"
	"nutribot_backend/internal/i18n"
	"nutribot_backend/internal/identity"
	"nutribot_backend/internal/records"
	"nutribot_backend/internal/transport"
	"nutribot_backend/internal/wizard"
	"nutribot_backend/platform/apperr"
)

const draftFieldKey = "ai_draft"

// stepIntercept handles in-step callbacks that are not plain answers,
// currently the AI recipe draft offer on the recipe body step.
func (d *Dispatcher) stepIntercept(ctx context.Context, id identity.Identity, state conversation.State, step wizard.Step, event transport.InboundEvent) ([]transport.Response, bool) {
	if state.Wizard != records.WizardRecipeCreate || step.Name != "body" || !event.IsCallback() {
		return nil, false
	}
	lang := id.Language

	switch event.Callback {
	case "draft:ai":
		title, _ := state.Field(records.FieldRecipeTitle)
		draft, err := d.dietitian.SuggestRecipe(ctx, title, lang)
		if err != nil {
			return []transport.Response{
				transport.WithKeyboard(i18n.T(lang, "recipes_ai_failed"), d.bodyStepKeyboard(step, lang)),
			}, true
		}
		if _, err := d.store.Advance(ctx, id.ExternalID, draftFieldKey, draft, state.Step); err != nil {
			d.log.DatabaseError("stash draft", err)
			return []transport.Response{transport.Text(i18n.T(lang, "internal_error"))}, true
		}
		keyboard := [][]transport.Button{{
			{Label: i18n.T(lang, "recipes_ai_use_button"), Token: "draft:use"},
		}}
		return []transport.Response{
			transport.Text(i18n.T(lang, "recipes_ai_ready")),
			transport.WithKeyboard(draft, keyboard),
		}, true

	case "draft:use":
		draft, ok := state.Field(draftFieldKey)
		if !ok {
			return []transport.Response{
				transport.WithKeyboard(i18n.T(lang, step.PromptKey), d.bodyStepKeyboard(step, lang)),
			}, true
		}
		return d.finish(ctx, id, state, step, event, records.FieldRecipeBody, draft), true
	}
	return nil, false
}

// stepPrompt renders a step prompt, decorating the recipe body step with
// the AI draft offer.
func (d *Dispatcher) stepPrompt(wizName string, step wizard.Step, lang string) transport.Response {
	resp := step.Prompt(lang)
	if wizName == records.WizardRecipeCreate && step.Name == "body" {
		resp.Keyboard = d.bodyStepKeyboard(step, lang)
	}
	return resp
}

func (d *Dispatcher) bodyStepKeyboard(step wizard.Step, lang string) [][]transport.Button {
	rows := step.Keyboard(lang)
	return append(rows, []transport.Button{
		{Label: i18n.T(lang, "recipes_ai_button"), Token: "draft:ai"},
	})
}

// finish merges the last validated value into the accumulated fields,
// runs the wizard's pre-commit collaborator work, commits once and clears
// the state. A failed commit keeps the state so the user can resubmit.
func (d *Dispatcher) finish(ctx context.Context, id identity.Identity, state conversation.State, step wizard.Step, event transport.InboundEvent, fieldKey, value string) []transport.Response {
	lang := id.Language

	fields := make(map[string]string, len(state.Fields)+4)
	for k, v := range state.Fields {
		fields[k] = v
	}
	if fieldKey != "" {
		fields[fieldKey] = value
	}
	delete(fields, draftFieldKey)

	var out []transport.Response
	switch state.Wizard {
	case records.WizardOnboarding:
		out = d.finishWithMessage(ctx, id, state.Wizard, fields, "profile_saved")
		if len(out) == 1 && out[0].Keyboard == nil {
			out[0].Keyboard = d.mainMenu(lang)
		}
		return out

	case records.WizardMealText, records.WizardMealPhoto:
		return d.finishMeal(ctx, id, state.Wizard, fields, event)

	case records.WizardWater:
		res, failed := d.commitAndClear(ctx, id, state.Wizard, fields)
		if failed != nil {
			return failed
		}
		text := i18n.T(lang, "water_saved") + "\n" +
			i18n.T(lang, "water_today_total", int(res.WaterTotalML))
		return []transport.Response{transport.Text(text)}

	case records.WizardWeight:
		return d.finishWeight(ctx, id, fields)

	case records.WizardRecipeCreate:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "recipes_saved")

	case records.WizardRecipeEditTitle, records.WizardRecipeEditBody:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "recipes_updated")

	case records.WizardProfileEditWeight, records.WizardProfileEditHeight,
		records.WizardProfileEditActivity, records.WizardProfileEditGoal:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "updated")

	case records.WizardAsk:
		return d.finishAsk(ctx, id, fields)

	case records.WizardDocument:
		return d.finishDocument(ctx, id, fields, event)

	case records.WizardSymptom:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "symptom_saved")

	case records.WizardDisease:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "disease_saved")

	case records.WizardMedication:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "medication_saved")

	case records.WizardSupplement:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "supplement_saved")

	case records.WizardDietPrefs:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "preferences_saved")

	case records.WizardBiometry:
		return d.finishWithMessage(ctx, id, state.Wizard, fields, "biometry_saved")

	case records.WizardDeleteMe:
		return d.finishDelete(ctx, id, fields)
	}

	d.clearState(ctx, id.ExternalID)
	return []transport.Response{transport.Text(i18n.T(lang, "unknown_command"))}
}

// commitAndClear runs the single commit of the wizard instance. On a commit
// failure the state stays so resending the last answer retries the commit.
// A missing user or target row is not retryable; the state is cleared.
func (d *Dispatcher) commitAndClear(ctx context.Context, id identity.Identity, wizName string, fields map[string]string) (records.Result, []transport.Response) {
	res, err := d.committer.Commit(ctx, wizName, id.UserID(), fields)
	if err != nil {
		switch apperr.GetKind(err) {
		case apperr.KindUserMissing:
			d.clearState(ctx, id.ExternalID)
			return records.Result{}, []transport.Response{
				transport.Text(i18n.T(id.Language, "profile_missing")),
			}
		case apperr.KindNotFound:
			d.clearState(ctx, id.ExternalID)
			return records.Result{}, []transport.Response{
				transport.Text(i18n.T(id.Language, "recipes_not_found")),
			}
		}
		return records.Result{}, []transport.Response{
			transport.Text(i18n.T(id.Language, "commit_failed")),
		}
	}
	d.clearState(ctx, id.ExternalID)
	d.log.WizardEvent("finished", wizName, "", id.ExternalID)
	return res, nil
}

func (d *Dispatcher) finishWithMessage(ctx context.Context, id identity.Identity, wizName string, fields map[string]string, messageKey string) []transport.Response {
	if _, failed := d.commitAndClear(ctx, id, wizName, fields); failed != nil {
		return failed
	}
	return []transport.Response{transport.Text(i18n.T(id.Language, messageKey))}
}

func (d *Dispatcher) finishMeal(ctx context.Context, id identity.Identity, wizName string, fields map[string]string, event transport.InboundEvent) []transport.Response {
	lang := id.Language

	var est ai.Estimate
	if wizName == records.WizardMealPhoto {
		if event.Text != "" {
			fields[records.FieldPhotoCaption] = event.Text
		}
		var photo []byte
		var mime string
		if event.Attachment != nil {
			photo, mime = event.Attachment.Bytes, event.Attachment.MimeType
		}
		est = d.nutrition.EstimateMealFromPhoto(ctx, photo, mime, event.Text, lang)
	} else {
		est = d.nutrition.EstimateMealFromText(ctx, fields[records.FieldMealText], lang)
	}

	fields[records.FieldLanguage] = lang
	setMacro(fields, records.FieldAICalories, est.Calories)
	setMacro(fields, records.FieldAIProteinG, est.ProteinG)
	setMacro(fields, records.FieldAIFatG, est.FatG)
	setMacro(fields, records.FieldAICarbsG, est.CarbsG)
	setMacro(fields, records.FieldAIFiberG, est.FiberG)
	setMacro(fields, records.FieldAISugarG, est.SugarG)
	if est.Notes != nil && *est.Notes != "" {
		fields[records.FieldAINotes] = *est.Notes
	}

	if _, failed := d.commitAndClear(ctx, id, wizName, fields); failed != nil {
		return failed
	}

	text := i18n.T(lang, "meal_saved")
	if est.Degraded() {
		text += "\n" + i18n.T(lang, "ai_note_unavailable")
	} else {
		text += "\n" + i18n.T(lang, "meal_summary",
			macro(est.Calories), macro(est.ProteinG), macro(est.FatG), macro(est.CarbsG))
	}
	return []transport.Response{transport.Text(text)}
}

func (d *Dispatcher) finishWeight(ctx context.Context, id identity.Identity, fields map[string]string) []transport.Response {
	lang := id.Language
	res, failed := d.commitAndClear(ctx, id, records.WizardWeight, fields)
	if failed != nil {
		return failed
	}

	lines := []string{i18n.T(lang, "weight_saved")}
	if res.PrevWeight != nil && res.Weight != nil {
		lines = append(lines, i18n.T(lang, "weight_change_since_last",
			signed(res.Weight.WeightKg-res.PrevWeight.WeightKg)))
	} else {
		lines = append(lines, i18n.T(lang, "weight_no_previous"))
	}
	if id.User != nil && id.User.GoalWeightKg != nil && res.Weight != nil {
		lines = append(lines, i18n.T(lang, "weight_change_vs_goal",
			signed(res.Weight.WeightKg-*id.User.GoalWeightKg)))
	}
	return []transport.Response{transport.Text(strings.Join(lines, "\n"))}
}

func (d *Dispatcher) finishAsk(ctx context.Context, id identity.Identity, fields map[string]string) []transport.Response {
	lang := id.Language
	question := fields[records.FieldQuestion]

	var history []ai.Message
	msgs, err := d.repo.RecentMessages(ctx, id.UserID(), dialogWindow)
	if err != nil {
		d.log.DatabaseError("recent messages", err)
	} else {
		for _, m := range msgs {
			history = append(history, ai.Message{Role: m.Role, Content: m.Content})
		}
	}

	reply, err := d.dietitian.GenerateReply(ctx, profileSummary(id.User), history, question, lang)
	if err != nil {
		d.clearState(ctx, id.ExternalID)
		return []transport.Response{transport.Text(i18n.T(lang, "ask_dietitian_error"))}
	}

	fields[records.FieldAnswer] = reply
	if _, failed := d.commitAndClear(ctx, id, records.WizardAsk, fields); failed != nil {
		return failed
	}
	return []transport.Response{transport.Text(reply)}
}

func (d *Dispatcher) finishDocument(ctx context.Context, id identity.Identity, fields map[string]string, event transport.InboundEvent) []transport.Response {
	lang := id.Language
	text := fields[records.FieldDocumentText]
	if event.Attachment != nil && event.Attachment.FileID != "" {
		fields[records.FieldDocumentFileID] = event.Attachment.FileID
	}

	class := d.docs.Classify(ctx, text)
	fields[records.FieldDocClass] = class

	if class == records.DocClassLabReport {
		items, takenAt := d.docs.ParseLabReport(ctx, text)
		if len(items) > 0 {
			encoded, err := json.Marshal(items)
			if err == nil {
				fields[records.FieldLabItems] = string(encoded)
			}
		}
		if takenAt != nil {
			fields[records.FieldTakenAt] = *takenAt
		}
		res, failed := d.commitAndClear(ctx, id, records.WizardDocument, fields)
		if failed != nil {
			return failed
		}
		return []transport.Response{
			transport.Text(i18n.T(lang, "document_saved_lab", res.LabItemCount)),
		}
	}

	draft := d.docs.ParseExamination(ctx, text)
	fields[records.FieldExamType] = draft.ExamType
	if draft.BodyRegion != nil {
		fields[records.FieldBodyRegion] = *draft.BodyRegion
	}
	if draft.ExamDate != nil {
		fields[records.FieldExamDate] = *draft.ExamDate
	}
	if draft.Summary != nil {
		fields[records.FieldSummary] = *draft.Summary
	}

	res, failed := d.commitAndClear(ctx, id, records.WizardDocument, fields)
	if failed != nil {
		return failed
	}
	return []transport.Response{
		transport.Text(i18n.T(lang, "document_saved_exam", res.ExamType)),
	}
}

func (d *Dispatcher) finishDelete(ctx context.Context, id identity.Identity, fields map[string]string) []transport.Response {
	lang := id.Language
	if fields[records.FieldConfirm] != "yes" {
		d.clearState(ctx, id.ExternalID)
		return []transport.Response{transport.Text(i18n.T(lang, "delete_me_cancelled"))}
	}
	if _, failed := d.commitAndClear(ctx, id, records.WizardDeleteMe, fields); failed != nil {
		return failed
	}
	return []transport.Response{transport.Text(i18n.T(lang, "delete_me_done"))}
}

func profileSummary(u *records.User) string {
	if u == nil {
		return "unknown"
	}
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	add("sex", strVal(u.Sex))
	if u.DateOfBirth != nil {
		add("born", u.DateOfBirth.Format("2006-01-02"))
	}
	add("height_cm", floatVal(u.HeightCm))
	add("weight_kg", floatVal(u.CurrentWeightKg))
	add("goal_weight_kg", floatVal(u.GoalWeightKg))
	add("gi_diagnoses", strVal(u.GIDiagnoses))
	add("other_diagnoses", strVal(u.OtherDiagnoses))
	add("medications", strVal(u.Medications))
	add("allergies", strVal(u.AllergiesIntolerances))
	add("activity", strVal(u.ActivityLevel))
	add("goal", strVal(u.NutritionGoal))
	if len(parts) == 0 {
		return "no profile data"
	}
	return strings.Join(parts, "; ")
}

func setMacro(fields map[string]string, key string, v *float64) {
	if v != nil {
		fields[key] = wizard.FormatNumber(*v)
	}
}

func macro(v *float64) string {
	if v == nil {
		return "?"
	}
	return wizard.FormatNumber(*v)
}

func signed(v float64) string {
	return fmt.Sprintf("%+.1f", v)
}
