package dispatch

import (
	"context"
	"strconv"
	"strings"

	"nutribot_backend/internal/i18n"
	"nutribot_backend/internal/identity"
	"nutribot_backend/internal/records"
	"nutribot_backend/internal/transport"
	"nutribot_backend/platform/apperr"
)

// Wizard entry commands and the stateless ones, matched before any active
// wizard gets a look at the event.
var wizardEntryCommands = map[string]string{
	"/meal":        records.WizardMealText,
	"/photo_meal":  records.WizardMealPhoto,
	"/water":       records.WizardWater,
	"/weight":      records.WizardWeight,
	"/ask":         records.WizardAsk,
	"/document":    records.WizardDocument,
	"/symptom":     records.WizardSymptom,
	"/history":     records.WizardDisease,
	"/medication":  records.WizardMedication,
	"/supplement":  records.WizardSupplement,
	"/preferences": records.WizardDietPrefs,
	"/biometry":    records.WizardBiometry,
	"/delete_me":   records.WizardDeleteMe,
}

var statelessCommands = map[string]bool{
	"/start": true, "/help": true, "/profile": true, "/stats": true,
	"/reset_stats": true, "/reset_all": true, "/recipes": true,
}

// Menu labels map to commands per language, so tapping a reply-keyboard
// button behaves exactly like typing the slash command.
var menuCommands = map[string]string{
	"menu_log_meal":      "/meal",
	"menu_photo_meal":    "/photo_meal",
	"menu_water":         "/water",
	"menu_weight":        "/weight",
	"menu_stats":         "/stats",
	"menu_recipes":       "/recipes",
	"menu_ask_dietitian": "/ask",
	"menu_profile":       "/profile",
	"menu_document":      "/document",
}

// matchCommand recognizes slash commands, menu labels in any supported
// language, and global callback tokens.
func (d *Dispatcher) matchCommand(event transport.InboundEvent, lang string) (string, bool) {
	input := strings.TrimSpace(event.Input())
	if input == "" {
		return "", false
	}

	if strings.HasPrefix(input, "/") {
		cmd := strings.Fields(input)[0]
		if statelessCommands[cmd] {
			return cmd, true
		}
		if _, ok := wizardEntryCommands[cmd]; ok {
			return cmd, true
		}
		return "", false
	}

	for _, l := range i18n.SupportedLanguages {
		for key, cmd := range menuCommands {
			if input == i18n.T(l, key) {
				return cmd, true
			}
		}
	}

	if event.IsCallback() &&
		(strings.HasPrefix(input, "recipe:") || strings.HasPrefix(input, "profile:")) {
		return input, true
	}
	return "", false
}

func (d *Dispatcher) runCommand(ctx context.Context, cmd string, id identity.Identity) []transport.Response {
	switch {
	case cmd == "/start":
		return d.cmdStart(ctx, id)
	case cmd == "/help":
		return []transport.Response{transport.Text(i18n.T(id.Language, "help_text"))}
	case strings.HasPrefix(cmd, "recipe:"):
		return d.requireUser(id, func() []transport.Response {
			return d.recipeCallback(ctx, id, strings.TrimPrefix(cmd, "recipe:"))
		})
	case strings.HasPrefix(cmd, "profile:edit:"):
		return d.requireUser(id, func() []transport.Response {
			return d.startProfileEdit(ctx, id, strings.TrimPrefix(cmd, "profile:edit:"))
		})
	case cmd == "/profile":
		return d.requireUser(id, func() []transport.Response {
			return d.cmdProfile(ctx, id)
		})
	case cmd == "/stats":
		return d.requireUser(id, func() []transport.Response {
			text, err := d.stats.Today(ctx, id.UserID(), id.Language)
			if err != nil {
				d.log.DatabaseError("stats", err)
				return []transport.Response{transport.Text(i18n.T(id.Language, "stats_error"))}
			}
			return []transport.Response{transport.Text(text)}
		})
	case cmd == "/reset_stats":
		return d.requireUser(id, func() []transport.Response {
			if err := d.stats.ResetToday(ctx, id.UserID()); err != nil {
				d.log.DatabaseError("reset today", err)
				return []transport.Response{transport.Text(i18n.T(id.Language, "stats_reset_error"))}
			}
			return []transport.Response{transport.Text(i18n.T(id.Language, "stats_reset_done"))}
		})
	case cmd == "/reset_all":
		return d.requireUser(id, func() []transport.Response {
			if err := d.stats.ResetAll(ctx, id.UserID()); err != nil {
				d.log.DatabaseError("reset all", err)
				return []transport.Response{transport.Text(i18n.T(id.Language, "stats_reset_all_error"))}
			}
			return []transport.Response{transport.Text(i18n.T(id.Language, "stats_reset_all_done"))}
		})
	case cmd == "/recipes":
		return d.requireUser(id, func() []transport.Response {
			return d.cmdRecipes(ctx, id)
		})
	default:
		if wiz, ok := wizardEntryCommands[cmd]; ok {
			return d.requireUser(id, func() []transport.Response {
				return d.startWizard(ctx, id, wiz, nil)
			})
		}
		return []transport.Response{transport.Text(i18n.T(id.Language, "unknown_command"))}
	}
}

// requireUser guards flows that need a stored profile.
func (d *Dispatcher) requireUser(id identity.Identity, fn func() []transport.Response) []transport.Response {
	if !id.Known() {
		return []transport.Response{transport.Text(i18n.T(id.Language, "profile_missing"))}
	}
	return fn()
}

func (d *Dispatcher) cmdStart(ctx context.Context, id identity.Identity) []transport.Response {
	if id.Known() {
		return []transport.Response{
			transport.WithKeyboard(i18n.T(id.Language, "welcome"), d.mainMenu(id.Language)),
		}
	}
	return d.startWizard(ctx, id, records.WizardOnboarding, nil)
}

// startWizard opens a fresh state at the wizard's first step. Some flows
// prepend an intro line to the first prompt.
func (d *Dispatcher) startWizard(ctx context.Context, id identity.Identity, name string, fields map[string]string) []transport.Response {
	w, ok := d.registry.Get(name)
	if !ok {
		return []transport.Response{transport.Text(i18n.T(id.Language, "unknown_command"))}
	}
	first := w.First()

	if _, err := d.store.Start(ctx, id.ExternalID, name, first.Name, fields); err != nil {
		d.log.DatabaseError("start state", err)
		return []transport.Response{transport.Text(i18n.T(id.Language, "internal_error"))}
	}
	d.log.WizardEvent("started", name, first.Name, id.ExternalID)

	var out []transport.Response
	switch name {
	case records.WizardAsk:
		out = append(out,
			transport.Text(i18n.T(id.Language, "ask_dietitian_intro")),
			transport.Text(i18n.T(id.Language, "ask_dietitian_disclaimer")))
	case records.WizardDeleteMe:
		out = append(out, transport.Text(i18n.T(id.Language, "delete_me_intro")))
	}
	return append(out, d.stepPrompt(name, first, id.Language))
}

func (d *Dispatcher) mainMenu(lang string) [][]transport.Button {
	rows := [][]string{
		{"menu_log_meal", "menu_photo_meal"},
		{"menu_water", "menu_weight"},
		{"menu_stats", "menu_recipes"},
		{"menu_ask_dietitian", "menu_document"},
		{"menu_profile"},
	}
	var out [][]transport.Button
	for _, row := range rows {
		var btns []transport.Button
		for _, key := range row {
			label := i18n.T(lang, key)
			btns = append(btns, transport.Button{Label: label, Token: menuCommands[key]})
		}
		out = append(out, btns)
	}
	return out
}

func (d *Dispatcher) cmdProfile(ctx context.Context, id identity.Identity) []transport.Response {
	u := id.User
	lang := id.Language

	lines := []string{i18n.T(lang, "profile_title")}
	add := func(key string, value string) {
		if value != "" {
			lines = append(lines, i18n.T(lang, key)+": "+value)
		}
	}
	add("profile_field_sex", strVal(u.Sex))
	if u.DateOfBirth != nil {
		add("profile_field_dob", u.DateOfBirth.Format("2006-01-02"))
	}
	add("profile_field_height", floatVal(u.HeightCm))
	add("profile_field_weight", floatVal(u.CurrentWeightKg))
	add("profile_field_goal_weight", floatVal(u.GoalWeightKg))
	add("profile_field_gi_diagnoses", strVal(u.GIDiagnoses))
	add("profile_field_other_diagnoses", strVal(u.OtherDiagnoses))
	add("profile_field_medications", strVal(u.Medications))
	add("profile_field_allergies", strVal(u.AllergiesIntolerances))
	add("profile_field_activity_level", strVal(u.ActivityLevel))
	add("profile_field_nutrition_goal", strVal(u.NutritionGoal))
	lines = append(lines, d.profileHealthSections(ctx, id)...)

	keyboard := [][]transport.Button{
		{
			{Label: i18n.T(lang, "profile_field_weight"), Token: "profile:edit:weight"},
			{Label: i18n.T(lang, "profile_field_height"), Token: "profile:edit:height"},
		},
		{
			{Label: i18n.T(lang, "profile_field_activity_level"), Token: "profile:edit:activity"},
			{Label: i18n.T(lang, "profile_field_nutrition_goal"), Token: "profile:edit:goal"},
		},
	}
	return []transport.Response{
		transport.WithKeyboard(strings.Join(lines, "\n"), keyboard),
	}
}

// profileHealthSections renders the logged medications, supplements and
// diet preferences under the profile card. A section with no rows is
// omitted; a read error drops the section rather than the whole profile.
func (d *Dispatcher) profileHealthSections(ctx context.Context, id identity.Identity) []string {
	lang := id.Language
	var lines []string

	meds, err := d.repo.ListMedications(ctx, id.UserID())
	if err != nil {
		d.log.DatabaseError("list medications", err)
	} else if len(meds) > 0 {
		lines = append(lines, "", i18n.T(lang, "profile_section_medications"))
		for _, m := range meds {
			lines = append(lines, regimenLine(m.Name, m.Dosage, m.Schedule))
		}
	}

	supps, err := d.repo.ListSupplements(ctx, id.UserID())
	if err != nil {
		d.log.DatabaseError("list supplements", err)
	} else if len(supps) > 0 {
		lines = append(lines, "", i18n.T(lang, "profile_section_supplements"))
		for _, s := range supps {
			lines = append(lines, regimenLine(s.Name, s.Dosage, s.Schedule))
		}
	}

	prefs, err := d.repo.GetDietPreferences(ctx, id.UserID())
	switch {
	case apperr.Is(err, apperr.KindNotFound):
	case err != nil:
		d.log.DatabaseError("get diet preferences", err)
	default:
		lines = append(lines, "", i18n.T(lang, "profile_section_diet"))
		addPref := func(key string, value *string) {
			if value != nil && *value != "" {
				lines = append(lines, i18n.T(lang, key)+": "+*value)
			}
		}
		addPref("profile_field_diet_type", prefs.DietaryType)
		addPref("profile_field_disliked", prefs.Disliked)
		addPref("profile_field_favourite", prefs.Favourite)
		addPref("profile_field_intolerances", prefs.Intolerances)
	}
	return lines
}

// regimenLine formats one medication or supplement row.
func regimenLine(name string, dosage, schedule *string) string {
	line := "• " + name
	var details []string
	if dosage != nil && *dosage != "" {
		details = append(details, *dosage)
	}
	if schedule != nil && *schedule != "" {
		details = append(details, *schedule)
	}
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	return line
}

var profileEditWizards = map[string]string{
	"weight":   records.WizardProfileEditWeight,
	"height":   records.WizardProfileEditHeight,
	"activity": records.WizardProfileEditActivity,
	"goal":     records.WizardProfileEditGoal,
}

func (d *Dispatcher) startProfileEdit(ctx context.Context, id identity.Identity, field string) []transport.Response {
	wiz, ok := profileEditWizards[field]
	if !ok {
		return []transport.Response{transport.Text(i18n.T(id.Language, "unknown_command"))}
	}
	return d.startWizard(ctx, id, wiz, nil)
}

func (d *Dispatcher) cmdRecipes(ctx context.Context, id identity.Identity) []transport.Response {
	recipes, err := d.repo.ListRecipes(ctx, id.UserID())
	if err != nil {
		d.log.DatabaseError("list recipes", err)
		return []transport.Response{transport.Text(i18n.T(id.Language, "internal_error"))}
	}

	addRow := []transport.Button{{Label: i18n.T(id.Language, "recipes_add_button"), Token: "recipe:add"}}
	if len(recipes) == 0 {
		return []transport.Response{
			transport.WithKeyboard(i18n.T(id.Language, "recipes_empty"), [][]transport.Button{addRow}),
		}
	}

	var rows [][]transport.Button
	for _, r := range recipes {
		rows = append(rows, []transport.Button{{
			Label: r.Title,
			Token: "recipe:view:" + strconv.FormatInt(r.ID, 10),
		}})
	}
	rows = append(rows, addRow)

	text := i18n.T(id.Language, "recipes_header", len(recipes)) + "\n" + i18n.T(id.Language, "recipes_hint")
	return []transport.Response{transport.WithKeyboard(text, rows)}
}

func (d *Dispatcher) recipeCallback(ctx context.Context, id identity.Identity, action string) []transport.Response {
	lang := id.Language
	switch {
	case action == "add":
		return d.startWizard(ctx, id, records.WizardRecipeCreate, nil)

	case action == "back":
		return d.cmdRecipes(ctx, id)

	case strings.HasPrefix(action, "view:"):
		recipeID, err := strconv.ParseInt(strings.TrimPrefix(action, "view:"), 10, 64)
		if err != nil {
			return []transport.Response{transport.Text(i18n.T(lang, "unknown_command"))}
		}
		r, err := d.repo.GetRecipe(ctx, id.UserID(), recipeID)
		if err != nil {
			if apperr.GetKind(err) == apperr.KindNotFound {
				return []transport.Response{transport.Text(i18n.T(lang, "recipes_not_found"))}
			}
			d.log.DatabaseError("get recipe", err)
			return []transport.Response{transport.Text(i18n.T(lang, "internal_error"))}
		}
		idStr := strconv.FormatInt(r.ID, 10)
		keyboard := [][]transport.Button{
			{
				{Label: i18n.T(lang, "recipes_edit_title_button"), Token: "recipe:edit_title:" + idStr},
				{Label: i18n.T(lang, "recipes_edit_body_button"), Token: "recipe:edit_body:" + idStr},
			},
			{
				{Label: i18n.T(lang, "recipes_delete_button"), Token: "recipe:del:" + idStr},
				{Label: i18n.T(lang, "recipes_back_button"), Token: "recipe:back"},
			},
		}
		return []transport.Response{transport.WithKeyboard(r.Title+"\n\n"+r.Body, keyboard)}

	case strings.HasPrefix(action, "del:"):
		recipeID, err := strconv.ParseInt(strings.TrimPrefix(action, "del:"), 10, 64)
		if err != nil {
			return []transport.Response{transport.Text(i18n.T(lang, "unknown_command"))}
		}
		if err := d.repo.DeleteRecipe(ctx, id.UserID(), recipeID); err != nil {
			if apperr.GetKind(err) == apperr.KindNotFound {
				return []transport.Response{transport.Text(i18n.T(lang, "recipes_not_found"))}
			}
			d.log.DatabaseError("delete recipe", err)
			return []transport.Response{transport.Text(i18n.T(lang, "internal_error"))}
		}
		return append([]transport.Response{transport.Text(i18n.T(lang, "recipes_deleted"))},
			d.cmdRecipes(ctx, id)...)

	case strings.HasPrefix(action, "edit_title:"):
		return d.startRecipeEdit(ctx, id, records.WizardRecipeEditTitle, strings.TrimPrefix(action, "edit_title:"))

	case strings.HasPrefix(action, "edit_body:"):
		return d.startRecipeEdit(ctx, id, records.WizardRecipeEditBody, strings.TrimPrefix(action, "edit_body:"))
	}
	return []transport.Response{transport.Text(i18n.T(lang, "unknown_command"))}
}

// startRecipeEdit opens a single-step edit wizard with the recipe id
// captured in the initial fields.
func (d *Dispatcher) startRecipeEdit(ctx context.Context, id identity.Identity, wiz, rawID string) []transport.Response {
	if _, err := strconv.ParseInt(rawID, 10, 64); err != nil {
		return []transport.Response{transport.Text(i18n.T(id.Language, "unknown_command"))}
	}
	return d.startWizard(ctx, id, wiz, map[string]string{records.FieldRecipeID: rawID})
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatVal(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
