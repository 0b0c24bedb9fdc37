package i18n

var english = map[string]string{
	// General
	"welcome":          "Welcome back! What would you like to log today?",
	"choose_language":  "Please choose your language:",
	"language_selected": "Language set to %s.",
	"help_text": "I can help you track meals, water, weight and health records.\n" +
		"/meal — log a meal\n/photo_meal — log a meal by photo\n/water — log water\n" +
		"/weight — log weight\n/stats — today's summary\n/recipes — your recipes\n" +
		"/ask — ask the dietitian\n/document — upload a medical document\n" +
		"/symptom — log a symptom\n/history — add disease history\n" +
		"/medication — log a medication\n/supplement — log a supplement\n" +
		"/preferences — diet preferences\n/biometry — body measurements\n" +
		"/profile — view and edit your profile\n/delete_me — erase all my data",
	"unknown_command": "Sorry, I didn't understand that. Try /help.",
	"profile_missing": "I couldn't find your profile. Please run /start first.",
	"commit_failed":   "Something went wrong while saving. Please try sending that again.",
	"internal_error":  "Something went wrong. Please try again.",
	"not_implemented": "This feature is coming soon.",

	// Main menu labels
	"menu_log_meal":      "🍽 Log meal",
	"menu_photo_meal":    "📷 Meal photo",
	"menu_water":         "💧 Water",
	"menu_weight":        "⚖️ Weight",
	"menu_stats":         "📊 Stats",
	"menu_recipes":       "📖 Recipes",
	"menu_ask_dietitian": "🥦 Ask dietitian",
	"menu_profile":       "👤 Profile",
	"menu_document":      "📄 Upload document",

	// Generic buttons
	"btn_yes": "Yes",
	"btn_no":  "No",
	"skip":    "Skip",

	// Onboarding
	"ask_sex":              "What is your sex?",
	"sex_m":                "Male",
	"sex_f":                "Female",
	"sex_other":            "Other",
	"ask_date_of_birth":    "What is your date of birth? (YYYY-MM-DD or DD.MM.YYYY)",
	"invalid_date":         "That doesn't look like a date. Please use YYYY-MM-DD or DD.MM.YYYY, or \"-\" to skip.",
	"ask_height":           "What is your height in cm?",
	"invalid_number":       "Please enter a number, e.g. 72.5 or 72,5.",
	"invalid_choice":       "Please pick one of the options below.",
	"need_text":            "Please send a text message.",
	"ask_weight":           "What is your current weight in kg?",
	"ask_goal_weight":      "What is your goal weight in kg? (or Skip)",
	"ask_gi_diagnoses":     "Any digestive (GI) diagnoses? Describe briefly, or \"-\" for none.",
	"ask_other_diagnoses":  "Any other diagnoses? Describe briefly, or \"-\" for none.",
	"ask_medications":      "Which medications do you take regularly? Or \"-\" for none.",
	"ask_allergies":        "Any food allergies or intolerances? Or \"-\" for none.",
	"ask_activity_level":   "What is your activity level?",
	"activity_low":         "Low",
	"activity_medium":      "Medium",
	"activity_high":        "High",
	"ask_nutrition_goal":   "What is your nutrition goal?",
	"goal_weight_loss":     "Weight loss",
	"goal_maintenance":     "Maintenance",
	"goal_weight_gain":     "Weight gain",
	"goal_symptom_control": "Symptom control",
	"profile_saved":        "Your profile is saved. Welcome aboard!",

	// Meals
	"meal_type_breakfast": "Breakfast",
	"meal_type_lunch":     "Lunch",
	"meal_type_dinner":    "Dinner",
	"meal_type_snack":     "Snack",
	"ask_meal_type":       "What kind of meal is it?",
	"ask_meal_text":       "Describe what you ate.",
	"ask_meal_photo":      "Send a photo of your meal. A caption is optional.",
	"error_no_photo":      "I need a photo for this one. Please send an image.",
	"meal_saved":          "Meal logged.",
	"meal_summary":        "Estimated: %s kcal, protein %s g, fat %s g, carbs %s g",
	"ai_note_unavailable": "Nutrition estimate unavailable right now; saved without macros.",

	// Water
	"ask_water_amount":     "How much water did you drink (ml)?",
	"water_preset_200":     "200 ml",
	"water_preset_250":     "250 ml",
	"water_preset_300":     "300 ml",
	"water_preset_500":     "500 ml",
	"water_other_amount":   "Other amount",
	"water_invalid_amount": "Please enter a positive amount in ml, e.g. 250.",
	"water_saved":          "Water logged.",
	"water_today_total":    "Today's total: %d ml",

	// Weight
	"weight_invalid":           "Please enter a positive weight in kg, e.g. 72.5.",
	"weight_saved":             "Weight logged.",
	"weight_no_previous":       "This is your first weight entry.",
	"weight_change_since_last": "Change since last entry: %s kg",
	"weight_change_vs_goal":    "Distance to goal: %s kg",

	// Stats
	"stats_today_title":      "Today's summary",
	"stats_today_line":       "Meals: %s kcal, protein %s g, fat %s g, carbs %s g",
	"stats_today_extra":      "Fiber: %s g, Sugar: %s g",
	"stats_today_no_meals":   "No meals logged today.",
	"stats_today_water_line": "Water: %d ml",
	"stats_last_weight_line": "Last weight: %s kg (%s)",
	"stats_error":            "Couldn't fetch your stats right now.",
	"stats_reset_done":       "Today's meals and water were cleared.",
	"stats_reset_error":      "Couldn't reset today's stats.",
	"stats_reset_all_done":   "All your logs were cleared.",
	"stats_reset_all_error":  "Couldn't reset your logs.",

	// Profile
	"profile_title":                 "Your profile",
	"profile_field_sex":             "Sex",
	"profile_field_dob":             "Date of birth",
	"profile_field_height":          "Height (cm)",
	"profile_field_weight":          "Weight (kg)",
	"profile_field_goal_weight":     "Goal weight (kg)",
	"profile_field_gi_diagnoses":    "GI diagnoses",
	"profile_field_other_diagnoses": "Other diagnoses",
	"profile_field_medications":     "Medications",
	"profile_field_allergies":       "Allergies/intolerances",
	"profile_field_activity_level":  "Activity level",
	"profile_field_nutrition_goal":  "Nutrition goal",
	"profile_edit_prompt":           "Send the new value.",
	"updated":                       "Updated.",
	"profile_section_medications":   "Logged medications:",
	"profile_section_supplements":   "Supplements:",
	"profile_section_diet":          "Diet preferences:",
	"profile_field_diet_type":       "Diet style",
	"profile_field_disliked":        "Disliked foods",
	"profile_field_favourite":       "Favourite foods",
	"profile_field_intolerances":    "Intolerances",

	// Recipes
	"recipes_header":            "You have %d recipes:",
	"recipes_hint":              "Tap a recipe to view or edit it.",
	"recipes_empty":             "You have no recipes yet.",
	"recipes_add_button":        "➕ Add recipe",
	"recipes_prompt_title":      "Send the recipe title.",
	"recipes_prompt_body":       "Send the recipe text, or let me draft one.",
	"recipes_saved":             "Recipe saved.",
	"recipes_updated":           "Recipe updated.",
	"recipes_deleted":           "Recipe deleted.",
	"recipes_not_found":         "Recipe not found.",
	"recipes_edit_title_button": "✏️ Edit title",
	"recipes_edit_body_button":  "📝 Edit text",
	"recipes_delete_button":     "🗑 Delete",
	"recipes_back_button":       "⬅️ Back",
	"recipes_ai_button":         "🤖 Draft with AI",
	"recipes_ai_working":        "Drafting a recipe for you...",
	"recipes_ai_failed":         "Couldn't draft a recipe right now.",
	"recipes_ai_ready":          "Here's a draft:",
	"recipes_ai_use_button":     "✅ Use this draft",

	// Ask dietitian
	"ask_dietitian_intro":      "Ask me anything about your nutrition.",
	"ask_dietitian_disclaimer": "I'm an assistant, not a doctor; for medical concerns consult a professional.",
	"ask_dietitian_prompt":     "What's your question?",
	"ask_dietitian_error":      "The dietitian is unavailable right now. Please try again later.",

	// Account deletion
	"delete_me_intro":              "This will permanently delete your profile and all logged data.",
	"delete_me_confirm_text":       "Are you sure?",
	"delete_me_confirm_button_yes": "Yes, delete everything",
	"delete_me_confirm_button_no":  "No, keep it",
	"delete_me_cancelled":          "Nothing was deleted.",
	"delete_me_done":               "Your data has been deleted. Goodbye!",

	// Documents
	"ask_document":       "Send a photo of the document, or paste its text.",
	"document_received":  "Got it, reading the document...",
	"document_saved_lab": "Saved a lab report with %d results.",
	"document_saved_exam": "Saved an examination record: %s.",
	"document_need_content": "I need a photo or the document text to continue.",

	// Symptoms
	"ask_symptom_description": "Describe the symptom.",
	"ask_symptom_severity":    "How severe is it, from 1 (mild) to 10 (worst)?",
	"ask_symptom_date":        "When did it occur? (YYYY-MM-DD, DD.MM.YYYY, or \"-\" for now)",
	"symptom_saved":           "Symptom logged.",

	// Disease history
	"ask_condition":      "Which condition would you like to record?",
	"ask_diagnosed_date": "When was it diagnosed? (YYYY-MM-DD, DD.MM.YYYY, or \"-\" if unknown)",
	"ask_disease_notes":  "Any notes? Or \"-\" for none.",
	"disease_saved":      "Disease history entry saved.",

	// Medications / supplements
	"ask_med_name":      "What is the medication called?",
	"ask_med_dosage":    "What is the dosage, e.g. 500 mg?",
	"ask_med_schedule":  "How often do you take it?",
	"medication_saved":  "Medication saved.",
	"ask_supp_name":     "What is the supplement called?",
	"ask_supp_dosage":   "What is the dosage?",
	"ask_supp_schedule": "How often do you take it?",
	"supplement_saved":  "Supplement saved.",

	// Diet preferences
	"ask_diet_type":        "Which diet style fits you best?",
	"diet_type_regular":    "Regular",
	"diet_type_vegetarian": "Vegetarian",
	"diet_type_vegan":      "Vegan",
	"diet_type_keto":       "Keto",
	"diet_type_other":      "Other",
	"ask_disliked":         "Which foods do you dislike? Or \"-\" for none.",
	"ask_favourite":        "Which foods do you love? Or \"-\" for none.",
	"ask_intolerances":     "Any intolerances to note? Or \"-\" for none.",
	"preferences_saved":    "Diet preferences saved.",

	// Biometry
	"ask_biometry_metric":  "Which measurement would you like to record?",
	"biometry_waist":       "Waist (cm)",
	"biometry_hip":         "Hip (cm)",
	"biometry_chest":       "Chest (cm)",
	"biometry_body_fat":    "Body fat (%)",
	"biometry_bp":          "Blood pressure",
	"ask_biometry_value":   "Send the value.",
	"biometry_saved":       "Measurement saved.",
}
