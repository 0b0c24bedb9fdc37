package wizard

import (
	"strconv"

	"nutribot_backend/internal/records"
)

var mealTypeOptions = []Option{
	{LabelKey: "meal_type_breakfast", Value: "breakfast"},
	{LabelKey: "meal_type_lunch", Value: "lunch"},
	{LabelKey: "meal_type_dinner", Value: "dinner"},
	{LabelKey: "meal_type_snack", Value: "snack"},
}

var activityOptions = []Option{
	{LabelKey: "activity_low", Value: "low"},
	{LabelKey: "activity_medium", Value: "medium"},
	{LabelKey: "activity_high", Value: "high"},
}

var nutritionGoalOptions = []Option{
	{LabelKey: "goal_weight_loss", Value: "weight_loss"},
	{LabelKey: "goal_maintenance", Value: "maintenance"},
	{LabelKey: "goal_weight_gain", Value: "weight_gain"},
	{LabelKey: "goal_symptom_control", Value: "symptom_control"},
}

func severityOptions() []Option {
	opts := make([]Option, 0, 10)
	for i := 1; i <= 10; i++ {
		label := strconv.Itoa(i)
		opts = append(opts, Option{Label: label, Value: label})
	}
	return opts
}

func definitions() []Wizard {
	return []Wizard{
		{
			Name: records.WizardOnboarding,
			Steps: []Step{
				{Name: "language", Kind: KindChoice, FieldKey: records.FieldLanguage,
					PromptKey: "choose_language", Options: []Option{
						{Label: "English", Value: "en"},
						{Label: "Русский", Value: "ru"},
					}, Next: "sex"},
				{Name: "sex", Kind: KindChoice, FieldKey: records.FieldSex,
					PromptKey: "ask_sex", Options: []Option{
						{LabelKey: "sex_m", Value: "m"},
						{LabelKey: "sex_f", Value: "f"},
						{LabelKey: "sex_other", Value: "other"},
					}, Next: "date_of_birth"},
				{Name: "date_of_birth", Kind: KindDate, FieldKey: records.FieldDateOfBirth,
					PromptKey: "ask_date_of_birth", Next: "height"},
				{Name: "height", Kind: KindPositiveNumber, FieldKey: records.FieldHeightCm,
					PromptKey: "ask_height", Next: "current_weight"},
				{Name: "current_weight", Kind: KindPositiveNumber, FieldKey: records.FieldCurrentWeight,
					PromptKey: "ask_weight", Next: "goal_weight"},
				{Name: "goal_weight", Kind: KindPositiveNumber, FieldKey: records.FieldGoalWeight,
					PromptKey: "ask_goal_weight", Skippable: true, Next: "gi_diagnoses"},
				{Name: "gi_diagnoses", Kind: KindText, FieldKey: records.FieldGIDiagnoses,
					PromptKey: "ask_gi_diagnoses", Skippable: true, Next: "other_diagnoses"},
				{Name: "other_diagnoses", Kind: KindText, FieldKey: records.FieldOtherDiagnoses,
					PromptKey: "ask_other_diagnoses", Skippable: true, Next: "medications"},
				{Name: "medications", Kind: KindText, FieldKey: records.FieldMedications,
					PromptKey: "ask_medications", Skippable: true, Next: "allergies"},
				{Name: "allergies", Kind: KindText, FieldKey: records.FieldAllergies,
					PromptKey: "ask_allergies", Skippable: true, Next: "activity_level"},
				{Name: "activity_level", Kind: KindChoice, FieldKey: records.FieldActivityLevel,
					PromptKey: "ask_activity_level", Options: activityOptions, Next: "nutrition_goal"},
				{Name: "nutrition_goal", Kind: KindChoice, FieldKey: records.FieldNutritionGoal,
					PromptKey: "ask_nutrition_goal", Options: nutritionGoalOptions, PerRow: 2},
			},
		},
		{
			Name: records.WizardMealText,
			Steps: []Step{
				{Name: "meal_type", Kind: KindChoice, FieldKey: records.FieldMealType,
					PromptKey: "ask_meal_type", Options: mealTypeOptions, Next: "description"},
				{Name: "description", Kind: KindText, FieldKey: records.FieldMealText,
					PromptKey: "ask_meal_text"},
			},
		},
		{
			Name: records.WizardMealPhoto,
			Steps: []Step{
				{Name: "meal_type", Kind: KindChoice, FieldKey: records.FieldMealType,
					PromptKey: "ask_meal_type", Options: mealTypeOptions, Next: "photo"},
				{Name: "photo", Kind: KindAttachment, FieldKey: records.FieldPhotoFileID,
					PromptKey: "ask_meal_photo", ErrorKey: "error_no_photo"},
			},
		},
		{
			Name: records.WizardWater,
			Steps: []Step{
				{Name: "volume", Kind: KindChoice, FieldKey: records.FieldVolumeML,
					PromptKey: "ask_water_amount", ErrorKey: "water_invalid_amount",
					TypedOK: true, Options: []Option{
						{LabelKey: "water_preset_200", Value: "200"},
						{LabelKey: "water_preset_250", Value: "250"},
						{LabelKey: "water_preset_300", Value: "300"},
						{LabelKey: "water_preset_500", Value: "500"},
					}},
			},
		},
		{
			Name: records.WizardWeight,
			Steps: []Step{
				{Name: "weight", Kind: KindPositiveNumber, FieldKey: records.FieldWeightKg,
					PromptKey: "ask_weight", ErrorKey: "weight_invalid"},
			},
		},
		{
			Name: records.WizardRecipeCreate,
			Steps: []Step{
				{Name: "title", Kind: KindText, FieldKey: records.FieldRecipeTitle,
					PromptKey: "recipes_prompt_title", Next: "body"},
				{Name: "body", Kind: KindText, FieldKey: records.FieldRecipeBody,
					PromptKey: "recipes_prompt_body"},
			},
		},
		{
			Name: records.WizardRecipeEditTitle,
			Steps: []Step{
				{Name: "title", Kind: KindText, FieldKey: records.FieldRecipeTitle,
					PromptKey: "recipes_prompt_title"},
			},
		},
		{
			Name: records.WizardRecipeEditBody,
			Steps: []Step{
				{Name: "body", Kind: KindText, FieldKey: records.FieldRecipeBody,
					PromptKey: "recipes_prompt_body"},
			},
		},
		{
			Name: records.WizardProfileEditWeight,
			Steps: []Step{
				{Name: "weight", Kind: KindPositiveNumber, FieldKey: records.FieldCurrentWeight,
					PromptKey: "ask_weight", ErrorKey: "weight_invalid"},
			},
		},
		{
			Name: records.WizardProfileEditHeight,
			Steps: []Step{
				{Name: "height", Kind: KindPositiveNumber, FieldKey: records.FieldHeightCm,
					PromptKey: "ask_height"},
			},
		},
		{
			Name: records.WizardProfileEditActivity,
			Steps: []Step{
				{Name: "activity", Kind: KindChoice, FieldKey: records.FieldActivityLevel,
					PromptKey: "ask_activity_level", Options: activityOptions},
			},
		},
		{
			Name: records.WizardProfileEditGoal,
			Steps: []Step{
				{Name: "goal", Kind: KindChoice, FieldKey: records.FieldNutritionGoal,
					PromptKey: "ask_nutrition_goal", Options: nutritionGoalOptions},
			},
		},
		{
			Name: records.WizardAsk,
			Steps: []Step{
				{Name: "question", Kind: KindText, FieldKey: records.FieldQuestion,
					PromptKey: "ask_dietitian_prompt"},
			},
		},
		{
			Name: records.WizardDocument,
			Steps: []Step{
				{Name: "content", Kind: KindContent, FieldKey: records.FieldDocumentText,
					PromptKey: "ask_document", ErrorKey: "document_need_content"},
			},
		},
		{
			Name: records.WizardSymptom,
			Steps: []Step{
				{Name: "description", Kind: KindText, FieldKey: records.FieldSymptomDescription,
					PromptKey: "ask_symptom_description", Next: "severity"},
				{Name: "severity", Kind: KindChoice, FieldKey: records.FieldSymptomSeverity,
					PromptKey: "ask_symptom_severity", Options: severityOptions(), PerRow: 5,
					Next: "date"},
				{Name: "date", Kind: KindDate, FieldKey: records.FieldSymptomDate,
					PromptKey: "ask_symptom_date"},
			},
		},
		{
			Name: records.WizardDisease,
			Steps: []Step{
				{Name: "condition", Kind: KindText, FieldKey: records.FieldCondition,
					PromptKey: "ask_condition", Next: "diagnosed_at"},
				{Name: "diagnosed_at", Kind: KindDate, FieldKey: records.FieldDiagnosedAt,
					PromptKey: "ask_diagnosed_date", Next: "notes"},
				{Name: "notes", Kind: KindText, FieldKey: records.FieldDiseaseNotes,
					PromptKey: "ask_disease_notes", Skippable: true},
			},
		},
		{
			Name: records.WizardMedication,
			Steps: []Step{
				{Name: "name", Kind: KindText, FieldKey: records.FieldMedName,
					PromptKey: "ask_med_name", Next: "dosage"},
				{Name: "dosage", Kind: KindText, FieldKey: records.FieldMedDosage,
					PromptKey: "ask_med_dosage", Skippable: true, Next: "schedule"},
				{Name: "schedule", Kind: KindText, FieldKey: records.FieldMedSchedule,
					PromptKey: "ask_med_schedule", Skippable: true},
			},
		},
		{
			Name: records.WizardSupplement,
			Steps: []Step{
				{Name: "name", Kind: KindText, FieldKey: records.FieldSuppName,
					PromptKey: "ask_supp_name", Next: "dosage"},
				{Name: "dosage", Kind: KindText, FieldKey: records.FieldSuppDosage,
					PromptKey: "ask_supp_dosage", Skippable: true, Next: "schedule"},
				{Name: "schedule", Kind: KindText, FieldKey: records.FieldSuppSchedule,
					PromptKey: "ask_supp_schedule", Skippable: true},
			},
		},
		{
			Name: records.WizardDietPrefs,
			Steps: []Step{
				{Name: "dietary_type", Kind: KindChoice, FieldKey: records.FieldDietaryType,
					PromptKey: "ask_diet_type", Options: []Option{
						{LabelKey: "diet_type_regular", Value: "regular"},
						{LabelKey: "diet_type_vegetarian", Value: "vegetarian"},
						{LabelKey: "diet_type_vegan", Value: "vegan"},
						{LabelKey: "diet_type_keto", Value: "keto"},
						{LabelKey: "diet_type_other", Value: "other"},
					}, Next: "disliked"},
				{Name: "disliked", Kind: KindText, FieldKey: records.FieldDisliked,
					PromptKey: "ask_disliked", Skippable: true, Next: "favourite"},
				{Name: "favourite", Kind: KindText, FieldKey: records.FieldFavourite,
					PromptKey: "ask_favourite", Skippable: true, Next: "intolerances"},
				{Name: "intolerances", Kind: KindText, FieldKey: records.FieldIntolerances,
					PromptKey: "ask_intolerances", Skippable: true},
			},
		},
		{
			Name: records.WizardBiometry,
			Steps: []Step{
				{Name: "metric", Kind: KindChoice, FieldKey: records.FieldBiometryMetric,
					PromptKey: "ask_biometry_metric", Options: []Option{
						{LabelKey: "biometry_waist", Value: "waist"},
						{LabelKey: "biometry_hip", Value: "hip"},
						{LabelKey: "biometry_chest", Value: "chest"},
						{LabelKey: "biometry_body_fat", Value: "body_fat"},
						{LabelKey: "biometry_bp", Value: "blood_pressure"},
					}, Next: "value"},
				{Name: "value", Kind: KindText, FieldKey: records.FieldBiometryValue,
					PromptKey: "ask_biometry_value"},
			},
		},
		{
			Name: records.WizardDeleteMe,
			Steps: []Step{
				{Name: "confirm", Kind: KindYesNo, FieldKey: records.FieldConfirm,
					PromptKey: "delete_me_confirm_text", Options: []Option{
						{LabelKey: "delete_me_confirm_button_yes", Value: "yes"},
						{LabelKey: "delete_me_confirm_button_no", Value: "no"},
					}},
			},
		},
	}
}

// NumericBiometryMetric reports whether the metric's value must be a
// positive number rather than free text (blood pressure stays textual).
func NumericBiometryMetric(metric string) bool {
	switch metric {
	case "waist", "hip", "chest", "body_fat":
		return true
	}
	return false
}
