package records

// Wizard names. The commit layer routes on these; the wizard registry and
// dispatcher share them.
const (
	WizardOnboarding  = "onboarding"
	WizardMealText    = "meal_text"
	WizardMealPhoto   = "meal_photo"
	WizardWater       = "water"
	WizardWeight      = "weight"
	WizardRecipeCreate    = "recipe_create"
	WizardRecipeEditTitle = "recipe_edit_title"
	WizardRecipeEditBody  = "recipe_edit_body"
	WizardProfileEditWeight   = "profile_edit_weight"
	WizardProfileEditHeight   = "profile_edit_height"
	WizardProfileEditActivity = "profile_edit_activity"
	WizardProfileEditGoal     = "profile_edit_goal"
	WizardAsk        = "ask"
	WizardDocument   = "document"
	WizardSymptom    = "symptom"
	WizardDisease    = "disease"
	WizardMedication = "medication"
	WizardSupplement = "supplement"
	WizardDietPrefs  = "diet_prefs"
	WizardBiometry   = "biometry"
	WizardDeleteMe   = "delete_me"
)

// Field keys under which wizard steps accumulate validated values. Values
// are canonical strings: numbers use ".", dates are ISO, skipped optional
// fields are simply absent.
const (
	FieldLanguage      = "language"
	FieldSex           = "sex"
	FieldDateOfBirth   = "date_of_birth"
	FieldHeightCm      = "height_cm"
	FieldCurrentWeight = "current_weight_kg"
	FieldGoalWeight    = "goal_weight_kg"
	FieldGIDiagnoses   = "gi_diagnoses"
	FieldOtherDiagnoses = "other_diagnoses"
	FieldMedications   = "medications"
	FieldAllergies     = "allergies_intolerances"
	FieldActivityLevel = "activity_level"
	FieldNutritionGoal = "nutrition_goal"

	FieldMealType     = "meal_type"
	FieldMealText     = "meal_text"
	FieldPhotoFileID  = "photo_file_id"
	FieldPhotoCaption = "photo_caption"

	FieldVolumeML = "volume_ml"
	FieldWeightKg = "weight_kg"

	FieldRecipeID    = "recipe_id"
	FieldRecipeTitle = "recipe_title"
	FieldRecipeBody  = "recipe_body"

	FieldQuestion = "question"
	FieldAnswer   = "answer"

	FieldDocumentText   = "document_text"
	FieldDocumentFileID = "document_file_id"

	FieldSymptomDescription = "symptom_description"
	FieldSymptomSeverity    = "symptom_severity"
	FieldSymptomDate        = "symptom_date"

	FieldCondition    = "condition"
	FieldDiagnosedAt  = "diagnosed_at"
	FieldDiseaseNotes = "disease_notes"

	FieldMedName     = "med_name"
	FieldMedDosage   = "med_dosage"
	FieldMedSchedule = "med_schedule"

	FieldSuppName     = "supp_name"
	FieldSuppDosage   = "supp_dosage"
	FieldSuppSchedule = "supp_schedule"

	FieldDietaryType  = "dietary_type"
	FieldDisliked     = "disliked"
	FieldFavourite    = "favourite"
	FieldIntolerances = "intolerances"

	FieldBiometryMetric = "biometry_metric"
	FieldBiometryValue  = "biometry_value"

	FieldConfirm = "confirm"

	// AI-derived fields injected by the dispatcher before commit.
	FieldAICalories = "ai_calories"
	FieldAIProteinG = "ai_protein_g"
	FieldAIFatG     = "ai_fat_g"
	FieldAICarbsG   = "ai_carbs_g"
	FieldAIFiberG   = "ai_fiber_g"
	FieldAISugarG   = "ai_sugar_g"
	FieldAINotes    = "ai_notes"
	FieldDocClass   = "doc_class"
	FieldLabItems   = "lab_items_json"
	FieldTakenAt    = "taken_at"
	FieldExamType   = "exam_type"
	FieldBodyRegion = "body_region"
	FieldExamDate   = "exam_date"
	FieldSummary    = "summary"
)

// Document classes produced by the document parser.
const (
	DocClassLabReport   = "lab_report"
	DocClassExamination = "examination"
	DocClassOther       = "other"
)
