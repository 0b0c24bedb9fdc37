// Package records owns the persisted domain records and the atomic commit
// layer that writes them when a wizard reaches its terminal step.
package records

import "time"

// User is the resolved identity plus the health profile collected at
// onboarding. ExternalID is the opaque sender id from the transport.
type User struct {
	ID         int64
	ExternalID int64
	Username   *string
	FirstName  *string
	LastName   *string
	Language   string

	Sex                   *string
	DateOfBirth           *time.Time
	HeightCm              *float64
	CurrentWeightKg       *float64
	GoalWeightKg          *float64
	GIDiagnoses           *string
	OtherDiagnoses        *string
	Medications           *string
	AllergiesIntolerances *string
	ActivityLevel         *string
	NutritionGoal         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Meal is one logged meal; macro fields stay nil when the nutrition
// collaborator returned a degraded estimate.
type Meal struct {
	ID          int64
	UserID      int64
	MealType    string
	RawText     *string
	IsFromPhoto bool
	PhotoFileID *string
	Language    *string
	Calories    *float64
	ProteinG    *float64
	FatG        *float64
	CarbsG      *float64
	FiberG      *float64
	SugarG      *float64
	AINotes     *string
	CreatedAt   time.Time
}

// WaterIntake is one logged water volume.
type WaterIntake struct {
	ID       int64
	UserID   int64
	VolumeML float64
	LoggedAt time.Time
}

// WeightLog is one logged body weight.
type WeightLog struct {
	ID       int64
	UserID   int64
	WeightKg float64
	LoggedAt time.Time
}

// Recipe is a user-authored (or AI-drafted) recipe.
type Recipe struct {
	ID        int64
	UserID    int64
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConversationMessage is one chat-log entry of the dietitian dialog.
type ConversationMessage struct {
	ID        int64
	UserID    int64
	Role      string
	Content   string
	CreatedAt time.Time
}

// HealthExamination is a summarized examination report (MRI, ultrasound...).
type HealthExamination struct {
	ID         int64
	UserID     int64
	ExamType   string
	BodyRegion *string
	ExamDate   *time.Time
	Summary    *string
	CreatedAt  time.Time
}

// LabResultSet is the header of one parsed lab report.
type LabResultSet struct {
	ID         int64
	UserID     int64
	SourceText *string
	TakenAt    *time.Time
	CreatedAt  time.Time
}

// LabResultItem is one analyte row belonging to a LabResultSet.
type LabResultItem struct {
	ID             int64
	SetID          int64
	Analyte        string
	Value          *string
	Unit           *string
	ReferenceRange *string
	Flag           *string
}

// SymptomEntry is one logged symptom occurrence.
type SymptomEntry struct {
	ID          int64
	UserID      int64
	Description string
	Severity    *int
	OccurredAt  time.Time
}

// DiseaseHistory is one recorded past or chronic condition.
type DiseaseHistory struct {
	ID          int64
	UserID      int64
	Condition   string
	DiagnosedAt *time.Time
	Notes       *string
	CreatedAt   time.Time
}

// Medication is one regularly taken medication.
type Medication struct {
	ID        int64
	UserID    int64
	Name      string
	Dosage    *string
	Schedule  *string
	CreatedAt time.Time
}

// Supplement is one regularly taken supplement.
type Supplement struct {
	ID        int64
	UserID    int64
	Name      string
	Dosage    *string
	Schedule  *string
	CreatedAt time.Time
}

// DietPreferences is the single upserted row of food preferences per user.
type DietPreferences struct {
	UserID       int64
	DietaryType  *string
	Disliked     *string
	Favourite    *string
	Intolerances *string
	UpdatedAt    time.Time
}

// BiometryEntry is one body measurement (waist, hip, blood pressure...).
type BiometryEntry struct {
	ID         int64
	UserID     int64
	Metric     string
	ValueText  string
	MeasuredAt time.Time
}

// DailyStats aggregates today's meals and water plus the latest weight.
type DailyStats struct {
	Calories   *float64
	ProteinG   *float64
	FatG       *float64
	CarbsG     *float64
	FiberG     *float64
	SugarG     *float64
	WaterML    float64
	LastWeight *WeightLog
}

// HasMeals reports whether any meal macro total is present.
func (s DailyStats) HasMeals() bool {
	return s.Calories != nil || s.ProteinG != nil || s.FatG != nil ||
		s.CarbsG != nil || s.FiberG != nil || s.SugarG != nil
}
