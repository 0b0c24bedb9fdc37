package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutribot_backend/platform/apperr"
	"nutribot_backend/platform/logger"
)

// Result carries what a successful commit produced, for confirmation
// messages. Only the fields relevant to the committed wizard are set.
type Result struct {
	User         *User
	Meal         *Meal
	WaterTotalML float64
	Weight       *WeightLog
	PrevWeight   *WeightLog
	Recipe       *Recipe
	DocClass     string
	ExamType     string
	LabItemCount int
	Deleted      bool
}

// LabItemInput is one parsed analyte row, JSON-encoded into the lab items
// field by the document flow.
type LabItemInput struct {
	Analyte        string  `json:"analyte"`
	Value          *string `json:"value,omitempty"`
	Unit           *string `json:"unit,omitempty"`
	ReferenceRange *string `json:"reference_range,omitempty"`
	Flag           *string `json:"flag,omitempty"`
}

// Committer turns a completed wizard's accumulated fields into one atomic
// database write. Field values are canonical strings as produced by the
// step validators; a value that fails to parse here is a programming error
// and surfaces as a commit failure.
type Committer struct {
	pool *pgxpool.Pool
	log  *logger.Logger
	now  func() time.Time
}

// NewCommitter creates a commit layer over the given pool.
func NewCommitter(pool *pgxpool.Pool, log *logger.Logger) *Committer {
	return &Committer{pool: pool, log: log, now: time.Now}
}

// Commit routes the wizard's fields to its write target inside a single
// transaction. Either every row lands or none does.
func (c *Committer) Commit(ctx context.Context, wizard string, userID int64, fields map[string]string) (Result, error) {
	var res Result
	err := pgx.BeginFunc(ctx, c.pool, func(tx pgx.Tx) error {
		switch wizard {
		case WizardOnboarding:
			return c.commitOnboarding(ctx, tx, userID, fields, &res)
		case WizardMealText, WizardMealPhoto:
			return c.commitMeal(ctx, tx, userID, wizard == WizardMealPhoto, fields, &res)
		case WizardWater:
			return c.commitWater(ctx, tx, userID, fields, &res)
		case WizardWeight:
			return c.commitWeight(ctx, tx, userID, fields, &res)
		case WizardRecipeCreate:
			return c.commitRecipeCreate(ctx, tx, userID, fields, &res)
		case WizardRecipeEditTitle, WizardRecipeEditBody:
			return c.commitRecipeEdit(ctx, tx, userID, wizard, fields, &res)
		case WizardProfileEditWeight, WizardProfileEditHeight,
			WizardProfileEditActivity, WizardProfileEditGoal:
			return c.commitProfileEdit(ctx, tx, userID, wizard, fields, &res)
		case WizardAsk:
			return c.commitAsk(ctx, tx, userID, fields)
		case WizardDocument:
			return c.commitDocument(ctx, tx, userID, fields, &res)
		case WizardSymptom:
			return c.commitSymptom(ctx, tx, userID, fields)
		case WizardDisease:
			return c.commitDisease(ctx, tx, userID, fields)
		case WizardMedication:
			return c.commitRegimen(ctx, tx, "medications_log", userID,
				fields[FieldMedName], optional(fields, FieldMedDosage), optional(fields, FieldMedSchedule))
		case WizardSupplement:
			return c.commitRegimen(ctx, tx, "supplements", userID,
				fields[FieldSuppName], optional(fields, FieldSuppDosage), optional(fields, FieldSuppSchedule))
		case WizardDietPrefs:
			return c.commitDietPrefs(ctx, tx, userID, fields)
		case WizardBiometry:
			return c.commitBiometry(ctx, tx, userID, fields)
		case WizardDeleteMe:
			return c.commitDelete(ctx, tx, userID, &res)
		default:
			return fmt.Errorf("no commit target for wizard %q", wizard)
		}
	})
	if err != nil {
		c.log.CommitEvent(wizard, userID, false, err.Error())
		return Result{}, commitError(err)
	}
	c.log.CommitEvent(wizard, userID, true, "")
	return res, nil
}

// foreignKeyViolation is the Postgres error code raised when an insert
// references a user row that no longer exists.
const foreignKeyViolation = "23503"

// commitError classifies a failed commit. A missing user row or recipe is
// not retryable and keeps its own kind; everything else is a commit failure
// the user may resubmit.
func commitError(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindUserMissing, apperr.KindNotFound:
			return ae
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return apperr.Wrap(apperr.KindUserMissing, userNotFoundMessage, err)
	}
	return apperr.CommitFailed("could not save your data", err)
}

func (c *Committer) commitOnboarding(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string, res *Result) error {
	dob, err := optionalDate(fields, FieldDateOfBirth)
	if err != nil {
		return err
	}
	height, err := optionalFloat(fields, FieldHeightCm)
	if err != nil {
		return err
	}
	weight, err := optionalFloat(fields, FieldCurrentWeight)
	if err != nil {
		return err
	}
	goal, err := optionalFloat(fields, FieldGoalWeight)
	if err != nil {
		return err
	}

	query := `
		UPDATE users SET
			language = COALESCE($2, language),
			sex = $3,
			date_of_birth = $4,
			height_cm = $5,
			current_weight_kg = $6,
			goal_weight_kg = $7,
			gi_diagnoses = $8,
			other_diagnoses = $9,
			medications = $10,
			allergies_intolerances = $11,
			activity_level = $12,
			nutrition_goal = $13,
			updated_at = now()
		WHERE id = $1
		RETURNING id, external_id, username, first_name, last_name, language,
		          sex, date_of_birth, height_cm, current_weight_kg, goal_weight_kg,
		          gi_diagnoses, other_diagnoses, medications, allergies_intolerances,
		          activity_level, nutrition_goal, created_at, updated_at`

	u, err := scanUser(tx.QueryRow(ctx, query, userID,
		optional(fields, FieldLanguage), optional(fields, FieldSex), dob, height, weight, goal,
		optional(fields, FieldGIDiagnoses), optional(fields, FieldOtherDiagnoses),
		optional(fields, FieldMedications), optional(fields, FieldAllergies),
		optional(fields, FieldActivityLevel), optional(fields, FieldNutritionGoal)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.UserMissing(userNotFoundMessage)
		}
		return fmt.Errorf("update profile: %w", err)
	}

	// Seed the weight history so the first delta has a baseline.
	if weight != nil {
		if _, err := tx.Exec(ctx,
			`INSERT INTO weight_logs (user_id, weight_kg) VALUES ($1, $2)`, userID, *weight); err != nil {
			return fmt.Errorf("seed weight log: %w", err)
		}
	}

	res.User = &u
	return nil
}

func (c *Committer) commitMeal(ctx context.Context, tx pgx.Tx, userID int64, fromPhoto bool, fields map[string]string, res *Result) error {
	macros := make(map[string]*float64, 6)
	for key, col := range map[string]string{
		FieldAICalories: "calories", FieldAIProteinG: "protein_g", FieldAIFatG: "fat_g",
		FieldAICarbsG: "carbs_g", FieldAIFiberG: "fiber_g", FieldAISugarG: "sugar_g",
	} {
		v, err := optionalFloat(fields, key)
		if err != nil {
			return err
		}
		macros[col] = v
	}

	rawText := optional(fields, FieldMealText)
	if rawText == nil {
		rawText = optional(fields, FieldPhotoCaption)
	}

	query := `
		INSERT INTO meals (user_id, meal_type, raw_text, is_from_photo, photo_file_id, language,
		                   calories, protein_g, fat_g, carbs_g, fiber_g, sugar_g, ai_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, user_id, meal_type, raw_text, is_from_photo, photo_file_id, language,
		          calories, protein_g, fat_g, carbs_g, fiber_g, sugar_g, ai_notes, created_at`

	var m Meal
	err := tx.QueryRow(ctx, query, userID, fields[FieldMealType], rawText, fromPhoto,
		optional(fields, FieldPhotoFileID), optional(fields, FieldLanguage),
		macros["calories"], macros["protein_g"], macros["fat_g"],
		macros["carbs_g"], macros["fiber_g"], macros["sugar_g"],
		optional(fields, FieldAINotes),
	).Scan(
		&m.ID, &m.UserID, &m.MealType, &m.RawText, &m.IsFromPhoto, &m.PhotoFileID, &m.Language,
		&m.Calories, &m.ProteinG, &m.FatG, &m.CarbsG, &m.FiberG, &m.SugarG, &m.AINotes, &m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meal: %w", err)
	}
	res.Meal = &m
	return nil
}

func (c *Committer) commitWater(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string, res *Result) error {
	volume, err := requiredFloat(fields, FieldVolumeML)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO water_intakes (user_id, volume_ml) VALUES ($1, $2)`, userID, volume); err != nil {
		return fmt.Errorf("insert water: %w", err)
	}

	since := startOfDay(c.now())
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(volume_ml), 0) FROM water_intakes WHERE user_id = $1 AND logged_at >= $2`,
		userID, since).Scan(&res.WaterTotalML)
	if err != nil {
		return fmt.Errorf("sum water: %w", err)
	}
	return nil
}

func (c *Committer) commitWeight(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string, res *Result) error {
	weight, err := requiredFloat(fields, FieldWeightKg)
	if err != nil {
		return err
	}

	var prev WeightLog
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, weight_kg, logged_at FROM weight_logs
		WHERE user_id = $1 ORDER BY logged_at DESC, id DESC LIMIT 1`, userID).Scan(
		&prev.ID, &prev.UserID, &prev.WeightKg, &prev.LoggedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// first weight
	case err != nil:
		return fmt.Errorf("previous weight: %w", err)
	default:
		res.PrevWeight = &prev
	}

	var w WeightLog
	err = tx.QueryRow(ctx, `
		INSERT INTO weight_logs (user_id, weight_kg) VALUES ($1, $2)
		RETURNING id, user_id, weight_kg, logged_at`, userID, weight).Scan(
		&w.ID, &w.UserID, &w.WeightKg, &w.LoggedAt)
	if err != nil {
		return fmt.Errorf("insert weight: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET current_weight_kg = $1, updated_at = now() WHERE id = $2`,
		weight, userID); err != nil {
		return fmt.Errorf("update current weight: %w", err)
	}

	res.Weight = &w
	return nil
}

func (c *Committer) commitRecipeCreate(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string, res *Result) error {
	var rec Recipe
	err := tx.QueryRow(ctx, `
		INSERT INTO recipes (user_id, title, body) VALUES ($1, $2, $3)
		RETURNING id, user_id, title, body, created_at, updated_at`,
		userID, fields[FieldRecipeTitle], fields[FieldRecipeBody]).Scan(
		&rec.ID, &rec.UserID, &rec.Title, &rec.Body, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	res.Recipe = &rec
	return nil
}

func (c *Committer) commitRecipeEdit(ctx context.Context, tx pgx.Tx, userID int64, wizard string, fields map[string]string, res *Result) error {
	recipeID, err := strconv.ParseInt(fields[FieldRecipeID], 10, 64)
	if err != nil {
		return fmt.Errorf("recipe id %q: %w", fields[FieldRecipeID], err)
	}

	column, value := "title", fields[FieldRecipeTitle]
	if wizard == WizardRecipeEditBody {
		column, value = "body", fields[FieldRecipeBody]
	}

	query := fmt.Sprintf(`
		UPDATE recipes SET %s = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, title, body, created_at, updated_at`, column)

	var rec Recipe
	err = tx.QueryRow(ctx, query, value, recipeID, userID).Scan(
		&rec.ID, &rec.UserID, &rec.Title, &rec.Body, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound(recipeNotFoundMessage)
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	res.Recipe = &rec
	return nil
}

var profileEditColumns = map[string]struct {
	column string
	field  string
	number bool
}{
	WizardProfileEditWeight:   {"current_weight_kg", FieldCurrentWeight, true},
	WizardProfileEditHeight:   {"height_cm", FieldHeightCm, true},
	WizardProfileEditActivity: {"activity_level", FieldActivityLevel, false},
	WizardProfileEditGoal:     {"nutrition_goal", FieldNutritionGoal, false},
}

func (c *Committer) commitProfileEdit(ctx context.Context, tx pgx.Tx, userID int64, wizard string, fields map[string]string, res *Result) error {
	target := profileEditColumns[wizard]

	var value any = fields[target.field]
	if target.number {
		v, err := requiredFloat(fields, target.field)
		if err != nil {
			return err
		}
		value = v
	}

	query := fmt.Sprintf(`
		UPDATE users SET %s = $1, updated_at = now() WHERE id = $2
		RETURNING id, external_id, username, first_name, last_name, language,
		          sex, date_of_birth, height_cm, current_weight_kg, goal_weight_kg,
		          gi_diagnoses, other_diagnoses, medications, allergies_intolerances,
		          activity_level, nutrition_goal, created_at, updated_at`, target.column)

	u, err := scanUser(tx.QueryRow(ctx, query, value, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.UserMissing(userNotFoundMessage)
		}
		return fmt.Errorf("update profile field: %w", err)
	}

	// A weight edit is also a measurement.
	if wizard == WizardProfileEditWeight {
		if _, err := tx.Exec(ctx,
			`INSERT INTO weight_logs (user_id, weight_kg) VALUES ($1, $2)`, userID, value); err != nil {
			return fmt.Errorf("log weight: %w", err)
		}
	}

	res.User = &u
	return nil
}

func (c *Committer) commitAsk(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string) error {
	for _, msg := range []struct{ role, key string }{
		{"user", FieldQuestion},
		{"assistant", FieldAnswer},
	} {
		content, ok := fields[msg.key]
		if !ok || content == "" {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO conversation_messages (user_id, role, content) VALUES ($1, $2, $3)`,
			userID, msg.role, content); err != nil {
			return fmt.Errorf("insert %s message: %w", msg.role, err)
		}
	}
	return nil
}

func (c *Committer) commitDocument(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string, res *Result) error {
	res.DocClass = fields[FieldDocClass]

	if res.DocClass == DocClassLabReport {
		takenAt, err := optionalDate(fields, FieldTakenAt)
		if err != nil {
			return err
		}

		var setID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO lab_result_sets (user_id, source_text, taken_at)
			VALUES ($1, $2, $3) RETURNING id`,
			userID, optional(fields, FieldDocumentText), takenAt).Scan(&setID)
		if err != nil {
			return fmt.Errorf("insert lab result set: %w", err)
		}

		var items []LabItemInput
		if raw := fields[FieldLabItems]; raw != "" {
			if err := json.Unmarshal([]byte(raw), &items); err != nil {
				return fmt.Errorf("decode lab items: %w", err)
			}
		}
		for _, it := range items {
			if _, err := tx.Exec(ctx, `
				INSERT INTO lab_result_items (set_id, analyte, value, unit, reference_range, flag)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				setID, it.Analyte, it.Value, it.Unit, it.ReferenceRange, it.Flag); err != nil {
				return fmt.Errorf("insert lab item %q: %w", it.Analyte, err)
			}
		}
		res.LabItemCount = len(items)
		return nil
	}

	// Examinations and unclassified documents share one table.
	examType := fields[FieldExamType]
	if examType == "" {
		examType = DocClassOther
	}
	examDate, err := optionalDate(fields, FieldExamDate)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO health_examinations (user_id, exam_type, body_region, exam_date, summary)
		VALUES ($1, $2, $3, $4, $5)`,
		userID, examType, optional(fields, FieldBodyRegion), examDate,
		optional(fields, FieldSummary)); err != nil {
		return fmt.Errorf("insert examination: %w", err)
	}
	res.ExamType = examType
	return nil
}

func (c *Committer) commitSymptom(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string) error {
	var severity *int
	if raw, ok := fields[FieldSymptomSeverity]; ok && raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("severity %q: %w", raw, err)
		}
		severity = &v
	}

	occurredAt := c.now()
	if d, err := optionalDate(fields, FieldSymptomDate); err != nil {
		return err
	} else if d != nil {
		occurredAt = *d
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO symptom_entries (user_id, description, severity, occurred_at)
		VALUES ($1, $2, $3, $4)`,
		userID, fields[FieldSymptomDescription], severity, occurredAt); err != nil {
		return fmt.Errorf("insert symptom: %w", err)
	}
	return nil
}

func (c *Committer) commitDisease(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string) error {
	diagnosedAt, err := optionalDate(fields, FieldDiagnosedAt)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO disease_history (user_id, condition, diagnosed_at, notes)
		VALUES ($1, $2, $3, $4)`,
		userID, fields[FieldCondition], diagnosedAt, optional(fields, FieldDiseaseNotes)); err != nil {
		return fmt.Errorf("insert disease: %w", err)
	}
	return nil
}

func (c *Committer) commitRegimen(ctx context.Context, tx pgx.Tx, table string, userID int64, name string, dosage, schedule *string) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (user_id, name, dosage, schedule) VALUES ($1, $2, $3, $4)`, table)
	if _, err := tx.Exec(ctx, query, userID, name, dosage, schedule); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (c *Committer) commitDietPrefs(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO diet_preferences (user_id, dietary_type, disliked, favourite, intolerances)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			dietary_type = EXCLUDED.dietary_type,
			disliked = EXCLUDED.disliked,
			favourite = EXCLUDED.favourite,
			intolerances = EXCLUDED.intolerances,
			updated_at = now()`,
		userID, optional(fields, FieldDietaryType), optional(fields, FieldDisliked),
		optional(fields, FieldFavourite), optional(fields, FieldIntolerances)); err != nil {
		return fmt.Errorf("upsert diet preferences: %w", err)
	}
	return nil
}

func (c *Committer) commitBiometry(ctx context.Context, tx pgx.Tx, userID int64, fields map[string]string) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO biometry_entries (user_id, metric, value_text) VALUES ($1, $2, $3)`,
		userID, fields[FieldBiometryMetric], fields[FieldBiometryValue]); err != nil {
		return fmt.Errorf("insert biometry: %w", err)
	}
	return nil
}

func (c *Committer) commitDelete(ctx context.Context, tx pgx.Tx, userID int64, res *Result) error {
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.UserMissing(userNotFoundMessage)
	}
	res.Deleted = true
	return nil
}

func optional(fields map[string]string, key string) *string {
	v, ok := fields[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

func optionalFloat(fields map[string]string, key string) (*float64, error) {
	raw, ok := fields[key]
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("field %s=%q: %w", key, raw, err)
	}
	return &v, nil
}

func requiredFloat(fields map[string]string, key string) (float64, error) {
	v, err := optionalFloat(fields, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf("field %s missing", key)
	}
	return *v, nil
}

func optionalDate(fields map[string]string, key string) (*time.Time, error) {
	raw, ok := fields[key]
	if !ok || raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("field %s=%q: %w", key, raw, err)
	}
	return &t, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
