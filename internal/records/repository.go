package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutribot_backend/platform/apperr"
)

const userNotFoundMessage = "user not found"

// Repo implements reads and non-wizard writes with PostgreSQL. Wizard
// terminal writes go through the Committer instead.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a new records repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetUserByExternalID retrieves a user by the transport sender id.
func (r *Repo) GetUserByExternalID(ctx context.Context, externalID int64) (User, error) {
	query := `
		SELECT id, external_id, username, first_name, last_name, language,
		       sex, date_of_birth, height_cm, current_weight_kg, goal_weight_kg,
		       gi_diagnoses, other_diagnoses, medications, allergies_intolerances,
		       activity_level, nutrition_goal, created_at, updated_at
		FROM users
		WHERE external_id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by external id: %w", err)
	}
	return u, nil
}

// EnsureUser inserts a user row for the sender if none exists and refreshes
// the transport metadata on every call. Health profile columns are never
// touched here.
func (r *Repo) EnsureUser(ctx context.Context, externalID int64, username, firstName, lastName *string) (User, error) {
	query := `
		INSERT INTO users (external_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			updated_at = now()
		RETURNING id, external_id, username, first_name, last_name, language,
		          sex, date_of_birth, height_cm, current_weight_kg, goal_weight_kg,
		          gi_diagnoses, other_diagnoses, medications, allergies_intolerances,
		          activity_level, nutrition_goal, created_at, updated_at`

	u, err := scanUser(r.pool.QueryRow(ctx, query, externalID, username, firstName, lastName))
	if err != nil {
		return User{}, fmt.Errorf("ensure user: %w", err)
	}
	return u, nil
}

// UpdateUserLanguage persists the user's interface language.
func (r *Repo) UpdateUserLanguage(ctx context.Context, userID int64, language string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET language = $1, updated_at = now() WHERE id = $2`,
		language, userID)
	if err != nil {
		return fmt.Errorf("update user language: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(userNotFoundMessage)
	}
	return nil
}

// DailyStats aggregates meals and water logged since the given instant plus
// the latest weight on record.
func (r *Repo) DailyStats(ctx context.Context, userID int64, since time.Time) (DailyStats, error) {
	var stats DailyStats

	mealQuery := `
		SELECT SUM(calories), SUM(protein_g), SUM(fat_g), SUM(carbs_g), SUM(fiber_g), SUM(sugar_g)
		FROM meals
		WHERE user_id = $1 AND created_at >= $2`
	err := r.pool.QueryRow(ctx, mealQuery, userID, since).Scan(
		&stats.Calories, &stats.ProteinG, &stats.FatG, &stats.CarbsG, &stats.FiberG, &stats.SugarG,
	)
	if err != nil {
		return DailyStats{}, fmt.Errorf("sum meals: %w", err)
	}

	waterQuery := `
		SELECT COALESCE(SUM(volume_ml), 0)
		FROM water_intakes
		WHERE user_id = $1 AND logged_at >= $2`
	if err := r.pool.QueryRow(ctx, waterQuery, userID, since).Scan(&stats.WaterML); err != nil {
		return DailyStats{}, fmt.Errorf("sum water: %w", err)
	}

	weightQuery := `
		SELECT id, user_id, weight_kg, logged_at
		FROM weight_logs
		WHERE user_id = $1
		ORDER BY logged_at DESC, id DESC
		LIMIT 1`
	var w WeightLog
	err = r.pool.QueryRow(ctx, weightQuery, userID).Scan(&w.ID, &w.UserID, &w.WeightKg, &w.LoggedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// no weight yet
	case err != nil:
		return DailyStats{}, fmt.Errorf("last weight: %w", err)
	default:
		stats.LastWeight = &w
	}

	return stats, nil
}

// ResetToday deletes meals and water logged since the given instant.
func (r *Repo) ResetToday(ctx context.Context, userID int64, since time.Time) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM meals WHERE user_id = $1 AND created_at >= $2`, userID, since); err != nil {
			return fmt.Errorf("delete meals: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM water_intakes WHERE user_id = $1 AND logged_at >= $2`, userID, since); err != nil {
			return fmt.Errorf("delete water: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset today: %w", err)
	}
	return nil
}

// ResetAll deletes every meal, water and weight log of the user. Profile and
// health records stay.
func (r *Repo) ResetAll(ctx context.Context, userID int64) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, q := range []string{
			`DELETE FROM meals WHERE user_id = $1`,
			`DELETE FROM water_intakes WHERE user_id = $1`,
			`DELETE FROM weight_logs WHERE user_id = $1`,
		} {
			if _, err := tx.Exec(ctx, q, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset all: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.ExternalID, &u.Username, &u.FirstName, &u.LastName, &u.Language,
		&u.Sex, &u.DateOfBirth, &u.HeightCm, &u.CurrentWeightKg, &u.GoalWeightKg,
		&u.GIDiagnoses, &u.OtherDiagnoses, &u.Medications, &u.AllergiesIntolerances,
		&u.ActivityLevel, &u.NutritionGoal, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}
