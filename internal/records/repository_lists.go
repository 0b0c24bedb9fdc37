package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nutribot_backend/platform/apperr"
)

const recipeNotFoundMessage = "recipe not found"

// ListRecipes returns the user's recipes, newest first.
func (r *Repo) ListRecipes(ctx context.Context, userID int64) ([]Recipe, error) {
	query := `
		SELECT id, user_id, title, body, created_at, updated_at
		FROM recipes
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Body, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves one recipe, scoped to its owner.
func (r *Repo) GetRecipe(ctx context.Context, userID, recipeID int64) (Recipe, error) {
	query := `
		SELECT id, user_id, title, body, created_at, updated_at
		FROM recipes
		WHERE id = $1 AND user_id = $2`
	var rec Recipe
	err := r.pool.QueryRow(ctx, query, recipeID, userID).Scan(
		&rec.ID, &rec.UserID, &rec.Title, &rec.Body, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipe{}, apperr.NotFound(recipeNotFoundMessage)
		}
		return Recipe{}, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

// DeleteRecipe removes one recipe, scoped to its owner.
func (r *Repo) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM recipes WHERE id = $1 AND user_id = $2`, recipeID, userID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(recipeNotFoundMessage)
	}
	return nil
}

// RecentMessages returns the last n dialog messages in chronological order.
func (r *Repo) RecentMessages(ctx context.Context, userID int64, n int) ([]ConversationMessage, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM (
			SELECT id, user_id, role, content, created_at
			FROM conversation_messages
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, userID, n)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()

	var msgs []ConversationMessage
	for rows.Next() {
		var m ConversationMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}

// ListMedications returns the user's medication log, newest first.
func (r *Repo) ListMedications(ctx context.Context, userID int64) ([]Medication, error) {
	query := `
		SELECT id, user_id, name, dosage, schedule, created_at
		FROM medications_log
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	defer rows.Close()

	var meds []Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Schedule, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		meds = append(meds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medications: %w", err)
	}
	return meds, nil
}

// ListSupplements returns the user's supplements, newest first.
func (r *Repo) ListSupplements(ctx context.Context, userID int64) ([]Supplement, error) {
	query := `
		SELECT id, user_id, name, dosage, schedule, created_at
		FROM supplements
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list supplements: %w", err)
	}
	defer rows.Close()

	var supps []Supplement
	for rows.Next() {
		var s Supplement
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Dosage, &s.Schedule, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplement: %w", err)
		}
		supps = append(supps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supplements: %w", err)
	}
	return supps, nil
}

// GetDietPreferences returns the user's food preferences row if present.
func (r *Repo) GetDietPreferences(ctx context.Context, userID int64) (DietPreferences, error) {
	query := `
		SELECT user_id, dietary_type, disliked, favourite, intolerances, updated_at
		FROM diet_preferences
		WHERE user_id = $1`
	var p DietPreferences
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.DietaryType, &p.Disliked, &p.Favourite, &p.Intolerances, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DietPreferences{}, apperr.NotFound("diet preferences not set")
		}
		return DietPreferences{}, fmt.Errorf("get diet preferences: %w", err)
	}
	return p, nil
}
