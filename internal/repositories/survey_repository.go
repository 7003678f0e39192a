package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopbay/storefront-platform/internal/models"
	"github.com/shopbay/storefront-platform/internal/utils"
)

type SurveyRepository interface {
	// InsertWithAllocation persists the response and reserves its 1-based
	// sequence number in one transaction. It returns the sequence, which is
	// also stamped on the row when it falls within promoLimit.
	InsertWithAllocation(ctx context.Context, resp *models.SurveyResponse, promoLimit int) (int, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountResponses(ctx context.Context) (int, error)
}

type surveyRepository struct {
	DB *sql.DB
}

func NewSurveyRepo(db *sql.DB) SurveyRepository {
	return &surveyRepository{DB: db}
}

// InsertWithAllocation closes the count-then-insert race: the row insert and
// the counter increment commit or roll back together, and the row lock taken
// by the counter UPDATE serializes concurrent submitters, so two submissions
// can never observe the same sequence. A duplicate email aborts on the unique
// constraint before the counter is ever touched.
func (r *surveyRepository) InsertWithAllocation(ctx context.Context, resp *models.SurveyResponse, promoLimit int) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning survey transaction: %w", err)
	}

	defer tx.Rollback()

	insertQuery := `
		INSERT INTO surveys (name, email, rating, feedback, improvements, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	err = tx.QueryRowContext(dbCtx, insertQuery, resp.Name, resp.Email, resp.Rating,
		resp.Feedback, pq.Array(resp.Improvements)).Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		return 0, err
	}

	var sequence int

	counterQuery := `
		UPDATE survey_promotions
		SET issued = issued + 1
		WHERE id = 1
		RETURNING issued`

	if err := tx.QueryRowContext(dbCtx, counterQuery).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("allocating survey sequence: %w", err)
	}

	if sequence <= promoLimit {

		stampQuery := `UPDATE surveys SET promo_sequence = $1 WHERE id = $2`

		if _, err := tx.ExecContext(dbCtx, stampQuery, sequence, resp.ID); err != nil {
			return 0, fmt.Errorf("stamping promo sequence: %w", err)
		}

		resp.PromoSequence = &sequence
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing survey transaction: %w", err)
	}

	return sequence, nil
}

func (r *surveyRepository) EmailExists(ctx context.Context, email string) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT 1 FROM surveys WHERE email = $1`

	var one int

	err := r.DB.QueryRowContext(dbCtx, query, email).Scan(&one)
	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *surveyRepository) CountResponses(ctx context.Context) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT COUNT(*) FROM surveys`

	var total int

	if err := r.DB.QueryRowContext(dbCtx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting survey responses: %w", err)
	}

	return total, nil
}
