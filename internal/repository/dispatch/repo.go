package dispatch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/vku-onelove/alert-notifier/internal/model"
)

var ErrJobNotFound = errors.New("dispatch job not found")

// Repository provides methods to interact with the dispatch_jobs table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new dispatch job repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateJob inserts a new job record. The ID is assigned by the caller
// because the same ID travels through the broker.
func (r *Repository) CreateJob(ctx context.Context, job model.Job) error {
	query := `
		INSERT INTO dispatch_jobs (
		    id, channel, type, title, content, recipient_count, attempt, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `

	_, err := r.db.ExecContext(
		ctx, query,
		job.ID, job.Channel, job.Type, job.Title, job.Content,
		job.RecipientCount, job.Attempt, job.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create dispatch job: %w", err)
	}

	return nil
}

// UpdateStatus updates the status and attempt counter of a job by its ID.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, attempt int) error {
	query := `
		UPDATE dispatch_jobs
		SET status = $1, attempt = $2, updated_at = now()
		WHERE id = $3;
    `

	res, err := r.db.ExecContext(ctx, query, status, attempt, id)
	if err != nil {
		return fmt.Errorf("failed to update dispatch job: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// GetJobStatusByID retrieves the status of a job by its ID.
func (r *Repository) GetJobStatusByID(ctx context.Context, id uuid.UUID) (string, error) {
	query := `
		SELECT status
		FROM dispatch_jobs
		WHERE id = $1;
    `

	var status string
	err := r.db.Master.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrJobNotFound
		}

		return "", fmt.Errorf("failed to get dispatch job status: %w", err)
	}

	return status, nil
}

// GetFailedJobs retrieves jobs that exhausted their attempts, newest
// first. This is the dead-letter surface exposed over the API.
func (r *Repository) GetFailedJobs(ctx context.Context) ([]model.Job, error) {
	query := `
		SELECT id, channel, type, title, content, recipient_count, attempt, status, created_at, updated_at
		FROM dispatch_jobs
		WHERE status = $1
		ORDER BY updated_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query, model.StatusFailed)
	if err != nil {
		return nil, fmt.Errorf("failed to get failed dispatch jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		err := rows.Scan(
			&j.ID, &j.Channel, &j.Type, &j.Title, &j.Content,
			&j.RecipientCount, &j.Attempt, &j.Status, &j.CreatedAt, &j.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, j)
	}

	return jobs, nil
}
