package dispatch

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/vku-onelove/alert-notifier/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestCreateJob(t *testing.T) {
	repo, mock := setupMockDB(t)

	job := model.Job{
		ID:             uuid.New(),
		Channel:        model.ChannelEmail,
		Type:           model.TypeEmergencyAlert,
		Title:          "Flood Warning",
		Content:        "Evacuate low-lying areas",
		RecipientCount: 2,
		Attempt:        0,
		Status:         model.StatusPending,
	}

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO dispatch_jobs (
		    id, channel, type, title, content, recipient_count, attempt, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `)).
		WithArgs(job.ID, job.Channel, job.Type, job.Title, job.Content, job.RecipientCount, job.Attempt, job.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateJob(context.Background(), job)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE dispatch_jobs
		SET status = $1, attempt = $2, updated_at = now()
		WHERE id = $3;
    `)).
		WithArgs(model.StatusRetrying, 1, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), id, model.StatusRetrying, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE dispatch_jobs
		SET status = $1, attempt = $2, updated_at = now()
		WHERE id = $3;
    `)).
		WithArgs(model.StatusRetrying, 1, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), id, model.StatusRetrying, 1)
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetJobStatusByID(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT status
		FROM dispatch_jobs
		WHERE id = $1;
    `)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StatusPending))

	status, err := repo.GetJobStatusByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT status
		FROM dispatch_jobs
		WHERE id = $1;
    `)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	status, err = repo.GetJobStatusByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.Equal(t, "", status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFailedJobs(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	j1 := model.Job{
		ID: uuid.New(), Channel: model.ChannelSMS, Type: model.TypeEmergencyAlert,
		Title: "t1", Content: "c1", RecipientCount: 3, Attempt: 3,
		Status: model.StatusFailed, CreatedAt: now, UpdatedAt: now,
	}

	rows := sqlmock.NewRows([]string{
		"id", "channel", "type", "title", "content", "recipient_count", "attempt", "status", "created_at", "updated_at",
	}).AddRow(j1.ID, j1.Channel, j1.Type, j1.Title, j1.Content, j1.RecipientCount, j1.Attempt, j1.Status, j1.CreatedAt, j1.UpdatedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, channel, type, title, content, recipient_count, attempt, status, created_at, updated_at
		FROM dispatch_jobs
		WHERE status = $1
		ORDER BY updated_at DESC;
    `)).
		WithArgs(model.StatusFailed).
		WillReturnRows(rows)

	jobs, err := repo.GetFailedJobs(context.Background())
	assert.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, j1.ID, jobs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
