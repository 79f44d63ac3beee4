// Copyright 2025 SpecForge
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"specforge/platform/shared/types"
)

// ErrJobNotFound is returned when a job ID does not exist
var ErrJobNotFound = errors.New("generation job not found")

// Open connects to PostgreSQL and verifies the connection
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// JobRepository persists generation jobs in PostgreSQL
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a repository backed by the given database
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new pending job and returns it with its generated ID
func (r *JobRepository) Create(ctx context.Context, kind types.JobKind, specification string) (*types.GenerationJob, error) {
	job := &types.GenerationJob{
		ID:            uuid.New().String(),
		Kind:          kind,
		Status:        types.JobStatusPending,
		Specification: specification,
		CreatedAt:     time.Now().UTC(),
	}

	query := `
		INSERT INTO generation_jobs (id, kind, status, specification, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		job.ID, job.Kind, job.Status, job.Specification, job.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// MarkRunning transitions a job to running and records the start time
func (r *JobRepository) MarkRunning(ctx context.Context, jobID string) error {
	query := `
		UPDATE generation_jobs
		SET status = $1, started_at = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, types.JobStatusRunning, time.Now().UTC(), jobID)
	if err != nil {
		return fmt.Errorf("failed to mark job running: %w", err)
	}
	return checkAffected(result)
}

// MarkCompleted transitions a job to completed with its artifact results
func (r *JobRepository) MarkCompleted(ctx context.Context, jobID string, artifactCount int, archivePath string) error {
	query := `
		UPDATE generation_jobs
		SET status = $1, artifact_count = $2, archive_path = $3, finished_at = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		types.JobStatusCompleted, artifactCount, archivePath, time.Now().UTC(), jobID)
	if err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}
	return checkAffected(result)
}

// MarkFailed transitions a job to failed and records the error message
func (r *JobRepository) MarkFailed(ctx context.Context, jobID, message string) error {
	query := `
		UPDATE generation_jobs
		SET status = $1, error = $2, finished_at = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		types.JobStatusFailed, message, time.Now().UTC(), jobID)
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}
	return checkAffected(result)
}

// GetByID retrieves a single job
func (r *JobRepository) GetByID(ctx context.Context, jobID string) (*types.GenerationJob, error) {
	query := `
		SELECT id, kind, status, specification,
		       COALESCE(artifact_count, 0), COALESCE(archive_path, ''), COALESCE(error, ''),
		       created_at, started_at, finished_at
		FROM generation_jobs
		WHERE id = $1`

	job := &types.GenerationJob{}
	var startedAt, finishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID, &job.Kind, &job.Status, &job.Specification,
		&job.ArtifactCount, &job.ArchivePath, &job.Error,
		&job.CreatedAt, &startedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if finishedAt.Valid {
		job.FinishedAt = &finishedAt.Time
	}
	return job, nil
}

// ListRecent returns the most recent jobs, newest first
func (r *JobRepository) ListRecent(ctx context.Context, limit int) ([]*types.GenerationJob, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, kind, status, specification,
		       COALESCE(artifact_count, 0), COALESCE(archive_path, ''), COALESCE(error, ''),
		       created_at, started_at, finished_at
		FROM generation_jobs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*types.GenerationJob{}
	for rows.Next() {
		job := &types.GenerationJob{}
		var startedAt, finishedAt sql.NullTime
		if err := rows.Scan(
			&job.ID, &job.Kind, &job.Status, &job.Specification,
			&job.ArtifactCount, &job.ArchivePath, &job.Error,
			&job.CreatedAt, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		if startedAt.Valid {
			job.StartedAt = &startedAt.Time
		}
		if finishedAt.Valid {
			job.FinishedAt = &finishedAt.Time
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job rows: %w", err)
	}
	return jobs, nil
}

// checkAffected converts a zero-row update into ErrJobNotFound
func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}
