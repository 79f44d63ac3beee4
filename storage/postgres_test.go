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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specforge/platform/shared/types"
)

func TestJobRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO generation_jobs`).
		WithArgs(sqlmock.AnyArg(), types.JobKindBackend, types.JobStatusPending, "build an API", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewJobRepository(db)
	job, err := repo.Create(context.Background(), types.JobKindBackend, "build an API")
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, types.JobStatusPending, job.Status)
	assert.Equal(t, types.JobKindBackend, job.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryMarkRunning(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE generation_jobs`).
		WithArgs(types.JobStatusRunning, sqlmock.AnyArg(), "job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewJobRepository(db)
	require.NoError(t, repo.MarkRunning(context.Background(), "job-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryMarkRunning_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE generation_jobs`).
		WithArgs(types.JobStatusRunning, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewJobRepository(db)
	err = repo.MarkRunning(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobRepositoryMarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE generation_jobs`).
		WithArgs(types.JobStatusCompleted, 7, "/archives/backend.zip", sqlmock.AnyArg(), "job-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewJobRepository(db)
	require.NoError(t, repo.MarkCompleted(context.Background(), "job-2", 7, "/archives/backend.zip"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	started := created.Add(time.Second)

	rows := sqlmock.NewRows([]string{
		"id", "kind", "status", "specification",
		"artifact_count", "archive_path", "error",
		"created_at", "started_at", "finished_at",
	}).AddRow("job-3", "backend", "running", "spec text", 0, "", "", created, started, nil)

	mock.ExpectQuery(`SELECT .+ FROM generation_jobs`).
		WithArgs("job-3").
		WillReturnRows(rows)

	repo := NewJobRepository(db)
	job, err := repo.GetByID(context.Background(), "job-3")
	require.NoError(t, err)

	assert.Equal(t, "job-3", job.ID)
	assert.Equal(t, types.JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)
	assert.Equal(t, started, *job.StartedAt)
	assert.Nil(t, job.FinishedAt)
}

func TestJobRepositoryGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM generation_jobs`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewJobRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobRepositoryListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "kind", "status", "specification",
		"artifact_count", "archive_path", "error",
		"created_at", "started_at", "finished_at",
	}).
		AddRow("job-b", "frontend", "completed", "spec", 3, "/archives/fe.zip", "", created.Add(time.Hour), nil, nil).
		AddRow("job-a", "backend", "failed", "spec", 0, "", "synthesis failed", created, nil, nil)

	mock.ExpectQuery(`SELECT .+ FROM generation_jobs ORDER BY created_at DESC`).
		WithArgs(10).
		WillReturnRows(rows)

	repo := NewJobRepository(db)
	jobs, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-b", jobs[0].ID)
	assert.Equal(t, "synthesis failed", jobs[1].Error)
}
