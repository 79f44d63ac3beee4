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
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"specforge/platform/shared/types"
)

// statusTTL bounds how long cached job snapshots live. Terminal jobs
// stay readable for a while after completion; the database remains the
// source of truth.
const statusTTL = 30 * time.Minute

// JobCache caches job status snapshots in Redis so status polling does
// not hit PostgreSQL on every request.
type JobCache struct {
	client *redis.Client
}

// NewJobCache connects to Redis and verifies the connection
func NewJobCache(redisURL string) (*JobCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &JobCache{client: client}, nil
}

// NewJobCacheWithClient wraps an existing client (used in tests)
func NewJobCacheWithClient(client *redis.Client) *JobCache {
	return &JobCache{client: client}
}

func jobKey(jobID string) string {
	return fmt.Sprintf("specforge:job:%s", jobID)
}

// Put stores a job snapshot
func (c *JobCache) Put(ctx context.Context, job *types.GenerationJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job snapshot: %w", err)
	}
	if err := c.client.Set(ctx, jobKey(job.ID), payload, statusTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache job snapshot: %w", err)
	}
	return nil
}

// Get retrieves a cached job snapshot. A cache miss returns
// (nil, nil): callers fall back to the repository.
func (c *JobCache) Get(ctx context.Context, jobID string) (*types.GenerationJob, error) {
	payload, err := c.client.Get(ctx, jobKey(jobID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached job snapshot: %w", err)
	}

	job := &types.GenerationJob{}
	if err := json.Unmarshal(payload, job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job snapshot: %w", err)
	}
	return job, nil
}

// Invalidate removes a cached job snapshot
func (c *JobCache) Invalidate(ctx context.Context, jobID string) error {
	if err := c.client.Del(ctx, jobKey(jobID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate job snapshot: %w", err)
	}
	return nil
}

// Close releases the Redis connection
func (c *JobCache) Close() error {
	return c.client.Close()
}
