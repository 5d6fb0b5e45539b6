package client

import (
	"context"
	"fmt"

	"github.com/kinvey/cli/pkg/kinvey"
)

// JobsService fetches asynchronous server-side jobs.
type JobsService struct {
	entityService
}

func newJobsService(base entityService) *JobsService {
	return &JobsService{entityService: base}
}

// GetByID fetches a job. Jobs have no active item, so the id is required.
func (s *JobsService) GetByID(ctx context.Context, jobID string) (*kinvey.Job, error) {
	if jobID == "" {
		return nil, kinvey.NewItemNotSpecifiedError(kinvey.ItemTypeJob)
	}

	resp, err := s.httpClient.Get(ctx, JobsEndpoint(s.schemaVersion, jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}

	var job kinvey.Job

	err = unmarshalBody(resp.Body, &job)
	if err != nil {
		return nil, err
	}

	return &job, nil
}
