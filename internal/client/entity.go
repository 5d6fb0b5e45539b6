package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kinvey/cli/internal/auth"
	kinveyhttp "github.com/kinvey/cli/internal/http"
	"github.com/kinvey/cli/pkg/kinvey"
)

// entityService is the base capability set every per-family service builds
// on: list, resolve by id or name, create, remove.
type entityService struct {
	httpClient    *kinveyhttp.Client
	session       *auth.Store
	schemaVersion int
	logger        kinvey.Logger
}

func (s *entityService) getAllEntities(ctx context.Context, endpoint string, out interface{}) error {
	resp, err := s.httpClient.Get(ctx, endpoint, nil)
	if err != nil {
		return err
	}

	return unmarshalBody(resp.Body, out)
}

func unmarshalBody(body []byte, out interface{}) error {
	err := json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("parsing response body: %w", err)
	}

	return nil
}

func (s *entityService) createEntity(ctx context.Context, endpoint string, body, out interface{}) error {
	resp, err := s.httpClient.Post(ctx, endpoint, body)
	if err != nil {
		return err
	}

	err = json.Unmarshal(resp.Body, out)
	if err != nil {
		return fmt.Errorf("parsing create response: %w", err)
	}

	return nil
}

// removeEntity deletes the single-resource endpoint for an already resolved
// id and returns that id so callers can clear a matching active item.
func (s *entityService) removeEntity(ctx context.Context, singleEndpoint, id string) (string, error) {
	_, err := s.httpClient.Delete(ctx, singleEndpoint)
	if err != nil {
		return "", err
	}

	return id, nil
}
