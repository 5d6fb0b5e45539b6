package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kinvey/cli/internal/auth"
	kinveyhttp "github.com/kinvey/cli/internal/http"
	"github.com/kinvey/cli/pkg/kinvey"
)

// RolesService reads roles through the data plane. Data-plane calls
// authenticate with basic auth derived from the environment's master secret
// and go to the BAAS host with no schema-version segment.
type RolesService struct {
	entityService

	baasHost string
}

func newRolesService(base entityService, baasHost string) *RolesService {
	return &RolesService{entityService: base, baasHost: baasHost}
}

// GetAll lists the roles of an environment.
func (s *RolesService) GetAll(ctx context.Context, env *kinvey.Environment) ([]kinvey.Role, error) {
	var roles []kinvey.Role

	err := s.dataPlaneGet(ctx, env, RolesEndpoint(env.ID, ""), &roles)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	return roles, nil
}

// Get fetches one role by id.
func (s *RolesService) Get(ctx context.Context, env *kinvey.Environment, roleID string) (*kinvey.Role, error) {
	var role kinvey.Role

	err := s.dataPlaneGet(ctx, env, RolesEndpoint(env.ID, roleID), &role)
	if err != nil {
		return nil, fmt.Errorf("getting role: %w", err)
	}

	return &role, nil
}

func (s *RolesService) dataPlaneGet(ctx context.Context, env *kinvey.Environment, endpoint string, out interface{}) error {
	req := &kinveyhttp.Request{
		Method:    http.MethodGet,
		Path:      endpoint,
		BasicAuth: auth.BasicAuthToken(env.ID, env.MasterSecret),
		BaseURL:   s.baasHost,
	}

	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		return err
	}

	return unmarshalBody(resp.Body, out)
}
