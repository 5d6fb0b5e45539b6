package client

import (
	"context"
	"fmt"

	"github.com/kinvey/cli/pkg/kinvey"
)

// EnvironmentsService manages backend environments. Environments list under
// their parent app, but a single environment fetches through the global
// endpoint because its kid_ id is unique across apps.
type EnvironmentsService struct {
	entityService
}

func newEnvironmentsService(base entityService) *EnvironmentsService {
	return &EnvironmentsService{entityService: base}
}

// GetAll lists the environments of an app.
func (s *EnvironmentsService) GetAll(ctx context.Context, appID string) ([]kinvey.Environment, error) {
	var envs []kinvey.Environment

	err := s.getAllEntities(ctx, EnvsByAppEndpoint(s.schemaVersion, appID), &envs)
	if err != nil {
		return nil, fmt.Errorf("listing environments: %w", err)
	}

	return envs, nil
}

// GetByID fetches one environment by its kid_ id.
func (s *EnvironmentsService) GetByID(ctx context.Context, envID string) (*kinvey.Environment, error) {
	var env kinvey.Environment

	spec := s.spec(EnvsByAppEndpoint(s.schemaVersion, ""))

	err := s.fetchByID(ctx, envID, spec, &env)
	if err != nil {
		return nil, kinvey.TransformEntityError(err, kinvey.ItemTypeEnv, envID)
	}

	return &env, nil
}

// GetByIdOrName resolves an environment by kid_ id, by exact name within the
// app, or from the active environment when the identifier is empty. Names
// are only unique within an app, so name resolution requires appID.
func (s *EnvironmentsService) GetByIdOrName(ctx context.Context, identifier, appID string) (*kinvey.Environment, error) {
	s.logger.Debug("Using environment", map[string]interface{}{"identifier": identifier})

	var env kinvey.Environment

	spec := s.spec(EnvsByAppEndpoint(s.schemaVersion, appID))

	err := s.resolveByIdOrName(ctx, identifier, spec, &env)
	if err != nil {
		return nil, kinvey.TransformEntityError(err, kinvey.ItemTypeEnv, identifier)
	}

	return &env, nil
}

// Create creates an environment under an app.
func (s *EnvironmentsService) Create(ctx context.Context, appID string, request *kinvey.EnvironmentCreateRequest) (*kinvey.Environment, error) {
	var env kinvey.Environment

	err := s.createEntity(ctx, EnvsByAppEndpoint(s.schemaVersion, appID), request, &env)
	if err != nil {
		return nil, fmt.Errorf("creating environment: %w", err)
	}

	return &env, nil
}

// RemoveByIdOrName resolves the environment, deletes it, and returns the
// removed id.
func (s *EnvironmentsService) RemoveByIdOrName(ctx context.Context, identifier, appID string) (string, error) {
	env, err := s.GetByIdOrName(ctx, identifier, appID)
	if err != nil {
		return "", err
	}

	id, err := s.removeEntity(ctx, EnvsEndpoint(s.schemaVersion, env.ID), env.ID)
	if err != nil {
		return "", fmt.Errorf("deleting environment: %w", err)
	}

	return id, nil
}

func (s *EnvironmentsService) spec(listEndpoint string) resolveSpec {
	return resolveSpec{
		itemType:       kinvey.ItemTypeEnv,
		listEndpoint:   listEndpoint,
		singleEndpoint: func(id string) string { return EnvsEndpoint(s.schemaVersion, id) },
		looksLikeID:    IsEnvID,
	}
}
