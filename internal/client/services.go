package client

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/kinvey/cli/pkg/kinvey"
)

// ServicesService manages Flex services and their environments.
type ServicesService struct {
	entityService
}

func newServicesService(base entityService) *ServicesService {
	return &ServicesService{entityService: base}
}

// GetAll lists all services visible to the session.
func (s *ServicesService) GetAll(ctx context.Context) ([]kinvey.Service, error) {
	var services []kinvey.Service

	err := s.getAllEntities(ctx, ServicesEndpoint(s.schemaVersion, ""), &services)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}

	return services, nil
}

// GetInternalServices returns the internal (Flex runtime) services sorted by
// name.
func (s *ServicesService) GetInternalServices(ctx context.Context) ([]kinvey.Service, error) {
	services, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var internal []kinvey.Service

	for _, svc := range services {
		if svc.Type == kinvey.ServiceTypeInternal {
			internal = append(internal, svc)
		}
	}

	sort.Slice(internal, func(i, j int) bool {
		return strings.ToLower(internal[i].Name) < strings.ToLower(internal[j].Name)
	})

	return internal, nil
}

// GetByIdOrName resolves a service by id, by exact name, or from the active
// service when the identifier is empty.
func (s *ServicesService) GetByIdOrName(ctx context.Context, identifier string) (*kinvey.Service, error) {
	s.logger.Debug("Using service", map[string]interface{}{"identifier": identifier})

	var service kinvey.Service

	spec := resolveSpec{
		itemType:       kinvey.ItemTypeService,
		listEndpoint:   ServicesEndpoint(s.schemaVersion, ""),
		singleEndpoint: func(id string) string { return ServicesEndpoint(s.schemaVersion, id) },
		looksLikeID:    IsUUID,
	}

	err := s.resolveByIdOrName(ctx, identifier, spec, &service)
	if err != nil {
		return nil, kinvey.TransformEntityError(err, kinvey.ItemTypeService, identifier)
	}

	return &service, nil
}

// Create creates a service. The type field is required.
func (s *ServicesService) Create(ctx context.Context, request *kinvey.ServiceCreateRequest) (*kinvey.Service, error) {
	if request.Type == "" {
		return nil, kinvey.NewError(kinvey.ErrorKindValidationError, "Service type is required.")
	}

	var service kinvey.Service

	err := s.createEntity(ctx, ServicesEndpoint(s.schemaVersion, ""), request, &service)
	if err != nil {
		return nil, fmt.Errorf("creating service: %w", err)
	}

	return &service, nil
}

// RemoveByIdOrName resolves the service, deletes it, and returns the removed
// id.
func (s *ServicesService) RemoveByIdOrName(ctx context.Context, identifier string) (string, error) {
	service, err := s.GetByIdOrName(ctx, identifier)
	if err != nil {
		return "", err
	}

	id, err := s.removeEntity(ctx, ServicesEndpoint(s.schemaVersion, service.ID), service.ID)
	if err != nil {
		return "", fmt.Errorf("deleting service: %w", err)
	}

	return id, nil
}

// GetEnvironments lists the environments of a service.
func (s *ServicesService) GetEnvironments(ctx context.Context, serviceID string) ([]kinvey.ServiceEnvironment, error) {
	var envs []kinvey.ServiceEnvironment

	err := s.getAllEntities(ctx, ServiceEnvsEndpoint(s.schemaVersion, serviceID, ""), &envs)
	if err != nil {
		return nil, fmt.Errorf("listing service environments: %w", err)
	}

	return envs, nil
}

// GetEnvironmentByIdOrName resolves a service environment within a service.
func (s *ServicesService) GetEnvironmentByIdOrName(ctx context.Context, identifier, serviceID string) (*kinvey.ServiceEnvironment, error) {
	var env kinvey.ServiceEnvironment

	spec := resolveSpec{
		itemType:     kinvey.ItemTypeServiceEnv,
		listEndpoint: ServiceEnvsEndpoint(s.schemaVersion, serviceID, ""),
		singleEndpoint: func(id string) string {
			return ServiceEnvsEndpoint(s.schemaVersion, serviceID, id)
		},
		looksLikeID: IsUUID,
	}

	err := s.resolveByIdOrName(ctx, identifier, spec, &env)
	if err != nil {
		return nil, kinvey.TransformEntityError(err, kinvey.ItemTypeServiceEnv, identifier)
	}

	return &env, nil
}

// GetStatus fetches the deployment status of a service environment.
func (s *ServicesService) GetStatus(ctx context.Context, serviceID, svcEnvID string) (*kinvey.ServiceStatus, error) {
	var status kinvey.ServiceStatus

	err := s.getAllEntities(ctx, ServiceStatusEndpoint(s.schemaVersion, serviceID, svcEnvID), &status)
	if err != nil {
		return nil, fmt.Errorf("getting service status: %w", err)
	}

	return &status, nil
}

// GetLogs fetches service logs. Query bounds are optional ISO-8601
// timestamps; page and number control paging.
func (s *ServicesService) GetLogs(ctx context.Context, serviceID, svcEnvID string, query url.Values) ([]kinvey.ServiceLogEntry, error) {
	resp, err := s.httpClient.Get(ctx, ServiceLogsEndpoint(s.schemaVersion, serviceID, svcEnvID), query)
	if err != nil {
		return nil, fmt.Errorf("getting service logs: %w", err)
	}

	var entries []kinvey.ServiceLogEntry

	err = unmarshalBody(resp.Body, &entries)
	if err != nil {
		return nil, fmt.Errorf("parsing service logs: %w", err)
	}

	return entries, nil
}
