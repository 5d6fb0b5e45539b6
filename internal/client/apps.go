package client

import (
	"context"
	"fmt"

	"github.com/kinvey/cli/pkg/kinvey"
)

// AppsService manages Kinvey applications.
type AppsService struct {
	entityService
}

func newAppsService(base entityService) *AppsService {
	return &AppsService{entityService: base}
}

// GetAll lists all applications visible to the session.
func (s *AppsService) GetAll(ctx context.Context) ([]kinvey.App, error) {
	var apps []kinvey.App

	err := s.getAllEntities(ctx, AppsEndpoint(s.schemaVersion, ""), &apps)
	if err != nil {
		return nil, fmt.Errorf("listing apps: %w", err)
	}

	return apps, nil
}

// GetByIdOrName resolves an application by id, by exact name, or from the
// active app when the identifier is empty.
func (s *AppsService) GetByIdOrName(ctx context.Context, identifier string) (*kinvey.App, error) {
	s.logger.Debug("Using app", map[string]interface{}{"identifier": identifier})

	var app kinvey.App

	spec := resolveSpec{
		itemType:       kinvey.ItemTypeApp,
		listEndpoint:   AppsEndpoint(s.schemaVersion, ""),
		singleEndpoint: func(id string) string { return AppsEndpoint(s.schemaVersion, id) },
		looksLikeID:    IsUUID,
	}

	err := s.resolveByIdOrName(ctx, identifier, spec, &app)
	if err != nil {
		return nil, kinvey.TransformEntityError(err, kinvey.ItemTypeApp, identifier)
	}

	return &app, nil
}

// Create creates an application. The server generates the id and defaults.
func (s *AppsService) Create(ctx context.Context, request *kinvey.AppCreateRequest) (*kinvey.App, error) {
	var app kinvey.App

	err := s.createEntity(ctx, AppsEndpoint(s.schemaVersion, ""), request, &app)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	return &app, nil
}

// RemoveByIdOrName resolves the application, deletes it, and returns the
// removed id so callers can clear a matching active item.
func (s *AppsService) RemoveByIdOrName(ctx context.Context, identifier string) (string, error) {
	app, err := s.GetByIdOrName(ctx, identifier)
	if err != nil {
		return "", err
	}

	id, err := s.removeEntity(ctx, AppsEndpoint(s.schemaVersion, app.ID), app.ID)
	if err != nil {
		return "", fmt.Errorf("deleting app: %w", err)
	}

	return id, nil
}
