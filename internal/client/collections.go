package client

import (
	"context"
	"fmt"

	"github.com/kinvey/cli/pkg/kinvey"
)

// CollectionsService manages the data collections of an environment.
type CollectionsService struct {
	entityService
}

func newCollectionsService(base entityService) *CollectionsService {
	return &CollectionsService{entityService: base}
}

// GetAll lists the collections of an environment.
func (s *CollectionsService) GetAll(ctx context.Context, envID string) ([]kinvey.Collection, error) {
	var collections []kinvey.Collection

	err := s.getAllEntities(ctx, CollectionsEndpoint(s.schemaVersion, envID, ""), &collections)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	return collections, nil
}

// Create creates a collection in an environment.
func (s *CollectionsService) Create(ctx context.Context, envID, name string) (*kinvey.Collection, error) {
	var collection kinvey.Collection

	err := s.createEntity(ctx, CollectionsEndpoint(s.schemaVersion, envID, ""), kinvey.Collection{Name: name}, &collection)
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	return &collection, nil
}

// Remove deletes a collection by name.
func (s *CollectionsService) Remove(ctx context.Context, envID, name string) error {
	_, err := s.removeEntity(ctx, CollectionsEndpoint(s.schemaVersion, envID, name), name)
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}

	return nil
}
