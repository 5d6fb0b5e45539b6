package client

import (
	"context"
	"fmt"

	"github.com/kinvey/cli/pkg/kinvey"
)

// OrganizationsService manages organizations.
type OrganizationsService struct {
	entityService
}

func newOrganizationsService(base entityService) *OrganizationsService {
	return &OrganizationsService{entityService: base}
}

// GetAll lists all organizations visible to the session.
func (s *OrganizationsService) GetAll(ctx context.Context) ([]kinvey.Organization, error) {
	var orgs []kinvey.Organization

	err := s.getAllEntities(ctx, OrgsEndpoint(s.schemaVersion, ""), &orgs)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	return orgs, nil
}

// GetByIdOrName resolves an organization by id, by exact name, or from the
// active organization when the identifier is empty.
func (s *OrganizationsService) GetByIdOrName(ctx context.Context, identifier string) (*kinvey.Organization, error) {
	s.logger.Debug("Using organization", map[string]interface{}{"identifier": identifier})

	var org kinvey.Organization

	spec := resolveSpec{
		itemType:       kinvey.ItemTypeOrg,
		listEndpoint:   OrgsEndpoint(s.schemaVersion, ""),
		singleEndpoint: func(id string) string { return OrgsEndpoint(s.schemaVersion, id) },
		looksLikeID:    IsUUID,
	}

	err := s.resolveByIdOrName(ctx, identifier, spec, &org)
	if err != nil {
		return nil, kinvey.TransformEntityError(err, kinvey.ItemTypeOrg, identifier)
	}

	return &org, nil
}
