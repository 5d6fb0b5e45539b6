package client

import (
	"context"
	"fmt"

	"github.com/kinvey/cli/pkg/kinvey"
)

// SitesService manages static websites and their environments.
type SitesService struct {
	entityService
}

func newSitesService(base entityService) *SitesService {
	return &SitesService{entityService: base}
}

// GetAll lists all sites visible to the session.
func (s *SitesService) GetAll(ctx context.Context) ([]kinvey.Site, error) {
	var sites []kinvey.Site

	err := s.getAllEntities(ctx, SitesEndpoint(s.schemaVersion, ""), &sites)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}

	return sites, nil
}

// GetByIdOrName resolves a site by id, by exact name, or from the active
// site when the identifier is empty.
func (s *SitesService) GetByIdOrName(ctx context.Context, identifier string) (*kinvey.Site, error) {
	s.logger.Debug("Using site", map[string]interface{}{"identifier": identifier})

	var site kinvey.Site

	spec := resolveSpec{
		itemType:       kinvey.ItemTypeSite,
		listEndpoint:   SitesEndpoint(s.schemaVersion, ""),
		singleEndpoint: func(id string) string { return SitesEndpoint(s.schemaVersion, id) },
		looksLikeID:    IsUUID,
	}

	err := s.resolveByIdOrName(ctx, identifier, spec, &site)
	if err != nil {
		return nil, kinvey.TransformEntityError(err, kinvey.ItemTypeSite, identifier)
	}

	return &site, nil
}

// Create creates a site.
func (s *SitesService) Create(ctx context.Context, request *kinvey.SiteCreateRequest) (*kinvey.Site, error) {
	var site kinvey.Site

	err := s.createEntity(ctx, SitesEndpoint(s.schemaVersion, ""), request, &site)
	if err != nil {
		return nil, fmt.Errorf("creating site: %w", err)
	}

	return &site, nil
}

// RemoveByIdOrName resolves the site, deletes it, and returns the removed id.
func (s *SitesService) RemoveByIdOrName(ctx context.Context, identifier string) (string, error) {
	site, err := s.GetByIdOrName(ctx, identifier)
	if err != nil {
		return "", err
	}

	id, err := s.removeEntity(ctx, SitesEndpoint(s.schemaVersion, site.ID), site.ID)
	if err != nil {
		return "", fmt.Errorf("deleting site: %w", err)
	}

	return id, nil
}

// GetEnvironments lists the environments of a site.
func (s *SitesService) GetEnvironments(ctx context.Context, siteID string) ([]kinvey.SiteEnvironment, error) {
	var envs []kinvey.SiteEnvironment

	err := s.getAllEntities(ctx, SiteEnvsEndpoint(s.schemaVersion, siteID, ""), &envs)
	if err != nil {
		return nil, fmt.Errorf("listing site environments: %w", err)
	}

	return envs, nil
}

// GetEnvironmentByIdOrName resolves a site environment within a site.
func (s *SitesService) GetEnvironmentByIdOrName(ctx context.Context, identifier, siteID string) (*kinvey.SiteEnvironment, error) {
	var env kinvey.SiteEnvironment

	spec := resolveSpec{
		itemType:     kinvey.ItemTypeSiteEnv,
		listEndpoint: SiteEnvsEndpoint(s.schemaVersion, siteID, ""),
		singleEndpoint: func(id string) string {
			return SiteEnvsEndpoint(s.schemaVersion, siteID, id)
		},
		looksLikeID: IsUUID,
	}

	err := s.resolveByIdOrName(ctx, identifier, spec, &env)
	if err != nil {
		return nil, kinvey.TransformEntityError(err, kinvey.ItemTypeSiteEnv, identifier)
	}

	return &env, nil
}

// Publish makes a site publicly available. The domain name must match the
// site's name.
func (s *SitesService) Publish(ctx context.Context, site *kinvey.Site, domainName string) error {
	if domainName != site.Name {
		msg := fmt.Sprintf("Domain name '%s' must match the site name '%s'.", domainName, site.Name)

		return kinvey.NewError(kinvey.ErrorKindValidationError, msg)
	}

	_, err := s.httpClient.Post(ctx, SitePublishEndpoint(s.schemaVersion, site.ID), kinvey.SitePublishRequest{DomainName: domainName})
	if err != nil {
		return fmt.Errorf("publishing site: %w", err)
	}

	return nil
}

// Unpublish takes a published site offline.
func (s *SitesService) Unpublish(ctx context.Context, siteID string) error {
	_, err := s.httpClient.Post(ctx, SiteUnpublishEndpoint(s.schemaVersion, siteID), nil)
	if err != nil {
		return fmt.Errorf("unpublishing site: %w", err)
	}

	return nil
}

// GetStatus fetches the publish status of a site.
func (s *SitesService) GetStatus(ctx context.Context, siteID string) (*kinvey.SiteStatus, error) {
	resp, err := s.httpClient.Get(ctx, SiteStatusEndpoint(s.schemaVersion, siteID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting site status: %w", err)
	}

	var status kinvey.SiteStatus

	err = unmarshalBody(resp.Body, &status)
	if err != nil {
		return nil, err
	}

	return &status, nil
}
