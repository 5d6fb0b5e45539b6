package client

import (
	"context"

	"github.com/kinvey/cli/pkg/kinvey"
)

// Active-item tracking. A "use" command resolves an entity, then persists it
// as the default for commands that omit an identifier.

// UseApp resolves an app and makes it the active app. An active environment
// selected under a different app is cleared by the session store.
func (c *Client) UseApp(ctx context.Context, identifier string) (*kinvey.App, error) {
	app, err := c.apps.GetByIdOrName(ctx, identifier)
	if err != nil {
		return nil, err
	}

	err = c.session.SetActiveItem(kinvey.ItemTypeApp, &kinvey.ActiveItem{ID: app.ID, Name: app.Name})
	if err != nil {
		return nil, err
	}

	return app, nil
}

// UseEnvironment resolves an environment within an app and makes it the
// active environment, remembering the parent app.
func (c *Client) UseEnvironment(ctx context.Context, identifier, appID string) (*kinvey.Environment, error) {
	env, err := c.environments.GetByIdOrName(ctx, identifier, appID)
	if err != nil {
		return nil, err
	}

	err = c.session.SetActiveItem(kinvey.ItemTypeEnv, &kinvey.ActiveItem{ID: env.ID, Name: env.Name, AppID: appID})
	if err != nil {
		return nil, err
	}

	return env, nil
}

// UseOrganization resolves an organization and makes it active.
func (c *Client) UseOrganization(ctx context.Context, identifier string) (*kinvey.Organization, error) {
	org, err := c.organizations.GetByIdOrName(ctx, identifier)
	if err != nil {
		return nil, err
	}

	err = c.session.SetActiveItem(kinvey.ItemTypeOrg, &kinvey.ActiveItem{ID: org.ID, Name: org.Name})
	if err != nil {
		return nil, err
	}

	return org, nil
}

// UseService resolves a service and makes it active.
func (c *Client) UseService(ctx context.Context, identifier string) (*kinvey.Service, error) {
	service, err := c.services.GetByIdOrName(ctx, identifier)
	if err != nil {
		return nil, err
	}

	err = c.session.SetActiveItem(kinvey.ItemTypeService, &kinvey.ActiveItem{ID: service.ID, Name: service.Name})
	if err != nil {
		return nil, err
	}

	return service, nil
}

// UseSite resolves a site and makes it active.
func (c *Client) UseSite(ctx context.Context, identifier string) (*kinvey.Site, error) {
	site, err := c.sites.GetByIdOrName(ctx, identifier)
	if err != nil {
		return nil, err
	}

	err = c.session.SetActiveItem(kinvey.ItemTypeSite, &kinvey.ActiveItem{ID: site.ID, Name: site.Name})
	if err != nil {
		return nil, err
	}

	return site, nil
}

// ClearActiveItem removes the persisted active item of the given type, and
// is also invoked by commands after deleting the entity it pointed at.
func (c *Client) ClearActiveItem(itemType kinvey.ItemType) error {
	return c.session.RemoveActiveItem(itemType)
}
