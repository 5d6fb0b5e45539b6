package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kinvey/cli/internal/auth"
	"github.com/kinvey/cli/internal/constants"
	kinveyhttp "github.com/kinvey/cli/internal/http"
	"github.com/kinvey/cli/pkg/kinvey"
)

// Static errors for err113 compliance.
var (
	ErrHostRequired = errors.New("management API host is required")
)

// Client is the top-level Kinvey management client. It owns the session
// store, the request executor, and one service per entity family. State is
// instance-scoped; tests construct a fresh client per case.
type Client struct {
	config     *kinvey.Config
	httpClient *kinveyhttp.Client
	session    *auth.Store

	apps          *AppsService
	environments  *EnvironmentsService
	organizations *OrganizationsService
	services      *ServicesService
	sites         *SitesService
	jobs          *JobsService
	collections   *CollectionsService
	roles         *RolesService
}

// New creates a client from config, applying defaults for schema version,
// timeout, and session path.
func New(config *kinvey.Config) (*Client, error) {
	if config.Host == "" {
		return nil, ErrHostRequired
	}

	if config.SchemaVersion == 0 {
		config.SchemaVersion = constants.DefaultSchemaVersion
	}

	if config.Timeout == 0 {
		config.Timeout = constants.DefaultTimeout
	}

	if config.Logger == nil {
		config.Logger = kinvey.NoopLogger{}
	}

	if config.SessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}

		config.SessionPath = filepath.Join(home, ".kinvey-cli")
	}

	session := auth.NewStore(config.Host, config.SessionPath, config.Prompter, config.Logger)

	httpOpts := []kinveyhttp.Option{
		kinveyhttp.WithTimeout(config.Timeout),
		kinveyhttp.WithLogger(config.Logger),
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, kinveyhttp.WithUserAgent(config.UserAgent))
	}

	httpClient := kinveyhttp.NewClient(config.Host, session, httpOpts...)
	session.AttachClient(httpClient)

	client := &Client{
		config:     config,
		httpClient: httpClient,
		session:    session,
	}

	client.initializeServices()

	return client, nil
}

func (c *Client) initializeServices() {
	base := entityService{
		httpClient:    c.httpClient,
		session:       c.session,
		schemaVersion: c.config.SchemaVersion,
		logger:        c.config.Logger,
	}

	c.apps = newAppsService(base)
	c.environments = newEnvironmentsService(base)
	c.organizations = newOrganizationsService(base)
	c.services = newServicesService(base)
	c.sites = newSitesService(base)
	c.jobs = newJobsService(base)
	c.collections = newCollectionsService(base)
	c.roles = newRolesService(base, c.config.BaasHost)
}

// Session returns the session store.
func (c *Client) Session() *auth.Store {
	return c.session
}

// Apps returns the applications service.
func (c *Client) Apps() *AppsService {
	return c.apps
}

// Environments returns the environments service.
func (c *Client) Environments() *EnvironmentsService {
	return c.environments
}

// Organizations returns the organizations service.
func (c *Client) Organizations() *OrganizationsService {
	return c.organizations
}

// Services returns the Flex services service.
func (c *Client) Services() *ServicesService {
	return c.services
}

// Sites returns the sites service.
func (c *Client) Sites() *SitesService {
	return c.sites
}

// Jobs returns the jobs service.
func (c *Client) Jobs() *JobsService {
	return c.jobs
}

// Collections returns the collections service.
func (c *Client) Collections() *CollectionsService {
	return c.collections
}

// Roles returns the data-plane roles service.
func (c *Client) Roles() *RolesService {
	return c.roles
}

// FormatHost normalizes a host value. Full http(s) URLs gain a trailing
// slash; anything else is treated as an instance name and expanded to the
// managed URL for that instance.
func FormatHost(host string) string {
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		if !strings.HasSuffix(host, "/") {
			host += "/"
		}

		return host
	}

	return fmt.Sprintf("https://%s-manage.kinvey.com/", host)
}

// BaasHostFor returns the data-plane URL paired with an instance name.
func BaasHostFor(instance string) string {
	return fmt.Sprintf("https://%s-baas.kinvey.com", instance)
}
