package kinvey

import (
	"time"
)

// Config holds everything the client needs to talk to a Kinvey instance.
type Config struct {
	// Host is the management API base URL, e.g. https://manage.kinvey.com/.
	Host string
	// BaasHost is the data-plane base URL used for environment-scoped
	// calls such as role lookups.
	BaasHost string
	// SchemaVersion selects the v<N> path segment. Defaults to 3.
	SchemaVersion int
	// Timeout is the per-request socket timeout.
	Timeout time.Duration
	// SessionPath is the file the session record is persisted to.
	// Defaults to ~/.kinvey-cli.
	SessionPath string
	// UserAgent overrides the default kinvey-cli/<version> agent string.
	UserAgent string

	Prompter CredentialPrompter
	Logger   Logger
}

// CredentialPrompter collects credentials interactively. The CLI supplies a
// terminal implementation; tests supply stubs.
type CredentialPrompter interface {
	// EmailPassword returns a complete credential pair, prompting only for
	// the parts not already supplied.
	EmailPassword(email, password string) (string, string, error)
	// MFAToken collects a 6-digit two-factor token.
	MFAToken() (string, error)
}

// ItemType identifies an entity family for resolution and active-item
// bookkeeping.
type ItemType string

const (
	ItemTypeApp        ItemType = "app"
	ItemTypeEnv        ItemType = "environment"
	ItemTypeOrg        ItemType = "organization"
	ItemTypeService    ItemType = "service"
	ItemTypeServiceEnv ItemType = "service environment"
	ItemTypeSite       ItemType = "site"
	ItemTypeSiteEnv    ItemType = "site environment"
	ItemTypeJob        ItemType = "job"
	ItemTypeCollection ItemType = "collection"
	ItemTypeRole       ItemType = "role"
)

// ActiveItemTypes lists the families that can be set as the active item.
var ActiveItemTypes = []ItemType{ItemTypeApp, ItemTypeEnv, ItemTypeOrg, ItemTypeService, ItemTypeSite}

// ActiveItem records the entity a command falls back to when no identifier
// is supplied. An active environment also remembers its parent app.
type ActiveItem struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	AppID string `json:"appId,omitempty"`
}

// SessionRecord is the persisted session file shape.
type SessionRecord struct {
	Host        string                   `json:"host"`
	Tokens      map[string]string        `json:"tokens"`
	ActiveItems map[ItemType]*ActiveItem `json:"activeItems,omitempty"`
}

// LoginRequest is the body posted to the session endpoint.
type LoginRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	TwoFactorToken string `json:"twoFactorToken,omitempty"`
}

// LoginResponse is returned by a successful POST to the session endpoint.
type LoginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// App is a Kinvey application.
type App struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	OrganizationID string        `json:"organizationId,omitempty"`
	Environments   []Environment `json:"environments,omitempty"`
	Plan           string        `json:"plan,omitempty"`
}

// AppCreateRequest creates a new application.
type AppCreateRequest struct {
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// Environment is a backend environment under an app. Its id is a 13-character
// kid_-prefixed token.
type Environment struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	App          string `json:"app,omitempty"`
	AppSecret    string `json:"appSecret,omitempty"`
	MasterSecret string `json:"masterSecret,omitempty"`
}

// EnvironmentCreateRequest creates a new environment under an app.
type EnvironmentCreateRequest struct {
	Name string `json:"name"`
}

// Organization is a Kinvey organization.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Service is a Flex service.
type Service struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// ServiceTypeInternal marks services hosted on the Kinvey FSR runtime.
const ServiceTypeInternal = "internal"

// ServiceCreateRequest creates a new service. Type is required.
type ServiceCreateRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// ServiceEnvironment is a deployable environment of a service.
type ServiceEnvironment struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Runtime string `json:"runtime,omitempty"`
}

// ServiceStatus describes the deployment state of a service environment.
type ServiceStatus struct {
	Status         string `json:"status"`
	Version        string `json:"version,omitempty"`
	DeployedAt     string `json:"deployedAt,omitempty"`
	DeployerEmail  string `json:"deployerEmail,omitempty"`
	RequestedAt    string `json:"requestedAt,omitempty"`
	DeploymentName string `json:"deploymentName,omitempty"`
}

// ServiceLogEntry is one line of service logs.
type ServiceLogEntry struct {
	Threshold string `json:"threshold,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Container string `json:"containerId,omitempty"`
}

// Site is a static website.
type Site struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SiteCreateRequest creates a new site.
type SiteCreateRequest struct {
	Name string `json:"name"`
}

// SiteEnvironment is an environment of a site.
type SiteEnvironment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SitePublishRequest publishes a site on a domain. The domain name must
// match the site name.
type SitePublishRequest struct {
	DomainName string `json:"domainName"`
}

// SiteStatus describes the publish state of a site.
type SiteStatus struct {
	Status    string `json:"status"`
	PublicURL string `json:"publicUrl,omitempty"`
}

// Job is an asynchronous server-side job.
type Job struct {
	ID       string `json:"jobId"`
	Status   string `json:"status,omitempty"`
	Progress string `json:"progress,omitempty"`
}

// Collection is a data collection within an environment.
type Collection struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Role is a data-plane role within an environment.
type Role struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
