package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// SessionFilePerm is the permission for the persisted session file.
	SessionFilePerm = 0600
)

// Network defaults.
const (
	// DefaultTimeout is the per-request socket timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultSchemaVersion selects the v<N> management API contract.
	DefaultSchemaVersion = 3
)

// Environment variables consulted for non-interactive authentication and
// instance selection.
const (
	EnvEmail    = "KINVEY_CLI_EMAIL"
	EnvPassword = "KINVEY_CLI_PASSWORD"
	EnvInstance = "KINVEY_CLI_INSTANCE"
	EnvBaas     = "KINVEY_CLI_BAAS"
)

// Well-known endpoints and defaults.
const (
	// SessionEndpoint is the unversioned login/logout endpoint.
	SessionEndpoint = "session"

	// DefaultInstance is used when no instance is configured.
	DefaultInstance = "kvy-us1"

	// DefaultHost is the management API for the default instance.
	DefaultHost = "https://manage.kinvey.com/"
)

// Header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderDeviceInfo    = "X-Kinvey-Device-Information"
)

// CLIVersion is stamped into the device-information header.
const CLIVersion = "1.0.0"
