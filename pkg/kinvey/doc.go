// Package kinvey provides the public types for the Kinvey management API
// client: configuration, domain entities, the session record persisted
// between invocations, and the closed error taxonomy shared by the
// transport, session, and entity-resolution layers.
package kinvey
