package client

import "fmt"

// Endpoint builders. Pure functions mapping (schema version, entity ids) to
// relative URL paths. An empty id yields the collection endpoint; a non-empty
// id appends a single-resource segment. Nested resources concatenate the
// parent's single-resource path with the child family segment.

func idPart(id string) string {
	if id == "" {
		return ""
	}

	return "/" + id
}

func versionSegment(schemaVersion int) string {
	return fmt.Sprintf("v%d", schemaVersion)
}

// AppsEndpoint builds v<N>/apps[/<id>].
func AppsEndpoint(schemaVersion int, appID string) string {
	return versionSegment(schemaVersion) + "/apps" + idPart(appID)
}

// EnvsEndpoint builds v<N>/environments[/<id>].
func EnvsEndpoint(schemaVersion int, envID string) string {
	return versionSegment(schemaVersion) + "/environments" + idPart(envID)
}

// EnvsByAppEndpoint builds v<N>/apps/<appId>/environments.
func EnvsByAppEndpoint(schemaVersion int, appID string) string {
	return AppsEndpoint(schemaVersion, appID) + "/environments"
}

// CollectionsEndpoint builds v<N>/environments/<envId>/collections[/<name>].
func CollectionsEndpoint(schemaVersion int, envID, collName string) string {
	return EnvsEndpoint(schemaVersion, envID) + "/collections" + idPart(collName)
}

// OrgsEndpoint builds v<N>/organizations[/<id>].
func OrgsEndpoint(schemaVersion int, orgID string) string {
	return versionSegment(schemaVersion) + "/organizations" + idPart(orgID)
}

// JobsEndpoint builds v<N>/jobs[/<id>].
func JobsEndpoint(schemaVersion int, jobID string) string {
	return versionSegment(schemaVersion) + "/jobs" + idPart(jobID)
}

// ServicesEndpoint builds v<N>/services[/<id>].
func ServicesEndpoint(schemaVersion int, serviceID string) string {
	return versionSegment(schemaVersion) + "/services" + idPart(serviceID)
}

// ServiceEnvsEndpoint builds v<N>/services/<id>/environments[/<svcEnvId>].
func ServiceEnvsEndpoint(schemaVersion int, serviceID, svcEnvID string) string {
	return ServicesEndpoint(schemaVersion, serviceID) + "/environments" + idPart(svcEnvID)
}

// ServiceStatusEndpoint builds v<N>/services/<id>/environments/<svcEnvId>/status.
func ServiceStatusEndpoint(schemaVersion int, serviceID, svcEnvID string) string {
	return ServiceEnvsEndpoint(schemaVersion, serviceID, svcEnvID) + "/status"
}

// ServiceLogsEndpoint builds v<N>/services/<id>/environments/<svcEnvId>/logs.
func ServiceLogsEndpoint(schemaVersion int, serviceID, svcEnvID string) string {
	return ServiceEnvsEndpoint(schemaVersion, serviceID, svcEnvID) + "/logs"
}

// SitesEndpoint builds v<N>/sites[/<id>].
func SitesEndpoint(schemaVersion int, siteID string) string {
	return versionSegment(schemaVersion) + "/sites" + idPart(siteID)
}

// SiteEnvsEndpoint builds v<N>/sites/<id>/environments[/<siteEnvId>].
func SiteEnvsEndpoint(schemaVersion int, siteID, siteEnvID string) string {
	return SitesEndpoint(schemaVersion, siteID) + "/environments" + idPart(siteEnvID)
}

// SiteDeployEndpoint builds v<N>/sites/<id>/environments/<siteEnvId>/files.
func SiteDeployEndpoint(schemaVersion int, siteID, siteEnvID string) string {
	return SiteEnvsEndpoint(schemaVersion, siteID, siteEnvID) + "/files"
}

// SitePublishEndpoint builds v<N>/sites/<id>/publish.
func SitePublishEndpoint(schemaVersion int, siteID string) string {
	return SitesEndpoint(schemaVersion, siteID) + "/publish"
}

// SiteUnpublishEndpoint builds v<N>/sites/<id>/unpublish.
func SiteUnpublishEndpoint(schemaVersion int, siteID string) string {
	return SitesEndpoint(schemaVersion, siteID) + "/unpublish"
}

// SiteStatusEndpoint builds v<N>/sites/<id>/status.
func SiteStatusEndpoint(schemaVersion int, siteID string) string {
	return SitesEndpoint(schemaVersion, siteID) + "/status"
}

// RolesEndpoint builds the data-plane path roles/<envId>[/<roleId>]. The data
// plane carries no schema-version segment.
func RolesEndpoint(envID, roleID string) string {
	return "roles" + idPart(envID) + idPart(roleID)
}
