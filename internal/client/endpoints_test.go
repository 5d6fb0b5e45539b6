package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"apps list", AppsEndpoint(3, ""), "v3/apps"},
		{"apps single", AppsEndpoint(3, "abc"), "v3/apps/abc"},
		{"apps v2", AppsEndpoint(2, ""), "v2/apps"},
		{"envs single", EnvsEndpoint(3, "kid_abcd56789"), "v3/environments/kid_abcd56789"},
		{"envs by app", EnvsByAppEndpoint(3, "abc"), "v3/apps/abc/environments"},
		{"collections list", CollectionsEndpoint(3, "kid_abcd56789", ""), "v3/environments/kid_abcd56789/collections"},
		{"collections single", CollectionsEndpoint(3, "kid_abcd56789", "books"), "v3/environments/kid_abcd56789/collections/books"},
		{"orgs list", OrgsEndpoint(3, ""), "v3/organizations"},
		{"orgs single", OrgsEndpoint(3, "org-1"), "v3/organizations/org-1"},
		{"jobs single", JobsEndpoint(3, "job-1"), "v3/jobs/job-1"},
		{"services list", ServicesEndpoint(3, ""), "v3/services"},
		{"service envs", ServiceEnvsEndpoint(3, "svc-1", ""), "v3/services/svc-1/environments"},
		{"service env single", ServiceEnvsEndpoint(3, "svc-1", "env-1"), "v3/services/svc-1/environments/env-1"},
		{"service status", ServiceStatusEndpoint(3, "svc-1", "env-1"), "v3/services/svc-1/environments/env-1/status"},
		{"service logs", ServiceLogsEndpoint(3, "svc-1", "env-1"), "v3/services/svc-1/environments/env-1/logs"},
		{"sites list", SitesEndpoint(3, ""), "v3/sites"},
		{"site envs", SiteEnvsEndpoint(3, "site-1", ""), "v3/sites/site-1/environments"},
		{"site deploy", SiteDeployEndpoint(3, "site-1", "env-1"), "v3/sites/site-1/environments/env-1/files"},
		{"site publish", SitePublishEndpoint(3, "site-1"), "v3/sites/site-1/publish"},
		{"site unpublish", SiteUnpublishEndpoint(3, "site-1"), "v3/sites/site-1/unpublish"},
		{"site status", SiteStatusEndpoint(3, "site-1"), "v3/sites/site-1/status"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestRolesEndpointOmitsVersionSegment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "roles/kid_abcd56789", RolesEndpoint("kid_abcd56789", ""))
	assert.Equal(t, "roles/kid_abcd56789/role-1", RolesEndpoint("kid_abcd56789", "role-1"))
}
