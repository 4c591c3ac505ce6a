// Package api implements the authenticated HTTP transport for a tenant.
//
// [Connection] owns the OAuth2 client-credentials token, throttles every call
// through a shared rate limiter, and proxies GET, POST and PATCH requests.
// It knows nothing about specific entity types like Asset or Rendition.
//
// [Tenant] is the entity-aware facade on top of a Connection: archives,
// assets, and search.
package api
