// Package api implements the HTTP transport for the folio server's
// RPC-style API.
//
// Every endpoint lives under /api and is named method-style
// ("documents.info", "collections.list"). Requests carry JSON bodies
// and responses arrive in a common envelope with ok, status, data and
// optional pagination fields. The transport decodes the envelope and
// hands the raw data payload to the services, which own entity
// decoding.
//
// # Authentication
//
// Requests authenticate with a bearer API token through an oauth2
// static token source. Tokens are created in the folio account
// settings and configured via `folio auth`.
//
// # Rate Limiting
//
// The client throttles proactively with a token bucket and tracks the
// server's X-RateLimit-Remaining and X-RateLimit-Reset headers,
// waiting for the reset once the remaining quota runs low. A 429
// response surfaces as [domain.ErrRateLimited]. Requests are never
// retried.
//
// # Error Handling
//
// Non-2xx responses become [APIError] values carrying the status code,
// server message and request URL. Authentication and lookup failures
// unwrap to the matching domain sentinels, so errors.Is works across
// the port boundary.
package api
