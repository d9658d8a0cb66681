// Package httpapi exposes the credential engine over a JSON HTTP surface.
//
// The API wraps an [authgate.Engine] and serves the /auth/* routes plus
// health and Prometheus metrics endpoints. Handlers translate engine
// sentinel errors into status codes and {"error": "..."} payloads; they
// never leak storage or signing failures to the client.
package httpapi
