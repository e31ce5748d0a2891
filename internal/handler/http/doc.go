// Package http serves the trip keeper REST API and the function endpoints
// with chi.
//
// Requests pass the trace id, access log, gzip and body hash middleware
// before reaching a handler; authenticated routes also carry the user id
// taken from the bearer token. Handlers decode, call the service layer and
// map its errors to statuses in errors_mapper.go.
package http
