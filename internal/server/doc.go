// Package server runs the trip keeper backend: the REST API and the gRPC
// change feed, each on its own listener, until the process is signalled.
package server
