// Package config provides configuration loading, merging, and validation
// facilities for the server, the client and the functions binary.
//
// Configuration is assembled from multiple sources; for each field the first
// source with a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file
//  4. AWS SSM parameter holding a YAML document
//  5. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for server/runtime
// configuration and [GetClientConfig] for client-specific configuration.
package config
