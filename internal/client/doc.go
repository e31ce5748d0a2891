// Package client runs the trip keeper terminal client: session restore,
// the login flow, the main loop and the background sync workers that
// outlive sign-outs.
package client
