package server

// Server is returned by [NewServer].
type Server interface {
	// RunServer serves until the process receives SIGTERM, SIGINT or
	// SIGQUIT, then shuts every transport down.
	RunServer()
	Shutdown()
}

// transport is one listener of the server. Listeners are bound before serve
// is called so that a taken port fails startup.
type transport interface {
	name() string
	addr() string
	serve()
	shutdown()
}
