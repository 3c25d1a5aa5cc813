package models

// APIServer is the HTTP surface of the service.
type APIServer interface {
	// Start starts the server and blocks until it stops.
	Start()

	// Shutdown gracefully shuts the server down.
	Shutdown() error
}
