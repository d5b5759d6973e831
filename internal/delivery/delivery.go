// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a long-running entry point (HTTP server, worker, etc.) started
// by the application composition root.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
