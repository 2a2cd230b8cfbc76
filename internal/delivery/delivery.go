// Package delivery defines the contract every transport (HTTP, workers) fulfills.
package delivery

import "context"

// Delivery is a long-running transport started by the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
