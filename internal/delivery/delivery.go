// Package delivery defines the inbound transport abstraction the
// application runs behind.
package delivery

import "context"

// Delivery is a transport server that accepts requests until the context
// is cancelled or the process shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}
