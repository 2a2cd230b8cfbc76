// Package lifecycle holds shared constants for application start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of every delivery
// and infrastructure client.
const DefaultTimeout = 30 * time.Second
