// Package lifecycle holds shared constants for component startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of long-lived
// components (HTTP server, database pool).
const DefaultTimeout = 10 * time.Second
