// Package lifecycle holds shared timing constants for coordinated startup
// and shutdown across the service's infrastructure components.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown operations such as
// database pings and HTTP server drains.
const DefaultTimeout = 10 * time.Second
