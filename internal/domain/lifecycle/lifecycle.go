// Package lifecycle holds shared limits for component start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every fx start/stop hook (DB ping, server shutdown, client close).
const DefaultTimeout = 10 * time.Second
