package instance

import (
	"os"

	"github.com/C00lPIXER/aperture/pkg/env"
)

// GetID returns the worker instance identifier. It falls back to the host
// name so replicas log distinct ids without extra configuration.
func GetID() string {
	if id := env.Get("APERTURE_INSTANCE_ID", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "worker-0"
}
