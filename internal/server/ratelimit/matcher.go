package ratelimit

import (
	"strings"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path              string // Endpoint path pattern (supports prefix matching)
	Method            string // HTTP method (GET, POST, etc.)
	RequestsPerSecond float64
	Burst             int
}

// Unlimited reports whether the endpoint is exempt from limiting.
func (c *EndpointConfig) Unlimited() bool {
	return c.RequestsPerSecond <= 0 || c.Burst <= 0
}

// DefaultEndpointConfigs returns the endpoint-specific overrides for the API.
func DefaultEndpointConfigs(rps float64, burst int) []EndpointConfig {
	return []EndpointConfig{
		// Full recommendations embed one query per pathway.
		{Path: "/api/v1/recommendations", Method: "POST", RequestsPerSecond: rps, Burst: max(burst/2, 1)},
		// Operational endpoints are unlimited.
		{Path: "/metrics", Method: "GET"},
	}
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/api/v1/" matches "/api/v1/courses/match").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Special case: health check endpoint is unlimited
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
