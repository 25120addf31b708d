package config

import (
	"time"
)

const (
	defaultTTL     = 5 * time.Minute
	defaultTimeout = 60 * time.Second
	defaultBackend = BackendFile
	backendBaseURL = "http://localhost:8000"
)

// GetDefaultConfig returns the built-in configuration: the checks of the NWU
// Protocol development stack.
func GetDefaultConfig() TestctlConfig {
	return TestctlConfig{
		Cache: CacheSettings{
			TTL:     defaultTTL,
			Backend: defaultBackend,
		},
		Execution: ExecutionSettings{
			Timeout: defaultTimeout,
		},
		Checks: defaultChecks(),
	}
}

func defaultChecks() []CheckDefinition {
	tcp := func(id, address, description string) CheckDefinition {
		return CheckDefinition{
			ID:          id,
			Category:    "infrastructure",
			Independent: true,
			Description: description,
			TCP:         &TCPProbe{Address: address},
		}
	}

	return []CheckDefinition{
		tcp("postgres", "localhost:5432", "PostgreSQL accepts connections"),
		tcp("mongodb", "localhost:27017", "MongoDB accepts connections"),
		tcp("redis", "localhost:6379", "Redis accepts connections"),
		tcp("rabbitmq", "localhost:5672", "RabbitMQ accepts AMQP connections"),
		tcp("ipfs", "localhost:5001", "IPFS API is listening"),
		{
			ID:          "backend",
			Category:    "health",
			Independent: true,
			Description: "Backend health endpoint reports healthy",
			HTTP:        &HTTPProbe{URL: backendBaseURL + "/health", Contains: "healthy"},
		},
		{
			ID:          "root",
			Category:    "health",
			Independent: true,
			Description: "Backend root reports operational",
			HTTP:        &HTTPProbe{URL: backendBaseURL + "/", Contains: "operational"},
		},
		{
			ID:          "info",
			Category:    "api",
			Independent: true,
			Description: "API info endpoint answers",
			HTTP:        &HTTPProbe{URL: backendBaseURL + "/api/v1/info", Contains: "NWU Protocol API"},
		},
		{
			ID:          "docs",
			Category:    "api",
			Independent: true,
			Description: "OpenAPI documentation is served",
			HTTP:        &HTTPProbe{URL: backendBaseURL + "/docs"},
		},
		{
			ID:          "suite",
			Category:    "integration",
			Description: "Backend integration test suite",
			Command:     &CommandProbe{Run: []string{"pytest", "tests/"}, Env: map[string]string{"CI": "1"}},
		},
	}
}
