package config

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsAreValid(t *testing.T) {
	assert.NoError(t, Validate(GetDefaultConfig()))
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	config := GetDefaultConfig()
	config.Cache.TTL = 0
	config.Execution.Timeout = -1
	config.Execution.Parallel = -2
	config.Checks = []CheckDefinition{
		{ID: "postgres", Category: "infrastructure", TCP: &TCPProbe{Address: "localhost:5432"}},
		{ID: "postgres", Category: "infrastructure", TCP: &TCPProbe{Address: "localhost:5433"}},
		{Category: "api", HTTP: &HTTPProbe{URL: "http://localhost"}},
	}

	err := Validate(config)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
	assert.Contains(t, err.Error(), "cache.ttl must be positive")
	assert.Contains(t, err.Error(), "execution.timeout must be positive")
	assert.Contains(t, err.Error(), "execution.parallel must not be negative")
	assert.Contains(t, err.Error(), "check infrastructure:postgres is defined more than once")
	assert.Contains(t, err.Error(), "checks[2]: id is required")
}

func TestValidate_Probes(t *testing.T) {
	tests := []struct {
		name    string
		def     CheckDefinition
		wantErr string
	}{
		{
			name:    "no probe",
			def:     CheckDefinition{ID: "x", Category: "c"},
			wantErr: "one of tcp, http, command or kube is required",
		},
		{
			name: "two probes",
			def: CheckDefinition{ID: "x", Category: "c",
				TCP:  &TCPProbe{Address: "localhost:1"},
				HTTP: &HTTPProbe{URL: "http://localhost"}},
			wantErr: "exactly one probe is allowed, got tcp, http",
		},
		{
			name:    "tcp without address",
			def:     CheckDefinition{ID: "x", Category: "c", TCP: &TCPProbe{}},
			wantErr: "tcp.address is required",
		},
		{
			name:    "http without url",
			def:     CheckDefinition{ID: "x", Category: "c", HTTP: &HTTPProbe{}},
			wantErr: "http.url is required",
		},
		{
			name:    "http with bogus status",
			def:     CheckDefinition{ID: "x", Category: "c", HTTP: &HTTPProbe{URL: "http://localhost", ExpectStatus: 42}},
			wantErr: "http.expectStatus 42",
		},
		{
			name:    "command without argv",
			def:     CheckDefinition{ID: "x", Category: "c", Command: &CommandProbe{}},
			wantErr: "command.run is required",
		},
		{
			name:    "kube without selector",
			def:     CheckDefinition{ID: "x", Category: "c", Kube: &KubeProbe{Namespace: "nwu"}},
			wantErr: "kube.selector is required",
		},
		{
			name: "valid kube",
			def:  CheckDefinition{ID: "x", Category: "c", Kube: &KubeProbe{Selector: "app=backend"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := GetDefaultConfig()
			config.Checks = []CheckDefinition{tt.def}

			err := Validate(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckDefinition_Kind(t *testing.T) {
	assert.Equal(t, KindTCP, CheckDefinition{TCP: &TCPProbe{}}.Kind())
	assert.Equal(t, KindKube, CheckDefinition{Kube: &KubeProbe{}}.Kind())
	assert.Equal(t, "", CheckDefinition{}.Kind())
	assert.Equal(t, "", CheckDefinition{TCP: &TCPProbe{}, Command: &CommandProbe{}}.Kind())
}
