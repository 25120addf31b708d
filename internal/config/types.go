package config

import (
	"time"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Probe kinds, one per variant block of a CheckDefinition.
const (
	KindTCP     = "tcp"
	KindHTTP    = "http"
	KindCommand = "command"
	KindKube    = "kube"
)

// TestctlConfig is the top-level configuration structure for testctl.
type TestctlConfig struct {
	Cache     CacheSettings     `yaml:"cache"`
	Execution ExecutionSettings `yaml:"execution"`
	Checks    []CheckDefinition `yaml:"checks"`
}

// CacheSettings controls the result cache.
type CacheSettings struct {
	Path    string        `yaml:"path,omitempty"`    // Directory of the file store; empty selects a per-working-tree dir
	TTL     time.Duration `yaml:"ttl,omitempty"`     // Freshness window for passing results
	Backend string        `yaml:"backend,omitempty"` // "file" or "memory"
}

// ExecutionSettings controls how the run-set is executed.
type ExecutionSettings struct {
	Timeout  time.Duration `yaml:"timeout,omitempty"`  // Per-check invocation timeout
	Parallel int           `yaml:"parallel,omitempty"` // Worker pool size, 0 = 2 x GOMAXPROCS
}

// CheckDefinition describes one check. Exactly one of TCP, HTTP, Command or
// Kube must be set.
type CheckDefinition struct {
	ID          string `yaml:"id"`
	Category    string `yaml:"category"`
	Independent bool   `yaml:"independent,omitempty"`
	Description string `yaml:"description,omitempty"`

	TCP     *TCPProbe     `yaml:"tcp,omitempty"`
	HTTP    *HTTPProbe    `yaml:"http,omitempty"`
	Command *CommandProbe `yaml:"command,omitempty"`
	Kube    *KubeProbe    `yaml:"kube,omitempty"`
}

// TCPProbe passes when Address accepts a connection.
type TCPProbe struct {
	Address string `yaml:"address"`
}

// HTTPProbe passes when URL answers with ExpectStatus and a body containing Contains.
type HTTPProbe struct {
	URL          string `yaml:"url"`
	Method       string `yaml:"method,omitempty"`       // Defaults to GET
	ExpectStatus int    `yaml:"expectStatus,omitempty"` // Defaults to 200
	Contains     string `yaml:"contains,omitempty"`
}

// CommandProbe passes when Run exits 0.
type CommandProbe struct {
	Run []string          `yaml:"run"`
	Dir string            `yaml:"dir,omitempty"`
	Env map[string]string `yaml:"env,omitempty"`
}

// KubeProbe passes when every pod matching Selector in Namespace is ready.
type KubeProbe struct {
	Context   string `yaml:"context,omitempty"` // kubeconfig context; empty uses the current one
	Namespace string `yaml:"namespace,omitempty"`
	Selector  string `yaml:"selector"`
}

// Kinds returns the names of the variant blocks that are set.
func (d CheckDefinition) Kinds() []string {
	var kinds []string
	if d.TCP != nil {
		kinds = append(kinds, KindTCP)
	}
	if d.HTTP != nil {
		kinds = append(kinds, KindHTTP)
	}
	if d.Command != nil {
		kinds = append(kinds, KindCommand)
	}
	if d.Kube != nil {
		kinds = append(kinds, KindKube)
	}
	return kinds
}

// Kind returns the single variant of the check, or "" when zero or several
// blocks are set.
func (d CheckDefinition) Kind() string {
	kinds := d.Kinds()
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

func (d CheckDefinition) key() string {
	return d.Category + ":" + d.ID
}
