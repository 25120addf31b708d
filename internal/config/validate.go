package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate reports every problem in config at once.
func Validate(config TestctlConfig) error {
	var err *multierror.Error

	if config.Cache.TTL <= 0 {
		err = multierror.Append(err, fmt.Errorf("cache.ttl must be positive, got %s", config.Cache.TTL))
	}
	switch config.Cache.Backend {
	case BackendFile, BackendMemory:
	default:
		err = multierror.Append(err, fmt.Errorf("cache.backend must be %q or %q, got %q",
			BackendFile, BackendMemory, config.Cache.Backend))
	}
	if config.Execution.Timeout <= 0 {
		err = multierror.Append(err, fmt.Errorf("execution.timeout must be positive, got %s", config.Execution.Timeout))
	}
	if config.Execution.Parallel < 0 {
		err = multierror.Append(err, fmt.Errorf("execution.parallel must not be negative, got %d", config.Execution.Parallel))
	}

	seen := make(map[string]bool, len(config.Checks))
	for i, def := range config.Checks {
		name := fmt.Sprintf("checks[%d]", i)
		if def.ID != "" && def.Category != "" {
			name = fmt.Sprintf("check %s", def.key())
			if seen[def.key()] {
				err = multierror.Append(err, fmt.Errorf("%s is defined more than once", name))
			}
			seen[def.key()] = true
		}
		if def.ID == "" {
			err = multierror.Append(err, fmt.Errorf("%s: id is required", name))
		}
		if def.Category == "" {
			err = multierror.Append(err, fmt.Errorf("%s: category is required", name))
		}
		if verr := validateProbe(def); verr != nil {
			err = multierror.Append(err, fmt.Errorf("%s: %w", name, verr))
		}
	}

	return err.ErrorOrNil()
}

// validateUnique reports checks that share a (category, id) pair within one
// configuration file. Across layers a repeated pair replaces the earlier one.
func validateUnique(checks []CheckDefinition) error {
	var err *multierror.Error
	seen := make(map[string]bool, len(checks))
	for _, def := range checks {
		if def.ID == "" || def.Category == "" {
			continue
		}
		if seen[def.key()] {
			err = multierror.Append(err, fmt.Errorf("check %s is defined more than once", def.key()))
		}
		seen[def.key()] = true
	}
	return err.ErrorOrNil()
}

func validateProbe(def CheckDefinition) error {
	kinds := def.Kinds()
	switch len(kinds) {
	case 0:
		return fmt.Errorf("one of tcp, http, command or kube is required")
	case 1:
	default:
		return fmt.Errorf("exactly one probe is allowed, got %s", strings.Join(kinds, ", "))
	}

	switch kinds[0] {
	case KindTCP:
		if def.TCP.Address == "" {
			return fmt.Errorf("tcp.address is required")
		}
	case KindHTTP:
		if def.HTTP.URL == "" {
			return fmt.Errorf("http.url is required")
		}
		if def.HTTP.ExpectStatus != 0 && (def.HTTP.ExpectStatus < 100 || def.HTTP.ExpectStatus > 599) {
			return fmt.Errorf("http.expectStatus %d is not a valid status code", def.HTTP.ExpectStatus)
		}
	case KindCommand:
		if len(def.Command.Run) == 0 || def.Command.Run[0] == "" {
			return fmt.Errorf("command.run is required")
		}
	case KindKube:
		if def.Kube.Selector == "" {
			return fmt.Errorf("kube.selector is required")
		}
	}
	return nil
}
