package probe

import (
	"fmt"

	"testctl/internal/check"
	"testctl/internal/config"
)

// NewInvoker returns the invoker for the single probe block of def.
func NewInvoker(def config.CheckDefinition) (check.Invoker, error) {
	switch def.Kind() {
	case config.KindTCP:
		return &TCP{Address: def.TCP.Address}, nil
	case config.KindHTTP:
		return NewHTTP(def.HTTP.URL, def.HTTP.Method, def.HTTP.ExpectStatus, def.HTTP.Contains), nil
	case config.KindCommand:
		return &Command{Argv: def.Command.Run, Dir: def.Command.Dir, Env: def.Command.Env}, nil
	case config.KindKube:
		return &Kube{Context: def.Kube.Context, Namespace: def.Kube.Namespace, Selector: def.Kube.Selector}, nil
	default:
		return nil, fmt.Errorf("check %s:%s must define exactly one of tcp, http, command or kube", def.Category, def.ID)
	}
}

// BuildRegistry turns configured checks into a registry, keeping their order.
func BuildRegistry(defs []config.CheckDefinition) (*check.Registry, error) {
	checks := make([]check.Definition, 0, len(defs))
	for _, def := range defs {
		invoker, err := NewInvoker(def)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check.Definition{
			ID:          def.ID,
			Category:    def.Category,
			Independent: def.Independent,
			Description: def.Description,
			Kind:        def.Kind(),
			Invoker:     invoker,
		})
	}
	return check.NewRegistry(checks...)
}
