// internal/estimator/strategy.go
package estimator

import (
	"errors"
	"fmt"
	"strings"
)

type StrategyName string

const (
	Heuristic    StrategyName = "heuristic"
	Standardized StrategyName = "standardized"
	Regression   StrategyName = "regression"
)

var ErrUnknownStrategy = errors.New("unknown pricing strategy")

// ParseStrategyName accepts a strategy name in any letter case.
func ParseStrategyName(s string) (StrategyName, error) {
	switch name := StrategyName(strings.ToLower(strings.TrimSpace(s))); name {
	case Heuristic, Standardized, Regression:
		return name, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// StrategyInfo describes a strategy for listings. MinPrice and MaxPrice are zero
// when the strategy does not clamp.
type StrategyInfo struct {
	Name        StrategyName `json:"name"`
	Description string       `json:"description"`
	Clamped     bool         `json:"clamped"`
	MinPrice    int          `json:"minPrice,omitempty"`
	MaxPrice    int          `json:"maxPrice,omitempty"`
}

// Strategy is one pricing variant. Implementations are pure and safe for concurrent use.
type Strategy interface {
	Info() StrategyInfo
	Estimate(f PropertyFeatures) PricePrediction
	Classify(latitude, longitude float64) Location
}

// Registry resolves strategies by name.
type Registry struct {
	strategies map[StrategyName]Strategy
	order      []StrategyName
	fallback   StrategyName
}

// NewRegistry builds a registry whose empty-name lookups resolve to def.
func NewRegistry(def StrategyName, strategies ...Strategy) (*Registry, error) {
	r := &Registry{
		strategies: make(map[StrategyName]Strategy, len(strategies)),
		fallback:   def,
	}
	for _, s := range strategies {
		name := s.Info().Name
		if _, dup := r.strategies[name]; dup {
			return nil, fmt.Errorf("strategy %q registered twice", name)
		}
		r.strategies[name] = s
		r.order = append(r.order, name)
	}
	if _, ok := r.strategies[def]; !ok {
		return nil, fmt.Errorf("default strategy %q is not registered", def)
	}
	return r, nil
}

// Get returns the named strategy, or the default one when name is empty.
func (r *Registry) Get(name string) (Strategy, error) {
	if strings.TrimSpace(name) == "" {
		return r.strategies[r.fallback], nil
	}
	parsed, err := ParseStrategyName(name)
	if err != nil {
		return nil, err
	}
	s, ok := r.strategies[parsed]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not enabled", ErrUnknownStrategy, parsed)
	}
	return s, nil
}

func (r *Registry) Default() StrategyName {
	return r.fallback
}

// Infos lists registered strategies in registration order.
func (r *Registry) Infos() []StrategyInfo {
	out := make([]StrategyInfo, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.strategies[name].Info())
	}
	return out
}
