package phase

import (
	"fmt"
	"sort"
)

type Registry struct {
	locators map[string]func() Locator
	policies map[string]func() Policy
}

func NewRegistry() *Registry {
	r := &Registry{
		locators: make(map[string]func() Locator),
		policies: make(map[string]func() Policy),
	}

	r.locators["linear"] = func() Locator { return LinearLocator{} }
	r.locators["bisect"] = func() Locator { return BisectLocator{} }

	r.policies["simple"] = func() Policy { return SimplePolicy{} }
	r.policies["windowed"] = func() Policy { return WindowedPolicy{} }

	return r
}

func (r *Registry) GetLocator(name string) (Locator, error) {
	fn, ok := r.locators[name]
	if !ok {
		return nil, fmt.Errorf("unknown locator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetPolicy(name string) (Policy, error) {
	fn, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListLocators() []string { return sortedKeys(r.locators) }

func (r *Registry) ListPolicies() []string { return sortedKeys(r.policies) }

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PolicyName reports the registry name of a policy value.
func PolicyName(p Policy) string {
	switch p.(type) {
	case WindowedPolicy, *WindowedPolicy:
		return "windowed"
	}
	return "simple"
}

// LocatorName reports the registry name of a locator value.
func LocatorName(l Locator) string {
	switch l.(type) {
	case BisectLocator, *BisectLocator:
		return "bisect"
	}
	return "linear"
}
