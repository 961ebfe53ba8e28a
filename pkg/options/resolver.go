package options

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"spk/pipeline-cli/pkg/model"
)

// ComputedDefault derives an option value from the values resolved so far.
// It returns ok=false when the value cannot be derived, e.g. because an
// upstream option is unset.
type ComputedDefault func(resolved model.ResolvedConfig) (value string, ok bool)

// Resolve computes the effective value of every option. The precedence is
// fixed: explicit flags, then the persisted configuration, then computed
// defaults. The first two tiers are applied to all options before any
// computed default runs; computed defaults then run in declaration order
// and see every value resolved before them. An option without a computed
// default falls back to its declared DefaultValue.
//
// Options that end up without a value are left unset. Reporting them is
// the validator's job.
func Resolve(options []model.OptionDescriptor, explicit, persisted Source, computed map[string]ComputedDefault) model.ResolvedConfig {
	values := make(map[string]string, len(options))
	for _, o := range options {
		if v, ok := lookup(explicit, o.Name); ok {
			values[o.Name] = v
		} else if v, ok := lookup(persisted, o.Name); ok {
			values[o.Name] = v
		}
	}
	for _, o := range options {
		if _, ok := values[o.Name]; ok {
			continue
		}
		if fn, ok := computed[o.Name]; ok && fn != nil {
			if v, ok := fn(model.NewResolvedConfig(values)); ok {
				values[o.Name] = v
			}
			continue
		}
		if o.DefaultValue != nil {
			values[o.Name] = fmt.Sprint(o.DefaultValue)
		}
	}
	logger.WithField("func", "Resolve").Debugf("resolved %d of %d options", len(values), len(options))
	return model.NewResolvedConfig(values)
}

func lookup(source Source, name string) (string, bool) {
	if source == nil {
		return "", false
	}
	return source.Lookup(name)
}

// Constant is a computed default that always yields value.
func Constant(value string) ComputedDefault {
	return func(model.ResolvedConfig) (string, bool) {
		return value, true
	}
}

// Derived is a computed default built from one upstream option. It yields
// nothing while the upstream option is unset or when derive fails.
func Derived(upstream string, derive func(string) (string, error)) ComputedDefault {
	return func(resolved model.ResolvedConfig) (string, bool) {
		v, ok := resolved.Get(upstream)
		if !ok || v == "" {
			return "", false
		}
		derived, err := derive(v)
		if err != nil {
			logger.WithField("func", "Derived").WithError(err).Debugf("no default derived from %s", upstream)
			return "", false
		}
		return derived, true
	}
}
