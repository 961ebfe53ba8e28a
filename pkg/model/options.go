package model

import "strings"

// OptionDescriptor declares a single flag accepted by a command.
type OptionDescriptor struct {
	// Name is the key the resolved value is stored under, e.g. "personalAccessToken".
	Name      string
	Flag      string
	Shorthand string
	Required  bool
	// DefaultValue is nil, a string, a bool or an int.
	DefaultValue interface{}
	Description  string
}

// LongName returns the flag without its leading dashes.
func (o OptionDescriptor) LongName() string {
	return strings.TrimLeft(o.Flag, "-")
}

type CommandDescriptor struct {
	Command     string
	Alias       string
	Description string
	Options     []OptionDescriptor
}

// ValidationResult lists the flags of required options that resolved to no value.
type ValidationResult []string

func (v ValidationResult) Valid() bool {
	return len(v) == 0
}

// ResolvedConfig holds the effective value of every option of a command.
// An option that resolved to nothing has no entry.
type ResolvedConfig struct {
	values map[string]string
}

func NewResolvedConfig(values map[string]string) ResolvedConfig {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return ResolvedConfig{values: copied}
}

func (r ResolvedConfig) Get(name string) (value string, ok bool) {
	value, ok = r.values[name]
	return value, ok
}

// Value returns the resolved value or "" if the option is unset.
func (r ResolvedConfig) Value(name string) string {
	return r.values[name]
}

func (r ResolvedConfig) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

func (r ResolvedConfig) Len() int {
	return len(r.values)
}

// Without returns a copy with the given options unset.
func (r ResolvedConfig) Without(names ...string) ResolvedConfig {
	ret := NewResolvedConfig(r.values)
	for _, n := range names {
		delete(ret.values, n)
	}
	return ret
}

type RequiredValuesValidator interface {
	Validate(options []OptionDescriptor, resolved ResolvedConfig) ValidationResult
}
