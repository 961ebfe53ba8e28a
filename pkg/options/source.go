package options

import (
	"github.com/spf13/pflag"
	"spk/pipeline-cli/pkg/model"
)

// Source is one precedence tier of option values.
type Source interface {
	Lookup(name string) (value string, ok bool)
}

// MapSource is a Source backed by a map. Nil values count as unset.
type MapSource map[string]*string

func (m MapSource) Lookup(name string) (string, bool) {
	if v, ok := m[name]; ok && v != nil {
		return *v, true
	}
	return "", false
}

type flagSource struct {
	flagSet   *pflag.FlagSet
	longNames map[string]string
}

// FlagSource returns the command line tier for options. Only flags the
// user actually passed are reported; flag defaults belong to the computed
// tier and must not hide the persisted configuration.
func FlagSource(flagSet *pflag.FlagSet, options []model.OptionDescriptor) Source {
	longNames := make(map[string]string, len(options))
	for _, o := range options {
		longNames[o.Name] = o.LongName()
	}
	return flagSource{flagSet: flagSet, longNames: longNames}
}

func (f flagSource) Lookup(name string) (string, bool) {
	longName, ok := f.longNames[name]
	if !ok || !f.flagSet.Changed(longName) {
		return "", false
	}
	flag := f.flagSet.Lookup(longName)
	if flag == nil {
		return "", false
	}
	return flag.Value.String(), true
}
