package options

import (
	"fmt"

	"github.com/spf13/pflag"
	"spk/pipeline-cli/pkg/model"
)

// NewFlagSet creates a flag set with one flag per option of descriptor.
// Panics on an invalid descriptor, which is a programming error.
func NewFlagSet(descriptor model.CommandDescriptor) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(descriptor.Command, pflag.ContinueOnError)
	if err := BindFlags(descriptor, flagSet); err != nil {
		panic(fmt.Sprintf("options.NewFlagSet(%q): %v", descriptor.Command, err))
	}
	return flagSet
}

// BindFlags registers a pflag entry for every option. The flag type follows
// the type of DefaultValue: bool and int defaults produce bool and int
// flags, everything else is a string flag.
func BindFlags(descriptor model.CommandDescriptor, flagSet *pflag.FlagSet) error {
	for _, o := range descriptor.Options {
		name := o.LongName()
		if name == "" {
			return fmt.Errorf("option %q has no flag", o.Name)
		}
		if flagSet.Lookup(name) != nil {
			return fmt.Errorf("flag --%s declared twice", name)
		}
		switch def := o.DefaultValue.(type) {
		case nil:
			flagSet.StringP(name, o.Shorthand, "", o.Description)
		case string:
			flagSet.StringP(name, o.Shorthand, def, o.Description)
		case bool:
			flagSet.BoolP(name, o.Shorthand, def, o.Description)
		case int:
			flagSet.IntP(name, o.Shorthand, def, o.Description)
		default:
			return fmt.Errorf("unsupported default %T for flag --%s", o.DefaultValue, name)
		}
	}
	return nil
}
