package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	for _, a := range e.allowed {
		if s == a {
			e.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return "string" }

const (
	formatEnv  = "env"
	formatYAML = "yaml"
	formatJSON = "json"

	colorNever  = "never"
	colorAlways = "always"
	colorAuto   = "auto"
)

type flags struct {
	format *enumValue
	color  *enumValue
	debug  bool
}

func (f *flags) register(fs *pflag.FlagSet) {
	f.format = newEnumValue(formatEnv, formatEnv, formatYAML, formatJSON)
	f.color = newEnumValue(colorNever, colorNever, colorAlways, colorAuto)

	fs.VarP(f.format, "format", "f", "output format: env, yaml or json")
	fs.Var(f.color, "color", "color section comments: never, always or auto")
	fs.BoolVar(&f.debug, "debug", false, "log parser details to stderr")
}
