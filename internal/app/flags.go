package app

import (
	"fmt"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// outputValue implements pflag.Value to provide a custom type name in help text
// and validation for output formats.
type outputValue string

func (o *outputValue) String() string {
	return string(*o)
}

func (o *outputValue) Set(v string) error {
	if v != OutputText && v != OutputJSON {
		return fmt.Errorf("must be '%s' or '%s'", OutputText, OutputJSON)
	}
	*o = outputValue(v)
	return nil
}

func (o *outputValue) Type() string {
	return "<format>"
}

// pathValue implements pflag.Value to provide a custom type name in help text.
type pathValue string

func (p *pathValue) String() string {
	return string(*p)
}

func (p *pathValue) Set(v string) error {
	*p = pathValue(v)
	return nil
}

func (p *pathValue) Type() string {
	return "<path>"
}
