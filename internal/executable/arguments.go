package executable

import (
	"fmt"
	"strings"
)

// ArgumentKind selects how an argument is rendered on the command line.
type ArgumentKind int

// Argument kinds.
const (
	KindExecutable      ArgumentKind = iota // the program path, rendered as-is
	KindSwitch                              // --name, when enabled
	KindShortSwitch                         // -name, when enabled
	KindLongValuedFlag                      // --name=value
	KindShortValuedFlag                     // -name value
	KindPositional                          // value
)

type renderFunc func(name, value string) []string

var renderers = map[ArgumentKind]renderFunc{
	KindExecutable:      func(_, value string) []string { return []string{value} },
	KindSwitch:          func(name, _ string) []string { return []string{"--" + name} },
	KindShortSwitch:     func(name, _ string) []string { return []string{"-" + name} },
	KindLongValuedFlag:  func(name, value string) []string { return []string{"--" + name + "=" + value} },
	KindShortValuedFlag: func(name, value string) []string { return []string{"-" + name, value} },
	KindPositional:      func(_, value string) []string { return []string{value} },
}

// Argument describes one command-line argument of a tool.
type Argument struct {
	Name string
	Kind ArgumentKind
}

// ArgumentList is an ordered set of argument descriptors plus their current
// values. Unset arguments are left out when rendering.
type ArgumentList struct {
	args   []Argument
	values map[string]string
}

// NewArgumentList creates a list rendering args in the given order.
func NewArgumentList(args ...Argument) *ArgumentList {
	return &ArgumentList{
		args:   args,
		values: make(map[string]string),
	}
}

func (l *ArgumentList) lookup(name string) (Argument, bool) {
	for _, a := range l.args {
		if a.Name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// Set assigns a value. An empty value unsets the argument.
func (l *ArgumentList) Set(name, value string) error {
	if _, ok := l.lookup(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownArgument, name)
	}
	if value == "" {
		delete(l.values, name)
		return nil
	}
	l.values[name] = value
	return nil
}

// SetSwitch enables or disables a switch argument.
func (l *ArgumentList) SetSwitch(name string, on bool) error {
	if on {
		return l.Set(name, "true")
	}
	return l.Set(name, "")
}

// Get returns the current value of an argument ("" when unset).
func (l *ArgumentList) Get(name string) string {
	return l.values[name]
}

// ToArgumentList renders all set arguments in declaration order.
func (l *ArgumentList) ToArgumentList() []string {
	tokens := make([]string, 0, len(l.args))
	for _, a := range l.args {
		value, ok := l.values[a.Name]
		if !ok {
			continue
		}
		render, ok := renderers[a.Kind]
		if !ok {
			continue
		}
		tokens = append(tokens, render(a.Name, value)...)
	}
	return tokens
}

// Invocation builds an Invocation from the rendered list. The executable
// argument becomes the program path; everything else becomes Args.
func (l *ArgumentList) Invocation() (Invocation, error) {
	var inv Invocation
	for _, a := range l.args {
		value, ok := l.values[a.Name]
		if !ok {
			continue
		}
		if a.Kind == KindExecutable {
			if inv.Path == "" {
				inv.Path = value
			}
			continue
		}
		inv.Args = append(inv.Args, renderers[a.Kind](a.Name, value)...)
	}
	if inv.Path == "" {
		return Invocation{}, ErrNoExecutable
	}
	return inv, nil
}

// String renders the list as a single command line.
func (l *ArgumentList) String() string {
	return strings.Join(l.ToArgumentList(), " ")
}
