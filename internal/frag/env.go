package frag

import (
	"fmt"
	"strings"
)

// Environment holds the variable bindings of a single fragment run. It is not
// safe for concurrent use; each run gets its own.
type Environment struct {
	Variables map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{Variables: make(map[string]Value)}
}

// NewEnvironmentFrom seeds an environment from decoded data. Top-level maps
// are bound as objects, so row data can be reached with $row->field.
func NewEnvironmentFrom(vars map[string]any) (*Environment, error) {
	env := NewEnvironment()
	for name, x := range vars {
		v, err := FromAny(x)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		if aa, ok := v.(AssociativeArray); ok {
			v = Object{Elements: aa.Elements}
		}
		env.Set(name, v)
	}
	return env, nil
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.Variables[name]
	return v, ok
}

func (e *Environment) Set(name string, v Value) {
	e.Variables[name] = v
}

func (e *Environment) Remove(name string) {
	delete(e.Variables, name)
}

func (e *Environment) Names() []string {
	return sortedKeys(e.Variables)
}

// Snapshot returns a deep copy of the bindings as plain Go data.
func (e *Environment) Snapshot() map[string]any {
	out := make(map[string]any, len(e.Variables))
	for k, v := range e.Variables {
		out[k] = ToAny(v)
	}
	return out
}

// Clone returns an independent copy of the environment.
func (e *Environment) Clone() *Environment {
	c := NewEnvironment()
	for k, v := range e.Variables {
		c.Variables[k] = Clone(v)
	}
	return c
}

func (e *Environment) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, n := range e.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n + ": " + Debug(e.Variables[n]))
	}
	b.WriteString("}")
	return b.String()
}
