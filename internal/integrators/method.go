package integrators

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

// ErrUnknownMethod is returned by ParseMethod for names it does not know.
var ErrUnknownMethod = errors.New("integrators: unknown method")

// Method names a stepping algorithm.
type Method string

const (
	MethodEuler Method = "euler"
	MethodRK2   Method = "rk2"
	MethodRK4   Method = "rk4"
)

// ParseMethod resolves a user-supplied name, case-insensitively.
func ParseMethod(name string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(name)))
	switch m {
	case MethodEuler, MethodRK2, MethodRK4:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownMethod, name, Methods())
}

// Methods lists the registered method names.
func Methods() []string {
	names := []string{string(MethodEuler), string(MethodRK2), string(MethodRK4)}
	sort.Strings(names)
	return names
}

// New builds the solver for m around fn. An unparsed, unknown Method is a
// programming error and panics; user input goes through ParseMethod first.
func New[P any](m Method, fn dynamo.DerivFunc[P]) dynamo.Solver[P] {
	switch m {
	case MethodEuler:
		return NewEuler(fn)
	case MethodRK2:
		return NewRK2(fn)
	case MethodRK4, "":
		return NewRK4(fn)
	}
	panic(fmt.Errorf("%w: %q", ErrUnknownMethod, string(m)))
}
