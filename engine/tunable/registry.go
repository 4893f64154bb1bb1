// Package tunable exposes named numeric parameters with clamped typed accessors for live tweaking.
package tunable

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/common"
)

var (
	// ErrUnknownParam is returned when a name has no registered parameter.
	ErrUnknownParam = errors.New("tunable: unknown parameter")

	// ErrInvalidParam is returned by Register for a parameter without accessors or with an empty range.
	ErrInvalidParam = errors.New("tunable: invalid parameter")
)

// Param describes one tunable value. Get and Set bind the parameter to the state it controls.
type Param struct {
	Name string
	Get  func() float32
	Set  func(v float32)
	Min  float32
	Max  float32
	Step float32
}

// Registry maps parameter names to their accessors.
type Registry interface {
	// Register adds a parameter, replacing any previous one with the same name.
	//
	// Parameters:
	//   - p: the parameter
	//
	// Returns:
	//   - error: wraps ErrInvalidParam if the name is empty, an accessor is nil or Min > Max
	Register(p Param) error

	// Get reads a parameter's current value.
	//
	// Parameters:
	//   - name: the parameter name
	//
	// Returns:
	//   - float32: the value
	//   - error: wraps ErrUnknownParam for an unregistered name
	Get(name string) (float32, error)

	// Set clamps v to [Min, Max] and writes it.
	//
	// Parameters:
	//   - name: the parameter name
	//   - v: the requested value
	//
	// Returns:
	//   - float32: the value actually written
	//   - error: wraps ErrUnknownParam for an unregistered name
	Set(name string, v float32) (float32, error)

	// Param returns the registered descriptor.
	//
	// Parameters:
	//   - name: the parameter name
	//
	// Returns:
	//   - Param: the descriptor
	//   - bool: false if not registered
	Param(name string) (Param, bool)

	// Names returns every registered name in sorted order.
	Names() []string

	// Snapshot reads every parameter.
	//
	// Returns:
	//   - map[string]float32: name to current value
	Snapshot() map[string]float32
}

type registry struct {
	mu     *sync.RWMutex
	params map[string]Param
}

var _ Registry = &registry{}

// NewRegistry creates an empty Registry.
func NewRegistry() Registry {
	return &registry{
		mu:     &sync.RWMutex{},
		params: make(map[string]Param),
	}
}

func (r *registry) Register(p Param) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidParam)
	case p.Get == nil || p.Set == nil:
		return fmt.Errorf("%w: %s has no accessors", ErrInvalidParam, p.Name)
	case p.Min > p.Max:
		return fmt.Errorf("%w: %s has min %g > max %g", ErrInvalidParam, p.Name, p.Min, p.Max)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params[p.Name] = p
	return nil
}

func (r *registry) lookup(name string) (Param, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.params[name]
	if !ok {
		return Param{}, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return p, nil
}

func (r *registry) Get(name string) (float32, error) {
	p, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	return p.Get(), nil
}

func (r *registry) Set(name string, v float32) (float32, error) {
	p, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	v = common.Clamp(v, p.Min, p.Max)
	p.Set(v)
	return v, nil
}

func (r *registry) Param(name string) (Param, bool) {
	p, err := r.lookup(name)
	return p, err == nil
}

func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.params))
	for n := range r.params {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *registry) Snapshot() map[string]float32 {
	r.mu.RLock()
	params := make([]Param, 0, len(r.params))
	for _, p := range r.params {
		params = append(params, p)
	}
	r.mu.RUnlock()

	out := make(map[string]float32, len(params))
	for _, p := range params {
		out[p.Name] = p.Get()
	}
	return out
}
