package store

import "errors"

// DefaultOption configures a Defaulting wrapper, following the
// builder.BuilderOption functional-options idiom.
type DefaultOption func(d *Defaulting)

// WithDefault sets the fallback value returned for variable when its key is
// absent. The global default is 0.0 unless overridden here.
func WithDefault(variable string, value float64) DefaultOption {
	return func(d *Defaulting) { d.defaults[variable] = value }
}

// WithNoDefault marks variable as mandatory: a missing key for it always
// propagates ErrNoData instead of being defaulted.
func WithNoDefault(variable string) DefaultOption {
	return func(d *Defaulting) { d.noDefault[variable] = true }
}

// Defaulting wraps an Interface so that a missing key returns a configured
// per-variable default (globally 0.0) instead of ErrNoData — except for
// variables listed via WithNoDefault, for which the error still propagates.
type Defaulting struct {
	inner     *Interface
	defaults  map[string]float64
	noDefault map[string]bool
}

// NewDefaulting wraps inner with the given options.
func NewDefaulting(inner *Interface, opts ...DefaultOption) *Defaulting {
	d := &Defaulting{
		inner:     inner,
		defaults:  make(map[string]float64),
		noDefault: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Get returns variable's value at indices, defaulting on ErrNoData unless
// variable is mandatory (WithNoDefault).
func (d *Defaulting) Get(variable string, indices map[string]int) (float64, error) {
	v, err := d.inner.Get(variable, indices)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNoData) {
		return 0, err
	}
	if d.noDefault[variable] {
		return 0, err
	}
	if def, ok := d.defaults[variable]; ok {
		return def, nil
	}

	return 0.0, nil
}

// Set forwards to the wrapped Interface.
func (d *Defaulting) Set(variable string, value float64, indices map[string]int) error {
	return d.inner.Set(variable, value, indices)
}

// Interface exposes the wrapped Interface for callers that need raw access
// (e.g. Clone, persistence).
func (d *Defaulting) Interface() *Interface {
	return d.inner
}
