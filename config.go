package jsonpatch

import "github.com/signadot/jsonpatch/xop"

// ValidateFunc validates one operation. The document is nil for purely
// structural validation; existingPathFragment is the longest prefix of
// the operation path that resolves in the document.
type ValidateFunc func(op *Operation, index int, document any, existingPathFragment string) error

// Config carries the dispatcher's behavioral options.
type Config struct {
	// Validate runs the validator inline during dispatch. Validator,
	// when set, replaces the built-in one.
	Validate  bool
	Validator ValidateFunc

	// Mutate applies operations to the caller's document in place.
	// When false, the document is deep-cloned once up front and the
	// caller's instance is never touched.
	Mutate bool

	// BanProtoMods rejects pointer components that would rewrite
	// object prototypes in a JavaScript host.
	BanProtoMods bool

	// Registry resolves extended operation ids.
	Registry *xop.Registry

	// Index is the sequence index reported in errors for a single
	// operation applied outside a sequence.
	Index int
}

type Opt func(*Config)

func newConfig(opts []Opt) *Config {
	cfg := &Config{
		Mutate:       true,
		BanProtoMods: true,
		Registry:     xop.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithValidation() Opt {
	return func(c *Config) { c.Validate = true }
}

func WithValidator(f ValidateFunc) Opt {
	return func(c *Config) {
		c.Validate = true
		c.Validator = f
	}
}

func WithoutMutation() Opt {
	return func(c *Config) { c.Mutate = false }
}

func AllowProtoMods() Opt {
	return func(c *Config) { c.BanProtoMods = false }
}

func WithRegistry(r *xop.Registry) Opt {
	return func(c *Config) { c.Registry = r }
}

func WithIndex(i int) Opt {
	return func(c *Config) { c.Index = i }
}

// inner derives the config used for the dispatcher's internal
// sub-operations (the remove/add pair behind move, for example): the
// working document is already a clone when needed and has already been
// validated.
func (c *Config) inner() *Config {
	res := *c
	res.Mutate = true
	res.Validate = false
	res.Validator = nil
	return &res
}
