// Package config provides declarative option tables for configurable unit
// operations. A Schema declares the options a unit accepts, with a default,
// an allowed domain, and a description per option. A Config holds validated
// values and becomes read-only once validated, for the lifetime of the unit
// it configures. Validation fails closed: unknown option names or
// out-of-domain values are rejected before any assembly happens.
package config

import "fmt"

// A Domain restricts the values an option may take.
type Domain interface {
	Contains(v any) bool
	Describe() string
}

type inDomain struct {
	allowed []any
}

func (d inDomain) Contains(v any) bool {
	for _, a := range d.allowed {
		if a == v {
			return true
		}
	}

	return false
}

func (d inDomain) Describe() string {
	return fmt.Sprintf("one of %v", d.allowed)
}

// In returns a domain that accepts exactly the listed values.
func In(allowed ...any) Domain {
	return inDomain{allowed: allowed}
}

// Bool returns a domain that accepts true and false.
func Bool() Domain {
	return In(true, false)
}

type predicateDomain struct {
	desc string
	fn   func(any) bool
}

func (d predicateDomain) Contains(v any) bool { return d.fn(v) }
func (d predicateDomain) Describe() string    { return d.desc }

// Satisfies returns a domain that accepts values the predicate accepts.
func Satisfies(desc string, fn func(any) bool) Domain {
	return predicateDomain{desc: desc, fn: fn}
}

type anyDomain struct{}

func (anyDomain) Contains(any) bool { return true }
func (anyDomain) Describe() string  { return "any value" }

// Any returns a domain that accepts every value.
func Any() Domain {
	return anyDomain{}
}

// An Option is one declared configuration entry.
type Option struct {
	Name        string
	Default     any
	Domain      Domain
	Description string
}

// A Schema is an ordered table of option declarations, possibly with nested
// sub-schemas for sub-unit configurations.
type Schema struct {
	names   []string
	options map[string]Option

	subNames []string
	subs     map[string]*Schema
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{
		options: make(map[string]Option),
		subs:    make(map[string]*Schema),
	}
}

// Declare adds an option to the schema. Redeclaring a name panics, as does
// a default outside its own domain.
func (s *Schema) Declare(opt Option) *Schema {
	if opt.Name == "" {
		panic("option name must not be empty")
	}

	if _, ok := s.options[opt.Name]; ok {
		panic("option " + opt.Name + " declared twice")
	}

	if _, ok := s.subs[opt.Name]; ok {
		panic("option " + opt.Name + " collides with a sub-schema")
	}

	if opt.Domain == nil {
		opt.Domain = Any()
	}

	if !opt.Domain.Contains(opt.Default) {
		panic(fmt.Sprintf("option %s: default %v outside domain %s",
			opt.Name, opt.Default, opt.Domain.Describe()))
	}

	s.names = append(s.names, opt.Name)
	s.options[opt.Name] = opt

	return s
}

// DeclareSub nests a sub-schema under the given name.
func (s *Schema) DeclareSub(name string, sub *Schema) *Schema {
	if _, ok := s.subs[name]; ok {
		panic("sub-schema " + name + " declared twice")
	}

	if _, ok := s.options[name]; ok {
		panic("sub-schema " + name + " collides with an option")
	}

	s.subNames = append(s.subNames, name)
	s.subs[name] = sub

	return s
}

// Options returns the declared option names in declaration order.
func (s *Schema) Options() []string {
	return s.names
}

// Option returns the declaration for the given name.
func (s *Schema) Option(name string) (Option, bool) {
	opt, ok := s.options[name]
	return opt, ok
}

// NewConfig creates a config populated with the schema defaults, including
// configs for every nested sub-schema.
func (s *Schema) NewConfig() *Config {
	c := &Config{
		schema: s,
		values: make(map[string]any),
		subs:   make(map[string]*Config),
	}

	for _, name := range s.names {
		c.values[name] = s.options[name].Default
	}

	for _, name := range s.subNames {
		c.subs[name] = s.subs[name].NewConfig()
	}

	return c
}

// A Config holds option values for one unit. Values may be set until
// Validate succeeds; after that the config is read-only.
type Config struct {
	schema    *Schema
	values    map[string]any
	subs      map[string]*Config
	validated bool
}

// Set assigns an option value. It fails closed on unknown names,
// out-of-domain values, and on configs that have already been validated.
func (c *Config) Set(name string, v any) error {
	if c.validated {
		return &ConfigurationError{
			Option: name,
			Reason: "config is read-only after validation",
		}
	}

	opt, ok := c.schema.options[name]
	if !ok {
		return &ConfigurationError{Option: name, Reason: "unknown option"}
	}

	if !opt.Domain.Contains(v) {
		return &ConfigurationError{
			Option: name,
			Reason: fmt.Sprintf("value %v outside domain %s",
				v, opt.Domain.Describe()),
		}
	}

	c.values[name] = v

	return nil
}

// MustSet assigns an option value and panics on failure. It is meant for
// hand-built configs in tests and examples.
func (c *Config) MustSet(name string, v any) *Config {
	if err := c.Set(name, v); err != nil {
		panic(err)
	}

	return c
}

// Validate checks every value against its domain and freezes the config and
// all nested sub-configs.
func (c *Config) Validate() error {
	for _, name := range c.schema.names {
		opt := c.schema.options[name]
		if !opt.Domain.Contains(c.values[name]) {
			return &ConfigurationError{
				Option: name,
				Reason: fmt.Sprintf("value %v outside domain %s",
					c.values[name], opt.Domain.Describe()),
			}
		}
	}

	for _, name := range c.schema.subNames {
		if err := c.subs[name].Validate(); err != nil {
			return err
		}
	}

	c.validated = true

	return nil
}

// IsValidated reports whether the config has been frozen.
func (c *Config) IsValidated() bool {
	return c.validated
}

// Value returns the value of an option. It panics on unknown names, since
// reading an undeclared option is a programming bug.
func (c *Config) Value(name string) any {
	v, ok := c.values[name]
	if !ok {
		panic("reading undeclared option " + name)
	}

	return v
}

// Bool returns the value of a boolean option.
func (c *Config) Bool(name string) bool {
	return c.Value(name).(bool)
}

// Sub returns the nested config with the given name. It panics on unknown
// names.
func (c *Config) Sub(name string) *Config {
	sub, ok := c.subs[name]
	if !ok {
		panic("reading undeclared sub-config " + name)
	}

	return sub
}

// A ConfigurationError reports an invalid or unknown option. It is fatal and
// raised before any assembly takes place.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration option " + e.Option + ": " + e.Reason
}
