// Package vyzzer is the high-level embedding API: a small wrapper struct
// around internal/convert the way pkg/embed wraps the underlying VM, so
// callers outside this module never import internal packages directly.
package vyzzer

import (
	"github.com/statemindio/vyzzer-go/internal/config"
	"github.com/statemindio/vyzzer-go/internal/convert"
	"github.com/statemindio/vyzzer-go/internal/model"
	"github.com/statemindio/vyzzer-go/internal/vartracker"
	"github.com/statemindio/vyzzer-go/internal/wire"
)

// Generator converts decoded contracts to target-language source under a
// fixed seed and option set. Not safe for concurrent use; build one
// Generator per goroutine.
type Generator struct {
	opts convert.Options
	src  vartracker.RandomSource
}

// Option configures a Generator at construction time.
type Option func(*convert.Options)

// WithMaxStorageVariables overrides the default storage-declaration cap.
func WithMaxStorageVariables(n int) Option {
	return func(o *convert.Options) { o.MaxStorageVariables = n }
}

// WithMaxFunctions overrides the default function-count cap.
func WithMaxFunctions(n int) Option {
	return func(o *convert.Options) { o.MaxFunctions = n }
}

// WithCoerceShaWidth opts into truncating sha256/keccak256 results to
// the outer expected BytesM width.
func WithCoerceShaWidth(on bool) Option {
	return func(o *convert.Options) { o.CoerceShaWidth = on }
}

// New builds a Generator seeded for reproducible output: the same seed
// and the same input tree always produce the same source text.
func New(seed int64, opts ...Option) *Generator {
	o := convert.DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &Generator{opts: o, src: vartracker.NewSeeded(seed)}
}

// FromConfig builds a Generator from a loaded configuration file.
func FromConfig(cfg config.Config) *Generator {
	return &Generator{
		opts: convert.Options{
			MaxStorageVariables: cfg.MaxStorageVariables,
			MaxFunctions:        cfg.MaxFunctions,
			CoerceShaWidth:      cfg.CoerceShaWidth,
		},
		src: vartracker.NewSeeded(cfg.Seed),
	}
}

// Convert lowers an already-decoded contract tree to source text.
func (g *Generator) Convert(contract *model.Contract) (string, error) {
	return convert.Convert(contract, g.opts, g.src)
}

// ConvertJSON decodes a JSON-encoded wire contract and converts it.
func (g *Generator) ConvertJSON(data []byte) (string, error) {
	contract, err := wire.DecodeJSON(data)
	if err != nil {
		return "", err
	}
	return g.Convert(contract)
}

// ConvertProto decodes a binary wire contract and converts it.
func (g *Generator) ConvertProto(data []byte) (string, error) {
	contract, err := wire.DecodeProto(data)
	if err != nil {
		return "", err
	}
	return g.Convert(contract)
}
