// Package functracker implements the function registry from spec §4.7:
// an ordered list of function records with call-site and signature
// renderers.
package functracker

import (
	"strings"

	"github.com/statemindio/vyzzer-go/internal/vyptype"
)

// Visibility is a function's externally-visible calling convention.
type Visibility int

const (
	Internal Visibility = iota
	External
)

// Mutability is the four-point lattice from spec §3: PURE < VIEW <
// NON_PAYABLE < PAYABLE.
type Mutability int

const (
	Pure Mutability = iota
	View
	NonPayable
	Payable
)

func (m Mutability) String() string {
	switch m {
	case Pure:
		return "@pure"
	case View:
		return "@view"
	case NonPayable:
		return "@nonpayable"
	case Payable:
		return "@payable"
	default:
		return "@pure"
	}
}

// Record is one registered function's metadata.
type Record struct {
	Name       string
	Mutability Mutability
	Visibility Visibility
	Inputs     []vyptype.Type
	Outputs    []vyptype.Type
}

// RenderCall renders an internal call site: self.<name>(<args>).
func (r Record) RenderCall(args []string) string {
	return "self." + r.Name + "(" + strings.Join(args, ", ") + ")"
}

// RenderSignature renders the declaration head: def <name>(<args>).
func (r Record) RenderSignature(args []string) string {
	return "def " + r.Name + "(" + strings.Join(args, ", ") + ")"
}

// Tracker is the ordered function registry. Registration order is
// preserved; CurrentID equals len(records)-1 after the first
// registration.
type Tracker struct {
	records []Record
}

// New returns an empty function tracker.
func New() *Tracker {
	return &Tracker{}
}

// NextID returns the index the next registered function will receive.
func (tr *Tracker) NextID() int {
	return len(tr.records)
}

// CurrentID is the index of the most recently registered function, or
// -1 if none has been registered yet.
func (tr *Tracker) CurrentID() int {
	return len(tr.records) - 1
}

// Register appends a new function record and returns its index.
func (tr *Tracker) Register(name string, mut Mutability, vis Visibility, inputs, outputs []vyptype.Type) int {
	tr.records = append(tr.records, Record{
		Name:       name,
		Mutability: mut,
		Visibility: vis,
		Inputs:     inputs,
		Outputs:    outputs,
	})
	return len(tr.records) - 1
}

// At returns the record registered at index i.
func (tr *Tracker) At(i int) Record {
	return tr.records[i]
}

// Len returns the number of registered functions.
func (tr *Tracker) Len() int {
	return len(tr.records)
}
