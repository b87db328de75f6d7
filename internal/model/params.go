package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ParameterSet holds the 15 inputs of the vGUPPI formulas.
//
// Notation:
//   - U: upstream supplier of an input used by D and R.
//   - D: downstream producer merging with U.
//   - R: downstream rival.
//
// Units:
//   - prices (p_*, w_*): currency per unit, > 0
//   - margins, diversion ratios, pass-through rates: fractions 0..1
//   - e: elasticity of downstream demand, > 0
//
// A ParameterSet is a value. Methods never mutate the receiver; With and
// WithOverrides return modified copies.
type ParameterSet struct {
	PD float64 `json:"p_D" yaml:"p_D"` // D's product price
	PR float64 `json:"p_R" yaml:"p_R"` // R's product price
	WD float64 `json:"w_D" yaml:"w_D"` // U's price selling to D
	WR float64 `json:"w_R" yaml:"w_R"` // U's price selling to R
	WU float64 `json:"w_U" yaml:"w_U"` // U's average price to rivals

	MD  float64 `json:"m_D" yaml:"m_D"`   // D's margin
	MR  float64 `json:"m_R" yaml:"m_R"`   // R's margin
	MU  float64 `json:"m_U" yaml:"m_U"`   // U's average margin on sales to rivals
	MUD float64 `json:"m_UD" yaml:"m_UD"` // U's margin on sales to D

	DrRD float64 `json:"dr_RD" yaml:"dr_RD"` // diverted to D from an R price increase
	DrDU float64 `json:"dr_DU" yaml:"dr_DU"` // gained by U from a D price increase
	DrUD float64 `json:"dr_UD" yaml:"dr_UD"` // diverted to D from a U price increase

	PtrU float64 `json:"ptr_U" yaml:"ptr_U"` // pass-through of U's cost increase to R's prices
	PtrR float64 `json:"ptr_R" yaml:"ptr_R"` // pass-through of R's cost increase to R's product

	E float64 `json:"e" yaml:"e"` // downstream demand elasticity
}

type fieldRef func(p *ParameterSet) *float64

// fieldOrder is the canonical field order. It must match the schema table.
var fieldOrder = []struct {
	name string
	ref  fieldRef
}{
	{"p_D", func(p *ParameterSet) *float64 { return &p.PD }},
	{"p_R", func(p *ParameterSet) *float64 { return &p.PR }},
	{"w_D", func(p *ParameterSet) *float64 { return &p.WD }},
	{"w_R", func(p *ParameterSet) *float64 { return &p.WR }},
	{"w_U", func(p *ParameterSet) *float64 { return &p.WU }},
	{"m_D", func(p *ParameterSet) *float64 { return &p.MD }},
	{"m_R", func(p *ParameterSet) *float64 { return &p.MR }},
	{"m_U", func(p *ParameterSet) *float64 { return &p.MU }},
	{"m_UD", func(p *ParameterSet) *float64 { return &p.MUD }},
	{"dr_RD", func(p *ParameterSet) *float64 { return &p.DrRD }},
	{"dr_DU", func(p *ParameterSet) *float64 { return &p.DrDU }},
	{"dr_UD", func(p *ParameterSet) *float64 { return &p.DrUD }},
	{"ptr_U", func(p *ParameterSet) *float64 { return &p.PtrU }},
	{"ptr_R", func(p *ParameterSet) *float64 { return &p.PtrR }},
	{"e", func(p *ParameterSet) *float64 { return &p.E }},
}

var fieldIndex = func() map[string]fieldRef {
	m := make(map[string]fieldRef, len(fieldOrder))
	for _, f := range fieldOrder {
		m[f.name] = f.ref
	}
	return m
}()

// FieldNames returns the ordered list of ParameterSet field names.
func FieldNames() []string {
	out := make([]string, len(fieldOrder))
	for i, f := range fieldOrder {
		out[i] = f.name
	}
	return out
}

// HasField reports whether name is a ParameterSet field.
func HasField(name string) bool {
	_, ok := fieldIndex[name]
	return ok
}

// DefaultParameterSet builds a ParameterSet from the schema defaults.
func DefaultParameterSet() ParameterSet {
	var p ParameterSet
	for _, m := range schema {
		*fieldIndex[m.Name](&p) = m.Default
	}
	return p
}

// ParameterSetFromMap builds a ParameterSet from exactly the 15 schema fields.
// Missing, unknown and non-finite entries fail with ErrSchemaMismatch.
func ParameterSetFromMap(values map[string]float64) (ParameterSet, error) {
	var p ParameterSet

	var unknown []string
	for name := range values {
		if !HasField(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ParameterSet{}, fmt.Errorf("%w: unknown fields %s", ErrSchemaMismatch, strings.Join(unknown, ", "))
	}

	var missing []string
	for _, f := range fieldOrder {
		v, ok := values[f.name]
		if !ok {
			missing = append(missing, f.name)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ParameterSet{}, fmt.Errorf("%w: field %s is not finite", ErrSchemaMismatch, f.name)
		}
		*f.ref(&p) = v
	}
	if len(missing) > 0 {
		return ParameterSet{}, fmt.Errorf("%w: missing fields %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return p, nil
}

// Get returns the value of the named field.
func (p ParameterSet) Get(name string) (float64, error) {
	ref, ok := fieldIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown field %q", ErrSchemaMismatch, name)
	}
	return *ref(&p), nil
}

// With returns a copy of p with one field replaced.
func (p ParameterSet) With(name string, v float64) (ParameterSet, error) {
	ref, ok := fieldIndex[name]
	if !ok {
		return ParameterSet{}, fmt.Errorf("%w: unknown field %q", ErrSchemaMismatch, name)
	}
	*ref(&p) = v
	return p, nil
}

// WithOverrides returns a copy of p with every entry of overrides applied.
// It fails without applying anything if any name is unknown.
func (p ParameterSet) WithOverrides(overrides map[string]float64) (ParameterSet, error) {
	out := p
	for name, v := range overrides {
		ref, ok := fieldIndex[name]
		if !ok {
			return p, fmt.Errorf("%w: unknown field %q", ErrSchemaMismatch, name)
		}
		*ref(&out) = v
	}
	return out, nil
}

// Map returns the fields keyed by name.
func (p ParameterSet) Map() map[string]float64 {
	out := make(map[string]float64, len(fieldOrder))
	for _, f := range fieldOrder {
		out[f.name] = *f.ref(&p)
	}
	return out
}

// IsFinite reports whether every field is a finite number.
func (p ParameterSet) IsFinite() bool {
	for _, f := range fieldOrder {
		v := *f.ref(&p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
