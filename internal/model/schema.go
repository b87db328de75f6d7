package model

import "fmt"

// Parameter groups, used only to organize input widgets.
const (
	GroupPrices      = "Prices"
	GroupMargins     = "Margins"
	GroupDiversion   = "Diversion Ratios"
	GroupPassThrough = "Pass-through"
	GroupElasticity  = "Elasticity"
)

// GroupOrder is the display order of parameter groups.
var GroupOrder = []string{GroupPrices, GroupMargins, GroupDiversion, GroupPassThrough, GroupElasticity}

// ParameterMeta describes one input for range-bound UI controls and sweeps.
// Min and Max are inclusive.
type ParameterMeta struct {
	Name    string  `json:"name" yaml:"name"`
	Label   string  `json:"label" yaml:"label"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Step    float64 `json:"step" yaml:"step"`
	Default float64 `json:"default" yaml:"default"`
	Group   string  `json:"group" yaml:"group"`
}

// schema is kept in the same order as fieldOrder.
var schema = []ParameterMeta{
	{Name: "p_D", Label: "D's product price (p_D)", Min: 10, Max: 50, Step: 1, Default: 20, Group: GroupPrices},
	{Name: "p_R", Label: "R's product price (p_R)", Min: 10, Max: 50, Step: 1, Default: 20, Group: GroupPrices},
	{Name: "w_D", Label: "U's price to D (w_D)", Min: 1, Max: 50, Step: 1, Default: 10, Group: GroupPrices},
	{Name: "w_R", Label: "U's price to R (w_R)", Min: 1, Max: 50, Step: 1, Default: 10, Group: GroupPrices},
	{Name: "w_U", Label: "U's avg price to rivals (w_U)", Min: 1, Max: 50, Step: 1, Default: 10, Group: GroupPrices},

	{Name: "m_D", Label: "D's profit margin (m_D)", Min: 0, Max: 1, Step: 0.05, Default: 0.5, Group: GroupMargins},
	{Name: "m_R", Label: "R's profit margin (m_R)", Min: 0, Max: 1, Step: 0.05, Default: 0.5, Group: GroupMargins},
	{Name: "m_U", Label: "U's avg margin to rivals (m_U)", Min: 0, Max: 1, Step: 0.05, Default: 0.5, Group: GroupMargins},
	{Name: "m_UD", Label: "U's margin on sales to D (m_UD)", Min: 0, Max: 1, Step: 0.05, Default: 0.5, Group: GroupMargins},

	{Name: "dr_RD", Label: "Diversion R→D (dr_RD)", Min: 0, Max: 1, Step: 0.05, Default: 0.4, Group: GroupDiversion},
	{Name: "dr_DU", Label: "Diversion D→U (dr_DU)", Min: 0, Max: 1, Step: 0.05, Default: 0.25, Group: GroupDiversion},
	{Name: "dr_UD", Label: "Diversion U→D (dr_UD)", Min: 0, Max: 1, Step: 0.05, Default: 0.4, Group: GroupDiversion},

	{Name: "ptr_U", Label: "Pass-through U→R (ptr_U)", Min: 0, Max: 1, Step: 0.05, Default: 0.5, Group: GroupPassThrough},
	{Name: "ptr_R", Label: "Pass-through R cost→price (ptr_R)", Min: 0, Max: 1, Step: 0.05, Default: 0.5, Group: GroupPassThrough},

	{Name: "e", Label: "Demand elasticity (ε)", Min: 0.1, Max: 5, Step: 0.05, Default: 1, Group: GroupElasticity},
}

var schemaIndex = func() map[string]int {
	m := make(map[string]int, len(schema))
	for i, meta := range schema {
		m[meta.Name] = i
	}
	return m
}()

// Schema returns a copy of the metadata table in canonical field order.
func Schema() []ParameterMeta {
	out := make([]ParameterMeta, len(schema))
	copy(out, schema)
	return out
}

// Metadata returns the metadata table keyed by field name.
func Metadata() map[string]ParameterMeta {
	out := make(map[string]ParameterMeta, len(schema))
	for _, m := range schema {
		out[m.Name] = m
	}
	return out
}

// Lookup returns the metadata for a field name.
func Lookup(name string) (ParameterMeta, error) {
	i, ok := schemaIndex[name]
	if !ok {
		return ParameterMeta{}, fmt.Errorf("%w: unknown field %q", ErrSchemaMismatch, name)
	}
	return schema[i], nil
}

// Groups returns field names grouped by GroupOrder.
func Groups() map[string][]string {
	out := make(map[string][]string, len(GroupOrder))
	for _, m := range schema {
		out[m.Group] = append(out[m.Group], m.Name)
	}
	return out
}
