package models

import "github.com/colorix/api/colors"

// NamedColor is a color plus the name the naming service gave it.
// Name is nil when no lookup happened or the lookup failed.
type NamedColor struct {
	Color colors.Color `json:"hex"`
	Name  *string      `json:"name,omitempty"`
}

func Unnamed(c colors.Color) NamedColor {
	return NamedColor{Color: c}
}

func Named(c colors.Color, name string) NamedColor {
	return NamedColor{Color: c, Name: &name}
}

// Label returns the name, or fallback when none is known.
func (nc NamedColor) Label(fallback string) string {
	if nc.Name == nil || *nc.Name == "" {
		return fallback
	}
	return *nc.Name
}

// ColorCard is the record behind the "current color" display: a color, its
// label and derived formats.
type ColorCard struct {
	colors.Description
	Name   string `json:"name"`
	Named  bool   `json:"named"`
	Source string `json:"source"`
}

const (
	SourceSearch = "search"
	SourceMix    = "mix"
	SourceSaved  = "saved"
	SourceSlot   = "slot"
)

func NewColorCard(nc NamedColor, fallback, source string) ColorCard {
	return ColorCard{
		Description: colors.Describe(nc.Color),
		Name:        nc.Label(fallback),
		Named:       nc.Name != nil && *nc.Name != "",
		Source:      source,
	}
}
