package models

import (
	"errors"
	"fmt"

	"github.com/colorix/api/colors"
)

var ErrIndexOutOfRange = errors.New("palette index out of range")

// PaletteEntry is one saved color. Components and ComponentNames are empty
// unless the entry came from a mix. Entries are never changed after creation.
type PaletteEntry struct {
	Hex            string    `json:"hex"`
	Name           *string   `json:"name,omitempty"`
	Label          string    `json:"label"`
	Components     []string  `json:"components"`
	ComponentNames []*string `json:"componentNames"`
}

// NewSingleEntry builds an entry for a searched or picked color.
func NewSingleEntry(nc NamedColor, fallback string) PaletteEntry {
	return PaletteEntry{
		Hex:            nc.Color.Hex(),
		Name:           nc.Name,
		Label:          nc.Label(fallback),
		Components:     []string{},
		ComponentNames: []*string{},
	}
}

// NewMixEntry builds an entry for a mix result. name is the name resolved
// for the mixed color, if any.
func NewMixEntry(result MixResult, name *string, fallback string) PaletteEntry {
	components := make([]string, len(result.SourceColors))
	for i, c := range result.SourceColors {
		components[i] = c.Hex()
	}

	componentNames := make([]*string, len(result.SourceNames))
	copy(componentNames, result.SourceNames)

	nc := NamedColor{Color: result.Color, Name: name}
	return PaletteEntry{
		Hex:            result.Color.Hex(),
		Name:           name,
		Label:          nc.Label(fallback),
		Components:     components,
		ComponentNames: componentNames,
	}
}

func (e PaletteEntry) IsMix() bool {
	return len(e.Components) > 0
}

// NamedColor converts the entry back to a color value.
func (e PaletteEntry) NamedColor() (NamedColor, error) {
	c, err := colors.ParseHex(e.Hex)
	if err != nil {
		return NamedColor{}, err
	}
	return NamedColor{Color: c, Name: e.Name}, nil
}

// Palette is an ordered list of saved entries. Duplicates are allowed.
// Append and RemoveAt return new palettes and leave the receiver untouched.
type Palette []PaletteEntry

func (p Palette) Len() int {
	return len(p)
}

// Append returns a palette with entry added at the end.
func (p Palette) Append(entry PaletteEntry) Palette {
	next := make(Palette, len(p), len(p)+1)
	copy(next, p)
	return append(next, entry)
}

// RemoveAt returns a palette without the entry at index; later entries
// shift down by one.
func (p Palette) RemoveAt(index int) (Palette, error) {
	if index < 0 || index >= len(p) {
		return p, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(p))
	}

	next := make(Palette, 0, len(p)-1)
	next = append(next, p[:index]...)
	return append(next, p[index+1:]...), nil
}

// At returns the entry at index.
func (p Palette) At(index int) (PaletteEntry, error) {
	if index < 0 || index >= len(p) {
		return PaletteEntry{}, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(p))
	}
	return p[index], nil
}
