package models

import (
	"fmt"

	"github.com/colorix/api/colors"
)

// MixRequest holds the 2 or 3 colors to average, in the order the user
// picked them.
type MixRequest struct {
	Inputs []NamedColor `json:"inputs"`
}

func (req MixRequest) Validate() error {
	if n := len(req.Inputs); n < colors.MinMixColors || n > colors.MaxMixColors {
		return fmt.Errorf("%w: got %d", colors.ErrInvalidMixArity, n)
	}
	return nil
}

func (req MixRequest) Colors() []colors.Color {
	cs := make([]colors.Color, len(req.Inputs))
	for i, in := range req.Inputs {
		cs[i] = in.Color
	}
	return cs
}

// MixResult is a mixed color together with where it came from.
type MixResult struct {
	Color        colors.Color   `json:"hex"`
	SourceColors []colors.Color `json:"sourceColors"`
	SourceNames  []*string      `json:"sourceNames"`
}

// Mix averages the request inputs and records their provenance.
func (req MixRequest) Mix() (MixResult, error) {
	if err := req.Validate(); err != nil {
		return MixResult{}, err
	}

	mixed, err := colors.Mix(req.Colors())
	if err != nil {
		return MixResult{}, err
	}

	names := make([]*string, len(req.Inputs))
	for i, in := range req.Inputs {
		names[i] = in.Name
	}

	return MixResult{
		Color:        mixed,
		SourceColors: req.Colors(),
		SourceNames:  names,
	}, nil
}
