// Package resolver looks up human-readable names for colors.
//
// Naming is best effort: every failure is reported as ErrUnavailable and
// callers fall back to one of the Label constants instead of failing.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/colorix/api/models"
)

var ErrUnavailable = errors.New("color name unavailable")

// Fallback labels shown when no name is known.
const (
	LabelUnknown = "Unknown"
	LabelMixed   = "(mixed color)"
	LabelSaved   = "(saved color)"
	LabelCustom  = "Custom Color"
)

// Resolver returns a canonical color and name for a hex code or a color name.
type Resolver interface {
	ResolveByHex(ctx context.Context, hex string) (models.NamedColor, error)
	ResolveByName(ctx context.Context, name string) (models.NamedColor, error)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// Lookup resolves nc by hex and never fails: when the resolver is
// unavailable nc is returned as it was, without a name.
func Lookup(ctx context.Context, r Resolver, nc models.NamedColor, logger *slog.Logger) models.NamedColor {
	if r == nil {
		return nc
	}

	resolved, err := r.ResolveByHex(ctx, nc.Color.Bare())
	if err != nil {
		if logger != nil {
			logger.Warn("color name lookup failed", "hex", nc.Color.Hex(), "error", err)
		}
		return models.NamedColor{Color: nc.Color, Name: nc.Name}
	}
	return resolved
}
