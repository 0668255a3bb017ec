package resolver

import (
	"context"
	"fmt"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/models"
)

// Offline names colors from the CSS table without any network access.
// A color that is not itself a CSS color takes the name of the nearest one,
// much like the remote service reports its closest named color.
type Offline struct{}

func (Offline) ResolveByHex(ctx context.Context, hex string) (models.NamedColor, error) {
	c, err := colors.ParseHex(hex)
	if err != nil {
		return models.NamedColor{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.NamedColor{}, unavailable(err)
	}

	name, _ := colors.NearestCSSName(c)
	return models.Named(c, name), nil
}

func (Offline) ResolveByName(ctx context.Context, name string) (models.NamedColor, error) {
	if err := ctx.Err(); err != nil {
		return models.NamedColor{}, unavailable(err)
	}

	c, ok := colors.CSSNames.Lookup(name)
	if !ok {
		return models.NamedColor{}, unavailable(fmt.Errorf("%w: %q", colors.ErrUnresolvedColor, name))
	}
	return models.Named(c, colors.NormalizeName(name)), nil
}
