package colors

import "errors"

var (
	ErrInvalidFormat   = errors.New("invalid hex color format")
	ErrUnresolvedColor = errors.New("unresolved color")
	ErrInvalidMixArity = errors.New("mix requires 2 or 3 colors")
)
