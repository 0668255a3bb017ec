package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/models"
	"github.com/colorix/api/resolver"
)

type paletteRequest struct {
	FromMix     bool    `json:"fromMix"`
	FromCurrent bool    `json:"fromCurrent"`
	Hex         string  `json:"hex"`
	Name        *string `json:"name"`
}

type paletteResponse struct {
	Entries models.Palette `json:"entries"`
	Count   int            `json:"count"`
}

func newPaletteResponse(p models.Palette) paletteResponse {
	if p == nil {
		p = models.Palette{}
	}
	return paletteResponse{Entries: p, Count: p.Len()}
}

// GET, POST /v1/palette
func (app *Application) palette(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		app.getPalette(w, r)
	case http.MethodPost:
		app.addToPalette(w, r)
	default:
		app.methodNotAllowed(w, r, "GET, POST", errors.New("GET or POST method required for this endpoint"))
	}
}

func (app *Application) getPalette(w http.ResponseWriter, r *http.Request) {
	session, err := app.SessionRepo.Get(sessionID(r))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPaletteResponse(session.Palette))
}

// addToPalette saves the last mix, the current color or an explicit hex.
func (app *Application) addToPalette(w http.ResponseWriter, r *http.Request) {
	var req paletteRequest
	if err := decodeStrict(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	sources := 0
	for _, set := range []bool{req.FromMix, req.FromCurrent, req.Hex != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		app.badRequest(w, r, errors.New("set exactly one of fromMix, fromCurrent or hex"))
		return
	}

	var explicit models.NamedColor
	if req.Hex != "" {
		c, err := colors.ParseCSSColor(req.Hex, app.Names)
		if err != nil {
			app.colorError(w, r, err)
			return
		}
		explicit = models.NamedColor{Color: c, Name: req.Name}
		if explicit.Name == nil {
			explicit = resolver.Lookup(r.Context(), app.Resolver, explicit, app.Logger)
		}
	}

	session, err := app.SessionRepo.Update(sessionID(r), func(s *models.Session) error {
		var entry models.PaletteEntry
		switch {
		case req.FromMix:
			if s.LastMix == nil {
				return ErrNoMix
			}
			entry = models.NewMixEntry(*s.LastMix, s.MixName, resolver.LabelMixed)
		case req.FromCurrent:
			if s.Current == nil {
				return ErrNoCurrentColor
			}
			nc, err := currentNamedColor(*s.Current)
			if err != nil {
				return err
			}
			entry = models.NewSingleEntry(nc, resolver.LabelCustom)
		default:
			entry = models.NewSingleEntry(explicit, resolver.LabelCustom)
		}

		s.Palette = s.Palette.Append(entry)
		return nil
	})

	switch {
	case errors.Is(err, ErrNoMix), errors.Is(err, ErrNoCurrentColor):
		app.badRequest(w, r, err)
		return
	case err != nil:
		app.colorError(w, r, err)
		return
	}

	app.Logger.Debug("palette entry added", "session", session.ID, "count", session.Palette.Len())
	writeJSON(w, http.StatusCreated, newPaletteResponse(session.Palette))
}

func currentNamedColor(card models.ColorCard) (models.NamedColor, error) {
	c, err := colors.ParseHex(card.Hex)
	if err != nil {
		return models.NamedColor{}, err
	}
	if !card.Named {
		return models.Unnamed(c), nil
	}
	return models.Named(c, card.Name), nil
}

// /v1/palette/{i} and /v1/palette/{i}/select
func (app *Application) paletteEntry(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/palette/")
	parts := strings.Split(rest, "/")

	index, err := strconv.Atoi(parts[0])
	if err != nil {
		app.notFound(w, r, errors.New("palette index must be an integer"))
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			app.getPaletteEntry(w, r, index)
		case http.MethodDelete:
			app.removeFromPalette(w, r, index)
		default:
			app.methodNotAllowed(w, r, "GET, DELETE", errors.New("GET or DELETE method required for this endpoint"))
		}
	case len(parts) == 2 && parts[1] == "select":
		if r.Method != http.MethodPost {
			app.methodNotAllowed(w, r, http.MethodPost, ErrPOST)
			return
		}
		app.selectPaletteEntry(w, r, index)
	default:
		http.NotFound(w, r)
	}
}

// GET /v1/palette/{i}
func (app *Application) getPaletteEntry(w http.ResponseWriter, r *http.Request, index int) {
	session, err := app.SessionRepo.Get(sessionID(r))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	entry, err := session.Palette.At(index)
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// DELETE /v1/palette/{i}
func (app *Application) removeFromPalette(w http.ResponseWriter, r *http.Request, index int) {
	session, err := app.SessionRepo.Update(sessionID(r), func(s *models.Session) error {
		p, err := s.Palette.RemoveAt(index)
		if err != nil {
			return err
		}
		s.Palette = p
		return nil
	})
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPaletteResponse(session.Palette))
}

// POST /v1/palette/{i}/select - Make a saved entry the current color
func (app *Application) selectPaletteEntry(w http.ResponseWriter, r *http.Request, index int) {
	id := sessionID(r)

	var card models.ColorCard
	_, err := app.SessionRepo.Update(id, func(s *models.Session) error {
		entry, err := s.Palette.At(index)
		if err != nil {
			return err
		}
		nc, err := entry.NamedColor()
		if err != nil {
			return err
		}
		card = models.NewColorCard(nc, resolver.LabelSaved, models.SourceSaved)

		// Only a valid selection supersedes lookups still in flight.
		app.Sequencer.Next(currentKey(id))
		s.Current = &card
		return nil
	})
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}
