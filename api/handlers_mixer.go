package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/models"
	"github.com/colorix/api/resolver"
)

// GET /v1/mixer
func (app *Application) getMixer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.methodNotAllowed(w, r, http.MethodGet, ErrGET)
		return
	}

	session, err := app.SessionRepo.Get(sessionID(r))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session.Mixer())
}

type mixerModeRequest struct {
	Mode int `json:"mode"`
}

// PUT /v1/mixer/mode - Switch between mixing 2 and 3 colors
func (app *Application) setMixerMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		app.methodNotAllowed(w, r, http.MethodPut, ErrPUT)
		return
	}

	var req mixerModeRequest
	if err := decodeStrict(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if req.Mode < colors.MinMixColors || req.Mode > colors.MaxMixColors {
		app.colorError(w, r, fmt.Errorf("%w: mode %d", colors.ErrInvalidMixArity, req.Mode))
		return
	}

	id := sessionID(r)
	session, err := app.SessionRepo.Update(id, func(s *models.Session) error {
		s.Mode = req.Mode
		return nil
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Name every visible slot that was never named.
	for i := 0; i < session.Mode; i++ {
		if session.Slots[i].Name == nil {
			if session, err = app.assignSlot(r.Context(), id, i+1, session.Slots[i].Color); err != nil {
				app.internalServerError(w, r, err)
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, session.Mixer())
}

type mixerSlotRequest struct {
	Hex string `json:"hex"`
}

// PUT /v1/mixer/slots/{n} - Pick the color of slot 1, 2 or 3
func (app *Application) setMixerSlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		app.methodNotAllowed(w, r, http.MethodPut, ErrPUT)
		return
	}

	slot, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/v1/mixer/slots/"))
	if err != nil || slot < 1 || slot > colors.MaxMixColors {
		app.notFound(w, r, fmt.Errorf("mixer slot %q does not exist", strings.TrimPrefix(r.URL.Path, "/v1/mixer/slots/")))
		return
	}

	var req mixerSlotRequest
	if err := decodeStrict(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	c, err := colors.ParseCSSColor(req.Hex, app.Names)
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	session, err := app.assignSlot(r.Context(), sessionID(r), slot, c)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session.Mixer())
}

// assignSlot sets a slot's color right away and its name once the lookup
// returns. Either write is skipped when a newer pick for the same slot has
// been made since.
func (app *Application) assignSlot(ctx context.Context, id string, slot int, c colors.Color) (models.Session, error) {
	key := slotKey(id, slot)
	token := app.Sequencer.Next(key)

	_, err := app.SessionRepo.Update(id, func(s *models.Session) error {
		if app.Sequencer.IsLatest(key, token) {
			s.Slots[slot-1] = models.Slot{Color: c}
		}
		return nil
	})
	if err != nil {
		return models.Session{}, err
	}

	named := resolver.Lookup(ctx, app.Resolver, models.Unnamed(c), app.Logger)

	return app.SessionRepo.Update(id, func(s *models.Session) error {
		if app.Sequencer.IsLatest(key, token) {
			s.Slots[slot-1].Name = named.Name
		}
		return nil
	})
}

// POST /v1/mixer/mix - Mix the active slots
func (app *Application) mixSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, http.MethodPost, ErrPOST)
		return
	}

	id := sessionID(r)
	session, err := app.SessionRepo.Get(id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	result, err := session.ActiveSlots().Mix()
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	mixToken := app.Sequencer.Next(mixKey(id))
	currentToken := app.Sequencer.Next(currentKey(id))

	named := resolver.Lookup(r.Context(), app.Resolver, models.Unnamed(result.Color), app.Logger)
	card := models.NewColorCard(named, resolver.LabelMixed, models.SourceMix)

	applied := false
	_, err = app.SessionRepo.Update(id, func(s *models.Session) error {
		if app.Sequencer.IsLatest(mixKey(id), mixToken) {
			s.LastMix = &result
			s.MixName = named.Name
		}
		if app.Sequencer.IsLatest(currentKey(id), currentToken) {
			s.Current = &card
			applied = true
		}
		return nil
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mixResponse{Mix: result, Color: card, Applied: applied})
}
