package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/models"
	"github.com/colorix/api/resolver"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func currentKey(sessionID string) string {
	return sessionID + "/current"
}

func mixKey(sessionID string) string {
	return sessionID + "/mix"
}

func slotKey(sessionID string, slot int) string {
	return fmt.Sprintf("%s/slot/%d", sessionID, slot)
}

// applyCurrent stores card as the session's current color unless a newer
// search, mix or selection took a token for it in the meantime.
func (app *Application) applyCurrent(id string, token resolver.Token, card models.ColorCard) (bool, error) {
	applied := false
	_, err := app.SessionRepo.Update(id, func(s *models.Session) error {
		if !app.Sequencer.IsLatest(currentKey(id), token) {
			return nil
		}
		s.Current = &card
		applied = true
		return nil
	})
	if err == nil && !applied {
		app.Logger.Debug("discarded stale color lookup", "session", id, "hex", card.Hex)
	}
	return applied, err
}

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Colorix API")
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Naming   string `json:"naming"`
}

// GET /v1/health
func (app *Application) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.methodNotAllowed(w, r, http.MethodGet, ErrGET)
		return
	}

	naming := "remote"
	if _, ok := app.Resolver.(resolver.Offline); ok {
		naming = "offline"
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: app.SessionRepo.Count(),
		Naming:   naming,
	})
}

// GET /v1/colors/parse?q=lavender
func (app *Application) parseColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.methodNotAllowed(w, r, http.MethodGet, ErrGET)
		return
	}

	c, err := colors.ParseCSSColor(r.URL.Query().Get("q"), app.Names)
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, colors.Describe(c))
}

type mixColorsRequest struct {
	Colors []string `json:"colors"`
}

type mixResponse struct {
	Mix     models.MixResult `json:"mix"`
	Color   models.ColorCard `json:"color"`
	Applied bool             `json:"applied,omitempty"`
}

// POST /v1/colors/mix - Mix colors without touching any session
func (app *Application) mixColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, http.MethodPost, ErrPOST)
		return
	}

	var req mixColorsRequest
	if err := decodeStrict(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	mixReq := models.MixRequest{Inputs: make([]models.NamedColor, 0, len(req.Colors))}
	for _, input := range req.Colors {
		c, err := colors.ParseCSSColor(input, app.Names)
		if err != nil {
			app.colorError(w, r, err)
			return
		}
		mixReq.Inputs = append(mixReq.Inputs, models.Unnamed(c))
	}

	result, err := mixReq.Mix()
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	named := resolver.Lookup(r.Context(), app.Resolver, models.Unnamed(result.Color), app.Logger)

	writeJSON(w, http.StatusOK, mixResponse{
		Mix:   result,
		Color: models.NewColorCard(named, resolver.LabelMixed, models.SourceMix),
	})
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Color   models.ColorCard `json:"color"`
	Applied bool             `json:"applied"`
}

// POST /v1/colors/search - Parse a color, name it and make it current
func (app *Application) searchColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r, http.MethodPost, ErrPOST)
		return
	}

	var req searchRequest
	if err := decodeStrict(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	c, err := colors.ParseCSSColor(req.Query, app.Names)
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	id := sessionID(r)
	token := app.Sequencer.Next(currentKey(id))

	named := resolver.Lookup(r.Context(), app.Resolver, models.Unnamed(c), app.Logger)
	card := models.NewColorCard(named, resolver.LabelUnknown, models.SourceSearch)

	applied, err := app.applyCurrent(id, token, card)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Color: card, Applied: applied})
}

// GET /v1/colors/current
func (app *Application) getCurrentColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.methodNotAllowed(w, r, http.MethodGet, ErrGET)
		return
	}

	session, err := app.SessionRepo.Get(sessionID(r))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if session.Current == nil {
		app.notFound(w, r, ErrNoCurrentColor)
		return
	}

	writeJSON(w, http.StatusOK, session.Current)
}

func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
