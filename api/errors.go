package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/models"
)

// Helper function to get caller information
func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "[unknown]"
	}
	return fmt.Sprintf("[%s:%d]", filepath.Base(file), line)
}

type HandlerError struct {
	ErrorName        string `json:"errorName"`
	Description      string `json:"description"`
	PossibleSolution string `json:"possibleSolution"`
	CallerInfo       string `json:"callerInfo"`
}

var ErrGET = fmt.Errorf("GET method required for this endpoint")
var ErrPOST = fmt.Errorf("POST method required for this endpoint")
var ErrPUT = fmt.Errorf("PUT method required for this endpoint")
var ErrNoMix = errors.New("nothing has been mixed yet")
var ErrNoCurrentColor = errors.New("no color has been searched or selected yet")

func writeError(w http.ResponseWriter, status int, handlerErr HandlerError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(handlerErr)
}

func (app *Application) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string, err error) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, HandlerError{
		ErrorName:        allowed + " Method Required",
		Description:      err.Error() + " you used: " + r.Method,
		PossibleSolution: "Use " + allowed + " method",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) badJSONRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, http.StatusBadRequest, HandlerError{
		ErrorName:        "Error Parsing JSON",
		Description:      err.Error(),
		PossibleSolution: "Double check your JSON formatting",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.Logger.Error("internal server error", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, HandlerError{
		ErrorName:        "Internal Server Error",
		Description:      err.Error(),
		PossibleSolution: "Internal Server Error requiring support",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, http.StatusBadRequest, HandlerError{
		ErrorName:        "Bad Request",
		Description:      err.Error(),
		PossibleSolution: "Check your request parameters",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) notFound(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, http.StatusNotFound, HandlerError{
		ErrorName:        "Not Found",
		Description:      err.Error(),
		PossibleSolution: "Check the index or path you requested",
		CallerInfo:       getCallerInfo(),
	})
}

// colorError maps codec, mixer and palette validation failures to a
// response. Anything it does not recognise is an internal error.
func (app *Application) colorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, colors.ErrInvalidFormat), errors.Is(err, colors.ErrUnresolvedColor):
		writeError(w, http.StatusBadRequest, HandlerError{
			ErrorName:        "Unrecognized Color",
			Description:      err.Error(),
			PossibleSolution: "Try a CSS color name (e.g., skyblue) or a hex like #ff5733",
			CallerInfo:       getCallerInfo(),
		})
	case errors.Is(err, colors.ErrInvalidMixArity):
		writeError(w, http.StatusBadRequest, HandlerError{
			ErrorName:        "Invalid Mix",
			Description:      err.Error(),
			PossibleSolution: "Mix exactly 2 or 3 colors",
			CallerInfo:       getCallerInfo(),
		})
	case errors.Is(err, models.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, HandlerError{
			ErrorName:        "Palette Entry Not Found",
			Description:      err.Error(),
			PossibleSolution: "Reload the palette and retry with a current index",
			CallerInfo:       getCallerInfo(),
		})
	default:
		app.internalServerError(w, r, err)
	}
}
