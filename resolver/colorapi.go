package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/models"
)

const DefaultColorAPIURL = "https://www.thecolorapi.com"

// ColorAPI resolves names through thecolorapi.com. The service is keyed by
// hex only, so names are first mapped to a color through Names.
type ColorAPI struct {
	BaseURL string
	Client  *http.Client
	Names   colors.NameTable
	Logger  *slog.Logger
}

func NewColorAPI(baseURL string, timeout time.Duration, logger *slog.Logger) *ColorAPI {
	if baseURL == "" {
		baseURL = DefaultColorAPIURL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ColorAPI{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Names:   colors.CSSNames,
		Logger:  logger,
	}
}

// ResolveByHex looks up hex ("RRGGBB", "#RGB", ...). Malformed input is a
// local error; anything that goes wrong on the wire is ErrUnavailable.
func (api *ColorAPI) ResolveByHex(ctx context.Context, hex string) (models.NamedColor, error) {
	c, err := colors.ParseHex(hex)
	if err != nil {
		return models.NamedColor{}, err
	}

	endpoint := fmt.Sprintf("%s/id?hex=%s&format=json", api.BaseURL, url.QueryEscape(c.Bare()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.NamedColor{}, unavailable(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := api.Client.Do(req)
	if err != nil {
		return models.NamedColor{}, unavailable(err)
	}
	defer resp.Body.Close()

	api.Logger.Debug("color api request", "hex", c.Hex(), "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return models.NamedColor{}, unavailable(fmt.Errorf("color API returned status: %d", resp.StatusCode))
	}

	var payload models.ColorAPIColor
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.NamedColor{}, unavailable(fmt.Errorf("error parsing color API response: %w", err))
	}

	return namedFromPayload(payload)
}

// ResolveByName maps name through the CSS table and resolves the result.
func (api *ColorAPI) ResolveByName(ctx context.Context, name string) (models.NamedColor, error) {
	names := api.Names
	if names == nil {
		names = colors.CSSNames
	}

	c, ok := names.Lookup(name)
	if !ok {
		return models.NamedColor{}, unavailable(fmt.Errorf("%w: %q", colors.ErrUnresolvedColor, name))
	}
	return api.ResolveByHex(ctx, c.Bare())
}

func namedFromPayload(payload models.ColorAPIColor) (models.NamedColor, error) {
	name := strings.TrimSpace(payload.Name.Value)
	if name == "" {
		return models.NamedColor{}, unavailable(fmt.Errorf("color API response has no name"))
	}

	hex := payload.Hex.Clean
	if hex == "" {
		hex = payload.Hex.Value
	}
	c, err := colors.ParseHex(hex)
	if err != nil {
		return models.NamedColor{}, unavailable(fmt.Errorf("color API response has no usable hex: %w", err))
	}

	return models.Named(c, name), nil
}
