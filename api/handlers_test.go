package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/models"
	"github.com/colorix/api/resolver"
)

func TestHome(t *testing.T) {
	_, h := newTestApp(t, newFakeNames(testNames))
	c := &testClient{t: t, h: h}

	rec := c.do(http.MethodGet, "/", "")
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "Colorix API" {
		t.Errorf("body = %q", rec.Body.String())
	}

	expectStatus(t, c.do(http.MethodGet, "/nope", ""), http.StatusNotFound)
}

func TestHealth(t *testing.T) {
	_, h := newTestApp(t, resolver.Offline{})
	c := &testClient{t: t, h: h}

	c.do(http.MethodGet, "/v1/palette", "")

	rec := c.do(http.MethodGet, "/v1/health", "")
	expectStatus(t, rec, http.StatusOK)
	got := decodeBody[healthResponse](t, rec)
	if got.Status != "ok" || got.Sessions != 1 || got.Naming != "offline" {
		t.Errorf("health = %+v", got)
	}
}

func TestParseColor(t *testing.T) {
	_, h := newTestApp(t, newFakeNames(testNames))
	c := &testClient{t: t, h: h}

	rec := c.do(http.MethodGet, "/v1/colors/parse?q=skyblue", "")
	expectStatus(t, rec, http.StatusOK)
	got := decodeBody[colors.Description](t, rec)
	if got.Hex != "#87CEEB" || got.RGB != "rgb(135, 206, 235)" {
		t.Errorf("parse = %+v", got)
	}

	rec = c.do(http.MethodGet, "/v1/colors/parse?q=%23zzz", "")
	expectStatus(t, rec, http.StatusBadRequest)
	if e := decodeBody[HandlerError](t, rec); e.ErrorName != "Unrecognized Color" {
		t.Errorf("error = %+v", e)
	}

	expectStatus(t, c.do(http.MethodPost, "/v1/colors/parse?q=red", ""), http.StatusMethodNotAllowed)
}

func TestSearchColor(t *testing.T) {
	_, h := newTestApp(t, newFakeNames(testNames))
	c := &testClient{t: t, h: h}

	rec := c.do(http.MethodPost, "/v1/colors/search", `{"query":"skyblue"}`)
	expectStatus(t, rec, http.StatusOK)
	got := decodeBody[searchResponse](t, rec)
	if !got.Applied || got.Color.Hex != "#87CEEB" || got.Color.Name != "Sky Blue" || !got.Color.Named || got.Color.Source != models.SourceSearch {
		t.Errorf("search = %+v", got)
	}

	rec = c.do(http.MethodGet, "/v1/colors/current", "")
	expectStatus(t, rec, http.StatusOK)
	current := decodeBody[models.ColorCard](t, rec)
	if current.Hex != "#87CEEB" || current.Name != "Sky Blue" {
		t.Errorf("current = %+v", current)
	}
}

func TestSearchColor_NamingUnavailable(t *testing.T) {
	names := newFakeNames(testNames)
	names.setDown(true)
	_, h := newTestApp(t, names)
	c := &testClient{t: t, h: h}

	rec := c.do(http.MethodPost, "/v1/colors/search", `{"query":"#ff5733"}`)
	expectStatus(t, rec, http.StatusOK)
	got := decodeBody[searchResponse](t, rec)
	if got.Color.Hex != "#FF5733" || got.Color.Name != resolver.LabelUnknown || got.Color.Named {
		t.Errorf("search = %+v", got)
	}
}

func TestSearchColor_Rejects(t *testing.T) {
	_, h := newTestApp(t, newFakeNames(testNames))
	c := &testClient{t: t, h: h}

	rec := c.do(http.MethodPost, "/v1/colors/search", `{"query":"notacolor"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if e := decodeBody[HandlerError](t, rec); e.ErrorName != "Unrecognized Color" {
		t.Errorf("error = %+v", e)
	}

	expectStatus(t, c.do(http.MethodPost, "/v1/colors/search", `{"query":`), http.StatusBadRequest)

	rec = c.do(http.MethodPost, "/v1/colors/search", `{"qeury":"skyblue"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if e := decodeBody[HandlerError](t, rec); e.ErrorName != "Error Parsing JSON" {
		t.Errorf("unknown field: error = %+v", e)
	}
	expectStatus(t, c.do(http.MethodGet, "/v1/colors/search", ""), http.StatusMethodNotAllowed)
}

func TestCurrentColor_NoneYet(t *testing.T) {
	_, h := newTestApp(t, newFakeNames(testNames))
	c := &testClient{t: t, h: h}

	expectStatus(t, c.do(http.MethodGet, "/v1/colors/current", ""), http.StatusNotFound)
}

func TestSearchColor_StaleLookupDiscarded(t *testing.T) {
	names := newFakeNames(testNames)
	_, h := newTestApp(t, names)
	c := &testClient{t: t, h: h}

	// Establish the session first so both requests share it.
	c.do(http.MethodGet, "/v1/palette", "")

	slow := names.hold("FF0000")
	done := make(chan searchResponse)
	go func() {
		other := &testClient{t: t, h: h, cookie: c.cookie}
		rec := other.do(http.MethodPost, "/v1/colors/search", `{"query":"red"}`)
		var resp searchResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("stale search: status %d, body %q", rec.Code, rec.Body.String())
		}
		done <- resp
	}()
	<-slow.started

	rec := c.do(http.MethodPost, "/v1/colors/search", `{"query":"blue"}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[searchResponse](t, rec); !got.Applied || got.Color.Hex != "#0000FF" {
		t.Errorf("newer search = %+v", got)
	}

	close(slow.release)
	stale := <-done
	if stale.Applied || stale.Color.Hex != "#FF0000" {
		t.Errorf("stale search = %+v, want applied=false for #FF0000", stale)
	}

	current := decodeBody[models.ColorCard](t, c.do(http.MethodGet, "/v1/colors/current", ""))
	if current.Hex != "#0000FF" || current.Name != "Blue" {
		t.Errorf("current = %+v, stale lookup overwrote newer state", current)
	}
}

func TestMixColors_Stateless(t *testing.T) {
	_, h := newTestApp(t, newFakeNames(testNames))
	c := &testClient{t: t, h: h}

	rec := c.do(http.MethodPost, "/v1/colors/mix", `{"colors":["#FF0000","#00FF00"]}`)
	expectStatus(t, rec, http.StatusOK)
	got := decodeBody[mixResponse](t, rec)
	if got.Mix.Color.Hex() != "#808000" || got.Color.Name != resolver.LabelMixed {
		t.Errorf("mix = %+v", got)
	}
	if len(got.Mix.SourceColors) != 2 || got.Mix.SourceColors[1].Hex() != "#00FF00" {
		t.Errorf("sources = %v", got.Mix.SourceColors)
	}
	if c.cookie != nil {
		t.Error("stateless mix started a session")
	}

	for _, body := range []string{
		`{"colors":["#FF0000"]}`,
		`{"colors":[]}`,
		`{"colors":["#FF0000","#00FF00","#0000FF","#FFFFFF"]}`,
	} {
		rec := c.do(http.MethodPost, "/v1/colors/mix", body)
		expectStatus(t, rec, http.StatusBadRequest)
		if e := decodeBody[HandlerError](t, rec); e.ErrorName != "Invalid Mix" {
			t.Errorf("%s: error = %+v", body, e)
		}
	}

	expectStatus(t, c.do(http.MethodPost, "/v1/colors/mix", `{"colors":["#FF0000","bogus"]}`), http.StatusBadRequest)

	rec = c.do(http.MethodPost, "/v1/colors/mix", `{"colours":["#FF0000","#00FF00"]}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if e := decodeBody[HandlerError](t, rec); e.ErrorName != "Error Parsing JSON" {
		t.Errorf("unknown field: error = %+v", e)
	}
}
