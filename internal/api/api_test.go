package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/sheet"
)

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard)
	cfg := config.Default()
	// Small pages keep the rendering tests fast.
	cfg.Page = config.PageConfig{WidthIn: 2.2, HeightIn: 1.6, DPI: 20}
	cfg.Card = config.CardConfig{WidthMM: 12.7, SourceWidthPx: 2, SourceHeightPx: 3}
	return NewEngine(NewServer(cfg, sheet.NewRunner(2, logger), logger))
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, testEngine(), http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("health = %d %s", w.Code, w.Body)
	}
}

func TestLayout(t *testing.T) {
	r := testEngine()
	body := `{"page":{"width_in":11,"height_in":8.5,"dpi":300},"card":{"width_mm":63,"gap_mm":0,"source_width_px":691,"source_height_px":1050}}`
	w := do(t, r, http.MethodPost, "/api/layout?count=20", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var resp struct {
		Grid struct {
			Rows         int `json:"rows"`
			Columns      int `json:"columns"`
			CardWidthPx  int `json:"card_width_px"`
			CardHeightPx int `json:"card_height_px"`
			Slots        []struct{ X, Y int }
		} `json:"grid"`
		Capacity int `json:"capacity"`
		Pages    int `json:"pages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Grid.Rows != 2 || resp.Grid.Columns != 4 || resp.Capacity != 8 || resp.Pages != 3 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Grid.CardWidthPx != 744 || resp.Grid.CardHeightPx != 1131 {
		t.Errorf("card px = %dx%d", resp.Grid.CardWidthPx, resp.Grid.CardHeightPx)
	}
	if len(resp.Grid.Slots) != 8 || resp.Grid.Slots[4].Y != 1131 {
		t.Errorf("slots = %+v", resp.Grid.Slots)
	}
}

func TestLayoutDefaultsAndErrors(t *testing.T) {
	r := testEngine()
	if w := do(t, r, http.MethodPost, "/api/layout", ""); w.Code != http.StatusOK {
		t.Errorf("defaults: %d %s", w.Code, w.Body)
	}

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"negative gap", "/api/layout", `{"card":{"width_mm":10,"gap_mm":-1,"source_width_px":1,"source_height_px":1}}`, http.StatusBadRequest},
		{"zero dpi", "/api/layout", `{"page":{"width_in":1,"height_in":1,"dpi":0}}`, http.StatusBadRequest},
		{"bad json", "/api/layout", `{`, http.StatusBadRequest},
		{"bad count", "/api/layout?count=x", "", http.StatusBadRequest},
		{"degenerate", "/api/layout?count=3", `{"card":{"width_mm":500,"source_width_px":1,"source_height_px":1}}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, http.MethodPost, tt.path, tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body)
			}
		})
	}
}

func TestSheet(t *testing.T) {
	w := do(t, testEngine(), http.MethodPost, "/api/sheet", `{"cards":["qr:a","qr:b","qr:c"],"background":"#ffffff"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %s", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
	if w.Header().Get("X-Page-Count") != "1" || w.Header().Get("X-Request-ID") == "" {
		t.Errorf("headers = %v", w.Header())
	}
}

func TestSheetErrors(t *testing.T) {
	r := testEngine()
	tests := []struct {
		name string
		body string
		want int
	}{
		{"no cards", `{"cards":[]}`, http.StatusBadRequest},
		{"local file refused", `{"cards":["/etc/passwd"]}`, http.StatusBadRequest},
		{"bad background", `{"cards":["qr:a"],"background":"nope"}`, http.StatusBadRequest},
		{"degenerate", `{"cards":["qr:a"],"card":{"width_mm":500,"source_width_px":1,"source_height_px":1}}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, http.MethodPost, "/api/sheet", tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body)
			}
		})
	}
}

func TestQR(t *testing.T) {
	w := do(t, testEngine(), http.MethodGet, "/api/qr?text=hello&size=64", "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("qr = %d %s", w.Code, w.Header().Get("Content-Type"))
	}
}
