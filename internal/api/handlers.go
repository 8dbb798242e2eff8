package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/document"
	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/layout"
	"github.com/youruser/cardsheet/internal/sheet"
)

// MaxSheetCards bounds one /api/sheet request.
const MaxSheetCards = 540

// Server serves layout planning and sheet rendering over HTTP. Requests
// start from Defaults and override page and card settings per call.
type Server struct {
	Defaults config.Config
	Runner   *sheet.Runner
	Logger   *log.Logger
}

func NewServer(defaults config.Config, runner *sheet.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Defaults: defaults, Runner: runner, Logger: logger}
}

// NewEngine builds a gin engine with the API routes registered.
func NewEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, s)
	return r
}

// layoutRequest overrides config values; nil fields keep the defaults.
type layoutRequest struct {
	Page *config.PageConfig `json:"page"`
	Card *config.CardConfig `json:"card"`
}

type sheetRequest struct {
	layoutRequest
	Cards      []string `json:"cards"`
	Background *string  `json:"background"`
}

type layoutResponse struct {
	Grid     layout.Grid `json:"grid"`
	Capacity int         `json:"capacity"`
	Pages    int         `json:"pages,omitempty"`
}

func (s *Server) resolve(req layoutRequest) config.Config {
	cfg := s.Defaults
	if req.Page != nil {
		cfg.Page = *req.Page
	}
	if req.Card != nil {
		cfg.Card = *req.Card
	}
	return cfg
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, layout.ErrInvalidConfiguration), errors.Is(err, config.ErrBadBackground),
		errors.Is(err, imagepkg.ErrFileRefsDisabled), errors.Is(err, imagepkg.ErrUnsupportedRef):
		return http.StatusBadRequest
	case errors.Is(err, layout.ErrDegenerateLayout):
		return http.StatusUnprocessableEntity
	case errors.Is(err, imagepkg.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// layoutHandler returns the grid for the requested page and card. With
// ?count=N it also reports how many pages N cards take.
func (s *Server) layoutHandler(c *gin.Context) {
	var req layoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	cfg := s.resolve(req)
	g, err := s.Runner.Plan(cfg.PageSpec(), cfg.CardSpec())
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := layoutResponse{Grid: g, Capacity: g.Capacity()}
	if countStr := c.Query("count"); countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a non-negative integer"})
			return
		}
		if n > 0 && g.Degenerate() {
			_, err := sheet.Paginate(g, make([]cards.Ref, n))
			s.fail(c, err)
			return
		}
		resp.Pages = layout.PageCount(n, g.Capacity())
	}
	c.JSON(http.StatusOK, resp)
}

// sheetHandler renders the requested cards (URLs or qr: refs) to a PDF.
func (s *Server) sheetHandler(c *gin.Context) {
	var req sheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Cards) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no cards"})
		return
	}
	if len(req.Cards) > MaxSheetCards {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d cards per request", MaxSheetCards)})
		return
	}

	cfg := s.resolve(req.layoutRequest)
	if req.Background != nil {
		cfg.Output.Background = *req.Background
	}
	bg, err := cfg.Background()
	if err != nil {
		s.fail(c, err)
		return
	}

	id := uuid.NewString()
	logger := s.Logger.With("request", id)
	logger.Info("rendering sheet", "cards", len(req.Cards))

	res, err := s.Runner.Compose(c.Request.Context(), sheet.Request{
		Page:       cfg.PageSpec(),
		Card:       cfg.CardSpec(),
		Refs:       cards.Refs(req.Cards...),
		Background: bg,
	})
	if err != nil {
		logger.Warn("sheet failed", "err", err)
		s.fail(c, err)
		return
	}

	buf := new(bytes.Buffer)
	if err := document.WritePDF(buf, res.Pages, cfg.PageSpec()); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("X-Request-ID", id)
	c.Header("X-Page-Count", strconv.Itoa(len(res.Pages)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// qr endpoint returns a PNG of a QR for "text" query param
func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = "deck:example"
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil && v > 0 && v <= 4096 {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
