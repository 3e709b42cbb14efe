// Package server serves the dashboard backend: the JSON endpoints read by the
// dashboard loaders, server side rendered pages and SVG charts.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/pigro"
	"github.com/etnz/pigro/dashboard"
	"github.com/etnz/pigro/docs"
	"github.com/etnz/pigro/market"
	"github.com/etnz/pigro/plot"
	"github.com/etnz/pigro/renderer"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Size of the SVG charts.
const (
	chartWidth  = 1024
	chartHeight = 400
)

// Server is an http.Handler serving a Market.
type Server struct {
	market *market.Market
	pages  map[string]*template.Template
	engine *gin.Engine
}

// New returns a server for m.
func New(m *market.Market) (*Server, error) {
	s := &Server{market: m, pages: make(map[string]*template.Template)}
	for _, page := range []string{"single", "combined", "doc"} {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("cannot parse page %s: %w", page, err)
		}
		s.pages[page] = t
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/api/data", s.data)
	r.GET("/api/combined", s.combined)
	r.GET("/chart/data.svg", s.dataChart)
	r.GET("/chart/aggregate.svg", s.combinedChart(dashboard.AggregateChart))
	r.GET("/chart/breakdown.svg", s.combinedChart(dashboard.BreakdownChart))
	r.GET("/", s.singlePage)
	r.GET("/combined", s.combinedPage)
	r.GET("/docs/:topic", s.docPage)
	s.engine = r
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.engine.ServeHTTP(w, r) }

// Run listens on addr and serves until it fails.
func (s *Server) Run(addr string) error {
	log.Printf("serving on %s", addr)
	return s.engine.Run(addr)
}

func (s *Server) query(c *gin.Context) (asset, freq string) {
	cfg := s.market.Config()
	asset = strings.ToLower(c.DefaultQuery("asset", cfg.DefaultAsset))
	freq = strings.ToLower(c.DefaultQuery("freq", cfg.DefaultFreq))
	return asset, freq
}

// apiError answers {"error": msg}: 400 for an unknown asset, 500 otherwise.
func apiError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, market.ErrUnknownAsset) {
		status = http.StatusBadRequest
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL, err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) data(c *gin.Context) {
	resp, err := s.market.Series(s.query(c))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) combined(c *gin.Context) {
	_, freq := s.query(c)
	resp, err := s.market.Combined(freq)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) dataChart(c *gin.Context) {
	resp, err := s.market.Series(s.query(c))
	if err != nil {
		apiError(c, err)
		return
	}
	s.svg(c, dashboard.SingleChart(resp))
}

func (s *Server) combinedChart(chart func(pigro.CombinedResponse) dashboard.ChartConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, freq := s.query(c)
		resp, err := s.market.Combined(freq)
		if err != nil {
			apiError(c, err)
			return
		}
		s.svg(c, chart(resp))
	}
}

func (s *Server) svg(c *gin.Context, config dashboard.ChartConfig) {
	var buf bytes.Buffer
	if err := plot.Render(&buf, config, plot.SVG, chartWidth, chartHeight); err != nil {
		apiError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

type singlePage struct {
	Title  string
	Asset  string
	Freq   string
	Assets []string
	Freqs  []string
	Status string

	ChartURL string
	Config   template.JS
}

func (s *Server) singlePage(c *gin.Context) {
	asset, freq := s.query(c)
	page := singlePage{
		Title:  "Andamento " + strings.ToUpper(asset),
		Asset:  asset,
		Freq:   freq,
		Assets: s.market.Assets(),
		Freqs:  freqs(),
	}
	resp, err := s.market.Series(asset, freq)
	if err == nil {
		page.Config, err = chartJSON(dashboard.SingleChart(resp))
	}
	if err != nil {
		log.Printf("single page: %v", err)
		page.Status = dashboard.SingleErrorMessage
	} else {
		page.ChartURL = "/chart/data.svg?" + url.Values{"asset": {asset}, "freq": {freq}}.Encode()
	}
	s.render(c, "single", page)
}

type combinedPage struct {
	Title  string
	Freq   string
	Freqs  []string
	Status string

	AggregateNote, BreakdownNote     string
	AggregateURL, BreakdownURL       string
	AggregateConfig, BreakdownConfig template.JS
	Summary                          template.HTML
}

func (s *Server) combinedPage(c *gin.Context) {
	_, freq := s.query(c)
	page := combinedPage{Title: "Portafoglio pigro", Freq: freq, Freqs: freqs()}
	if err := s.fillCombined(&page); err != nil {
		log.Printf("combined page: %v", err)
		page = combinedPage{Title: page.Title, Freq: freq, Freqs: page.Freqs, Status: dashboard.CombinedErrorMessage}
	}
	s.render(c, "combined", page)
}

func (s *Server) fillCombined(page *combinedPage) error {
	resp, err := s.market.Combined(page.Freq)
	if err != nil {
		return err
	}
	if page.AggregateConfig, err = chartJSON(dashboard.AggregateChart(resp)); err != nil {
		return err
	}
	if page.BreakdownConfig, err = chartJSON(dashboard.BreakdownChart(resp)); err != nil {
		return err
	}
	summary, err := docs.HTML(renderer.RenderCombined(resp))
	if err != nil {
		return err
	}
	// goldmark escapes raw HTML, the summary is safe.
	page.Summary = template.HTML(summary)
	page.AggregateNote, page.BreakdownNote = resp.Annotations()
	query := url.Values{"freq": {page.Freq}}.Encode()
	page.AggregateURL = "/chart/aggregate.svg?" + query
	page.BreakdownURL = "/chart/breakdown.svg?" + query
	return nil
}

type docPage struct {
	Title string
	Body  template.HTML
}

func (s *Server) docPage(c *gin.Context) {
	topic := c.Param("topic")
	content, err := docs.GetTopic(topic)
	if err != nil {
		c.String(http.StatusNotFound, "%v", err)
		return
	}
	body, err := docs.HTML(content)
	if err != nil {
		c.String(http.StatusInternalServerError, "%v", err)
		return
	}
	s.render(c, "doc", docPage{Title: topic, Body: template.HTML(body)})
}

func (s *Server) render(c *gin.Context, page string, data any) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("cannot render page %s: %v", page, err)
		c.String(http.StatusInternalServerError, "cannot render page %s", page)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func chartJSON(config dashboard.ChartConfig) (template.JS, error) {
	data, err := json.Marshal(config)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}

func freqs() []string {
	var names []string
	for _, p := range pigro.Periods {
		names = append(names, p.String())
	}
	return names
}
