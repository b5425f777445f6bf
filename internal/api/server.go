package api

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"site-widgets/internal/settings"
	"site-widgets/internal/weather"
	"site-widgets/internal/widget"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router   *gin.Engine
	server   *http.Server
	port     int
	settings *settings.Store
	gateway  *weather.Gateway
	weather  *widget.WeatherWidget
	news     *widget.NewsWidget
	expander *widget.TagExpander
}

type ServerConfig struct {
	Port          int
	Settings      *settings.Store
	Gateway       *weather.Gateway
	WeatherWidget *widget.WeatherWidget
	NewsWidget    *widget.NewsWidget
	AdminUser     string
	AdminPassword string
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:   router,
		port:     cfg.Port,
		settings: cfg.Settings,
		gateway:  cfg.Gateway,
		weather:  cfg.WeatherWidget,
		news:     cfg.NewsWidget,
		expander: widget.NewTagExpander(cfg.WeatherWidget, cfg.NewsWidget),
	}

	s.setupRoutes(cfg.AdminUser, cfg.AdminPassword)
	return s
}

func (s *Server) setupRoutes(adminUser, adminPassword string) {
	tmpl := template.Must(template.New("pages").Parse(settingsPage))
	template.Must(tmpl.Parse(previewPage))
	s.router.SetHTMLTemplate(tmpl)

	s.router.GET("/health", s.healthHandler)

	s.router.GET("/widgets/weather", s.weatherWidgetHandler)
	s.router.GET("/widgets/news", s.newsWidgetHandler)
	s.router.GET("/preview", s.previewHandler)
	s.router.GET("/static/widgets.css", s.stylesheetHandler)

	// The admin surface is only reachable with credentials; without a
	// configured password it stays unregistered entirely.
	if adminPassword == "" {
		log.Println("Warning: admin password not configured, admin routes disabled")
		return
	}

	admin := s.router.Group("/admin", gin.BasicAuth(gin.Accounts{
		adminUser: adminPassword,
	}))
	{
		admin.GET("/settings", s.settingsPageHandler)
		admin.POST("/settings", s.updateSettingsHandler)
		admin.POST("/cache/clear", s.clearCacheHandler)
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	log.Printf("widget server starting on port %d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

func (s *Server) weatherWidgetHandler(c *gin.Context) {
	markup := s.weather.Render(c.Request.Context(), c.Query("city"))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

func (s *Server) newsWidgetHandler(c *gin.Context) {
	markup := s.news.Render(c.Query("height"))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

// previewHandler assembles a demo page from embed-tag content, the way a host
// page would. The stylesheet is linked only when the content actually embeds
// a widget.
func (s *Server) previewHandler(c *gin.Context) {
	content := c.Query("content")
	if content == "" {
		content = "[site_weather]\n[news_feed height=\"600px\"]"
	}

	expanded := s.expander.Expand(c.Request.Context(), content)
	c.HTML(http.StatusOK, "preview.html", gin.H{
		"IncludeStylesheet": widget.ContainsTag(content),
		"Content":           template.HTML(expanded),
	})
}

func (s *Server) stylesheetHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(widgetStylesheet))
}

func (s *Server) settingsPageHandler(c *gin.Context) {
	cfg := s.settings.Current()
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"Settings":     cfg,
		"HasAPIKey":    cfg.APIKey != "",
		"CacheCleared": c.Query("cache_cleared") == "1",
		"Saved":        c.Query("saved") == "1",
	})
}

// updateSettingsHandler applies a validated settings write. Unparseable or
// out-of-range fields revert to the previous or default value instead of
// failing the whole write.
func (s *Server) updateSettingsHandler(c *gin.Context) {
	cur := s.settings.Current()
	next := cur

	next.APIKey = c.PostForm("api_key")
	next.LocationName = c.PostForm("location_name")

	if v, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("latitude")), 64); err == nil {
		next.Latitude = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("longitude")), 64); err == nil {
		next.Longitude = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(c.PostForm("forecast_days"))); err == nil {
		next.ForecastDays = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(c.PostForm("cache_duration"))); err == nil {
		next.CacheDuration = v
	}

	if _, err := s.settings.Update(next); err != nil {
		c.String(http.StatusInternalServerError, "Einstellungen konnten nicht gespeichert werden: %v", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/settings?saved=1")
}

func (s *Server) clearCacheHandler(c *gin.Context) {
	if err := s.gateway.ClearCache(); err != nil {
		c.String(http.StatusInternalServerError, "Cache konnte nicht gelöscht werden: %v", err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/settings?cache_cleared=1")
}
