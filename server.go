package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sherbolotarbaev/portfolio/internal/blog"
	"github.com/sherbolotarbaev/portfolio/internal/config"
	"github.com/sherbolotarbaev/portfolio/internal/contact"
	"github.com/sherbolotarbaev/portfolio/internal/markup"
	"github.com/sherbolotarbaev/portfolio/internal/profile"
	"github.com/sherbolotarbaev/portfolio/internal/store"
)

// server holds everything the HTTP handlers need.
type server struct {
	cfg      *config.Config
	posts    *blog.Index
	renderer *markup.Renderer
	store    *store.Store
	contact  *contact.Service

	chromaCSS  string
	adminToken string
}

func newServer(cfg *config.Config, posts *blog.Index, st *store.Store) (*server, error) {
	renderer := markup.NewRenderer(markup.NewHighlighter("", ""))
	css, err := renderer.Highlighter().CSS()
	if err != nil {
		return nil, fmt.Errorf("building highlight css: %w", err)
	}

	var sender contact.Sender
	if cfg.SMTPConfigured() {
		sender = contact.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ToEmail)
	} else {
		log.Println("contact: SMTP credentials not configured, messages are only stored")
	}

	return &server{
		cfg:        cfg,
		posts:      posts,
		renderer:   renderer,
		store:      st,
		contact:    contact.NewService(st, sender),
		chromaCSS:  css,
		adminToken: randomToken(),
	}, nil
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("failed to generate token: ", err)
	}
	return hex.EncodeToString(b)
}

// routes builds the gin engine.
func (s *server) routes() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(requestIDMiddleware(), themeMiddleware(), s.visitorTrackingMiddleware())
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", staticFiles())
	r.GET("/chroma.css", s.handleChromaCSS)

	r.GET("/", s.handleHome)
	r.GET("/projects", s.handleProjects)
	r.GET("/blog", s.handleBlogList)
	r.GET("/blog/:slug", s.handleBlogPost)

	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact/email", s.handleContactEmail)
	r.POST("/contact", s.handleContactSubmit)

	r.POST("/theme", handleTheme)

	r.GET("/sitemap.xml", s.handleSitemap)
	r.GET("/robots.txt", s.handleRobots)
	r.GET("/healthz", s.handleHealth)

	s.setupAdminRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		s.render(c, http.StatusNotFound, "404.html", gin.H{
			"title":   "Not found",
			"message": NotFoundText,
		})
	})

	return r, nil
}

// render executes a template with the data every page shares.
func (s *server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["theme"] = c.GetString(themeKey)
	data["requestID"] = c.GetString(requestIDKey)
	data["siteURL"] = s.cfg.SiteURL
	data["owner"] = profile.Owner
	data["socials"] = profile.SocialLinks
	data["timings"] = profile.DefaultTimings
	data["footerWords"] = profile.FooterWords(time.Now())
	c.HTML(status, name, data)
}
