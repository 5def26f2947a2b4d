package main

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sherbolotarbaev/portfolio/internal/contact"
	"github.com/sherbolotarbaev/portfolio/internal/profile"
)

func (s *server) handleHome(c *gin.Context) {
	experiences, err := profile.FormatExperiences(profile.Experiences, time.Now())
	if err != nil {
		log.Printf("Error formatting experiences: %v", err)
	}

	rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	s.render(c, http.StatusOK, "index.html", gin.H{
		"title":             profile.Owner.Title,
		"description":       profile.Owner.Description,
		"hero":              HeroText,
		"projects":          profile.VisibleProjects(profile.Projects, false),
		"hasMoreProjects":   profile.HasMoreProjects(profile.Projects),
		"showAllProjects":   false,
		"experiences":       experiences,
		"logoColumns":       profile.DistributeLogos(profile.Logos, profile.CarouselColumns, rnd),
		"posts":             s.posts.All(),
		"projectsHeading":   ProjectsHeading,
		"experienceHeading": ExperienceHeading,
		"skillsHeading":     SkillsHeading,
		"blogHeading":       BlogHeading,
		"connectHeading":    ConnectHeading,
		"connectText":       ConnectText,
	})
}

// handleProjects returns the project list fragment, fully expanded with ?all=1.
func (s *server) handleProjects(c *gin.Context) {
	all := c.Query("all") == "1"
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"projects":        profile.VisibleProjects(profile.Projects, all),
		"hasMoreProjects": profile.HasMoreProjects(profile.Projects),
		"showAllProjects": all,
	})
}

func (s *server) handleBlogList(c *gin.Context) {
	s.render(c, http.StatusOK, "blog.html", gin.H{
		"title":       BlogHeading,
		"description": "Notes on backend engineering, Nest.js and the tools around it.",
		"canonical":   "/blog",
		"posts":       s.posts.All(),
	})
}

func (s *server) handleBlogPost(c *gin.Context) {
	post, ok := s.posts.BySlug(c.Param("slug"))
	if !ok {
		s.render(c, http.StatusNotFound, "404.html", gin.H{
			"title":   "Not found",
			"message": NotFoundText,
		})
		return
	}

	body, err := post.Body()
	if err != nil {
		log.Printf("Error reading post %s: %v", post.Slug, err)
		s.render(c, http.StatusInternalServerError, "error.html", gin.H{"title": "Error"})
		return
	}
	doc, err := s.renderer.Render(body)
	if err != nil {
		log.Printf("Error rendering post %s: %v", post.Slug, err)
		s.render(c, http.StatusInternalServerError, "error.html", gin.H{"title": "Error"})
		return
	}

	ctx := c.Request.Context()
	if c.GetHeader("DNT") != "1" {
		if err := s.store.IncrementPostView(ctx, post.Slug, time.Now()); err != nil {
			log.Printf("Error counting view: %v", err)
		}
	}
	views, err := s.store.PostViews(ctx, post.Slug)
	if err != nil {
		log.Printf("Error reading views: %v", err)
	}

	meta := post.Meta(s.cfg.SiteURL)
	s.render(c, http.StatusOK, "post.html", gin.H{
		"title":       meta.Title,
		"description": meta.Description,
		"canonical":   meta.Canonical,
		"meta":        meta,
		"jsonLD":      post.JSONLD(s.cfg.SiteURL),
		"post":        post,
		"doc":         doc,
		"views":       views,
	})
}

// handleContactForm returns the first step of the contact form.
func (s *server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
		"step":  "email",
	})
}

// handleContactEmail validates the email step and moves on to the message.
func (s *server) handleContactEmail(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if err := contact.ValidateEmail(email); err != nil {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"step":  "email",
			"email": email,
			"error": reasonOf(err),
		})
		return
	}
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"step":  "message",
		"email": email,
	})
}

func (s *server) handleContactSubmit(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": "Invalid form submission"})
		return
	}

	msg, err := contact.NewMessage(form, time.Now())
	if err != nil {
		var fe *contact.FieldError
		step := "message"
		if errors.As(err, &fe) && fe.Field == "email" {
			step = "email"
		}
		form = form.Normalize()
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"step":    step,
			"email":   form.Email,
			"message": form.Message,
			"error":   reasonOf(err),
		})
		return
	}
	msg.HashedIP = s.store.HashIP(c.ClientIP())

	res := s.contact.Submit(c.Request.Context(), msg)
	if !res.OK() {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error":   res.Reason,
			"timings": profile.DefaultTimings,
		})
		return
	}
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": ContactSuccess,
		"timings": profile.DefaultTimings,
	})
}

func reasonOf(err error) string {
	var fe *contact.FieldError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return "Invalid input"
}

func (s *server) handleChromaCSS(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(s.chromaCSS))
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *server) handleSitemap(c *gin.Context) {
	sm := sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: s.cfg.SiteURL + "/"},
			{Loc: s.cfg.SiteURL + "/blog"},
		},
	}
	for _, p := range s.posts.All() {
		u := sitemapURL{Loc: s.cfg.SiteURL + p.Link}
		if !p.Date.IsZero() {
			u.LastMod = p.Date.Format("2006-01-02")
		}
		sm.URLs = append(sm.URLs, u)
	}

	out, err := xml.MarshalIndent(sm, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "sitemap: %v", err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

func (s *server) handleRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", s.cfg.SiteURL)
}

func (s *server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": fmt.Sprint(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "posts": len(s.posts.All())})
}
