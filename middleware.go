package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"

	themeKey    = "theme"
	themeCookie = "theme"
	themeSystem = "system"
)

var themes = map[string]bool{"light": true, "dark": true, themeSystem: true}

// requestIDMiddleware tags every request with an id, reusing the caller's when
// it is a valid UUID.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// themeMiddleware exposes the theme cookie to templates.
func themeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		theme, err := c.Cookie(themeCookie)
		if err != nil || !themes[theme] {
			theme = themeSystem
		}
		c.Set(themeKey, theme)
		c.Next()
	}
}

// untrackedPrefixes are never recorded as visits.
var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin",
	"/favicon",
	"/privacy",
	"/healthz",
	"/chroma.css",
	"/robots.txt",
	"/sitemap.xml",
}

func isTracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// visitorTrackingMiddleware records page views with hashed addresses. Requests
// carrying DNT: 1 are ignored.
func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || !isTracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.TrackVisit(ctx, ip, ua, path, time.Now()); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

// handleTheme stores the theme preference and sends the browser back.
func handleTheme(c *gin.Context) {
	theme := c.PostForm("theme")
	if !themes[theme] {
		c.String(http.StatusBadRequest, "unknown theme %q", theme)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, theme, 365*24*3600, "/", "", false, false)

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, backTo(c.GetHeader("Referer")))
}

// backTo returns the local path of a referer, or "/".
func backTo(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") ||
		strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, `\`) {
		return "/"
	}
	if u.RawQuery != "" {
		return u.EscapedPath() + "?" + u.RawQuery
	}
	return u.EscapedPath()
}
