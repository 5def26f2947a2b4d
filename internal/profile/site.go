// Package profile holds the static content of the portfolio: who the site is
// about, their work history, projects, stack and links.
package profile

import (
	"strings"
	"time"
)

// Site describes the owner of the portfolio.
type Site struct {
	Title       string
	Handle      string
	Description string
	Email       string
	Role        string
	Company     string
	CompanyURL  string
}

var Owner = Site{
	Title:       "Sher Arbaev",
	Handle:      "@sherbolotarbaev",
	Description: "Software engineer, problem solver, and optimist. Backend infrastructure, microservices and the occasional blog post.",
	Email:       "mailto:sherbolotarbaev@gmail.com",
	Role:        "Sr. Software Engineer",
	Company:     "PeopleUp",
	CompanyURL:  "https://www.peopleup.ai",
}

// EmailAddress returns the contact address without the mailto: scheme.
func (s Site) EmailAddress() string {
	return strings.TrimPrefix(s.Email, "mailto:")
}

// Link is a named external link.
type Link struct {
	Name string
	Href string
}

var SocialLinks = []Link{
	{Name: "LinkedIn", Href: "https://www.linkedin.com/in/sherbolotarbaev"},
	{Name: "GitHub", Href: "https://github.com/sherbolotarbaev"},
	{Name: "Instagram", Href: "https://www.instagram.com/sherbolotarbaev"},
	{Name: "Telegram", Href: "https://t.me/sherbolotarbaev"},
}

// HeroLinks are the link previews used inside the hero copy.
var HeroLinks = map[string]string{
	"wedevx":  "https://www.wedevx.co",
	"nest":    "https://nestjs.com",
	"fastify": "https://fastify.dev",
}

// Timings drives the client-side widgets rendered by the templates.
type Timings struct {
	TextCycle   time.Duration
	LogoCycle   time.Duration
	LogoColumn  time.Duration
	CopyReset   time.Duration
	ToastExpiry time.Duration
}

var DefaultTimings = Timings{
	TextCycle:   5 * time.Second,
	LogoCycle:   2 * time.Second,
	LogoColumn:  200 * time.Millisecond,
	CopyReset:   2 * time.Second,
	ToastExpiry: 5 * time.Second,
}

// Millis converts d for data-* attributes read by the browser.
func Millis(d time.Duration) int64 {
	return d.Milliseconds()
}

// FooterWords are cycled in the footer.
func FooterWords(now time.Time) []string {
	return []string{
		now.Format("© 2006 ") + Owner.Title + ". All rights reserved.",
		"Built with Go, Gin and goldmark.",
	}
}
