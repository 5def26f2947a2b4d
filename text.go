package main

import (
	"html/template"

	"github.com/sherbolotarbaev/portfolio/internal/profile"
)

// Copy shown on the home page.
var (
	HeroText = template.HTML(`I'm a software engineer 🇰🇬, problem solver, and optimist 😎. I work at ` +
		`<a class="link-preview" href="` + profile.HeroLinks["wedevx"] + `">WEDEVX</a>, where I design and build ` +
		`backend infrastructures and microservices using ` +
		`<a class="link-preview" href="` + profile.HeroLinks["nest"] + `">Nest.js</a> and ` +
		`<a class="link-preview" href="` + profile.HeroLinks["fastify"] + `">Fastify</a>.`)

	ProjectsHeading   = "Projects"
	ExperienceHeading = "Experience"
	SkillsHeading     = "Skills"
	BlogHeading       = "Blog"
	ConnectHeading    = "Connect"

	ConnectText = "Feel free to contact me at"

	NotFoundText = "Page could not be found"

	ContactSuccess = "Thank you for reaching out!"
)
