package profile

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sherbolotarbaev/portfolio/internal/markup"
)

// Present marks an ongoing period.
const Present = "Present"

const dateLayout = "2006-01-02"

type Period struct {
	StartDate string
	EndDate   string
}

type Position struct {
	Title       string
	Period      Period
	Type        string // full-time, part-time, internship, freelance
	Description string // may contain <br/>
	Covers      []string
	Skills      []string
}

type Experience struct {
	Company   string
	Duration  Period
	Location  string
	Type      string // remote, on-site, hybrid
	URL       string
	Positions []Position
}

// FormattedPeriod is a period ready for display.
type FormattedPeriod struct {
	Start    string
	End      string
	Duration string
}

type FormattedPosition struct {
	Position
	Period      FormattedPeriod
	Description template.HTML
}

type FormattedExperience struct {
	Company   string
	Location  string
	Type      string
	URL       string
	Duration  FormattedPeriod
	Positions []FormattedPosition
}

var Experiences = []Experience{
	{
		Company:  "PeopleUp",
		Type:     "remote",
		Duration: Period{StartDate: "2025-06-01", EndDate: Present},
		Location: "San Francisco, United States",
		URL:      "https://www.peopleup.ai",
		Positions: []Position{
			{
				Title:  "Senior Software Engineer",
				Period: Period{StartDate: "2025-06-01", EndDate: Present},
				Type:   "full-time",
			},
		},
	},
	{
		Company:  "WEDEVX",
		Type:     "remote",
		Duration: Period{StartDate: "2023-06-01", EndDate: "2025-06-01"},
		Location: "Chicago, United States",
		URL:      "https://www.wedevx.co",
		Positions: []Position{
			{
				Title:  "Lead Software Development Engineer",
				Period: Period{StartDate: "2025-02-01", EndDate: "2025-06-01"},
				Type:   "full-time",
			},
			{
				Title:  "Software Development Engineer II",
				Period: Period{StartDate: "2024-02-01", EndDate: "2025-06-01"},
				Description: `Led development of NestJS microservices, increasing system performance by 99% through batching and Prisma optimizations. Improved query efficiency by refining system architecture, reducing database processing time from 7 minutes to 7 seconds.<br/><br/>` +
					`(WEDEVX AI) Built an AI assistant that helps solve exercises, tracks progress, and provides personalized support.<br/><br/>` +
					`Contributed to the development of an AI recruitment engine to source, vet, and hire top engineering talent using AI-driven job simulations, streamlining recruitment processes.`,
				Covers: []string{"/images/wedevx.png", "/images/wedevx-4.png"},
				Skills: []string{"Systems Design", "Code Review", "Nest.js", "Microservices", "Leadership", "Docker", "Kubernetes", "Amazon Web Services (AWS)", "Prisma ORM"},
				Type:   "full-time",
			},
			{
				Title:  "Software Development Engineer",
				Period: Period{StartDate: "2023-06-01", EndDate: "2024-02-01"},
				Description: `Architected and optimized backend systems for a tech-focused educational platform.<br/><br/>` +
					`Engineered backend systems with NestJS, Fastify, and PostgreSQL, achieving a 38% performance boost. Integrated AWS services, enhancing security and scalability. Implemented quizzes generating 800+ leads, driving user engagement.`,
				Covers: []string{"/images/wedevx-2.png", "/images/wedevx-3.png"},
				Skills: []string{"Problem Solving", "PostgreSQL", "Supabase", "Typescript", "API Design", "Fastify", "Nest.js", "Docker", "Amazon S3", "Code Review"},
				Type:   "full-time",
			},
		},
	},
	{
		Company:  "Mancho",
		Type:     "on-site",
		Duration: Period{StartDate: "2021-05-01", EndDate: "2023-05-01"},
		Location: "Bishkek, Kyrgyzstan",
		URL:      "https://www.mancho.dev",
		Positions: []Position{
			{
				Title:       "NodeJS Backend Developer",
				Period:      Period{StartDate: "2022-09-01", EndDate: "2023-05-01"},
				Description: "Developed scalable Node.js backend services and RESTful APIs, optimizing performance and ensuring reliable database integration.",
				Covers:      []string{"/images/mancho-2.png"},
				Skills:      []string{"Node.js", "Express.js", "MongoDB", "Amazon Dynamodb", "Elasticsearch", "Amazon Web Services (AWS)", "Docker", "Amazon S3"},
				Type:        "full-time",
			},
			{
				Title:       "Frontend Developer",
				Period:      Period{StartDate: "2021-08-01", EndDate: "2022-09-01"},
				Description: "Optimized cross-platform websites with React, Next.js, and TypeScript, improving performance by 40%. Applied caching strategies to reduce page load times.",
				Covers:      []string{"/images/mancho.png"},
				Skills:      []string{"React", "Next.js", "Redux", "TypeScript"},
				Type:        "full-time",
			},
			{
				Title:       "Intern Frontend Developer",
				Period:      Period{StartDate: "2021-05-01", EndDate: "2021-08-01"},
				Description: "Assisted in frontend development with React and JavaScript, gaining hands-on experience with modern practices.",
				Skills:      []string{"TypeScript", "React", "SASS"},
				Type:        "internship",
			},
		},
	},
}

// FormatExperiences resolves dates and durations for display. Ongoing periods
// are measured up to now.
func FormatExperiences(exps []Experience, now time.Time) ([]FormattedExperience, error) {
	out := make([]FormattedExperience, 0, len(exps))
	for _, e := range exps {
		total, err := FormatPeriod(e.Duration, now)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Company, err)
		}

		positions := make([]FormattedPosition, 0, len(e.Positions))
		for _, p := range e.Positions {
			period, err := FormatPeriod(p.Period, now)
			if err != nil {
				return nil, fmt.Errorf("%s / %s: %w", e.Company, p.Title, err)
			}
			positions = append(positions, FormattedPosition{
				Position:    p,
				Period:      period,
				Description: markup.Sanitize(p.Description),
			})
		}

		out = append(out, FormattedExperience{
			Company:   e.Company,
			Location:  e.Location,
			Type:      e.Type,
			URL:       e.URL,
			Duration:  total,
			Positions: positions,
		})
	}
	return out, nil
}

// FormatPeriod renders p as "Jan 2006" bounds and a "1 yr 2 mos" duration.
func FormatPeriod(p Period, now time.Time) (FormattedPeriod, error) {
	start, err := time.Parse(dateLayout, p.StartDate)
	if err != nil {
		return FormattedPeriod{}, fmt.Errorf("parsing start date: %w", err)
	}

	end := now
	endLabel := Present
	if p.EndDate != Present {
		end, err = time.Parse(dateLayout, p.EndDate)
		if err != nil {
			return FormattedPeriod{}, fmt.Errorf("parsing end date: %w", err)
		}
		endLabel = end.Format("Jan 2006")
	}

	years, months := monthsBetween(start, end)
	return FormattedPeriod{
		Start:    start.Format("Jan 2006"),
		End:      endLabel,
		Duration: formatDuration(years, months),
	}, nil
}

// monthsBetween counts whole calendar months by year and month only; the day
// of month is ignored.
func monthsBetween(start, end time.Time) (years, months int) {
	years = end.Year() - start.Year()
	months = int(end.Month()) - int(start.Month())
	if months < 0 {
		years--
		months += 12
	}
	return years, months
}

func formatDuration(years, months int) string {
	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", years, plural(years, "yr")))
	}
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", months, plural(months, "mo")))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}
