// SPDX-License-Identifier: MIT

package render

import (
	"strings"
	"time"

	"github.com/ManuGH/folio/internal/experience"
	"github.com/ManuGH/folio/internal/portfolio"
	"github.com/ManuGH/folio/internal/theme"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTitle is used when site.title is unset.
const DefaultTitle = "Archit Verma | Portfolio"

// DefaultVersion is shown in the footer when contact.version is unset.
const DefaultVersion = "1.0.0"

// ResumePath is where the resume button points; the server resolves the
// configured link behind it.
const ResumePath = "/resume"

// Page is everything the template reads.
type Page struct {
	Title       string
	Description string

	Theme theme.Theme
	Icon  theme.Icon

	HeroName   string
	Role       string
	Location   string
	Experience experience.Result

	Timeline       []TimelineItem
	Projects       []ProjectCard
	Skills         []SkillCategory
	Education      []portfolio.Education
	Certifications []portfolio.Certification
	Metrics        []Metric
	Social         []SocialLink

	LinkedIn  string
	ResumeURL string

	Copyright string
	Version   string

	Clock Clock
}

// Clock seeds the header clock; the script keeps it ticking.
type Clock struct {
	Text          string
	Label         string
	OffsetMinutes int
}

type TimelineItem struct {
	portfolio.ExperienceRecord
	Current bool
	Icon    string
}

type ProjectCard struct {
	portfolio.Project
	StatusIcon  string
	StatusLabel string
}

type SkillCategory struct {
	Key    string
	Icon   string
	Title  string
	Skills []string
}

type Metric struct {
	Label string
	Value int
}

type SocialLink struct {
	Key   string
	Href  string
	Icon  string
	Label string
}

// SkillCategories is the fixed order of the skills grid.
var SkillCategories = []SkillCategory{
	{Key: "languages", Icon: "code", Title: "Languages"},
	{Key: "backend_frameworks", Icon: "server", Title: "Backend & Frameworks"},
	{Key: "data_database", Icon: "database", Title: "Data & Database"},
	{Key: "ai_innovation", Icon: "robot", Title: "AI & Innovation"},
	{Key: "tools_platforms", Icon: "wrench", Title: "Tools & Platforms"},
	{Key: "practices", Icon: "cogs", Title: "Engineering Practices"},
}

// Metrics are fixed; they do not come from the document.
var Metrics = []Metric{
	{Label: "BACKEND", Value: 90},
	{Label: "DATA/BI", Value: 85},
	{Label: "AI/AUTOMATION", Value: 80},
}

var socialOrder = []SocialLink{
	{Key: "email", Icon: "fas fa-envelope", Label: "Email"},
	{Key: "linkedin", Icon: "fab fa-linkedin", Label: "LinkedIn"},
	{Key: "github", Icon: "fab fa-github", Label: "GitHub"},
	{Key: "hackerrank", Icon: "fab fa-hackerrank", Label: "HackerRank"},
	{Key: "codechef", Icon: "fab fa-codepen", Label: "CodeChef"},
}

// HeroName is the second space-separated word of name, else name itself.
func HeroName(name string) string {
	parts := strings.Split(name, " ")
	if len(parts) > 1 && parts[1] != "" {
		return parts[1]
	}
	return name
}

var upper = cases.Upper(language.Und)

// StatusLabel upper-cases a project status, defaulting to PRODUCTION.
func StatusLabel(status string) string {
	if status == "" {
		status = "production"
	}
	return upper.String(status)
}

// Build assembles the page for doc in theme t at now.
func Build(doc portfolio.Document, t theme.Theme, now time.Time, clock ClockConfig) Page {
	p := Page{
		Title:          or(doc.Site.Title, DefaultTitle),
		Description:    doc.Site.Description,
		Theme:          t,
		Icon:           theme.IconFor(t),
		HeroName:       HeroName(doc.Personal.Name),
		Role:           doc.Personal.Role,
		Location:       doc.Personal.Location,
		Experience:     doc.EstimateExperience(now),
		Education:      doc.Education,
		Certifications: doc.Certifications,
		Metrics:        Metrics,
		LinkedIn:       doc.Links.LinkedIn,
		Copyright:      doc.Contact.Copyright,
		Version:        or(doc.Contact.Version, DefaultVersion),
		Clock:          clock.At(now),
	}
	if doc.Links.Resume != "" {
		p.ResumeURL = ResumePath
	}

	for _, r := range doc.Experience {
		item := TimelineItem{ExperienceRecord: r, Current: r.Current(), Icon: "code"}
		if item.Current {
			item.Icon = "cogs"
		}
		p.Timeline = append(p.Timeline, item)
	}

	for _, pr := range doc.Projects {
		card := ProjectCard{Project: pr, StatusIcon: "cogs", StatusLabel: StatusLabel(pr.Status)}
		if pr.Status == "production" {
			card.StatusIcon = "rocket"
		}
		p.Projects = append(p.Projects, card)
	}

	for _, c := range SkillCategories {
		c.Skills = doc.Skills[c.Key]
		p.Skills = append(p.Skills, c)
	}

	links := map[string]string{
		"email":      doc.Links.Email,
		"linkedin":   doc.Links.LinkedIn,
		"github":     doc.Links.GitHub,
		"hackerrank": doc.Links.HackerRank,
		"codechef":   doc.Links.CodeChef,
	}
	for _, s := range socialOrder {
		if href := links[s.Key]; href != "" {
			s.Href = href
			p.Social = append(p.Social, s)
		}
	}
	return p
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ClockConfig places the header clock in a time zone.
type ClockConfig struct {
	Zone  *time.Location
	Label string
}

// DefaultClock is India Standard Time.
func DefaultClock() ClockConfig {
	return ClockConfig{Zone: time.FixedZone("IST", 5*60*60+30*60), Label: "IST"}
}

// At formats now as "HH:MM:SS <label>".
func (c ClockConfig) At(now time.Time) Clock {
	zone := c.Zone
	if zone == nil {
		zone = time.UTC
	}
	local := now.In(zone)
	_, offset := local.Zone()
	return Clock{
		Text:          strings.TrimSpace(local.Format("15:04:05") + " " + c.Label),
		Label:         c.Label,
		OffsetMinutes: offset / 60,
	}
}
