// SPDX-License-Identifier: MIT

package render

import (
	"testing"
	"time"

	"github.com/ManuGH/folio/internal/portfolio"
	"github.com/ManuGH/folio/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var in2024 = time.Date(2024, time.March, 10, 6, 30, 15, 0, time.UTC)

func sampleDoc() portfolio.Document {
	return portfolio.Document{
		Site:     portfolio.Site{Description: "Backend engineer"},
		Personal: portfolio.Personal{Name: "Jane Doe", Role: "Engineer", Location: "Pune"},
		Links: portfolio.Links{
			GitHub:   "https://github.com/jane",
			Email:    "mailto:jane@example.com",
			LinkedIn: "https://linkedin.com/in/jane",
			Resume:   "docs/resume.pdf",
		},
		Experience: []portfolio.ExperienceRecord{
			{Title: "Senior", Period: "2022 - Present", Status: "current"},
			{Title: "Junior", Period: "Jan 2018 - Dec 2020"},
		},
		Projects: []portfolio.Project{
			{Title: "A", Status: "production"},
			{Title: "B", Status: "beta"},
			{Title: "C"},
		},
		Skills: map[string][]string{"languages": {"Go", "SQL"}, "practices": {"TDD"}},
	}
}

func TestHeroName(t *testing.T) {
	assert.Equal(t, "Doe", HeroName("Jane Doe"))
	assert.Equal(t, "Q", HeroName("Jane Q Doe"))
	assert.Equal(t, "Cher", HeroName("Cher"))
	assert.Equal(t, "Jane  Doe", HeroName("Jane  Doe"))
	assert.Equal(t, "", HeroName(""))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "PRODUCTION", StatusLabel(""))
	assert.Equal(t, "BETA", StatusLabel("beta"))
	assert.Equal(t, "IN PROGRESS", StatusLabel("in progress"))
}

func TestBuild(t *testing.T) {
	p := Build(sampleDoc(), theme.Light, in2024, DefaultClock())

	assert.Equal(t, DefaultTitle, p.Title)
	assert.Equal(t, "Doe", p.HeroName)
	assert.Equal(t, "2+", p.Experience.Display())
	assert.Equal(t, DefaultVersion, p.Version)
	assert.Equal(t, "", p.Copyright)
	assert.Equal(t, ResumePath, p.ResumeURL)
	assert.Equal(t, theme.IconFor(theme.Light), p.Icon)

	require.Len(t, p.Timeline, 2)
	assert.True(t, p.Timeline[0].Current)
	assert.Equal(t, "cogs", p.Timeline[0].Icon)
	assert.Equal(t, "code", p.Timeline[1].Icon)

	require.Len(t, p.Projects, 3)
	assert.Equal(t, []string{"rocket", "cogs", "cogs"},
		[]string{p.Projects[0].StatusIcon, p.Projects[1].StatusIcon, p.Projects[2].StatusIcon})
	assert.Equal(t, "PRODUCTION", p.Projects[2].StatusLabel)

	require.Len(t, p.Skills, 6)
	assert.Equal(t, "languages", p.Skills[0].Key)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills[0].Skills)
	assert.Empty(t, p.Skills[1].Skills)
	assert.Equal(t, "Engineering Practices", p.Skills[5].Title)

	var keys []string
	for _, s := range p.Social {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"email", "linkedin", "github"}, keys)

	assert.Equal(t, Metrics, p.Metrics)
}

func TestBuild_NoResume(t *testing.T) {
	doc := sampleDoc()
	doc.Links.Resume = ""
	assert.Empty(t, Build(doc, theme.Dark, in2024, DefaultClock()).ResumeURL)
}

func TestClock(t *testing.T) {
	c := DefaultClock().At(in2024)
	assert.Equal(t, "12:00:15 IST", c.Text)
	assert.Equal(t, 330, c.OffsetMinutes)

	utc := ClockConfig{Label: "UTC"}.At(in2024)
	assert.Equal(t, "06:30:15 UTC", utc.Text)
}
