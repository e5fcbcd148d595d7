// SPDX-License-Identifier: MIT

package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/folio/internal/experience"
)

// Document is the typed view of the portfolio tree.
type Document struct {
	Site           Site                `json:"site"`
	Personal       Personal            `json:"personal"`
	Links          Links               `json:"links"`
	Experience     []ExperienceRecord  `json:"experience"`
	Projects       []Project           `json:"projects"`
	Skills         map[string][]string `json:"skills"`
	Education      []Education         `json:"education"`
	Certifications []Certification     `json:"certifications"`
	Contact        Contact             `json:"contact"`
}

type Site struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

type Personal struct {
	Name            string              `json:"name"`
	Role            string              `json:"role"`
	Location        string              `json:"location"`
	Email           string              `json:"email"`
	ExperienceYears experience.Override `json:"experienceYears"`
}

type Links struct {
	Email      string `json:"email"`
	LinkedIn   string `json:"linkedin"`
	GitHub     string `json:"github"`
	HackerRank string `json:"hackerrank"`
	CodeChef   string `json:"codechef"`
	Portfolio  string `json:"portfolio"`
	Resume     string `json:"resume"`
}

// ExperienceRecord is one timeline entry. Status "current" marks the
// present role.
type ExperienceRecord struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Subtitle     string   `json:"subtitle"`
	Period       string   `json:"period"`
	Status       string   `json:"status"`
	Achievements []string `json:"achievements"`
}

// Current reports whether this is the present role.
func (r ExperienceRecord) Current() bool { return r.Status == "current" }

type Project struct {
	Title        string   `json:"title"`
	Status       string   `json:"status"`
	Description  string   `json:"description"`
	Period       string   `json:"period"`
	Impact       string   `json:"impact"`
	Highlights   []string `json:"highlights"`
	Features     []string `json:"features"`
	Technologies []string `json:"technologies"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type Certification struct {
	Name     string `json:"certification"`
	Issuer   string `json:"issuer"`
	Category string `json:"category"`
}

type Contact struct {
	Copyright string `json:"copyright"`
	Version   string `json:"version"`
}

// Decode builds the typed view of tree. Fields whose JSON type does not
// match are left zero and reported in the returned error; the rest of the
// document is still decoded.
func Decode(tree map[string]any) (Document, error) {
	var doc Document
	data, err := json.Marshal(tree)
	if err != nil {
		return doc, fmt.Errorf("encode tree: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return doc, fmt.Errorf("field %s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
		}
		return doc, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// ExperienceRecords adapts the timeline for the estimator.
func (d Document) ExperienceRecords() []experience.Record {
	out := make([]experience.Record, 0, len(d.Experience))
	for _, r := range d.Experience {
		out = append(out, experience.Record{Period: r.Period})
	}
	return out
}

// EstimateExperience computes the years-of-experience figure as of now.
func (d Document) EstimateExperience(now time.Time) experience.Result {
	return experience.Estimate(d.Personal.ExperienceYears, d.ExperienceRecords(), now)
}
