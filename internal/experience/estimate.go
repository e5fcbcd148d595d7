// SPDX-License-Identifier: MIT

package experience

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultYears is reported when neither an override nor any year token exists.
const DefaultYears = 2

// yearToken matches whole four-digit tokens in 1900-2099.
// \b keeps "30000" and "FY2020" from matching.
var yearToken = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// Source records how an estimate was produced.
type Source string

const (
	SourceOverride Source = "override"
	SourceInferred Source = "inferred"
	SourceDefault  Source = "default"
)

// Override is the optional personal.experienceYears value. The document is
// hand-written JSON, so both 5 and "5" are accepted; other JSON types are
// treated as absent.
type Override struct {
	raw   string
	num   float64
	isNum bool
}

// NewOverride builds a numeric override.
func NewOverride(v float64) Override {
	return Override{raw: strconv.FormatFloat(v, 'f', -1, 64), num: v, isNum: true}
}

// NewTextOverride builds an override from free text, e.g. "10".
func NewTextOverride(s string) Override {
	return Override{raw: s}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Override) UnmarshalJSON(data []byte) error {
	*o = Override{}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*o = NewOverride(t)
	case string:
		*o = NewTextOverride(t)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Override) MarshalJSON() ([]byte, error) {
	switch {
	case o.isNum:
		return json.Marshal(o.num)
	case o.raw != "":
		return json.Marshal(o.raw)
	default:
		return []byte("null"), nil
	}
}

// Set reports whether the override is present and truthy: a non-zero
// number or a non-empty string.
func (o Override) Set() bool {
	if o.isNum {
		return o.num != 0 && !math.IsNaN(o.num)
	}
	return o.raw != ""
}

// String returns the override exactly as written.
func (o Override) String() string {
	return o.raw
}

// Record is the slice of an experience entry the estimator reads.
type Record struct {
	Period string
}

// Result is the value shown as "{Label}+".
type Result struct {
	// Years is the integer estimate. For a non-numeric text override it is
	// zero and Label carries the text.
	Years  int
	Label  string
	Source Source
}

// Display renders the estimate the way the hero section shows it.
func (e Result) Display() string {
	return e.Label + "+"
}

// Estimate produces the figure for the given override and records, relative
// to now's calendar year. It never fails.
func Estimate(override Override, records []Record, now time.Time) Result {
	if override.Set() {
		return fromOverride(override)
	}

	years := ExtractYears(records)
	if len(years) == 0 {
		return Result{Years: DefaultYears, Label: strconv.Itoa(DefaultYears), Source: SourceDefault}
	}

	latest := years[0]
	for _, y := range years[1:] {
		latest = max(latest, y)
	}
	n := now.Year() - latest
	return Result{Years: n, Label: strconv.Itoa(n), Source: SourceInferred}
}

// ExtractYears returns every year token found across all periods, in order.
// Records without a period contribute nothing.
func ExtractYears(records []Record) []int {
	var out []int
	for _, r := range records {
		if r.Period == "" {
			continue
		}
		for _, tok := range yearToken.FindAllString(r.Period, -1) {
			y, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			out = append(out, y)
		}
	}
	return out
}

func fromOverride(o Override) Result {
	est := Result{Label: o.String(), Source: SourceOverride}
	if o.isNum {
		est.Years = int(o.num)
		return est
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(o.raw), 64); err == nil {
		est.Years = int(f)
	}
	return est
}

// String implements fmt.Stringer for log lines.
func (e Result) String() string {
	return fmt.Sprintf("%s (%s)", e.Display(), e.Source)
}
