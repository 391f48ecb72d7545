// Package verdict parses the adjudicator's fixed-layout text into scores.
//
// The debate core never checks that the generation service honored the
// layout, so Parse assumes nothing: every field is optional, and a verdict
// missing any required field comes back with Overall set to Unparseable and
// the reasons listed in Problems.
package verdict

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Category is the overall judgment.
type Category string

const (
	Faithful          Category = "FAITHFUL"
	PartiallyFaithful Category = "PARTIALLY_FAITHFUL"
	Mutation          Category = "MUTATION"
	Unparseable       Category = "UNPARSEABLE"
)

// Score is one scored dimension.
type Score struct {
	Value       int    `json:"value"` // 0-100, -1 when missing
	Explanation string `json:"explanation,omitempty"`
}

// Verdict is the structured form of the adjudicator's output.
type Verdict struct {
	FactualCorrectness Score    `json:"factual_correctness"`
	TemporalAccuracy   Score    `json:"temporal_accuracy"`
	Completeness       Score    `json:"completeness"`
	Overall            Category `json:"overall"`
	Confidence         int      `json:"confidence"` // 0-100, -1 when missing
	Summary            string   `json:"summary,omitempty"`
	Problems           []string `json:"problems,omitempty"`
}

// Parsed reports whether every required field was found.
func (v Verdict) Parsed() bool {
	return v.Overall != Unparseable
}

var (
	// Leading markdown (bullets, bold, quotes) and bold around the colon are tolerated.
	scoreLine   = `(?im)^[\s*#>-]*%s\s*:[\s*]*\[?\s*(\d{1,3})\s*\]?\s*%%?\s*(?:[-–—:]\s*(.*))?$`
	factualRe   = regexp.MustCompile(fmt.Sprintf(scoreLine, `FACTUAL\s+CORRECTNESS`))
	temporalRe  = regexp.MustCompile(fmt.Sprintf(scoreLine, `TEMPORAL\s+ACCURACY`))
	completeRe  = regexp.MustCompile(fmt.Sprintf(scoreLine, `COMPLETENESS`))
	overallRe   = regexp.MustCompile(`(?im)^[\s*#>-]*OVERALL\s+VERDICT\s*:[\s*]*\[?\s*([A-Z_ -]+?)\s*\]?[.*\s]*$`)
	confidentRe = regexp.MustCompile(`(?im)^[\s*#>-]*CONFIDENCE\s*:[\s*]*\[?\s*(\d{1,3})\s*\]?\s*%?`)
	summaryRe   = regexp.MustCompile(`(?ims)^[\s*#>-]*SUMMARY\s*:[\s*]*(.*?)\s*(?:^---\s*$|\z)`)
)

// Parse extracts a Verdict from text. It never fails; problems are reported
// on the result.
func Parse(text string) Verdict {
	v := Verdict{Confidence: -1}
	var problems []string

	v.FactualCorrectness = parseScore(factualRe, text, "FACTUAL CORRECTNESS", &problems)
	v.TemporalAccuracy = parseScore(temporalRe, text, "TEMPORAL ACCURACY", &problems)
	v.Completeness = parseScore(completeRe, text, "COMPLETENESS", &problems)

	overall := Unparseable
	if m := overallRe.FindStringSubmatch(text); m != nil {
		if c, ok := ParseCategory(m[1]); ok {
			overall = c
		} else {
			problems = append(problems, fmt.Sprintf("OVERALL VERDICT: unknown category %q", strings.TrimSpace(m[1])))
		}
	} else {
		problems = append(problems, "OVERALL VERDICT: missing")
	}

	if m := confidentRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n <= 100 {
			v.Confidence = n
		} else {
			problems = append(problems, fmt.Sprintf("CONFIDENCE: %d out of range", n))
		}
	} else {
		problems = append(problems, "CONFIDENCE: missing")
	}

	if m := summaryRe.FindStringSubmatch(text); m != nil {
		v.Summary = strings.TrimSpace(m[1])
	}

	v.Problems = problems
	if len(problems) > 0 {
		v.Overall = Unparseable
	} else {
		v.Overall = overall
	}
	return v
}

func parseScore(re *regexp.Regexp, text, field string, problems *[]string) Score {
	m := re.FindStringSubmatch(text)
	if m == nil {
		*problems = append(*problems, field+": missing")
		return Score{Value: -1}
	}
	n, _ := strconv.Atoi(m[1])
	if n > 100 {
		*problems = append(*problems, fmt.Sprintf("%s: %d out of range", field, n))
		return Score{Value: -1}
	}
	return Score{Value: n, Explanation: strings.TrimSpace(m[2])}
}

// ParseCategory normalizes "PARTIALLY FAITHFUL", "partially_faithful" and
// similar spellings.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.Join(strings.FieldsFunc(norm, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "_")
	switch Category(norm) {
	case Faithful, PartiallyFaithful, Mutation:
		return Category(norm), true
	}
	return Unparseable, false
}
