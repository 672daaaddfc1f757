package screening

import (
	"fmt"
	"strings"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/conf"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

// Screen applies the eligibility criteria to every deduplicated record and
// returns the verdicts in input order. Exclusion reasons are recorded so the
// screening flow can be reported; a record is excluded by the first rule
// that fires.
func Screen(records []study.Record, settings *conf.ScreeningSettings) []study.ScreenedRecord {
	out := make([]study.ScreenedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, screenOne(r, settings))
	}
	return out
}

func screenOne(r study.Record, s *conf.ScreeningSettings) study.ScreenedRecord {
	sr := study.ScreenedRecord{Record: r}

	exclude := func(reason string) study.ScreenedRecord {
		sr.Included = false
		sr.Reasons = append(sr.Reasons, reason)
		return sr
	}

	if s.YearStart != 0 && r.Year != 0 && r.Year < s.YearStart {
		return exclude(fmt.Sprintf("published before %d", s.YearStart))
	}
	if s.YearEnd != 0 && r.Year != 0 && r.Year > s.YearEnd {
		return exclude(fmt.Sprintf("published after %d", s.YearEnd))
	}
	if len(r.Abstract) < s.MinAbstractLength {
		return exclude(fmt.Sprintf("abstract shorter than %d characters", s.MinAbstractLength))
	}

	title := strings.ToLower(r.Title)
	text := title + " " + strings.ToLower(r.Abstract)

	for _, term := range s.ExcludeTerms {
		if strings.Contains(title, strings.ToLower(term)) {
			return exclude("excluded term in title: " + term)
		}
	}

	if len(s.IncludeTerms) > 0 {
		matched := false
		for _, term := range s.IncludeTerms {
			if strings.Contains(text, strings.ToLower(term)) {
				matched = true
				sr.Reasons = append(sr.Reasons, "matched term: "+term)
				break
			}
		}
		if !matched {
			return exclude("no include term matched")
		}
	}

	sr.Included = true
	return sr
}

// FlowCounts summarizes the screening funnel for reporting.
type FlowCounts struct {
	Imported     int
	Deduplicated int
	Screened     int
	Included     int
}

// Flow computes the screening funnel counts.
func Flow(imported []study.RawRecord, deduped []study.Record, screened []study.ScreenedRecord) FlowCounts {
	fc := FlowCounts{
		Imported:     len(imported),
		Deduplicated: len(deduped),
		Screened:     len(screened),
	}
	for _, s := range screened {
		if s.Included {
			fc.Included++
		}
	}
	return fc
}
