// Package ris parses RIS bibliographic export files into raw study records.
// The format is line oriented: a two-character tag, two spaces, a dash and a
// space, then the value. Untagged lines continue the previous tag and the
// "ER" tag closes a record.
package ris

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/k3a/html2text"

	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/errors"
	"github.com/ketney1982/AI-Fermentation-MetaAnalysis-2025/internal/study"
)

var tagLine = regexp.MustCompile(`^([A-Z][A-Z0-9])  - ?(.*)$`)

// yearDigits extracts the leading four-digit year from RIS date values such
// as "2021/05//" or "2021".
var yearDigits = regexp.MustCompile(`\b(\d{4})\b`)

// ParseFile reads a single RIS file and returns its records.
func ParseFile(path string) ([]study.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(fmt.Errorf("opening RIS file: %w", err)).
			Component("ris").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	records, err := Parse(f, filepath.Base(path))
	if err != nil {
		return nil, errors.New(err).
			Component("ris").
			Category(errors.CategoryFileParsing).
			Context("path", path).
			Build()
	}
	return records, nil
}

// ParseDir parses every .ris file in dir. With recursive set it walks
// subdirectories too.
func ParseDir(dir string, recursive bool) ([]study.RawRecord, error) {
	var all []study.RawRecord
	walk := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".ris") {
			return nil
		}
		records, err := ParseFile(path)
		if err != nil {
			return err
		}
		all = append(all, records...)
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, err
	}
	return all, nil
}

// Parse reads RIS records from r. The source name is recorded on every
// record for traceability.
func Parse(r io.Reader, source string) ([]study.RawRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []study.RawRecord
	var cur *study.RawRecord
	var lastTag string

	flush := func() {
		if cur != nil && (cur.Title != "" || cur.Abstract != "") {
			records = append(records, *cur)
		}
		cur = nil
		lastTag = ""
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := tagLine.FindStringSubmatch(line)
		if m == nil {
			// Continuation of the previous tag's value.
			if cur != nil && lastTag != "" {
				appendValue(cur, lastTag, strings.TrimSpace(line), true)
			}
			continue
		}
		tag, value := m[1], strings.TrimSpace(m[2])

		switch tag {
		case "TY":
			flush()
			cur = &study.RawRecord{Source: source}
		case "ER":
			flush()
			continue
		default:
			if cur == nil {
				// Tolerate records that omit the TY opener.
				cur = &study.RawRecord{Source: source}
			}
			appendValue(cur, tag, value, false)
		}
		lastTag = tag
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading RIS input: %w", err)
	}
	flush()
	return records, nil
}

// appendValue assigns a tag value to the record, joining continuations with
// a space.
func appendValue(rec *study.RawRecord, tag, value string, continuation bool) {
	if value == "" {
		return
	}
	switch tag {
	case "TI", "T1":
		rec.Title = join(rec.Title, value, continuation)
	case "AB", "N2":
		// Some export services embed HTML fragments in abstracts.
		rec.Abstract = join(rec.Abstract, html2text.HTML2Text(value), continuation)
	case "AU", "A1":
		if continuation && len(rec.Authors) > 0 {
			rec.Authors[len(rec.Authors)-1] = rec.Authors[len(rec.Authors)-1] + " " + value
		} else {
			rec.Authors = append(rec.Authors, value)
		}
	case "PY", "Y1":
		if y := yearDigits.FindString(value); y != "" {
			if year, err := strconv.Atoi(y); err == nil {
				rec.Year = year
			}
		}
	case "DO", "DI":
		rec.DOI = strings.TrimPrefix(strings.TrimPrefix(value, "https://doi.org/"), "doi:")
	case "JO", "T2", "JF":
		rec.Journal = join(rec.Journal, value, continuation)
	case "KW":
		rec.Keywords = append(rec.Keywords, value)
	}
}

func join(existing, value string, continuation bool) string {
	if existing == "" {
		return value
	}
	if continuation {
		return existing + " " + value
	}
	return existing + "; " + value
}
