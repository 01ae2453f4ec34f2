package report

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/evalforge/mlreport/internal/metrics"
)

var (
	imageRe     = regexp.MustCompile(`^!\[[^\]]*\]\(([^)]+)\)$`)
	thresholdRe = regexp.MustCompile(`^\*\*threshold: (.+)\*\*$`)
)

// ParseMarkdown reconstructs a Report from a rendered Markdown document.
// Rendering the parsed report again reproduces the same tables, so the
// formatting round-trips. GeneratedAt is not part of the document and is left
// zero.
func ParseMarkdown(doc []byte) (*Report, error) {
	r := &Report{}
	section := ""

	scanner := bufio.NewScanner(bytes.NewReader(doc))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#### Type: "):
			r.TaskType = metrics.TaskType(strings.TrimPrefix(line, "#### Type: "))
		case strings.HasPrefix(line, "## "):
			section = strings.TrimPrefix(line, "## ")
		case thresholdRe.MatchString(line):
			raw := thresholdRe.FindStringSubmatch(line)[1]
			t, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("report: parse threshold %q: %w", raw, err)
			}
			r.Threshold = t
		case strings.HasPrefix(line, "|"):
			entry, ok, err := parseTableRow(line)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			switch section {
			case "Data info":
				r.DataInfo = append(r.DataInfo, entry)
			case "Metrics":
				r.Metrics = append(r.Metrics, entry)
			}
		case imageRe.MatchString(line):
			ref := imageRe.FindStringSubmatch(line)[1]
			r.Plots = append(r.Plots, strings.TrimPrefix(ref, "./"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("report: scan document: %w", err)
	}

	if r.TaskType == "" {
		return nil, fmt.Errorf("report: document has no type line")
	}
	if len(r.Metrics) == 0 {
		return nil, fmt.Errorf("report: document has no metrics table")
	}
	return r, nil
}

// parseTableRow parses "| name | value |" into an Entry. Header and separator
// rows return ok=false.
func parseTableRow(line string) (Entry, bool, error) {
	cells := strings.Split(strings.Trim(line, "|"), "|")
	if len(cells) != 2 {
		return Entry{}, false, nil
	}
	name := strings.TrimSpace(cells[0])
	raw := strings.TrimSpace(cells[1])

	// Skip the header and separator rows.
	if raw == "Value" || strings.HasPrefix(name, "---") {
		return Entry{}, false, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Entry{}, false, fmt.Errorf("report: parse value %q for %q: %w", raw, name, err)
	}

	digits := 0
	if dot := strings.IndexByte(raw, '.'); dot >= 0 {
		digits = len(raw) - dot - 1
	}
	return Entry{Name: name, Value: value, Digits: digits}, true, nil
}
