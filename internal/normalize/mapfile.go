package normalize

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dave-shawley/ged-work/internal/lineage"
)

// ReadMapFile parses the compact page-map notation into a lineage-code to
// page-number mapping.
//
// A top-level line `<root-id> <page>` starts a new context and maps the
// root id itself. Indented lines (tabs; a run of four spaces counts as one
// tab) select descendants: a lone integer is one child index and
// `<low>-<high>` an inclusive range, each index mapping through the
// standard child-code digits (1-9, then 0, then A, B, ...). A line at
// depth d extends the code generated at depth d-1; its own last generated
// code becomes the ancestor for deeper lines, replacing anything deeper on
// the stack. Malformed lines are logged and skipped.
func ReadMapFile(r io.Reader, log *slog.Logger) (map[string]string, error) {
	pages := make(map[string]string)
	var stack []string
	page := ""

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.ReplaceAll(scanner.Text(), "    ", "\t")
		content := strings.TrimLeft(line, "\t")
		if strings.TrimSpace(content) == "" {
			continue
		}
		depth := len(line) - len(content)

		if depth == 0 {
			fields := strings.Fields(content)
			if len(fields) != 2 {
				log.Warn("malformed map line, want <root-id> <page>",
					slog.Int("line", lineNumber))
				stack, page = nil, ""
				continue
			}
			pages[fields[0]] = fields[1]
			stack = []string{fields[0]}
			page = fields[1]
			continue
		}

		if page == "" {
			log.Warn("indented map line before any root",
				slog.Int("line", lineNumber))
			continue
		}
		if depth > len(stack) {
			log.Warn("map line skips an indentation level",
				slog.Int("line", lineNumber), slog.Int("depth", depth))
			continue
		}

		low, high, err := parseIndexToken(strings.Fields(content)[0])
		if err != nil {
			log.Warn("malformed child index",
				slog.Int("line", lineNumber), slog.String("error", err.Error()))
			continue
		}

		prefix := stack[depth-1]
		last := ""
		for index := low; index <= high; index++ {
			code := prefix + lineage.IndexCode(index)
			pages[code] = page
			last = code
		}
		stack = append(stack[:depth], last)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	return pages, nil
}

// parseIndexToken parses `N` or `N-M` into an inclusive index range.
func parseIndexToken(token string) (int, int, error) {
	if lowText, highText, ok := strings.Cut(token, "-"); ok {
		low, err := strconv.Atoi(lowText)
		if err != nil {
			return 0, 0, fmt.Errorf("bad range start %q", lowText)
		}
		high, err := strconv.Atoi(highText)
		if err != nil {
			return 0, 0, fmt.Errorf("bad range end %q", highText)
		}
		if low < 1 || high < low {
			return 0, 0, fmt.Errorf("bad range %q", token)
		}
		return low, high, nil
	}
	index, err := strconv.Atoi(token)
	if err != nil || index < 1 {
		return 0, 0, fmt.Errorf("bad index %q", token)
	}
	return index, index, nil
}
