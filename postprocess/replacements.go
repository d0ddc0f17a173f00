package postprocess

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Replacement maps a literal placeholder to the text that replaces it
type Replacement struct {
	From string
	To   string
}

// LoadReplacements reads "from -> to" lines from path.
// Empty lines and lines starting with # are skipped.
func LoadReplacements(path string) ([]Replacement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replacements: %w", err)
	}
	defer file.Close()

	var replacements []Replacement
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		from, to, ok := strings.Cut(line, "->")
		from = strings.TrimSpace(from)
		if !ok || from == "" {
			return nil, fmt.Errorf("%s:%d: expected 'from -> to'", path, lineNo)
		}

		replacements = append(replacements, Replacement{
			From: from,
			To:   unescape(strings.TrimSpace(to)),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read replacements: %w", err)
	}

	return replacements, nil
}

// unescape turns \n and \t in a replacement value into real characters
func unescape(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(s)
}

// ReplacementProcessor substitutes every placeholder, in file order
func ReplacementProcessor(replacements []Replacement) Processor {
	return func(ctx context.Context, text string) (string, error) {
		result := text
		for _, r := range replacements {
			result = strings.ReplaceAll(result, r.From, r.To)
		}
		return result, nil
	}
}
