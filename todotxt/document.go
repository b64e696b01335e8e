package todotxt

import (
	"context"
	"errors"
	"strings"

	"github.com/HannesFeil/totui/internal/parallel"
)

// SplitLines splits buffer text into logical lines. Lines end at '\n'
// or at end of input, so a missing trailing newline still terminates
// the final line and a trailing newline yields no phantom empty line.
// A trailing '\r' is stripped from each line to tolerate CRLF input.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ParseDocument parses buffer text into one Item per non-empty line,
// in input order. Empty lines are skipped. The first malformed line
// fails the whole document: there is no partial-success mode, and the
// returned error carries the 1-based line number. Callers that want
// partial results must call ParseLine per line themselves.
func ParseDocument(text string) ([]Item, error) {
	lines := SplitLines(text)
	items := make([]Item, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		item, err := ParseLine(line)
		if err != nil {
			return nil, atLine(err, i+1)
		}
		items = append(items, item)
	}
	return items, nil
}

// ParseDocumentParallel is ParseDocument with per-line parses spread
// over a bounded worker pool. Lines parse independently, so results
// only need reassembling in input order; the error, if any, is the one
// from the lowest-numbered malformed line. With workers < 2 it runs
// sequentially.
func ParseDocumentParallel(ctx context.Context, text string, workers int) ([]Item, error) {
	if workers < 2 {
		return ParseDocument(text)
	}

	lines := SplitLines(text)
	pool := parallel.NewPool[Item](ctx, workers)
	for i, line := range lines {
		if line == "" {
			continue
		}
		lineno := i + 1
		pool.Submit(lineno, func() (Item, error) {
			item, err := ParseLine(line)
			if err != nil {
				return Item{}, atLine(err, lineno)
			}
			return item, nil
		})
	}

	results := pool.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		items = append(items, r.Value)
	}
	return items, nil
}

// atLine stamps a line number onto a ParseError.
func atLine(err error, line int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Line = line
	}
	return err
}
