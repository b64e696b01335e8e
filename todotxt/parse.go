package todotxt

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a line that matches no valid item shape. Line is
// the 1-based line number when parsing a document and 0 when parsing a
// single line. Column is the 1-based byte offset of the failure.
type ParseError struct {
	Line     int
	Column   int
	Expected string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed item at line %d, column %d: expected %s", e.Line, e.Column, e.Expected)
	}
	return fmt.Sprintf("malformed item at column %d: expected %s", e.Column, e.Expected)
}

// ParseLine parses a single todo.txt line into an Item. The line must
// not contain a newline. Ordered alternatives are tried the way a PEG
// grammar would: a leading marker first (priority or completion mark,
// each committed only when followed by its mandatory space), then an
// optional bare creation date, then content. Content must yield at
// least one token or the line is malformed.
func ParseLine(line string) (Item, error) {
	if strings.ContainsRune(line, '\n') {
		return Item{}, &ParseError{Column: strings.IndexByte(line, '\n') + 1, Expected: "a single line without embedded newline"}
	}

	var it Item
	pos := 0

	// Leading marker: "(A) " priority or "x " completion mark. The two
	// alternatives are mutually exclusive by first character, and each
	// is committed only when its trailing space is present.
	if p, ok := priorityMarkerAt(line, pos); ok {
		it.Priority = p
		pos += 4
	} else if completedMarkerAt(line, pos) {
		it.Completed = true
		pos += 2
		if d, ok := dateWithSpaceAt(line, pos); ok {
			it.CompletionDate = &d
			pos += 11
		}
	}

	// Bare creation date, regardless of which marker (if any) matched.
	if d, ok := dateWithSpaceAt(line, pos); ok {
		it.CreationDate = &d
		pos += 11
	}

	content, err := parseContent(line, pos)
	if err != nil {
		return Item{}, err
	}
	it.Content = content
	return it, nil
}

// priorityMarkerAt reports a "(A) " marker at pos: an uppercase letter
// in parentheses followed by the mandatory space.
func priorityMarkerAt(line string, pos int) (byte, bool) {
	if pos+4 > len(line) {
		return 0, false
	}
	if line[pos] != '(' || line[pos+2] != ')' || line[pos+3] != ' ' {
		return 0, false
	}
	letter := line[pos+1]
	if letter < 'A' || letter > 'Z' {
		return 0, false
	}
	return letter, true
}

// completedMarkerAt reports a lone "x " mark at pos.
func completedMarkerAt(line string, pos int) bool {
	return pos+2 <= len(line) && line[pos] == 'x' && line[pos+1] == ' '
}

// dateWithSpaceAt reports a structural date at pos followed by the
// mandatory space. A date at end of line does not match and falls
// through to content.
func dateWithSpaceAt(line string, pos int) (Date, bool) {
	if pos+11 > len(line) || line[pos+10] != ' ' {
		return Date{}, false
	}
	return parseDate(line[pos : pos+10])
}

// parseDate matches exactly YYYY-MM-DD by digit shape.
func parseDate(s string) (Date, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, false
	}
	for _, i := range [...]int{0, 1, 2, 3, 5, 6, 8, 9} {
		if s[i] < '0' || s[i] > '9' {
			return Date{}, false
		}
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])
	return Date{Year: year, Month: month, Day: day}, true
}

// parseContent tokenizes the remainder of a line. Words are delimited
// by the space character only; each word is matched against the tag
// shapes in fixed order, and words that match none accumulate into a
// single Literal token until the next tag or end of line.
func parseContent(line string, pos int) ([]Token, error) {
	var tokens []Token
	var literal []string

	flush := func() {
		if len(literal) > 0 {
			tokens = append(tokens, Literal{Text: strings.Join(literal, " ")})
			literal = literal[:0]
		}
	}

	var recSeen, dueSeen, thresholdSeen, priTagSeen bool
	for pos < len(line) {
		if line[pos] == ' ' {
			pos++
			continue
		}
		start := pos
		for pos < len(line) && line[pos] != ' ' {
			pos++
		}
		word := line[start:pos]

		tag, ok := matchTag(word)
		if !ok {
			literal = append(literal, word)
			continue
		}

		// rec:, due:, t:, and pri: are single-occurrence tags.
		switch tag.(type) {
		case Recurrence:
			if recSeen {
				return nil, &ParseError{Column: start + 1, Expected: `no second "rec:" tag`}
			}
			recSeen = true
		case Due:
			if dueSeen {
				return nil, &ParseError{Column: start + 1, Expected: `no second "due:" tag`}
			}
			dueSeen = true
		case CreationTag:
			if thresholdSeen {
				return nil, &ParseError{Column: start + 1, Expected: `no second "t:" tag`}
			}
			thresholdSeen = true
		case PriorityTag:
			if priTagSeen {
				return nil, &ParseError{Column: start + 1, Expected: `no second "pri:" tag`}
			}
			priTagSeen = true
		}

		flush()
		tokens = append(tokens, tag)
	}
	flush()

	if len(tokens) == 0 {
		return nil, &ParseError{Column: pos + 1, Expected: "task content"}
	}
	return tokens, nil
}

// matchTag matches a whole word against the tag shapes in fixed order:
// project, context, recurrence, priority tag, threshold tag, due date.
// The first match wins; a word matching none is literal text. A tag
// must span the entire word, so near misses like rec:5x or pri:5 fall
// back to literal.
func matchTag(word string) (Token, bool) {
	switch {
	case len(word) > 1 && word[0] == '+':
		return Project{Name: word[1:]}, true
	case len(word) > 1 && word[0] == '@':
		return Context{Name: word[1:]}, true
	case strings.HasPrefix(word, "rec:"):
		if r, ok := parseRecurrence(word[len("rec:"):]); ok {
			return r, true
		}
	case strings.HasPrefix(word, "pri:"):
		if rest := word[len("pri:"):]; len(rest) == 1 && rest[0] >= 'A' && rest[0] <= 'Z' {
			return PriorityTag{Letter: rest[0]}, true
		}
	case strings.HasPrefix(word, "t:"):
		if d, ok := parseDate(word[len("t:"):]); ok {
			return CreationTag{Date: d}, true
		}
	case strings.HasPrefix(word, "due:"):
		if d, ok := parseDate(word[len("due:"):]); ok {
			return Due{Date: d}, true
		}
	}
	return nil, false
}

// parseRecurrence matches the [+]N[dwmy] part of a rec: tag.
func parseRecurrence(s string) (Recurrence, bool) {
	strict := strings.HasPrefix(s, "+")
	if strict {
		s = s[1:]
	}
	if len(s) < 2 {
		return Recurrence{}, false
	}
	unit := RecurrenceUnit(s[len(s)-1])
	switch unit {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
	default:
		return Recurrence{}, false
	}
	digits := s[:len(s)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Recurrence{}, false
		}
	}
	amount, err := strconv.Atoi(digits)
	if err != nil {
		return Recurrence{}, false
	}
	return Recurrence{Strict: strict, Amount: amount, Unit: unit}, true
}
