package todotxt

import (
	"fmt"
	"strings"
)

// Date is a structural calendar date: four year digits, two month
// digits, two day digits. The parser never checks calendar validity,
// so 2023-99-99 is a well-formed Date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// RecurrenceUnit is the time unit of a recurrence tag.
type RecurrenceUnit byte

const (
	UnitDay   RecurrenceUnit = 'd'
	UnitWeek  RecurrenceUnit = 'w'
	UnitMonth RecurrenceUnit = 'm'
	UnitYear  RecurrenceUnit = 'y'
)

// String returns the single-letter unit suffix used in rec: tags.
func (u RecurrenceUnit) String() string {
	return string(byte(u))
}

// Token is one element of an item's content: either a run of literal
// words or a recognized metadata tag. The concrete types are Literal,
// Project, Context, Recurrence, Due, PriorityTag, and CreationTag.
type Token interface {
	fmt.Stringer

	// token restricts implementations to this package.
	token()
}

// Literal is free-form text: one or more adjacent non-tag words joined
// with single spaces.
type Literal struct {
	Text string
}

// Project is a +name tag.
type Project struct {
	Name string
}

// Context is an @name tag.
type Context struct {
	Name string
}

// Recurrence is a rec:[+]N[dwmy] tag. Strict is true when the +
// prefix is present.
type Recurrence struct {
	Strict bool
	Amount int
	Unit   RecurrenceUnit
}

// Due is a due:YYYY-MM-DD tag.
type Due struct {
	Date Date
}

// PriorityTag is a pri:X tag. It is distinct from the leading (X)
// priority marker; an item may carry both.
type PriorityTag struct {
	Letter byte
}

// CreationTag is a t:YYYY-MM-DD threshold date tag, distinct from the
// leading bare creation date.
type CreationTag struct {
	Date Date
}

func (Literal) token()     {}
func (Project) token()     {}
func (Context) token()     {}
func (Recurrence) token()  {}
func (Due) token()         {}
func (PriorityTag) token() {}
func (CreationTag) token() {}

// String returns the literal text as written.
func (l Literal) String() string { return l.Text }

// String renders the tag in +name form.
func (p Project) String() string { return "+" + p.Name }

// String renders the tag in @name form.
func (c Context) String() string { return "@" + c.Name }

// String renders the tag in rec:[+]N[dwmy] form.
func (r Recurrence) String() string {
	strict := ""
	if r.Strict {
		strict = "+"
	}
	return fmt.Sprintf("rec:%s%d%s", strict, r.Amount, r.Unit)
}

// String renders the tag in due:YYYY-MM-DD form.
func (d Due) String() string { return "due:" + d.Date.String() }

// String renders the tag in pri:X form.
func (p PriorityTag) String() string { return fmt.Sprintf("pri:%c", p.Letter) }

// String renders the tag in t:YYYY-MM-DD form.
func (c CreationTag) String() string { return "t:" + c.Date.String() }

// Item is one parsed todo.txt line. Items are plain values: the parser
// constructs them and keeps no reference afterwards.
type Item struct {
	// Completed is true when the line starts with a lone "x " mark.
	Completed bool

	// CompletionDate is the date following the completion mark, if any.
	// Only a completed item can carry one.
	CompletionDate *Date

	// Priority is the uppercase letter of a leading "(A) " marker, or 0
	// when the line has none. The leading marker excludes the
	// completion mark but not a pri: tag in the content.
	Priority byte

	// CreationDate is the bare date between the leading marker and the
	// content, if any.
	CreationDate *Date

	// Content is the ordered token sequence of the line. It is never
	// empty on a parsed item.
	Content []Token
}

// String rebuilds the canonical line form of the item: marker,
// completion date, creation date, then content joined with single
// spaces. Parsing the result yields an equal item, though runs of
// spaces in the source line are not preserved.
func (it Item) String() string {
	var b strings.Builder
	if it.Completed {
		b.WriteString("x ")
		if it.CompletionDate != nil {
			b.WriteString(it.CompletionDate.String())
			b.WriteByte(' ')
		}
	} else if it.Priority != 0 {
		fmt.Fprintf(&b, "(%c) ", it.Priority)
	}
	if it.CreationDate != nil {
		b.WriteString(it.CreationDate.String())
		b.WriteByte(' ')
	}
	for i, tok := range it.Content {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}

// PriorityLetter returns the item's priority letter, taking the
// leading (X) marker first and falling back to a pri: tag in the
// content. The second return is false when the item has neither.
func (it Item) PriorityLetter() (byte, bool) {
	if it.Priority != 0 {
		return it.Priority, true
	}
	for _, tok := range it.Content {
		if p, ok := tok.(PriorityTag); ok {
			return p.Letter, true
		}
	}
	return 0, false
}

// Contexts returns the names of all @context tags in content order.
func (it Item) Contexts() []string {
	var names []string
	for _, tok := range it.Content {
		if c, ok := tok.(Context); ok {
			names = append(names, c.Name)
		}
	}
	return names
}

// Projects returns the names of all +project tags in content order.
func (it Item) Projects() []string {
	var names []string
	for _, tok := range it.Content {
		if p, ok := tok.(Project); ok {
			names = append(names, p.Name)
		}
	}
	return names
}

// DueDate returns the date of the item's due: tag, if present.
func (it Item) DueDate() (Date, bool) {
	for _, tok := range it.Content {
		if d, ok := tok.(Due); ok {
			return d.Date, true
		}
	}
	return Date{}, false
}

// ThresholdDate returns the date of the item's t: tag, if present.
func (it Item) ThresholdDate() (Date, bool) {
	for _, tok := range it.Content {
		if c, ok := tok.(CreationTag); ok {
			return c.Date, true
		}
	}
	return Date{}, false
}

// RecurrenceTag returns the item's rec: tag, if present.
func (it Item) RecurrenceTag() (Recurrence, bool) {
	for _, tok := range it.Content {
		if r, ok := tok.(Recurrence); ok {
			return r, true
		}
	}
	return Recurrence{}, false
}
