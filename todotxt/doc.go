// Package todotxt parses the todo.txt plain-text task-list format.
//
// Each line of a todo.txt file is one task. A line has an optional
// leading marker, an optional creation date, and free-form content with
// embedded metadata tags:
//
//	x 2023-01-15 2023-01-10 Buy milk @store +errands due:2023-01-20
//	(A) Call mom @home
//	Water plants rec:+2w t:2023-03-01
//
// The leading marker is either a completion mark ("x ", optionally
// followed by a completion date) or a priority marker ("(A) " through
// "(Z) "), never both. Within content the parser recognizes these tags:
//
//	+project        project tag
//	@context        context tag
//	rec:[+]N[dwmy]  recurrence (the leading + marks strict recurrence)
//	due:YYYY-MM-DD  due date
//	pri:X           priority tag (X is an uppercase letter)
//	t:YYYY-MM-DD    threshold date
//
// Words are separated by single space characters only. A word that does
// not exactly match one of the tag shapes is literal text, and adjacent
// literal words coalesce into a single Literal token. Dates are checked
// for digit shape only, never for calendar validity.
//
// Parsing is pure: no I/O, no logging, no state shared between lines.
// ParseLine handles one line, ParseDocument a whole buffer, and
// ParseDocumentParallel spreads per-line parses over a worker pool.
package todotxt
