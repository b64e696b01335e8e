// Package export maps parsed todo.txt items onto a stable JSON
// interchange document and validates it against the bundled schema.
// It is an output adapter only: the todotxt data model stays JSON-free.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/HannesFeil/totui/todotxt"
)

//go:embed schema.json
var schemaJSON string

// SchemaVersion is the version stamped into exported documents.
const SchemaVersion = 1

// Document is the JSON form of a parsed todo.txt file.
type Document struct {
	SchemaVersion int    `json:"schema_version"`
	Items         []Item `json:"items"`
}

// Item is the JSON form of one parsed line.
type Item struct {
	Completed      bool    `json:"completed"`
	CompletionDate string  `json:"completion_date,omitempty"`
	Priority       string  `json:"priority,omitempty"`
	CreationDate   string  `json:"creation_date,omitempty"`
	Tokens         []Token `json:"tokens"`
}

// Token is the JSON form of one content token. Kind selects which of
// the remaining fields are meaningful.
type Token struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Name   string `json:"name,omitempty"`
	Strict bool   `json:"strict,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Date   string `json:"date,omitempty"`
	Letter string `json:"letter,omitempty"`
}

// Token kinds.
const (
	KindLiteral    = "literal"
	KindProject    = "project"
	KindContext    = "context"
	KindRecurrence = "recurrence"
	KindDue        = "due"
	KindPriority   = "priority"
	KindThreshold  = "threshold"
)

// FromItems builds an export document from parsed items.
func FromItems(items []todotxt.Item) *Document {
	doc := &Document{
		SchemaVersion: SchemaVersion,
		Items:         make([]Item, 0, len(items)),
	}
	for _, it := range items {
		doc.Items = append(doc.Items, fromItem(it))
	}
	return doc
}

func fromItem(it todotxt.Item) Item {
	out := Item{
		Completed: it.Completed,
		Tokens:    make([]Token, 0, len(it.Content)),
	}
	if it.CompletionDate != nil {
		out.CompletionDate = it.CompletionDate.String()
	}
	if it.Priority != 0 {
		out.Priority = string(it.Priority)
	}
	if it.CreationDate != nil {
		out.CreationDate = it.CreationDate.String()
	}
	for _, tok := range it.Content {
		out.Tokens = append(out.Tokens, fromToken(tok))
	}
	return out
}

func fromToken(tok todotxt.Token) Token {
	switch t := tok.(type) {
	case todotxt.Literal:
		return Token{Kind: KindLiteral, Text: t.Text}
	case todotxt.Project:
		return Token{Kind: KindProject, Name: t.Name}
	case todotxt.Context:
		return Token{Kind: KindContext, Name: t.Name}
	case todotxt.Recurrence:
		return Token{Kind: KindRecurrence, Strict: t.Strict, Amount: t.Amount, Unit: t.Unit.String()}
	case todotxt.Due:
		return Token{Kind: KindDue, Date: t.Date.String()}
	case todotxt.PriorityTag:
		return Token{Kind: KindPriority, Letter: string(t.Letter)}
	case todotxt.CreationTag:
		return Token{Kind: KindThreshold, Date: t.Date.String()}
	default:
		// The Token interface is sealed; this is unreachable for
		// parser output.
		return Token{Kind: KindLiteral, Text: tok.String()}
	}
}

// Marshal renders the document with 2-space indentation and a
// trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return append(data, '\n'), nil
}

// Validate checks serialized document bytes against the bundled JSON
// Schema and returns one error per violation.
func Validate(data []byte) []error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("totui.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return []error{fmt.Errorf("load bundled schema: %w", err)}
	}
	schema, err := compiler.Compile("totui.schema.json")
	if err != nil {
		return []error{fmt.Errorf("compile bundled schema: %w", err)}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []error{fmt.Errorf("unmarshal document for validation: %w", err)}
	}

	if err := schema.Validate(doc); err != nil {
		var errs []error
		appendSchemaErrors(&errs, err)
		return errs
	}
	return nil
}

// appendSchemaErrors flattens nested jsonschema causes into leaf
// errors with their instance locations.
func appendSchemaErrors(errs *[]error, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*errs = append(*errs, err)
		return
	}
	collectSchemaErrors(errs, ve)
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*errs = append(*errs, fmt.Errorf("%s: %s", err.InstanceLocation, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}
