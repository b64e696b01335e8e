package todotxt

import (
	"reflect"
	"testing"
)

func TestItemString(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "completed with dates",
			item: Item{
				Completed:      true,
				CompletionDate: date(2023, 1, 15),
				CreationDate:   date(2023, 1, 10),
				Content: []Token{
					Literal{Text: "Buy milk"},
					Context{Name: "store"},
				},
			},
			want: "x 2023-01-15 2023-01-10 Buy milk @store",
		},
		{
			name: "priority marker",
			item: Item{
				Priority: 'B',
				Content:  []Token{Literal{Text: "Call mom"}},
			},
			want: "(B) Call mom",
		},
		{
			name: "all tag kinds",
			item: Item{
				Content: []Token{
					Literal{Text: "thing"},
					Project{Name: "home"},
					Context{Name: "phone"},
					Recurrence{Strict: true, Amount: 2, Unit: UnitWeek},
					Due{Date: Date{2023, 2, 1}},
					PriorityTag{Letter: 'C'},
					CreationTag{Date: Date{2023, 1, 1}},
				},
			},
			want: "thing +home @phone rec:+2w due:2023-02-01 pri:C t:2023-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.String(); got != tt.want {
				t.Errorf("String(): got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRoundTrip checks that parse, render, and parse again reproduce
// the same item. Runs of spaces are not preserved, so the comparison
// is on the reparsed structure, not on the raw bytes.
func TestRoundTrip(t *testing.T) {
	lines := []string{
		"x 2023-01-15 2023-01-10 Buy milk @store +errands due:2023-01-20",
		"(A) Call mom @home",
		"rec:+2w due:2023-02-01 Pay rent",
		"foo+bar @baz",
		"rec:5x",
		"(A) review pri:B t:2023-03-01",
		"plain words only",
		"x 2023-01-15 done thing",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			first, err := ParseLine(line)
			if err != nil {
				t.Fatalf("ParseLine(%q) failed: %v", line, err)
			}
			rendered := first.String()
			second, err := ParseLine(rendered)
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", rendered, err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip changed item:\n first: %#v\nsecond: %#v", first, second)
			}
		})
	}
}

func TestPriorityLetter(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   byte
		wantOK bool
	}{
		{name: "leading marker", line: "(A) call", want: 'A', wantOK: true},
		{name: "pri tag only", line: "x 2023-01-01 call pri:B", want: 'B', wantOK: true},
		{name: "marker wins over tag", line: "(A) call pri:B", want: 'A', wantOK: true},
		{name: "no priority", line: "call mom", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q) failed: %v", tt.line, err)
			}
			got, ok := item.PriorityLetter()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PriorityLetter(): got %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestItemAccessors(t *testing.T) {
	item, err := ParseLine("fix gate @home @garden +house rec:1m due:2023-05-01 t:2023-04-01")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}

	if got := item.Contexts(); !reflect.DeepEqual(got, []string{"home", "garden"}) {
		t.Errorf("Contexts(): got %v", got)
	}
	if got := item.Projects(); !reflect.DeepEqual(got, []string{"house"}) {
		t.Errorf("Projects(): got %v", got)
	}
	if due, ok := item.DueDate(); !ok || due != (Date{2023, 5, 1}) {
		t.Errorf("DueDate(): got %v, %v", due, ok)
	}
	if th, ok := item.ThresholdDate(); !ok || th != (Date{2023, 4, 1}) {
		t.Errorf("ThresholdDate(): got %v, %v", th, ok)
	}
	rec, ok := item.RecurrenceTag()
	if !ok || rec != (Recurrence{Amount: 1, Unit: UnitMonth}) {
		t.Errorf("RecurrenceTag(): got %+v, %v", rec, ok)
	}

	plain, err := ParseLine("nothing tagged here")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if got := plain.Contexts(); got != nil {
		t.Errorf("Contexts() on plain item: got %v, want nil", got)
	}
	if _, ok := plain.DueDate(); ok {
		t.Error("DueDate() on plain item: got ok=true")
	}
}
