package todotxt

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkParseLine benchmarks a line with every tag kind.
func BenchmarkParseLine(b *testing.B) {
	line := "x 2023-01-15 2023-01-10 Buy milk and eggs @store +errands rec:+2w due:2023-01-20 t:2023-01-18"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseLine(line); err != nil {
			b.Fatalf("ParseLine failed: %v", err)
		}
	}
}

// BenchmarkParseDocument benchmarks a 1000-line document.
func BenchmarkParseDocument(b *testing.B) {
	text := benchDocument(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseDocument(text); err != nil {
			b.Fatalf("ParseDocument failed: %v", err)
		}
	}
}

// BenchmarkParseDocumentParallel benchmarks the same document across
// eight workers.
func BenchmarkParseDocumentParallel(b *testing.B) {
	text := benchDocument(1000)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseDocumentParallel(ctx, text, 8); err != nil {
			b.Fatalf("ParseDocumentParallel failed: %v", err)
		}
	}
}

func benchDocument(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		switch i % 3 {
		case 0:
			fmt.Fprintf(&b, "(B) task %d with some words @ctx%d +proj%d\n", i, i%5, i%3)
		case 1:
			fmt.Fprintf(&b, "x 2023-01-15 2023-01-10 done task %d due:2023-02-01\n", i)
		default:
			fmt.Fprintf(&b, "plain task %d rec:%dd t:2023-03-01\n", i, i%9+1)
		}
	}
	return b.String()
}
