package strings

import (
	stdstrings "strings"
	"testing"
)

// Prevent compiler optimizations
var benchSink string

func BenchmarkTrimSpace(b *testing.B) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no_trim", "hello"},
		{"left_trim", "  hello"},
		{"right_trim", "hello  "},
		{"both_trim", "  hello  "},
		{"heavy_trim", "          hello world          "},
		{"mixed_whitespace", "  \t\r\nhello\r\n\t  "},
	}

	for _, tt := range tests {
		b.Run("custom/"+tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				benchSink = TrimSpace(tt.input)
			}
		})

		b.Run("stdlib/"+tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				benchSink = stdstrings.TrimSpace(tt.input)
			}
		})
	}
}

// Benchmark with realistic stylesheet fragments: declaration trimming and
// media-query splitting are the two hot callers.
func BenchmarkTrimSpaceSass(b *testing.B) {
	values := []string{
		"$primary-color: #3498db;",
		"  font-family: Arial, sans-serif;  ",
		"  color: rgb(255, 0, 0);  ",
		"\t\tmargin: 10px;\t\t",
		"transform: scale(1.5);",
	}

	for _, val := range values {
		b.Run("custom", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				benchSink = TrimSpace(val)
			}
		})

		b.Run("stdlib", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				benchSink = stdstrings.TrimSpace(val)
			}
		})
	}
}

func BenchmarkSplit(b *testing.B) {
	const queryList = "screen and (min-width: 100px), print, (orientation: landscape)"

	b.Run("custom_comma", func(b *testing.B) {
		b.ReportAllocs()
		buf := make([]string, 0, 8)
		for i := 0; i < b.N; i++ {
			SplitCommaNoAlloc(queryList, &buf)
			benchSink = buf[0]
		}
	})

	b.Run("stdlib_split", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			parts := stdstrings.Split(queryList, ",")
			benchSink = parts[0]
		}
	})

	const declInput = "color: red; font-size: 12px; margin: 10px; padding: 5px"

	b.Run("custom_byte", func(b *testing.B) {
		b.ReportAllocs()
		buf := make([]string, 0, 16)
		for i := 0; i < b.N; i++ {
			SplitByteNoAlloc(declInput, ';', &buf)
			benchSink = buf[0]
		}
	})

	b.Run("stdlib_split_byte", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			parts := stdstrings.Split(declInput, ";")
			benchSink = parts[0]
		}
	})
}
