package blame

import (
	"reflect"
	"testing"
	"unsafe"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single line no terminator", in: "a", want: []string{"a"}},
		{name: "single line terminated", in: "a\n", want: []string{"a"}},
		{name: "two lines trailing newline", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "two lines no trailing newline", in: "a\nb", want: []string{"a", "b"}},
		{name: "interior empty line", in: "a\n\nb", want: []string{"a", "", "b"}},
		{name: "two trailing newlines", in: "a\n\n", want: []string{"a", ""}},
		{name: "three trailing newlines", in: "a\n\n\n", want: []string{"a", "", ""}},
		{name: "lone newline", in: "\n", want: []string{""}},
		{name: "two lone newlines", in: "\n\n", want: []string{"", ""}},
		{name: "leading newline", in: "\na", want: []string{"", "a"}},
		{name: "crlf kept", in: "a\r\nb\r\n", want: []string{"a\r", "b\r"}},
		{name: "lone carriage return", in: "a\rb", want: []string{"a\rb"}},
		{name: "invalid utf8", in: "\xff\xfe\n\xc3", want: []string{"\xff\xfe", "\xc3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLines_SharesContent(t *testing.T) {
	content := "first\nsecond\nthird\n"
	lines := SplitLines(content)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if unsafe.StringData(lines[1]) != unsafe.StringData(content[6:]) {
		t.Error("second line does not point into the original content")
	}
}
