package batch

import (
	"path/filepath"
	"reflect"
	"testing"

	"codeberg.org/snonux/saathi/internal/testutil"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Entry
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "texts with targets",
			fileContent: `ta = Good morning
HI = Thank you
zh-TW = Hello`,
			want: []Entry{
				{Text: "Good morning", Target: "ta"},
				{Text: "Thank you", Target: "hi"},
				{Text: "Hello", Target: "zh-tw"},
			},
		},
		{
			name: "mixed format",
			fileContent: `Good morning
ta = Good night

  See you soon.  `,
			want: []Entry{
				{Text: "Good morning"},
				{Text: "Good night", Target: "ta"},
				{Text: "See you soon."},
			},
		},
		{
			name: "equals sign inside text",
			fileContent: `The formula is a = b + c
x=1 means one`,
			want: []Entry{
				{Text: "The formula is a = b + c"},
				{Text: "x=1 means one"},
			},
		},
		{
			name:        "empty text after target",
			fileContent: "ta =   \nhi = Hello",
			want: []Entry{
				{Text: "Hello", Target: "hi"},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "ta = One\r\nTwo\r\n",
			want: []Entry{
				{Text: "One", Target: "ta"},
				{Text: "Two"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "batch.txt")
			testutil.CreateTestFile(t, path, []byte(tt.fileContent))

			got, err := ReadBatchFile(path)
			if err != nil {
				t.Fatalf("ReadBatchFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_Missing(t *testing.T) {
	_, err := ReadBatchFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestIsLangCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ta", true},
		{"eng", true},
		{"pt-BR", true},
		{"x", false},
		{"english", false},
		{"a b", false},
		{"t1", false},
		{"pt-", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isLangCode(tt.in); got != tt.want {
			t.Errorf("isLangCode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLettersBounds(t *testing.T) {
	tests := []struct {
		s      string
		lo, hi int
		want   bool
	}{
		{"ab", 2, 3, true},
		{"abc", 2, 3, true},
		{"abcd", 2, 3, false},
		{"a", 2, 3, false},
		{"Hant", 2, 4, true},
		{"h1", 2, 4, false},
	}
	for _, tt := range tests {
		if got := letters(tt.s, tt.lo, tt.hi); got != tt.want {
			t.Errorf("letters(%q, %d, %d) = %v, want %v", tt.s, tt.lo, tt.hi, got, tt.want)
		}
	}
}
