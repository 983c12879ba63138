package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip_RemovesTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple pair", "<b>hi</b>", "hi"},
		{"italic", "<i>hello</i>", "hello"},
		{"attributes", `<a href="https://example.com">link</a>`, "link"},
		{"self closing", "line<br/>break", "linebreak"},
		{"unclosed bracket kept", "2 < 3", "2 < 3"},
		{"empty tag", "a<>b", "ab"},
		{"plain text untouched", "no markup here", "no markup here"},
		{"empty string", "", ""},
		{"script", "<script>alert(1)</script>stays", "alert(1)stays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}

func TestStrip_Idempotent(t *testing.T) {
	inputs := []string{
		"<b>hi</b>",
		"plain",
		"a<>b<c>d",
		"<<double>>",
	}
	for _, in := range inputs {
		once := Strip(in)
		assert.Equal(t, once, Strip(once), "Strip must be idempotent for %q", in)
	}
}

func TestIdent_StripsDisallowedCharacters(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"note", "note"},
		{"release_note-v2", "release_note-v2"},
		{"drop tables;", "droptables"},
		{"a b\tc", "abc"},
		{"<tag>", "tag"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Ident(tt.input))
	}
}
