package thread

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeRemovesNoiseBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "xml prolog",
			input: `<?xml version="1.0" encoding="UTF-8"?><p>Hi</p>`,
			want:  "<p>Hi</p>",
		},
		{
			name:  "head block",
			input: "<head><title>Mail</title></head><p>Hi</p>",
			want:  "<p>Hi</p>",
		},
		{
			name:  "style block with content",
			input: "<style>p { color: red; }</style><p>Hi</p>",
			want:  "<p>Hi</p>",
		},
		{
			name:  "script block with content",
			input: `<script>alert("x")</script><p>Hi</p>`,
			want:  "<p>Hi</p>",
		},
		{
			name:  "case insensitive",
			input: "<HEAD><META></HEAD><STYLE>x</STYLE><p>Hi</p>",
			want:  "<p>Hi</p>",
		},
		{
			name:  "paired vendor element",
			input: "<p>Hi<o:p>office</o:p></p>",
			want:  "<p>Hi</p>",
		},
		{
			name:  "self-closing vendor elements",
			input: `<p>Hi<o:p/><v:shape id="x"/><w:sdt/></p>`,
			want:  "<p>Hi</p>",
		},
		{
			name:  "survivors untouched",
			input: `<div class="msg">Keep <b>me</b> &amp; this</div>`,
			want:  `<div class="msg">Keep <b>me</b> &amp; this</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitizeLeavesNoDanglingVendorTags(t *testing.T) {
	// A vendor open tag without its close must still disappear.
	got := Sanitize("<p>Hi</p><o:p>orphan")
	require.NotContains(t, got, "o:p")
	require.Contains(t, got, "<p>Hi</p>")
}
