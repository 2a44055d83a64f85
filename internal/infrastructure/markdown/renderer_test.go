package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		src      string
		contains []string
		absent   []string
	}{
		{
			name:     "headings get ids",
			src:      "## Server Rules",
			contains: []string{`<h2 id="server-rules">Server Rules</h2>`},
		},
		{
			name:     "tables from gfm",
			src:      "| Day | Event |\n|---|---|\n| Mon | Bear Trap |",
			contains: []string{"<table>", "<td>Bear Trap</td>"},
		},
		{
			name:     "scripts are stripped",
			src:      "hello <script>alert(1)</script>",
			contains: []string{"hello"},
			absent:   []string{"<script"},
		},
		{
			name:   "event handlers are stripped",
			src:    `<img src="x.png" onerror="alert(1)">`,
			absent: []string{"onerror"},
		},
		{
			name:     "links are nofollow",
			src:      "[discord](https://discord.gg/state244)",
			contains: []string{`href="https://discord.gg/state244"`, "nofollow", `target="_blank"`},
		},
		{
			name:   "javascript urls are dropped",
			src:    "[x](javascript:alert(1))",
			absent: []string{"javascript:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.src)
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
		})
	}
}

func TestRenderer_Empty(t *testing.T) {
	out, err := NewRenderer().Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
