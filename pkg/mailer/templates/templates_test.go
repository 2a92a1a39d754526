package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	data := WelcomeData("Users", "ana@example.com", "u-1", at)

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Users\n", subject)
	assert.Contains(t, text, "Hi ana@example.com,")
	assert.Contains(t, text, "Thu, 02 Jan 2025 03:04:05 UTC")
	assert.Contains(t, html, "<h2>Welcome to Users</h2>")
	assert.Contains(t, html, "u-1")
}

func TestRenderWelcome_Defaults(t *testing.T) {
	subject, text, _, err := Render(Welcome, map[string]any{"Email": "x@y.io"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to our service\n", subject)
	assert.Contains(t, text, "Registered: just now")
}

func TestRenderHTMLEscapes(t *testing.T) {
	_, _, html, err := Render(Welcome, map[string]any{"Email": "<script>@x.io"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
