package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderLoginCode(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	subject, body, err := r.Render(TemplateLoginCode, map[string]string{
		"code":        "482913",
		"ttl_minutes": "10",
	})
	require.NoError(t, err)
	require.Equal(t, "Your login code", subject)
	require.Contains(t, body, "482913")
	require.Contains(t, body, "10 minutes")
}

func TestRenderMissingKeysAreEmpty(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, body, err := r.Render(TemplateMechanicAssigned, map[string]string{
		"mechanic_name": "Askar",
	})
	require.NoError(t, err)
	require.Contains(t, body, "Askar")
	require.Contains(t, body, "ETA  minutes")
}

func TestRenderNilData(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, body, err := r.Render(TemplateStatusChanged, nil)
	require.NoError(t, err)
	require.NotEmpty(t, body)
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, _, err = r.Render(TemplateID("no_such_template"), nil)
	require.Error(t, err)
}
