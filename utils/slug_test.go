package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	slug := Slugify("Hello, World! 2024")
	require.True(t, strings.HasPrefix(slug, "Hello-World-2024-"), "got %q", slug)

	suffix := strings.TrimPrefix(slug, "Hello-World-2024-")
	_, err := uuid.Parse(suffix)
	assert.NoError(t, err, "slug suffix must be a uuid")
}

func TestSlugifyUnique(t *testing.T) {
	assert.NotEqual(t, Slugify("same title"), Slugify("same title"))
}

func TestSlugifyStripsPunctuation(t *testing.T) {
	slug := Slugify("  ...what?!  ")
	assert.True(t, strings.HasPrefix(slug, "what-"), "got %q", slug)
}
