package services

import (
	"testing"
	"time"

	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentsOrderedByRecency(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "tess")
	reader := createTestAccount(t, "ugo")

	item := createTestArticle(t, author, "Discussed")

	older, err := NewComment(item, reader, "first")
	require.NoError(t, err)
	// Pull the first comment back in time so ordering is unambiguous.
	require.NoError(t, database.C.Model(&older).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	_, err = NewComment(item, author, "second")
	require.NoError(t, err)

	comments, err := ListComments(item)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Body)
	assert.Equal(t, "first", comments[1].Body)

	view := RenderComment(comments[0])
	assert.Equal(t, "tess", view.Author.Username)
	assert.False(t, view.Author.Following)
}
