package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteArticleMembership(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "lena")
	fan := createTestAccount(t, "mori")

	item := createTestArticle(t, author, "Keeper")

	require.NoError(t, FavoriteArticle(item, fan))
	assert.ErrorIs(t, FavoriteArticle(item, fan), ErrAlreadyFavorited)

	assert.EqualValues(t, 1, CountArticleFavorites(item.ID))
	assert.True(t, IsArticleFavorited(item.ID, fan.ID))
	assert.False(t, IsArticleFavorited(item.ID, author.ID))
}

func TestUnfavoriteArticle(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "nora")
	fan := createTestAccount(t, "odin")

	item := createTestArticle(t, author, "Fleeting")

	assert.ErrorIs(t, UnfavoriteArticle(item, fan), ErrNotFavorited)

	require.NoError(t, FavoriteArticle(item, fan))
	require.NoError(t, UnfavoriteArticle(item, fan))

	// A full add/remove round trip leaves the set where it started.
	assert.EqualValues(t, 0, CountArticleFavorites(item.ID))
	assert.False(t, IsArticleFavorited(item.ID, fan.ID))
	assert.ErrorIs(t, UnfavoriteArticle(item, fan), ErrNotFavorited)
}

func TestRenderArticleFavoriteProjection(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "pia")
	fan := createTestAccount(t, "quinn")

	item := createTestArticle(t, author, "Projected")
	require.NoError(t, FavoriteArticle(item, fan))

	asFan := RenderArticle(item, &fan)
	assert.True(t, asFan.Favorited)
	assert.EqualValues(t, 1, asFan.FavoritesCount)
	assert.False(t, asFan.Author.Following)

	asAnonymous := RenderArticle(item, nil)
	assert.False(t, asAnonymous.Favorited)
	assert.EqualValues(t, 1, asAnonymous.FavoritesCount)
}

func TestBatchFavoriteLookups(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "rudy")
	fan := createTestAccount(t, "sage")

	first := createTestArticle(t, author, "First")
	second := createTestArticle(t, author, "Second")
	require.NoError(t, FavoriteArticle(first, fan))
	require.NoError(t, FavoriteArticle(first, author))
	require.NoError(t, FavoriteArticle(second, fan))

	counts := BatchCountArticleFavorites([]uint{first.ID, second.ID})
	assert.EqualValues(t, 2, counts[first.ID])
	assert.EqualValues(t, 1, counts[second.ID])

	favorited := BatchCheckArticleFavorited([]uint{first.ID, second.ID}, author.ID)
	assert.True(t, favorited[first.ID])
	assert.False(t, favorited[second.ID])
}
