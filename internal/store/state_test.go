package store

import (
	"testing"

	"educonnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceStateSetFetchedResetsProjection(t *testing.T) {
	s := NewResourceState()
	s.SetLoading()
	assert.True(t, s.Loading)

	s.SetFetched(sampleResources())
	assert.False(t, s.Loading)
	assert.Len(t, s.Filtered, 4)
	assert.Equal(t, s.Resources, s.Filtered)
}

func TestResourceStateSetFiltersRecomputesFromCanonical(t *testing.T) {
	s := NewResourceState()
	s.SetFetched(sampleResources())

	s.SetFilters(Criteria{Category: "Grants"})
	require.Len(t, s.Filtered, 1)
	assert.Equal(t, uint(2), s.Filtered[0].ID)

	// Narrow further, then widen again: projection always derives from the
	// canonical list, not from the previous projection.
	s.SetFilters(Criteria{Category: "Grants", SearchQuery: "nothing"})
	assert.Empty(t, s.Filtered)

	s.SetFilters(Criteria{})
	assert.Len(t, s.Filtered, 4)

	s.ClearFilters()
	assert.Equal(t, Criteria{}, s.Filters)
	assert.Len(t, s.Filtered, 4)
}

func TestResourceStateToggleSaveUpdatesBothLists(t *testing.T) {
	s := NewResourceState()
	s.SetFetched(sampleResources())
	s.SetFilters(Criteria{Category: "Technology"})

	s.ToggleSave(1)
	assert.True(t, s.Resources[0].Saved)
	assert.True(t, s.Filtered[0].Saved)

	s.ToggleSave(1)
	assert.False(t, s.Resources[0].Saved)
	assert.False(t, s.Filtered[0].Saved)
}

func TestResourceStateToggleSaveFilteredOutDiverges(t *testing.T) {
	s := NewResourceState()
	s.SetFetched(sampleResources())
	s.SetFilters(Criteria{Category: "Technology"})

	// Resource 2 is filtered out: only the canonical copy flips, and the
	// two lists diverge until the next refetch.
	s.ToggleSave(2)
	assert.True(t, s.Resources[1].Saved)
	for _, r := range s.Filtered {
		assert.NotEqual(t, uint(2), r.ID)
	}

	s.SetFetched(sampleResources())
	assert.False(t, s.Resources[1].Saved)
}

func TestDealStateSetUserLocationAnnotatesBothLists(t *testing.T) {
	s := NewDealState()
	s.SetFetched([]models.Deal{
		{ID: 1, Category: "Food", Latitude: floatPtr(48.8566), Longitude: floatPtr(2.3522)},
		{ID: 2}, // no location
	})
	s.SetFilters(Criteria{Category: "Food"})
	require.Len(t, s.Filtered, 1)

	s.SetUserLocation(48.8423, 2.3445)

	require.NotNil(t, s.Deals[0].Distance)
	assert.Greater(t, *s.Deals[0].Distance, 0.0)
	assert.Nil(t, s.Deals[1].Distance)

	// The projection gets the same annotation in the same transition.
	require.NotNil(t, s.Filtered[0].Distance)
	assert.Equal(t, *s.Deals[0].Distance, *s.Filtered[0].Distance)
}

func TestDealStateFilterByCategoryKeepsOtherCriteria(t *testing.T) {
	s := NewDealState()
	s.SetFetched([]models.Deal{
		{ID: 1, Category: "Technology", Verified: true},
		{ID: 2, Category: "Technology", Verified: false},
		{ID: 3, Category: "Food", Verified: true},
	})

	s.SetFilters(Criteria{Verified: boolPtr(true)})
	assert.Len(t, s.Filtered, 2)

	s.FilterByCategory("Technology")
	require.Len(t, s.Filtered, 1)
	assert.Equal(t, uint(1), s.Filtered[0].ID)

	s.FilterByCategory("all")
	assert.Len(t, s.Filtered, 2)
}

func TestDealStateToggleSave(t *testing.T) {
	s := NewDealState()
	s.SetFetched([]models.Deal{{ID: 1}, {ID: 2}})

	s.ToggleSave(2)
	assert.False(t, s.Deals[0].Saved)
	assert.True(t, s.Deals[1].Saved)
	assert.True(t, s.Filtered[1].Saved)

	s.ToggleSave(2)
	assert.False(t, s.Deals[1].Saved)
}

func samplePosts() []models.Post {
	return []models.Post{
		{ID: 1, Category: "Bourses", Likes: 12},
		{ID: 2, Category: "Deals", Likes: 28, IsLiked: true},
		{ID: 3, Category: "Cours", Likes: 0},
	}
}

func TestCommunityToggleLikeMovesCounterWithFlag(t *testing.T) {
	s := NewCommunityState()
	s.SetFetched(samplePosts())

	s.ToggleLike(1)
	assert.True(t, s.Posts[0].IsLiked)
	assert.Equal(t, 13, s.Posts[0].Likes)
	assert.Equal(t, 13, s.Filtered[0].Likes)

	s.ToggleLike(1)
	assert.False(t, s.Posts[0].IsLiked)
	assert.Equal(t, 12, s.Posts[0].Likes)
}

func TestCommunityToggleLikeNeverNegative(t *testing.T) {
	s := NewCommunityState()
	s.SetFetched([]models.Post{{ID: 1, Likes: 0, IsLiked: true}})

	s.ToggleLike(1)
	assert.False(t, s.Posts[0].IsLiked)
	assert.Equal(t, 0, s.Posts[0].Likes)
}

func TestCommunityPrependPostHeadsBothLists(t *testing.T) {
	s := NewCommunityState()
	s.SetFetched(samplePosts())
	s.FilterByCategory("Cours")
	require.Len(t, s.Filtered, 1)

	s.PrependPost(models.Post{ID: 10, Category: "Cours", Content: "hello"})

	assert.Equal(t, uint(10), s.Posts[0].ID)
	assert.Equal(t, uint(10), s.Filtered[0].ID)
	assert.Len(t, s.Posts, 4)
	assert.Len(t, s.Filtered, 2)
}

func TestCommunityAddComment(t *testing.T) {
	s := NewCommunityState()
	s.SetFetched(samplePosts())
	s.FilterByCategory("Bourses")

	comment := models.Comment{ID: 100, PostID: 1, Content: "Bien vu !"}
	s.AddComment(1, comment)

	require.Len(t, s.Posts[0].Comments, 1)
	assert.Equal(t, uint(100), s.Posts[0].Comments[0].ID)
	require.Len(t, s.Filtered[0].Comments, 1)

	// Unknown ids are silently ignored on the client path.
	s.AddComment(999, comment)
	assert.Len(t, s.Posts[0].Comments, 1)
}
