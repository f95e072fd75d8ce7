package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGallery() []GalleryImage {
	return []GalleryImage{
		{ID: 1, Category: GalleryFood, Title: "Plating Artistry"},
		{ID: 2, Category: GalleryInterior, Title: "Main Dining Room"},
		{ID: 3, Category: GalleryExperience, Title: "Wine Tasting"},
		{ID: 4, Category: GalleryTeam, Title: "Culinary Team"},
		{ID: 5, Category: GalleryFood, Title: "Wagyu Presentation"},
		{ID: 6, Category: GalleryInterior, Title: "Private Dining"},
	}
}

func ids(images []GalleryImage) []int {
	out := make([]int, 0, len(images))
	for _, img := range images {
		out = append(out, img.ID)
	}
	return out
}

func TestFilterGallery_FoodKeepsOriginalOrder(t *testing.T) {
	result := FilterGallery(sampleGallery(), GalleryFood)
	assert.Equal(t, []int{1, 5}, ids(result))
	for _, img := range result {
		assert.Equal(t, GalleryFood, img.Category)
	}
}

func TestFilterGallery_AllReturnsEverything(t *testing.T) {
	images := sampleGallery()
	result := FilterGallery(images, GalleryAll)
	require.Len(t, result, len(images))
	assert.Equal(t, ids(images), ids(result))
}

func TestFilterGallery_EveryTagIsExactSubset(t *testing.T) {
	images := sampleGallery()
	for _, tag := range []string{GalleryFood, GalleryInterior, GalleryExperience, GalleryTeam} {
		result := FilterGallery(images, tag)
		expected := 0
		for _, img := range images {
			if img.Category == tag {
				expected++
			}
		}
		assert.Len(t, result, expected, tag)
	}
}

func TestFilterGallery_UnknownTagMatchesNothing(t *testing.T) {
	assert.Empty(t, FilterGallery(sampleGallery(), "desserts"))
}

func TestFilterGallery_DoesNotMutateInput(t *testing.T) {
	images := sampleGallery()
	_ = FilterGallery(images, GalleryTeam)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(images))
}

func TestParseGalleryFilter(t *testing.T) {
	assert.Equal(t, GalleryFood, ParseGalleryFilter(" FOOD "))
	assert.Equal(t, GalleryAll, ParseGalleryFilter(""))
	assert.Equal(t, GalleryAll, ParseGalleryFilter("selfies"))
}
