package repository

import (
	"context"
	"testing"

	"juicebox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func TestEnsureTags(t *testing.T) {
	db := setupTestDB(t)

	tags, err := ensureTags(db, []string{"#happy", "#sunshine"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"#happy", "#sunshine"}, tagNames(tags))
	for _, tag := range tags {
		assert.NotZero(t, tag.ID)
	}
}

func TestEnsureTags_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := ensureTags(db, []string{"#happy"})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := ensureTags(db, []string{"#happy", "#worst-day-ever"})
	require.NoError(t, err)
	require.Len(t, second, 2)

	// pre-existing tag keeps its row
	for _, tag := range second {
		if tag.Name == "#happy" {
			assert.Equal(t, first[0].ID, tag.ID)
		}
	}

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestEnsureTags_DuplicatesAndEmpties(t *testing.T) {
	db := setupTestDB(t)

	tags, err := ensureTags(db, []string{"#happy", "#happy", "", "#happy"})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "#happy", tags[0].Name)
}

func TestEnsureTags_Empty(t *testing.T) {
	db := setupTestDB(t)

	tags, err := ensureTags(db, nil)
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)

	tags, err = ensureTags(db, []string{"", ""})
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	_, err := ensureTags(db, []string{"#happy", "#sunshine", "#catmandoeverything"})
	require.NoError(t, err)

	tags, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 3)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{"a"}, dedupe([]string{"", "a", ""}))
	assert.Empty(t, dedupe(nil))
}
