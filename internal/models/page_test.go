package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeListArray(t *testing.T) {
	page, err := DecodeList[Skill]([]byte(`[{"slug":"web-search"},{"slug":"calendar"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.Nil(t, page.Next)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "calendar", page.Results[1].Slug)
}

func TestDecodeListPage(t *testing.T) {
	page, err := DecodeList[Skill]([]byte(`{
		"count": 3,
		"next": "http://localhost:8000/api/skills/?page=2",
		"previous": null,
		"results": [{"slug":"web-search"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://localhost:8000/api/skills/?page=2", *page.Next)
	assert.Len(t, page.Results, 1)
}

func TestDecodeListEmptyAndInvalid(t *testing.T) {
	page, err := DecodeList[Skill](nil)
	require.NoError(t, err)
	assert.Empty(t, page.Results)

	_, err = DecodeList[Skill]([]byte(`"nope"`))
	assert.Error(t, err)
}
