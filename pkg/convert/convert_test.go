package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchLike struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

func TestStructAssignDeepCopies(t *testing.T) {
	type src struct {
		Title string
		Tags  []string
	}
	type dst struct {
		Title string
		Tags  []string
	}

	s := src{Title: "a", Tags: []string{"x"}}
	var d dst
	require.NoError(t, StructAssign(&s, &d))
	assert.Equal(t, "a", d.Title)
	assert.Equal(t, []string{"x"}, d.Tags)

	s.Tags[0] = "changed"
	assert.Equal(t, "x", d.Tags[0])
}

func TestSetFields(t *testing.T) {
	title := "t"
	tags := []string{}
	assert.Equal(t, []string{"tags", "title"}, SetFields(patchLike{Title: &title, Tags: &tags}))
	assert.Empty(t, SetFields(patchLike{}))
}
