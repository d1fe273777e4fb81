package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNote_CloneIsolation(t *testing.T) {
	n := &Note{ID: "1", Title: "t", Content: strPtr("c"), Tags: []string{"a", "b"}}
	c := n.Clone()

	c.Tags[0] = "changed"
	*c.Content = "changed"

	assert.Equal(t, []string{"a", "b"}, n.Tags)
	assert.Equal(t, "c", *n.Content)
}

func TestNote_CloneNilTagsBecomesEmpty(t *testing.T) {
	n := &Note{ID: "1", Title: "t"}
	c := n.Clone()
	assert.NotNil(t, c.Tags)
	assert.Len(t, c.Tags, 0)
}

func TestNote_Apply(t *testing.T) {
	n := &Note{ID: "1", Title: "Shopping", Content: strPtr("buy milk"), Tags: []string{"home"}}

	tags := []string{"errand", "home"}
	got := n.Apply(NotePatch{Tags: &tags})

	assert.Equal(t, "Shopping", got.Title)
	assert.Equal(t, "buy milk", *got.Content)
	assert.Equal(t, []string{"errand", "home"}, got.Tags)
	assert.Equal(t, []string{"home"}, n.Tags)

	tags[0] = "mutated"
	assert.Equal(t, "errand", got.Tags[0])

	empty := []string{}
	cleared := n.Apply(NotePatch{Tags: &empty})
	assert.Len(t, cleared.Tags, 0)
}

func TestNote_Matches(t *testing.T) {
	n := &Note{Title: "Work", Content: strPtr("Finish REPORT")}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"work", true},
		{"report", true},
		{"fin", true},
		{"milk", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Matches(NormalizeQuery(tt.query)), tt.query)
	}

	noContent := &Note{Title: "Only title"}
	assert.False(t, noContent.Matches("content"))
}

func TestTouchTime(t *testing.T) {
	prev := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	earlier := prev.Add(-time.Second)
	later := prev.Add(time.Second)

	assert.Equal(t, prev, TouchTime(prev, earlier))
	assert.Equal(t, later, TouchTime(prev, later))
}

func TestCloneHelpers(t *testing.T) {
	assert.Nil(t, CloneString(nil))
	src := strPtr("body")
	dst := CloneString(src)
	*dst = "changed"
	assert.Equal(t, "body", *src)

	assert.Equal(t, []string{}, CloneTags(nil))
	tags := []string{"x"}
	copied := CloneTags(tags)
	copied[0] = "y"
	assert.Equal(t, []string{"x"}, tags)
}
