package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID      string `db:"id"`
	Title   string `db:"title"`
	Skipped string `db:"-"`
	NoTag   string
	hidden  string `db:"hidden"`
}

type joined struct {
	row
	Extra string `db:"extra"`
}

func TestStructTagValues(t *testing.T) {
	assert.Equal(t, []string{"id", "title"}, StructTagValues(row{}))
	assert.Equal(t, []string{"id", "title"}, StructTagValues(&row{}))
	assert.Equal(t, []string{"id", "title", "extra"}, StructTagValues(joined{}))
}

func TestStructToMap(t *testing.T) {
	m := StructToMap(&joined{
		row:   row{ID: "abc", Title: "hello", Skipped: "x", NoTag: "y", hidden: "z"},
		Extra: "z",
	})

	assert.Equal(t, map[string]any{
		"id":    "abc",
		"title": "hello",
		"extra": "z",
	}, m)
}

func TestNanoID(t *testing.T) {
	first := NanoID()
	second := NanoID()

	assert.Len(t, first, NanoidSize)
	assert.NotEqual(t, first, second)
	assert.Len(t, NanoIDSize(8), 8)
	assert.Len(t, NanoIDSize(0), NanoidSize)
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, NullableString(""))
	if got := NullableString("x"); assert.NotNil(t, got) {
		assert.Equal(t, "x", *got)
	}
}
