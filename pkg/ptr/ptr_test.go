package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	p := Ptr("notes")
	assert.Equal(t, "notes", *p)
}

func TestValue(t *testing.T) {
	assert.Equal(t, "", Value[string](nil))
	assert.Equal(t, 0, Value[int](nil))
	assert.Equal(t, "notes", Value(Ptr("notes")))
}
