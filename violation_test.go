package validation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/path"
)

func TestViolations(t *testing.T) {
	violations := validation.Violations{
		{Message: "must not be blank", Path: path.New().Property("title")},
		{Message: "must not be blank", Path: path.New().Property("authors").IndexedElement(path.ListElement, 1)},
		{Message: "size must be between 1 and 5", Path: path.New().Property("title")},
		{Message: "invalid value"},
	}

	assert.True(t, violations.Has("title"))
	assert.False(t, violations.Has("subtitle"))
	assert.Equal(t, []string{"must not be blank", "size must be between 1 and 5"}, violations.Get("title"))
	assert.Equal(t, []string{"title", "authors[1]<list element>", ""}, violations.Paths())
	assert.Equal(t, "invalid value", violations[3].String())
	assert.Equal(t,
		"validation failed: title: must not be blank; authors[1]<list element>: must not be blank; "+
			"title: size must be between 1 and 5; invalid value",
		violations.Error(),
	)
	assert.False(t, violations.IsEmpty())
	assert.Error(t, violations.Err())
}

func TestViolations_Empty(t *testing.T) {
	var violations validation.Violations

	assert.True(t, violations.IsEmpty())
	assert.NoError(t, violations.Err())
	assert.Empty(t, violations.Paths())
	assert.Equal(t, "validation failed", violations.Error())
}

func TestExtractViolations(t *testing.T) {
	violations := validation.Violations{{Message: "must not be blank", Path: path.New().Property("name")}}
	wrapped := fmt.Errorf("saving publisher: %w", violations)

	assert.True(t, validation.IsViolation(wrapped))
	assert.Equal(t, violations, validation.ExtractViolations(wrapped))

	assert.False(t, validation.IsViolation(errors.New("boom")))
	assert.Nil(t, validation.ExtractViolations(errors.New("boom")))
	assert.Nil(t, validation.ExtractViolations(nil))
	assert.False(t, validation.IsViolation(nil))
}
