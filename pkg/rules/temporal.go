package rules

import (
	"time"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/metadata"
)

func (s *set) past(t time.Time, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
	return t.Before(s.now()), nil
}

func (s *set) future(t time.Time, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
	return t.After(s.now()), nil
}
