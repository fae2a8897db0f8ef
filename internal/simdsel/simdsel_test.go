package simdsel_test

import (
	"testing"

	"github.com/spiralpir/core/internal/simdsel"
)

func TestHasAVX2DoesNotPanic(t *testing.T) {
	_ = simdsel.HasAVX2()
}
