package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"local format", "0356496966", "84356496966"},
		{"bare national format", "356496966", "84356496966"},
		{"already international", "84356496966", "84356496966"},
		{"non-digit characters stripped", "0912345678abc", "84912345678"},
		{"formatted input", "+84 356-496-966", "84356496966"},
		{"empty input degenerates to prefix", "", "84"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"0356496966", "356496966", "84356496966", "+84 (912) 345-678"}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}
