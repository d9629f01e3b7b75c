package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []int64
		expected int64
	}{
		{"empty sequence starts at one", nil, 1},
		{"increments the maximum", []int64{1, 2, 3}, 4},
		{"gaps are not refilled", []int64{1, 3, 7}, 8},
		{"unordered input", []int64{5, 2, 9, 1}, 10},
		{"single entry", []int64{42}, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextNumber(tt.existing))
		})
	}
}

func TestNextNumber_SequencesAreIndependent(t *testing.T) {
	proformas := []int64{1, 2, 3}
	finals := []int64{1}

	// each class advances on its own history only
	assert.Equal(t, int64(4), NextNumber(proformas))
	assert.Equal(t, int64(2), NextNumber(finals))
	assert.Equal(t, int64(1), NextNumber(nil))
}
