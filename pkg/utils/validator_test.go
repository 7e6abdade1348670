package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAlphabetic(t *testing.T) {
	assert.True(t, IsAlphabetic("accept"))
	assert.True(t, IsAlphabetic("SendExternalReview"))
	assert.False(t, IsAlphabetic("decision-1"))
	assert.False(t, IsAlphabetic("17"))
	assert.False(t, IsAlphabetic(""))
	assert.False(t, IsAlphabetic("with space"))
}

func TestIsEmailOrLocalhost(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"editor@press.example.com", true},
		{"dev@localhost", true},
		{"a.b+c@sub.domain.org", true},
		{"@localhost", false},
		{"editor@", false},
		{"editor", false},
		{"editor@press", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmailOrLocalhost(tt.addr))
		})
	}
}
