package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRRClassIsValid(t *testing.T) {
	for _, c := range []RRClass{RRClassIN, RRClassCH, RRClassHS, RRClassNONE, RRClassANY} {
		assert.True(t, c.IsValid(), "%s should be valid", c)
	}
	for _, c := range []RRClass{RRClassReserved, 2, 100, 0xFF42} {
		assert.False(t, c.IsValid(), "%d should not be valid", c)
	}
}

func TestRRClassString(t *testing.T) {
	tests := []struct {
		c    RRClass
		want string
	}{
		{RRClassReserved, "RESERVED"},
		{RRClassIN, "IN"},
		{RRClassCH, "CH"},
		{RRClassHS, "HS"},
		{RRClassNONE, "NONE"},
		{RRClassANY, "ANY"},
		{RRClass(0xFF42), "RESERVED-PRIVATE(65346)"},
		{RRClass(100), "UNASSIGNED(100)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.String())
	}
}
