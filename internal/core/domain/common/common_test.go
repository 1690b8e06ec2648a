package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	assert := require.New(t)

	optionalInt := NewOptional(42, true)
	assert.Equal(42, optionalInt.Value)
	assert.True(optionalInt.IsPresent)

	optionalString := NewOptional("foo", false)
	assert.Equal("foo", optionalString.Value)
	assert.False(optionalString.IsPresent)
	assert.Equal("[-]", optionalString.String())
}

func TestNewEmail(t *testing.T) {
	require.Equal(t, Email("john@example.com"), NewEmail("  John@Example.COM "))
}

func TestPageRequest(t *testing.T) {
	cases := []struct {
		id             string
		number         uint
		size           uint
		expectedNumber uint
		expectedOffset uint
	}{
		{id: "zero page", number: 0, size: 5, expectedNumber: 1, expectedOffset: 0},
		{id: "first page", number: 1, size: 5, expectedNumber: 1, expectedOffset: 0},
		{id: "third page", number: 3, size: 5, expectedNumber: 3, expectedOffset: 10},
		{id: "large size", number: 2, size: 100, expectedNumber: 2, expectedOffset: 100},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			p := NewPageRequest(testcase.number, testcase.size)

			assert := require.New(t)
			assert.Equal(testcase.expectedNumber, p.Number)
			assert.Equal(testcase.expectedOffset, p.Offset())
			assert.Equal(testcase.size, p.Limit())
		})
	}
}

func TestPagesCount(t *testing.T) {
	assert := require.New(t)
	assert.Equal(uint(0), PagesCount(0, 5))
	assert.Equal(uint(1), PagesCount(1, 5))
	assert.Equal(uint(1), PagesCount(5, 5))
	assert.Equal(uint(2), PagesCount(6, 5))
	assert.Equal(uint(0), PagesCount(6, 0))
}
