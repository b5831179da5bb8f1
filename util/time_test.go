package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	assert.Equal(t, int64(1673778600), ParseTimestamp("2023-01-15T10:30:00Z"))
	assert.Equal(t, int64(1673778600), ParseTimestamp("2023-01-15T10:30:00"))
	assert.Equal(t, int64(1673740800), ParseTimestamp("2023-01-15"))
	assert.Equal(t, int64(1552608000), ParseTimestamp("20190315"))
	assert.Equal(t, int64(1552608000), ParseTimestamp("March 15, 2019"))
	assert.Equal(t, int64(0), ParseTimestamp(""))
	assert.Equal(t, int64(0), ParseTimestamp("not a date"))
}
