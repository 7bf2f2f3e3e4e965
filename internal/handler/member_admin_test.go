package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsBirthday(t *testing.T) {
	now := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)

	match := "1994-06-14"
	otherDay := "1994-06-15"
	otherMonth := "1994-07-14"
	garbage := "not-a-date"
	empty := ""

	assert.True(t, isBirthday(&match, now))
	assert.False(t, isBirthday(&otherDay, now))
	assert.False(t, isBirthday(&otherMonth, now))
	assert.False(t, isBirthday(&garbage, now))
	assert.False(t, isBirthday(&empty, now))
	assert.False(t, isBirthday(nil, now))
}
