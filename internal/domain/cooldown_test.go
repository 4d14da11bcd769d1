package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownRemaining(t *testing.T) {
	anchor := time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)

	remaining, active := CooldownRemaining(anchor, anchor.Add(time.Hour), DefaultCooldown)
	assert.True(t, active)
	assert.Equal(t, 11*time.Hour, remaining)

	_, active = CooldownRemaining(anchor, anchor.Add(DefaultCooldown), DefaultCooldown)
	assert.False(t, active)

	_, active = CooldownRemaining(anchor, anchor.Add(13*time.Hour), DefaultCooldown)
	assert.False(t, active)

	// Якорь из будущего (сдвиг часов) держит cooldown дольше окна
	remaining, active = CooldownRemaining(anchor, anchor.Add(-time.Hour), DefaultCooldown)
	assert.True(t, active)
	assert.Equal(t, 13*time.Hour, remaining)
}
