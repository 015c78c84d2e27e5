package crawler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelay_NoDelayConfigured(t *testing.T) {
	assert.Zero(t, Delay{}.SleepDuration(time.Now()))
	assert.Zero(t, Delay{Duration: -time.Second}.SleepDuration(time.Now()))
}

func TestDelay_AlreadyElapsed(t *testing.T) {
	d := Delay{Duration: 20 * time.Second}
	// never negative, even when the block is far in the past
	assert.Zero(t, d.SleepDuration(time.Now().Add(-time.Minute)))
}

func TestDelay_RemainingWait(t *testing.T) {
	d := Delay{Duration: 20 * time.Second}
	wait := d.SleepDuration(time.Now().Add(-5 * time.Second))
	assert.Greater(t, wait, 14*time.Second)
	assert.LessOrEqual(t, wait, 15*time.Second)
}
