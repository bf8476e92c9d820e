package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeDeviceName_StripsPartitionSuffix(t *testing.T) {
	assert.Equal(t, "sda", canonicalizeDeviceName("/dev/sda1"))
	assert.Equal(t, "sda", canonicalizeDeviceName("/dev/sda2"))
	assert.Equal(t, "nvme0n1", canonicalizeDeviceName("/dev/nvme0n1p2"))
	assert.Equal(t, "sda", canonicalizeDeviceName("sda"))
}

func TestNormalizeCPUPercent_Modes(t *testing.T) {
	c := New(Options{CPUMode: Normalized})
	assert.InDelta(t, 25.0, c.normalizeCPUPercent(100, 4), 1e-9)

	c.opts.CPUMode = Unnormalized
	assert.InDelta(t, 100.0, c.normalizeCPUPercent(100, 4), 1e-9)

	c.opts.CPUMode = CurrentUsage
	c.cpuState.systemUtilFraction = 0.5
	assert.InDelta(t, 50.0, c.normalizeCPUPercent(100, 4), 1e-9)

	c.cpuState.systemUtilFraction = 0
	assert.InDelta(t, 100.0, c.normalizeCPUPercent(100, 4), 1e-9)
}

func TestListRefreshState_DueAfterInterval(t *testing.T) {
	var l listRefreshState
	now := time.Now()
	assert.True(t, l.due(now))
	l.mark(now)
	assert.False(t, l.due(now.Add(time.Second)))
	assert.True(t, l.due(now.Add(listRefreshEvery+time.Second)))
}

func TestTerminator_SleepReturnsEarlyOnTerminate(t *testing.T) {
	term := NewTerminator()
	done := make(chan bool, 1)
	go func() {
		done <- term.Sleep(time.Minute)
	}()

	time.Sleep(10 * time.Millisecond)
	term.Terminate()

	select {
	case terminated := <-done:
		assert.True(t, terminated)
	case <-time.After(time.Second):
		t.Fatal("Sleep did not return promptly after Terminate")
	}
	assert.True(t, term.Terminated())
}

func TestTerminator_SleepElapsesNormally(t *testing.T) {
	term := NewTerminator()
	terminated := term.Sleep(10 * time.Millisecond)
	assert.False(t, terminated)
}

func TestStateLongName(t *testing.T) {
	assert.Equal(t, "running", stateLongName('R'))
	assert.Equal(t, "sleeping", stateLongName('S'))
	assert.Equal(t, "zombie", stateLongName('Z'))
	assert.Equal(t, "unknown", stateLongName('?'))
}
