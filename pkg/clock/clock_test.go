package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Desaware/bitscanner/pkg/source"
)

type recordedTick struct {
	now uint64
	v   uint16
}

type recorder struct {
	mu    sync.Mutex
	ticks []recordedTick
}

func (r *recorder) Tick(now uint64, v uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, recordedTick{now: now, v: v})
}

func (r *recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks)
}

func TestManual_Schedule(t *testing.T) {
	m := NewManual()

	_, err := m.Schedule(0, func() {})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = m.Schedule(time.Microsecond, nil)
	assert.ErrorIs(t, err, ErrNoCallback)

	assert.False(t, m.Scheduled())
	assert.Equal(t, 0, m.Advance(5))

	calls := 0
	h, err := m.Schedule(25*time.Microsecond, func() { calls++ })
	require.NoError(t, err)
	assert.True(t, m.Scheduled())

	_, err = m.Schedule(25*time.Microsecond, func() {})
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	assert.Equal(t, 3, m.Advance(3))
	assert.Equal(t, 4000, m.AdvanceBy(100*time.Millisecond))
	assert.Equal(t, 4003, calls)

	h.Cancel()
	assert.False(t, m.Scheduled())
	assert.Equal(t, 0, m.Advance(3))
	assert.Equal(t, 0, m.AdvanceBy(time.Second))
	assert.Equal(t, 4003, calls)
}

func TestClock_TickTimes(t *testing.T) {
	m := NewManual()
	rec := &recorder{}
	c := New(m, source.NewSequence(1, 2, 3), rec, 25*time.Microsecond)

	require.NoError(t, c.Start())
	assert.True(t, c.Running())

	m.Advance(4)
	assert.Equal(t, []recordedTick{{25, 1}, {50, 2}, {75, 3}, {100, 1}}, rec.ticks)
	assert.Equal(t, uint64(4), c.Ticks())
	assert.Equal(t, uint64(100), c.Now())
	assert.Equal(t, 25*time.Microsecond, c.Period())
}

func TestClock_StartErrors(t *testing.T) {
	rec := &recorder{}

	c := New(NewManual(), source.Constant(0), rec, 500*time.Nanosecond)
	assert.ErrorIs(t, c.Start(), ErrInvalidPeriod)
	assert.False(t, c.Running())

	m := NewManual()
	c = New(m, source.Constant(0), rec, 25*time.Microsecond)
	require.NoError(t, c.Start())
	assert.ErrorIs(t, c.Start(), ErrAlreadyRunning)

	// The timer refuses a second callback.
	other := New(m, source.Constant(0), rec, 25*time.Microsecond)
	err := other.Start()
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.False(t, other.Running())
}

func TestClock_StopAndRestart(t *testing.T) {
	m := NewManual()
	rec := &recorder{}
	c := New(m, source.Constant(7), rec, 25*time.Microsecond)

	require.NoError(t, c.Start())
	m.Advance(2)

	c.Stop()
	assert.False(t, c.Running())
	assert.False(t, m.Scheduled())
	m.Advance(10)
	assert.Equal(t, 2, rec.Len())

	// Stopping twice is harmless.
	c.Stop()

	require.NoError(t, c.Start())
	m.Advance(1)
	assert.Equal(t, uint64(75), rec.ticks[2].now)
	assert.Equal(t, uint64(75), c.Now())
}

func TestTicker_Schedule(t *testing.T) {
	tk := NewTicker(0)
	assert.Equal(t, time.Millisecond, tk.resolution)

	_, err := tk.Schedule(-time.Second, func() {})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = tk.Schedule(time.Millisecond, nil)
	assert.ErrorIs(t, err, ErrNoCallback)
}

func TestTicker_DrivesClock(t *testing.T) {
	rec := &recorder{}
	c := New(NewTicker(time.Millisecond), source.Constant(42), rec, 25*time.Microsecond)

	require.NoError(t, c.Start())
	assert.Eventually(t, func() bool {
		return rec.Len() >= 400
	}, 2*time.Second, 5*time.Millisecond)
	c.Stop()

	n := rec.Len()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, n, rec.Len(), "no ticks after Stop")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for i, tick := range rec.ticks {
		assert.Equal(t, uint64(i+1)*25, tick.now)
		assert.Equal(t, uint16(42), tick.v)
	}
}
