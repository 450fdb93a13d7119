package memory

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrowthPolicy(t *testing.T) {
	tests := []struct {
		policy GrowthPolicy
		c      int
		need   int
		want   int
	}{
		{GrowExact, 0, 1, 1},
		{GrowExact, 8, 9, 9},
		{GrowDouble, 0, 1, 1},
		{GrowDouble, 8, 9, 16},
		{GrowDouble, 8, 40, 40},
		{GrowDouble, math.MaxInt/2 + 1, math.MaxInt/2 + 2, math.MaxInt/2 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Next(tt.c, tt.need))
		})
	}

	assert.Equal(t, "unknown(7)", GrowthPolicy(7).String())
}

func TestPresize(t *testing.T) {
	assert.Equal(t, 0, Presize(-3))
	assert.Equal(t, 12, Presize(12))
	assert.Equal(t, MaxPresize, Presize(math.MaxInt))
}

func TestNewConfig(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, DefaultAllocator, c.Allocator)
	assert.Equal(t, GrowExact, c.Growth)
	assert.Nil(t, c.Observer)

	counting := NewCountingAllocator(nil)
	c = NewConfig(WithAllocator(counting), WithGrowth(GrowDouble))
	assert.Same(t, counting, c.Allocator)
	assert.Equal(t, GrowDouble, c.Growth)

	c = NewConfig(WithAllocator(nil))
	assert.Equal(t, DefaultAllocator, c.Allocator)
}

func TestConfig_Observe(t *testing.T) {
	var events []BuildEvent
	rec := ObserverFunc(func(ev BuildEvent) { events = append(events, ev) })

	c := NewConfig(WithObserver(Observers(rec, nil, rec)))
	start := time.Now()
	c.Observe("bitmap", start, 10, 2, nil)
	c.Observe("offset", start, 10, 2, errors.New("boom"))

	assert.Len(t, events, 4)
	assert.Equal(t, "bitmap", events[0].Kind)
	assert.Equal(t, 10, events[0].Len)
	assert.Equal(t, 2, events[0].Bytes)
	assert.NoError(t, events[0].Err)

	assert.Equal(t, "offset", events[2].Kind)
	assert.Zero(t, events[2].Len)
	assert.Zero(t, events[2].Bytes)
	assert.Error(t, events[2].Err)

	// Without an observer nothing happens.
	NewConfig().Observe("bitmap", start, 1, 1, nil)
}

func TestConfig_Options(t *testing.T) {
	counting := NewCountingAllocator(nil)
	obs := ObserverFunc(func(BuildEvent) {})
	c := NewConfig(WithAllocator(counting), WithGrowth(GrowDouble), WithObserver(obs))

	nested := NewConfig(c.Options()...)
	assert.Same(t, counting, nested.Allocator)
	assert.Equal(t, GrowDouble, nested.Growth)
	assert.Nil(t, nested.Observer)
}
