package timeline

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/caseline/caseline/internal/events"
	"github.com/caseline/caseline/internal/models"
)

func TestPollerStartStop(t *testing.T) {
	s, err := NewMemorySource()
	require.NoError(t, err)

	p := NewPoller(PollerConfig{Interval: 10 * time.Millisecond}, s, events.NewPublisher())
	require.False(t, p.IsRunning())

	require.NoError(t, p.Start(context.Background()))
	require.True(t, p.IsRunning())
	require.ErrorIs(t, p.Start(context.Background()), ErrPollerAlreadyRunning)

	require.NoError(t, p.Stop())
	require.False(t, p.IsRunning())
	require.ErrorIs(t, p.Stop(), ErrPollerNotRunning)
}

func TestPollerPublishesOnNewItems(t *testing.T) {
	s, err := NewMemorySource()
	require.NoError(t, err)

	pub := events.NewPublisher()
	var fired atomic.Int32
	require.NoError(t, pub.Subscribe("test", events.Filter{
		Types: []events.Type{events.TypeNewItems},
	}, func(events.Event) {
		fired.Add(1)
	}))

	p := NewPoller(PollerConfig{Interval: 10 * time.Millisecond}, s, pub)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	// Nothing newer than the start reference yet.
	require.NoError(t, p.PollNow())
	require.Equal(t, int32(0), fired.Load())

	require.NoError(t, s.Add(models.TimelineItem{
		ID:          "fresh",
		Category:    models.CategoryEmail,
		CreatedDate: time.Now().Add(time.Hour),
	}))

	require.Eventually(t, func() bool {
		return fired.Load() > 0
	}, time.Second, 5*time.Millisecond)
}

func TestPollerMarkSeenSuppressesOlderItems(t *testing.T) {
	created := time.Now().Add(time.Hour)
	s, err := NewMemorySource(models.TimelineItem{
		ID:          "seen",
		Category:    models.CategoryEmail,
		CreatedDate: created,
	})
	require.NoError(t, err)

	pub := events.NewPublisher()
	var fired atomic.Int32
	require.NoError(t, pub.Subscribe("test", events.Filter{}, func(events.Event) {
		fired.Add(1)
	}))

	p := NewPoller(PollerConfig{Interval: time.Hour}, s, pub)
	p.MarkSeen(created)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	require.NoError(t, p.PollNow())
	require.Equal(t, int32(0), fired.Load())
}

func TestPollerPollNowRequiresRunning(t *testing.T) {
	s, err := NewMemorySource()
	require.NoError(t, err)

	p := NewPoller(PollerConfig{Interval: time.Hour}, s, events.NewPublisher())
	require.ErrorIs(t, p.PollNow(), ErrPollerNotRunning)
}

func TestPollerDefaultInterval(t *testing.T) {
	s, err := NewMemorySource()
	require.NoError(t, err)

	p := NewPoller(PollerConfig{}, s, events.NewPublisher())
	require.Equal(t, DefaultPollerConfig().Interval, p.config.Interval)
}
