package carousel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawFirmWebsite/internal/models"
)

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type fakeClock struct {
	mu       sync.Mutex
	tickers  []*fakeTicker
	interval time.Duration
}

func (c *fakeClock) newTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	c.interval = d
	return t
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *fakeClock) last() *fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickers[len(c.tickers)-1]
}

func threeSlides() []Slide {
	return []Slide{{Title: "a"}, {Title: "b"}, {Title: "c"}}
}

func TestCarousel_EmptyFallsBackToDefault(t *testing.T) {
	c := New(nil)
	v := c.View()

	require.Len(t, v.Slides, 1)
	assert.Equal(t, DefaultSlide, v.Slides[0].Slide)
	assert.True(t, v.Slides[0].Active)
	assert.False(t, v.ShowControls)
	assert.Empty(t, v.Indicators)
}

func TestCarousel_Navigation(t *testing.T) {
	c := New(threeSlides())

	c.Prev()
	assert.Equal(t, 2, c.Current(), "prev from 0 wraps to N-1")

	c.Next()
	assert.Equal(t, 0, c.Current(), "next from N-1 wraps to 0")

	c.GoTo(1)
	assert.Equal(t, 1, c.Current())

	c.GoTo(7)
	assert.Equal(t, 1, c.Current())
	c.GoTo(-1)
	assert.Equal(t, 1, c.Current())
}

func TestCarousel_ViewMarksActive(t *testing.T) {
	c := New(threeSlides(), WithInterval(3*time.Second))
	c.GoTo(2)
	v := c.View()

	assert.True(t, v.ShowControls)
	assert.Len(t, v.Indicators, 3)
	assert.Equal(t, 2, v.Current)
	assert.Equal(t, int64(3000), v.IntervalMillis)
	for i, s := range v.Slides {
		assert.Equal(t, i == 2, s.Active)
		assert.Equal(t, i == 2, v.Indicators[i].Active)
	}
}

func TestCarousel_AutoAdvance(t *testing.T) {
	clock := &fakeClock{}
	c := New(threeSlides(), WithTicker(clock.newTicker))

	c.Start(context.Background())
	defer c.Stop()

	require.Equal(t, 1, clock.count())
	assert.Equal(t, DefaultInterval, clock.interval)

	for want := 1; want <= 4; want++ {
		clock.last().ch <- time.Now()
		expected := want % 3
		require.Eventually(t, func() bool { return c.Current() == expected }, time.Second, time.Millisecond)
	}
}

func TestCarousel_NotArmedForSingleSlide(t *testing.T) {
	clock := &fakeClock{}
	c := New([]Slide{{Title: "only"}}, WithTicker(clock.newTicker))

	c.Start(context.Background())
	defer c.Stop()

	assert.Equal(t, 0, clock.count())
	assert.False(t, c.Armed())
}

func TestCarousel_StopDisarms(t *testing.T) {
	clock := &fakeClock{}
	c := New(threeSlides(), WithTicker(clock.newTicker))

	c.Start(context.Background())
	ticker := clock.last()
	c.Stop()

	assert.False(t, c.Armed())
	require.Eventually(t, ticker.isStopped, time.Second, time.Millisecond)
	assert.Equal(t, 0, c.Current())
}

func TestCarousel_SetSlidesRearms(t *testing.T) {
	clock := &fakeClock{}
	c := New(threeSlides(), WithTicker(clock.newTicker))
	c.Start(context.Background())
	defer c.Stop()

	c.GoTo(2)
	first := clock.last()

	c.SetSlides([]Slide{{Title: "x"}, {Title: "y"}})
	assert.Equal(t, 1, c.Current(), "index clamped into new range")
	assert.Equal(t, 2, clock.count())
	require.Eventually(t, first.isStopped, time.Second, time.Millisecond)

	c.SetSlides(nil)
	assert.Equal(t, 0, c.Current())
	assert.False(t, c.Armed())
	assert.Equal(t, 2, clock.count())
}

func TestCarousel_ContextCancelDisarms(t *testing.T) {
	clock := &fakeClock{}
	c := New(threeSlides(), WithTicker(clock.newTicker))

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	cancel()

	require.Eventually(t, func() bool { return !c.Armed() }, time.Second, time.Millisecond)
}

func TestCarousel_OnChange(t *testing.T) {
	var got []int
	c := New(threeSlides(), WithOnChange(func(i int) { got = append(got, i) }))
	c.Next()
	c.Next()
	c.Prev()
	assert.Equal(t, []int{1, 2, 1}, got)
}

func TestFromModels(t *testing.T) {
	slides := FromModels([]models.CarouselSlide{{Title: "Sale", Image: "/i.jpg", CTAText: "Go", CTALink: "#contact"}})
	require.Len(t, slides, 1)
	assert.Equal(t, Slide{Title: "Sale", Image: "/i.jpg", CTAText: "Go", CTALink: "#contact"}, slides[0])
}
