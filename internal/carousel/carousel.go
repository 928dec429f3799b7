// Package carousel drives the home page hero carousel: which slide is active, manual
// navigation, and the auto-advance timer.
package carousel

import (
	"context"
	"sync"
	"time"

	"lawFirmWebsite/internal/models"
)

const DefaultInterval = 5 * time.Second

// Slide is the display data of one carousel frame.
type Slide struct {
	Title       string
	Subtitle    string
	Description string
	Image       string
	CTAText     string
	CTALink     string
}

// DefaultSlide is shown when no slides are supplied.
var DefaultSlide = Slide{
	Title:       "Trusted Legal Counsel",
	Subtitle:    "Experienced advocates on your side",
	Description: "From family matters to business disputes, we guide you through every step.",
	Image:       "/static/img/hero-default.svg",
	CTAText:     "Book a Consultation",
	CTALink:     "#contact",
}

// FromModels converts stored slides in display order.
func FromModels(records []models.CarouselSlide) []Slide {
	slides := make([]Slide, 0, len(records))
	for _, r := range records {
		slides = append(slides, Slide{
			Title:       r.Title,
			Subtitle:    r.Subtitle,
			Description: r.Description,
			Image:       r.Image,
			CTAText:     r.CTAText,
			CTALink:     r.CTALink,
		})
	}
	return slides
}

// Ticker is the timer source behind auto-advance.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker { return timeTicker{time.NewTicker(d)} }

type Option func(*Carousel)

func WithInterval(d time.Duration) Option {
	return func(c *Carousel) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTicker replaces the real timer, for tests.
func WithTicker(f TickerFunc) Option {
	return func(c *Carousel) { c.newTicker = f }
}

// WithOnChange registers a callback invoked with the new index after every change.
// It runs without the carousel's lock held.
func WithOnChange(f func(index int)) Option {
	return func(c *Carousel) { c.onChange = f }
}

// Carousel is safe for concurrent use.
type Carousel struct {
	mu        sync.Mutex
	slides    []Slide
	current   int
	interval  time.Duration
	newTicker TickerFunc
	onChange  func(int)

	running bool
	ctx     context.Context
	gen     int
	stop    chan struct{}
}

func New(slides []Slide, opts ...Option) *Carousel {
	c := &Carousel{
		interval:  DefaultInterval,
		newTicker: newTimeTicker,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.slides = withFallback(slides)
	return c
}

func withFallback(slides []Slide) []Slide {
	if len(slides) == 0 {
		return []Slide{DefaultSlide}
	}
	return append([]Slide(nil), slides...)
}

func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slides)
}

func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Carousel) Interval() time.Duration {
	return c.interval
}

// Slides returns a copy of the slides being rotated (the default slide when none were given).
func (c *Carousel) Slides() []Slide {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Slide(nil), c.slides...)
}

// Next advances to (current+1) mod N.
func (c *Carousel) Next() {
	c.update(func() { c.current = (c.current + 1) % len(c.slides) })
}

// Prev steps back to (current-1+N) mod N.
func (c *Carousel) Prev() {
	c.update(func() { c.current = (c.current - 1 + len(c.slides)) % len(c.slides) })
}

// GoTo jumps to index i. Out of range indexes are ignored.
func (c *Carousel) GoTo(i int) {
	c.mu.Lock()
	if i < 0 || i >= len(c.slides) {
		c.mu.Unlock()
		return
	}
	c.current = i
	c.mu.Unlock()
	c.notify(i)
}

func (c *Carousel) update(f func()) {
	c.mu.Lock()
	f()
	index := c.current
	c.mu.Unlock()
	c.notify(index)
}

func (c *Carousel) notify(index int) {
	if c.onChange != nil {
		c.onChange(index)
	}
}

// Start arms the auto-advance timer until ctx is done or Stop is called. The timer is only
// armed while there is more than one slide.
func (c *Carousel) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.ctx = ctx
	c.arm()
}

// Stop disarms the timer. No tick is applied after Stop returns.
func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.disarm()
}

// SetSlides replaces the slides. The timer is disarmed, the index is clamped into the new
// range, and the timer is re-armed if the carousel is running.
func (c *Carousel) SetSlides(slides []Slide) {
	c.mu.Lock()
	c.disarm()
	c.slides = withFallback(slides)
	if c.current >= len(c.slides) {
		c.current = len(c.slides) - 1
	}
	if c.running {
		c.arm()
	}
	index := c.current
	c.mu.Unlock()
	c.notify(index)
}

// Armed reports whether the auto-advance timer is live.
func (c *Carousel) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// arm and disarm require c.mu.
func (c *Carousel) arm() {
	if len(c.slides) <= 1 {
		return
	}

	c.gen++
	gen := c.gen
	stop := make(chan struct{})
	c.stop = stop
	ticker := c.newTicker(c.interval)
	ctx := c.ctx

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				c.expire(gen)
				return
			case <-stop:
				return
			case <-ticker.C():
				c.tick(gen)
			}
		}
	}()
}

func (c *Carousel) disarm() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
	c.gen++
}

func (c *Carousel) expire(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.stop = nil
		c.running = false
		c.gen++
	}
}

func (c *Carousel) tick(gen int) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.current = (c.current + 1) % len(c.slides)
	index := c.current
	c.mu.Unlock()
	c.notify(index)
}
