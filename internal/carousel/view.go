package carousel

// View is everything a renderer needs: every slide is mounted and only the active one is
// visible, so the page can crossfade between them.
type View struct {
	Slides         []SlideView
	Current        int
	ShowControls   bool
	Indicators     []Indicator
	IntervalMillis int64
}

type SlideView struct {
	Slide
	Index  int
	Active bool
}

type Indicator struct {
	Index  int
	Active bool
}

func (c *Carousel) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.slides)
	v := View{
		Slides:         make([]SlideView, n),
		Current:        c.current,
		ShowControls:   n > 1,
		IntervalMillis: c.interval.Milliseconds(),
	}
	for i, s := range c.slides {
		v.Slides[i] = SlideView{Slide: s, Index: i, Active: i == c.current}
	}
	if v.ShowControls {
		v.Indicators = make([]Indicator, n)
		for i := range v.Indicators {
			v.Indicators[i] = Indicator{Index: i, Active: i == c.current}
		}
	}
	return v
}
