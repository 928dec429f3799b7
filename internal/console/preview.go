package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lawFirmWebsite/internal/carousel"
)

// slideChangedMsg reports that the preview carousel moved, by timer or by key.
type slideChangedMsg struct{ index int }

// preview runs a live carousel over the currently active slides.
type preview struct {
	carousel *carousel.Carousel
	events   chan int
	ctx      context.Context
	cancel   context.CancelFunc
}

func startPreview(parent context.Context, slides []carousel.Slide, interval time.Duration) *preview {
	ctx, cancel := context.WithCancel(parent)
	events := make(chan int, 1)

	c := carousel.New(slides,
		carousel.WithInterval(interval),
		carousel.WithOnChange(func(index int) {
			// Keep only the newest index; the view reads the carousel anyway.
			select {
			case events <- index:
			default:
			}
		}),
	)
	c.Start(ctx)

	return &preview{carousel: c, events: events, ctx: ctx, cancel: cancel}
}

// wait delivers the next change, or nothing once the preview is closed.
func (p *preview) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-p.ctx.Done():
			return nil
		case index := <-p.events:
			return slideChangedMsg{index: index}
		}
	}
}

func (p *preview) close() {
	p.carousel.Stop()
	p.cancel()
}

// handleKey applies manual navigation. It returns false for keys it does not own.
func (p *preview) handleKey(key string) bool {
	switch key {
	case "left", "h":
		p.carousel.Prev()
	case "right", "l":
		p.carousel.Next()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			p.carousel.GoTo(int(key[0] - '1'))
			return true
		}
		return false
	}
	return true
}

func (p *preview) View() string {
	v := p.carousel.View()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Hero preview"))
	b.WriteString("\n")

	for _, s := range v.Slides {
		if !s.Active {
			continue
		}
		b.WriteString(selectedRowStyle.Render(s.Title))
		b.WriteString("\n")
		if s.Subtitle != "" {
			b.WriteString(rowStyle.Render(s.Subtitle))
			b.WriteString("\n")
		}
		if s.Description != "" {
			b.WriteString(mutedStyle.Render(s.Description))
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render("image: " + s.Image))
		b.WriteString("\n")
		if s.CTAText != "" {
			b.WriteString(activeButtonStyle.Render(s.CTAText))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if v.ShowControls {
		dots := make([]string, len(v.Indicators))
		for i, ind := range v.Indicators {
			if ind.Active {
				dots[i] = selectedRowStyle.Render("●")
			} else {
				dots[i] = mutedStyle.Render("○")
			}
		}
		b.WriteString(strings.Join(dots, " "))
		b.WriteString("  ")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("slide %d/%d, every %s", v.Current+1, len(v.Slides), p.carousel.Interval())))

	if v.ShowControls {
		b.WriteString(helpLine("←/→", "previous/next", "1-9", "jump", "esc", "close"))
	} else {
		b.WriteString(helpLine("esc", "close"))
	}
	return boxStyle.Render(b.String())
}
