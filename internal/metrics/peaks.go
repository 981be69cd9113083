package metrics

import (
	"fmt"

	"github.com/san-kum/odestep/internal/dynamo"
)

// Peak is a local maximum of one state component.
type Peak struct {
	Time  float64
	Value float64
}

// Peaks records the local maxima of component index over a run. A sample is
// a peak when it is strictly above its predecessor and not below its
// successor, so the first and last samples never count. Value is the ratio
// of the last peak to the first.
type Peaks struct {
	name  string
	index int
	peaks []Peak

	seen   int
	prev   float64
	prevT  float64
	rising bool
}

func NewPeaks(index int) *Peaks {
	return &Peaks{
		name:  fmt.Sprintf("peak_ratio_x%d", index),
		index: index,
	}
}

func (p *Peaks) Name() string { return p.name }

func (p *Peaks) Observe(x dynamo.State, t float64) {
	if p.index < 0 || p.index >= len(x) {
		return
	}
	v := x[p.index]
	if p.seen > 0 {
		if p.rising && v <= p.prev {
			p.peaks = append(p.peaks, Peak{Time: p.prevT, Value: p.prev})
		}
		p.rising = v > p.prev
	}
	p.prev, p.prevT = v, t
	p.seen++
}

// Peaks returns a copy of the maxima found so far.
func (p *Peaks) Peaks() []Peak {
	out := make([]Peak, len(p.peaks))
	copy(out, p.peaks)
	return out
}

func (p *Peaks) Value() float64 {
	if len(p.peaks) == 0 {
		return 0
	}
	first, last := p.peaks[0].Value, p.peaks[len(p.peaks)-1].Value
	if first == 0 {
		return 0
	}
	return last / first
}

func (p *Peaks) Reset() {
	p.peaks = nil
	p.seen = 0
	p.prev = 0
	p.prevT = 0
	p.rising = false
}
