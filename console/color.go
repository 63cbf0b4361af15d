package console

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// hueVariance is the minimum hue distance between two consecutive request
// colors.
const hueVariance = 0.2

// RGB is an 8-bit color triplet. Its String form is the CSS-style token the
// allocator hands out.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Allocator draws a perceptibly different color for each request by
// rejection-sampling hues. It has no lock of its own: callers mutate it only
// while holding the Console lock.
type Allocator struct {
	rand *rand.Rand
	last float64
}

func NewAllocator() *Allocator {
	return newAllocator(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newAllocator(r *rand.Rand) *Allocator {
	return &Allocator{rand: r}
}

// Next draws a hue uniformly from [0,1), redrawing while the candidate lies
// within the variance window of the last accepted hue. The comparison is a
// plain absolute difference that does not wrap around the hue cycle (0.99
// and 0.01 count as distant); that quirk is kept on purpose for parity with
// the tool's established behavior.
func (a *Allocator) Next() RGB {
	h := a.rand.Float64()
	for math.Abs(h-a.last) < hueVariance {
		h = a.rand.Float64()
	}
	a.last = h
	return hsvToRGB(h, 0.3, 0.95)
}

func hsvToRGB(h, s, v float64) RGB {
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return RGB{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}
