package console

import (
	"math"
	"math/rand"
	"testing"
)

func TestNextConsecutiveHueDistance(t *testing.T) {
	a := newAllocator(rand.New(rand.NewSource(1)))
	last := a.last
	for i := 0; i < 1000; i++ {
		a.Next()
		// Non-wrapping comparison on purpose: 0.99 and 0.01 count as far.
		if d := math.Abs(a.last - last); d < hueVariance {
			t.Fatalf("draw %d: hue %f within %f of previous %f", i, a.last, hueVariance, last)
		}
		last = a.last
	}
}

func TestRGBString(t *testing.T) {
	c := RGB{R: 12, G: 200, B: 0}
	if got, want := c.String(), "rgb(12,200,0)"; got != want {
		t.Fatalf("String=%s want=%s", got, want)
	}
}

func TestHSVToRGB(t *testing.T) {
	// Hue 0, saturation 0.3, value 0.95: red channel at full value, the
	// other two reduced by the saturation.
	c := hsvToRGB(0, 0.3, 0.95)
	if c.R != 242 {
		t.Fatalf("R=%d want=242", c.R)
	}
	if c.G != c.B {
		t.Fatalf("G=%d B=%d expected equal", c.G, c.B)
	}
	if c.G >= c.R {
		t.Fatalf("G=%d expected below R=%d", c.G, c.R)
	}
}

func TestHSVToRGBGrayscale(t *testing.T) {
	c := hsvToRGB(0.7, 0, 0.5)
	if c.R != c.G || c.G != c.B {
		t.Fatalf("expected grayscale, got %v", c)
	}
}
