// Package slides holds the ordered, cyclic sequence of image locators a
// slideshow displays, and the helpers that build one.
package slides

// Slide is one entry of a Set.
type Slide struct {
	Index   int    `json:"index"`
	Locator string `json:"locator"`
}

// Set is an immutable ordered sequence of slides. Index arithmetic wraps
// modulo Len.
type Set struct {
	slides []Slide
}

// NewSet copies locators into a new Set, preserving order.
func NewSet(locators []string) Set {
	s := Set{slides: make([]Slide, len(locators))}
	for i, loc := range locators {
		s.slides[i] = Slide{Index: i, Locator: loc}
	}
	return s
}

func (s Set) Len() int { return len(s.slides) }

// At returns the slide at i modulo Len. It panics on an empty Set.
func (s Set) At(i int) Slide {
	return s.slides[s.wrap(i)]
}

// Next returns the index following i, wrapping around.
func (s Set) Next(i int) int {
	return s.wrap(i + 1)
}

// Locators returns a copy of the locators in display order.
func (s Set) Locators() []string {
	out := make([]string, len(s.slides))
	for i, sl := range s.slides {
		out[i] = sl.Locator
	}
	return out
}

func (s Set) wrap(i int) int {
	n := len(s.slides)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
