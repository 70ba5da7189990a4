package srcset

import (
	"strings"
	"testing"

	"github.com/rickb777/expect"
	"github.com/stretchr/testify/assert"
)

func TestCandidateDescriptors(t *testing.T) {
	cases := []struct {
		descriptor string
		kind       Kind
		width      int
		density    float64
	}{
		{descriptor: "100w", kind: Width, width: 100},
		{descriptor: "640W", kind: Width, width: 640},
		{descriptor: "2x", kind: Density, density: 2},
		{descriptor: "1.5X", kind: Density, density: 1.5},
		{descriptor: "0.25x", kind: Density, density: 0.25},
	}

	for _, c := range cases {
		cand := Candidate{URL: "a.png", Descriptor: c.descriptor}
		expect.Number(cand.Kind()).Info(c.descriptor).ToBe(t, c.kind)

		w, isWidth := cand.Width()
		d, isDensity := cand.Density()
		if c.kind == Width {
			expect.Bool(isWidth).Info(c.descriptor).ToBeTrue(t)
			expect.Bool(isDensity).Info(c.descriptor).ToBeFalse(t)
			expect.Number(w).Info(c.descriptor).ToBe(t, c.width)
		} else {
			expect.Bool(isWidth).Info(c.descriptor).ToBeFalse(t)
			expect.Bool(isDensity).Info(c.descriptor).ToBeTrue(t)
			expect.Number(d).Info(c.descriptor).ToBe(t, c.density)
		}
	}

	expect.String(Width.String()).ToEqual(t, "width")
	expect.String(Density.String()).ToEqual(t, "density")
}

func TestCandidatesMixed(t *testing.T) {
	assert.False(t, Parse("a.png 100w, b.png 200w").Candidates.Mixed())
	assert.False(t, Parse("a.png, b.png 2x").Candidates.Mixed())
	assert.True(t, Parse("a.png 100w, b.png 2x").Candidates.Mixed())
	assert.True(t, Parse("a.png 100w, b.png").Candidates.Mixed())
}

func TestCandidatesMapURLs(t *testing.T) {
	original := Parse("a.png 100w, b.png 200w").Candidates
	mapped := original.MapURLs(func(u string) string { return "img/" + strings.ToUpper(u) })

	assert.Equal(t, []string{"img/A.PNG", "img/B.PNG"}, mapped.URLs())
	assert.Equal(t, []string{"a.png", "b.png"}, original.URLs())
	assert.Equal(t, "img/A.PNG 100w, img/B.PNG 200w", mapped.String())
}

func TestCandidatesString(t *testing.T) {
	result := Parse("  a.png ,b.png 2x")
	expect.String(result.Candidates.String()).ToEqual(t, "a.png 1x, b.png 2x")
	expect.String(result.Candidates[1].String()).ToEqual(t, "b.png 2x")
	expect.String(Candidates(nil).String()).ToEqual(t, "")
}
