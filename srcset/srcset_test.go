package srcset

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/rickb777/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuccess(t *testing.T) {
	cases := []struct {
		input    string
		expected Candidates
	}{
		{
			input: "image1.png 100w, image2.png 50w",
			expected: Candidates{
				{URL: "image1.png", Descriptor: "100w"},
				{URL: "image2.png", Descriptor: "50w"},
			},
		},
		{
			input: "image1.png 2x, image2.png",
			expected: Candidates{
				{URL: "image1.png", Descriptor: "2x"},
				{URL: "image2.png", Descriptor: "1x"},
			},
		},
		{
			input: "image1,100w.png 100w, image2.png 50w",
			expected: Candidates{
				{URL: "image1,100w.png", Descriptor: "100w"},
				{URL: "image2.png", Descriptor: "50w"},
			},
		},
		{
			input:    "image.png",
			expected: Candidates{{URL: "image.png", Descriptor: "1x"}},
		},
		{
			input:    " \t\n image.png 1.5x \r\f ",
			expected: Candidates{{URL: "image.png", Descriptor: "1.5x"}},
		},
		{
			input:    "image.png 0.5x",
			expected: Candidates{{URL: "image.png", Descriptor: "0.5x"}},
		},
		{
			input:    "image.png 0.05x",
			expected: Candidates{{URL: "image.png", Descriptor: "0.05x"}},
		},
		{
			input:    "image.png 2X",
			expected: Candidates{{URL: "image.png", Descriptor: "2X"}},
		},
		{
			input: "a.png 100w, b.png 2x",
			expected: Candidates{
				{URL: "a.png", Descriptor: "100w"},
				{URL: "b.png", Descriptor: "2x"},
			},
		},
		{
			input: "a.png 1x,b.png 2x",
			expected: Candidates{
				{URL: "a.png", Descriptor: "1x"},
				{URL: "b.png", Descriptor: "2x"},
			},
		},
		{
			input: "a.png 1x , b.png 2x",
			expected: Candidates{
				{URL: "a.png", Descriptor: "1x"},
				{URL: "b.png", Descriptor: "2x"},
			},
		},
		{
			// a comma ending the last candidate is a separator with nothing after it
			input:    "a.png 1x,",
			expected: Candidates{{URL: "a.png", Descriptor: "1x"}},
		},
		{
			input:    "a.png 1x, ",
			expected: Candidates{{URL: "a.png", Descriptor: "1x"}},
		},
		{
			input:    "a.png 1x,\n",
			expected: Candidates{{URL: "a.png", Descriptor: "1x"}},
		},
		{
			input: "a.png 100w,\n  b.png 200w,\n",
			expected: Candidates{
				{URL: "a.png", Descriptor: "100w"},
				{URL: "b.png", Descriptor: "200w"},
			},
		},
		{
			// leading comma is tolerated before a candidate
			input: "a.png 1x,, b.png 2x",
			expected: Candidates{
				{URL: "a.png", Descriptor: "1x"},
				{URL: "b.png", Descriptor: "2x"},
			},
		},
		{
			input: "data:image/png;base64,iVBORw0KGgo= 1x, https://example.org/a%20b.png?w=2 2x",
			expected: Candidates{
				{URL: "data:image/png;base64,iVBORw0KGgo=", Descriptor: "1x"},
				{URL: "https://example.org/a%20b.png?w=2", Descriptor: "2x"},
			},
		},
	}

	for _, c := range cases {
		result := Parse(c.input)
		require.True(t, result.Success, c.input)
		assert.Equal(t, None, result.ErrorCode, c.input)
		assert.Equal(t, c.expected, result.Candidates, c.input)
		assert.NoError(t, result.Err(), c.input)
	}
}

func TestParseFailure(t *testing.T) {
	cases := []struct {
		input string
		code  ErrorCode
	}{
		{input: "", code: InvalidAttrValue},
		{input: "   ", code: InvalidAttrValue},
		{input: " \t\r\n\f", code: InvalidAttrValue},
		{input: ",", code: InvalidAttrValue},
		{input: ",,,", code: InvalidAttrValue},
		{input: "image1.png 0w", code: InvalidAttrValue},
		{input: "image1.png 0x", code: InvalidAttrValue},
		{input: "image1.png 0.0x", code: InvalidAttrValue},
		{input: "image1.png -1x", code: InvalidAttrValue},
		{input: "image1.png 1.5w", code: InvalidAttrValue},
		{input: "image1.png 100h", code: InvalidAttrValue},
		{input: "image1.png 1x 2x", code: InvalidAttrValue},
		{input: "image1.png 1x image2.png 2x", code: InvalidAttrValue},
		{input: "image1.png 100w, image2.png 100w", code: DuplicateDimension},
		{input: "image1.png 2X, image2.png 2x", code: DuplicateDimension},
		{input: "image1.png 100W, image2.png 100w", code: DuplicateDimension},
		{input: "image1.png, image2.png 1x", code: DuplicateDimension},
		{input: "image1.png, image2.png", code: DuplicateDimension},
		{input: "image1.png 3x, image2.png 2x, image3.png 3x, image4.png 0w", code: DuplicateDimension},
	}

	for _, c := range cases {
		result := Parse(c.input)
		expect.Bool(result.Success).Info(c.input).ToBeFalse(t)
		expect.Number(result.ErrorCode).Info(c.input).ToBe(t, c.code)
	}
}

func TestParseNumericTextIsVerbatim(t *testing.T) {
	// 1.50x and 1.5x are the same density but are not textual duplicates
	result := Parse("a.png 1.5x, b.png 1.50x")
	require.True(t, result.Success)
	assert.Len(t, result.Candidates, 2)
}

func TestResultErr(t *testing.T) {
	err := Parse("a.png 1x, b.png 1x").Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateDimension))
	assert.Equal(t, "DUPLICATE_DIMENSION: duplicate width or pixel density", err.Error())

	err = Parse("").Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAttrValue))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, InvalidAttrValue, pe.Code)
}

func TestErrorCodeText(t *testing.T) {
	for _, code := range []ErrorCode{None, DuplicateDimension, InvalidAttrValue} {
		text, err := code.MarshalText()
		require.NoError(t, err)

		var decoded ErrorCode
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, code, decoded)
	}

	var bad ErrorCode
	assert.Error(t, bad.UnmarshalText([]byte("NOPE")))
	assert.Equal(t, "ErrorCode(9)", ErrorCode(9).String())
}

//-------------------------------------------------------------------------------------------------

func randomURL(rnd *rand.Rand) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789-_./?=&%,"
	n := 1 + rnd.IntN(20)
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rnd.IntN(len(chars))]
	}
	// no leading or trailing comma
	if b[0] == ',' {
		b[0] = 'a'
	}
	if b[n-1] == ',' {
		b[n-1] = 'z'
	}
	return string(b)
}

func randomSpaces(rnd *rand.Rand) string {
	const spaces = " \t\n\f\r"
	n := rnd.IntN(3)
	b := make([]byte, n)
	for i := range b {
		b[i] = spaces[rnd.IntN(len(spaces))]
	}
	return string(b)
}

// distinct width descriptors
func randomWidths(rnd *rand.Rand, n int) []string {
	perm := rnd.Perm(4 * n)
	ws := make([]string, n)
	for i := range ws {
		ws[i] = fmt.Sprintf("%dw", 1+perm[i]*10)
	}
	return ws
}

func TestParseGeneratedWidthLists(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))

	for range 500 {
		n := 1 + rnd.IntN(6)
		widths := randomWidths(rnd, n)

		var expected Candidates
		parts := make([]string, n)
		for i, w := range widths {
			u := randomURL(rnd)
			expected = append(expected, Candidate{URL: u, Descriptor: w})
			parts[i] = randomSpaces(rnd) + u + " " + randomSpaces(rnd) + w + randomSpaces(rnd)
		}
		input := strings.Join(parts, ",")

		result := Parse(input)
		require.True(t, result.Success, "%q", input)
		require.Len(t, result.Candidates, n, "%q", input)
		assert.Equal(t, expected, result.Candidates, "%q", input)

		// the round trip preserves everything
		again := Parse(result.Candidates.String())
		require.True(t, again.Success, "%q", input)
		assert.Equal(t, result.Candidates, again.Candidates, "%q", input)

		// parsing is a pure function
		assert.Equal(t, result, Parse(input))
	}
}

func TestParseOmittedDescriptorIsOneX(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))

	for range 200 {
		n := 2 + rnd.IntN(4)
		urls := make([]string, n)
		for i := range urls {
			urls[i] = randomURL(rnd)
		}

		omitted := rnd.IntN(n)
		implicit := make([]string, n)
		explicit := make([]string, n)
		for i, u := range urls {
			d := fmt.Sprintf("%dx", i+2)
			if i == omitted {
				implicit[i] = u
				explicit[i] = u + " 1x"
			} else {
				implicit[i] = u + " " + d
				explicit[i] = u + " " + d
			}
		}

		a := Parse(strings.Join(implicit, ", "))
		b := Parse(strings.Join(explicit, ", "))
		require.True(t, a.Success)
		assert.Equal(t, b, a)
	}
}

func TestParseCaseOnlyDuplicates(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))

	for range 200 {
		number := fmt.Sprintf("%d", 1+rnd.IntN(2000))
		unit := "x"
		if rnd.IntN(2) == 0 {
			unit = "w"
		}
		input := randomURL(rnd) + " " + number + strings.ToUpper(unit) + ", " + randomURL(rnd) + " " + number + unit

		result := Parse(input)
		expect.Bool(result.Success).Info(input).ToBeFalse(t)
		expect.Number(result.ErrorCode).Info(input).ToBe(t, DuplicateDimension)
	}
}

func TestParseRandomInputNeverPanics(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 8))
	const alphabet = " \t,.0123456789wxWX-abc/\n"

	for range 2000 {
		b := make([]byte, rnd.IntN(30))
		for i := range b {
			b[i] = alphabet[rnd.IntN(len(alphabet))]
		}
		input := string(b)

		result := Parse(input)
		if result.Success {
			assert.NotEmpty(t, result.Candidates, "%q", input)
			assert.Equal(t, None, result.ErrorCode, "%q", input)

			seen := map[string]bool{}
			for _, c := range result.Candidates {
				key := strings.ToLower(c.Descriptor)
				assert.False(t, seen[key], "%q", input)
				seen[key] = true
			}
		} else {
			assert.NotEqual(t, None, result.ErrorCode, "%q", input)
		}
	}
}
