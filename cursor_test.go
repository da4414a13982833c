package cxxast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCursor(t *testing.T, src string) *TokenCursor {
	t.Helper()
	f := newSourceFile("", []byte(src))
	c, err := NewTokenCursor(f)
	require.NoError(t, err)
	return c
}

func TestCursorMarkReset(t *testing.T) {
	c := newCursor(t, "a b c")
	mark := c.Mark()
	assert.Equal(t, TokenIdentifier, c.Read().Kind)
	assert.Equal(t, TokenIdentifier, c.Read().Kind)
	c.Reset(mark)
	tok := c.Peek()
	assert.Equal(t, "a", tok.Text)
}

func TestCursorParenViewHidesMatchingClose(t *testing.T) {
	c := newCursor(t, "(a, b) c")
	view, err := c.OpenParenView()
	require.NoError(t, err)
	assert.Equal(t, "a", c.Read().Text)
	require.NoError(t, skipComma(c))
	assert.Equal(t, "b", c.Read().Text)
	assert.True(t, c.AtEnd())
	view.Release()
	_, err = c.Expect(TokenRightPar)
	require.NoError(t, err)
	assert.Equal(t, "c", c.Read().Text)
}

func skipComma(c *TokenCursor) error {
	_, err := c.Expect(TokenComma)
	return err
}

func TestCursorUnmatchedParenIsError(t *testing.T) {
	c := newCursor(t, "(a, b")
	_, err := c.OpenParenView()
	require.Error(t, err)
	var ude *UnmatchedDelimiterError
	assert.ErrorAs(t, err, &ude)
}

// TestAngleSplittingOnRightShift grounds spec.md §4.2/§9: a nested
// `vector<vector<int>>` closes its inner angle against half of the `>>`
// token and leaves the other half for the outer angle.
func TestAngleSplittingOnRightShift(t *testing.T) {
	c := newCursor(t, "<vector<int>>")
	outer, err := c.OpenAngleView()
	require.NoError(t, err)

	assert.Equal(t, "vector", c.Read().Text)
	inner, err := c.OpenAngleView()
	require.NoError(t, err)
	assert.Equal(t, "int", c.Read().Text)
	assert.True(t, c.AtEnd())
	inner.Release()

	closeTok, err := c.CloseAngle()
	require.NoError(t, err)
	assert.Equal(t, TokenGreater, closeTok.Kind)

	outer.Release()
	closeTok2, err := c.CloseAngle()
	require.NoError(t, err)
	assert.Equal(t, TokenGreater, closeTok2.Kind)
}

// TestViewReleaseRestoresOuterRangeOnError grounds spec.md §4.5's "view
// release" invariant: a sub-parse that errors out mid-view still leaves
// the cursor positioned at the outer view's continuation once the view is
// released, with no leaked frame.
func TestViewReleaseRestoresOuterRangeOnError(t *testing.T) {
	c := newCursor(t, "(a b) tail")
	before := len(c.frames)

	view, err := c.OpenParenView()
	require.NoError(t, err)
	assert.Equal(t, "a", c.Read().Text)
	_, expectErr := c.Expect(TokenComma)
	require.Error(t, expectErr)
	view.Release()

	assert.Len(t, c.frames, before)
	_, err = c.Expect(TokenRightPar)
	require.NoError(t, err)
	assert.Equal(t, "tail", c.Read().Text)
}

func TestOpenListViewSplitsOnTopLevelComma(t *testing.T) {
	c := newCursor(t, "a, b, c")
	view := c.OpenListView(false)
	assert.Equal(t, "a", c.Read().Text)
	assert.True(t, c.AtEnd())
	view.Release()
	_, err := c.Expect(TokenComma)
	require.NoError(t, err)
}

func TestOpenListViewNestsAngles(t *testing.T) {
	c := newCursor(t, "map<int, int>, b")
	view := c.OpenListView(true)
	assert.Equal(t, "map", c.Read().Text)
	assert.False(t, c.AtEnd())
	view.Release()
}
