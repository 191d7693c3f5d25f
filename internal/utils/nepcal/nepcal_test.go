package nepcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochAnchor(t *testing.T) {
	// 1 Baishakh 2000 BS is the table epoch: 14 April 1943 AD.
	got, err := FromBS(2000, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1943, time.April, 14, 0, 0, 0, 0, time.UTC), got)

	y, m, d, err := ToBS(time.Date(1943, time.April, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2000, y)
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, d)
}

func TestBSRoundTrip(t *testing.T) {
	// Converting BS -> canonical -> BS must reproduce the original
	// components for dates spread across the table, including month ends.
	cases := []struct{ y, m, d int }{
		{2000, 1, 1},
		{2000, 12, 31}, // last day of the epoch year
		{2052, 3, 32}, // 32-day month
		{2070, 9, 30},
		{2080, 4, 32},
		{2081, 1, 15},
		{2090, 12, 30}, // last supported day
	}
	for _, c := range cases {
		canonical, err := FromBS(c.y, c.m, c.d)
		require.NoErrorf(t, err, "FromBS(%d,%d,%d)", c.y, c.m, c.d)

		y, m, d, err := ToBS(canonical)
		require.NoError(t, err)
		assert.Equal(t, c.y, y, "year for %v", c)
		assert.Equal(t, c.m, m, "month for %v", c)
		assert.Equal(t, c.d, d, "day for %v", c)
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	// Every canonical day over a multi-year span must survive
	// canonical -> BS string -> canonical unchanged.
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365*3; i++ {
		day := start.AddDate(0, 0, i)
		bs, err := ToBSString(day)
		require.NoError(t, err)

		back, err := ToCanonical(bs)
		require.NoErrorf(t, err, "round trip of %s via %s", day.Format("2006-01-02"), bs)
		assert.True(t, day.Equal(back), "expected %s, got %s (via %s)", day, back, bs)
	}
}

func TestDetectionHeuristic(t *testing.T) {
	// Years at or below the threshold read as Gregorian, above as BS.
	assert.False(t, IsBikramSambatString("2050-01-01"))
	assert.True(t, IsBikramSambatString("2051-01-01"))
	assert.False(t, IsBikramSambatString("2024-06-15"))
	assert.True(t, IsBikramSambatString("2081-03-01"))
	assert.False(t, IsBikramSambatString("garbage"))

	// ToCanonical follows the same heuristic.
	gregorian, err := ToCanonical("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), gregorian)

	bs, err := ToCanonical("2081-01-01")
	require.NoError(t, err)
	fromBS, err := FromBS(2081, 1, 1)
	require.NoError(t, err)
	assert.True(t, bs.Equal(fromBS))
}

func TestParseExplicitSystem(t *testing.T) {
	// An explicit system tag overrides the magnitude heuristic.
	asBS, err := Parse("2050-01-01", SystemBikramSambat)
	require.NoError(t, err)
	expected, err := FromBS(2050, 1, 1)
	require.NoError(t, err)
	assert.True(t, asBS.Equal(expected))

	asAD, err := Parse("2050-01-01", SystemGregorian)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC), asAD)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		value string
		sys   System
	}{
		{"not-a-date", SystemUnknown},
		{"2024-02-30", SystemGregorian}, // no such Gregorian day
		{"2081-13-01", SystemBikramSambat},
		{"2081-02-33", SystemBikramSambat}, // BS 2081 Jestha has 31 days
		{"1999-01-01", SystemBikramSambat}, // before table range
		{"2091-01-01", SystemBikramSambat}, // past table range
		{"2024-06", SystemUnknown},
	}
	for _, c := range cases {
		_, err := Parse(c.value, c.sys)
		assert.Errorf(t, err, "Parse(%q) should fail", c.value)

		var parseErr *ParseError
		assert.ErrorAsf(t, err, &parseErr, "Parse(%q) should return *ParseError", c.value)
	}
}

func TestToBSOutOfRange(t *testing.T) {
	_, _, _, err := ToBS(time.Date(1940, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err, "dates before the epoch are not representable")

	_, _, _, err = ToBS(time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err, "dates past the table range are not representable")
}

func TestIsValidCanonical(t *testing.T) {
	assert.False(t, IsValidCanonical(time.Time{}), "zero time signals a failed conversion")
	assert.False(t, IsValidCanonical(time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)), "unix epoch signals a failed conversion")
	assert.False(t, IsValidCanonical(time.Date(1970, time.January, 1, 10, 30, 0, 0, time.UTC)), "any instant on the epoch day is rejected")
	assert.True(t, IsValidCanonical(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
}

func TestToBSStringZeroPadding(t *testing.T) {
	canonical, err := FromBS(2081, 1, 5)
	require.NoError(t, err)

	s, err := ToBSString(canonical)
	require.NoError(t, err)
	assert.Equal(t, "2081-01-05", s)
}
