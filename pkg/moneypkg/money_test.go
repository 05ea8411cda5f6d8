package moneypkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePositive(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "OK", input: "100.50"},
		{name: "Integer", input: "42"},
		{name: "ExplicitPlus", input: "+5"},
		{name: "Malformed", input: "!@#$", wantErr: ErrMalformed},
		{name: "Empty", input: "", wantErr: ErrMalformed},
		{name: "Zero", input: "0", wantErr: ErrNotPositive},
		{name: "Negative", input: "-5", wantErr: ErrNotPositive},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePositive(tc.input)

			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.wantErr.Error())
			}
		})
	}
}

func TestLessThan(t *testing.T) {
	less, err := LessThan("99.99", "100")
	require.NoError(t, err)
	require.True(t, less)

	less, err = LessThan("100", "100")
	require.NoError(t, err)
	require.False(t, less)

	less, err = LessThan("100.01", "100")
	require.NoError(t, err)
	require.False(t, less)

	_, err = LessThan("abc", "100")
	require.EqualError(t, err, ErrMalformed.Error())
}

func TestNeg(t *testing.T) {
	require.Equal(t, "-100", Neg("100"))
	require.Equal(t, "-5", Neg("+5"))
	require.Equal(t, "100", Neg("-100"))
}

func TestIsZero(t *testing.T) {
	zero, err := IsZero("0")
	require.NoError(t, err)
	require.True(t, zero)

	zero, err = IsZero("0.00")
	require.NoError(t, err)
	require.True(t, zero)

	zero, err = IsZero("1")
	require.NoError(t, err)
	require.False(t, zero)

	_, err = IsZero("abc")
	require.EqualError(t, err, ErrMalformed.Error())
}
