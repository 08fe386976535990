package otp

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomCodeFormat(t *testing.T) {
	g := NewSecureGenerator()

	for i := 0; i < 200; i++ {
		code, err := g.RandomCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestRandomCodeLengths(t *testing.T) {
	g := NewSecureGenerator()

	for _, length := range []int{4, 5, 6, 8} {
		code, err := g.RandomCode(length)
		require.NoError(t, err)
		require.Len(t, code, length)
	}

	_, err := g.RandomCode(2)
	require.Error(t, err)
}
