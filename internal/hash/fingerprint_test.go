package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func TestFingerprint(t *testing.T) {
	a := [][]string{{"SKA001", "1", "100"}, {"SKA036", "2", "1000"}}
	b := [][]string{{"SKA036", "2", "1000"}, {"SKA001", "1", "100"}}

	t.Run("independent of record order", func(t *testing.T) {
		require.Equal(t, Fingerprint(a), Fingerprint(b))
	})

	t.Run("changes with content", func(t *testing.T) {
		c := [][]string{{"SKA001", "1", "101"}, {"SKA036", "2", "1000"}}
		require.NotEqual(t, Fingerprint(a), Fingerprint(c))
	})

	t.Run("field boundaries matter", func(t *testing.T) {
		x := [][]string{{"SKA00", "11", "100"}}
		y := [][]string{{"SKA001", "1", "100"}}
		require.NotEqual(t, Fingerprint(x), Fingerprint(y))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Equal(t, xxh3.New().Sum64(), Fingerprint(nil))
	})

	t.Run("does not reorder input", func(t *testing.T) {
		Fingerprint(b)
		require.Equal(t, "SKA036", b[0][0])
	})
}
