package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fspscan/types"
)

func testEntries() []Entry {
	return []Entry{
		{DishID: "SKA036", VCCID: 2, K: 1000},
		{DishID: "SKA001", VCCID: 1, K: 100},
	}
}

func TestNewStatic(t *testing.T) {
	reg, err := NewStatic(testEntries())
	require.NoError(t, err)

	vcc, ok := reg.VCCID("SKA001")
	require.True(t, ok)
	require.Equal(t, 1, vcc)

	k, ok := reg.K("SKA036")
	require.True(t, ok)
	require.Equal(t, 1000, k)

	_, ok = reg.VCCID("SKA100")
	require.False(t, ok)

	require.Equal(t, 2, reg.Len())
	require.Equal(t, "SKA001", reg.Entries()[0].DishID, "sorted by dish id")
}

func TestNewStatic_Empty(t *testing.T) {
	reg, err := NewStatic(nil)
	require.NoError(t, err)

	_, ok := reg.K("SKA001")
	require.False(t, ok)
	require.Empty(t, reg.Entries())
}

func TestValidateEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty dish id", []Entry{{DishID: "", VCCID: 1, K: 1}}},
		{"zero vcc id", []Entry{{DishID: "SKA001", VCCID: 0, K: 1}}},
		{"k too small", []Entry{{DishID: "SKA001", VCCID: 1, K: 0}}},
		{"k too large", []Entry{{DishID: "SKA001", VCCID: 1, K: 2223}}},
		{"duplicate dish", []Entry{{DishID: "SKA001", VCCID: 1, K: 1}, {DishID: "SKA001", VCCID: 2, K: 1}}},
		{"shared vcc id", []Entry{{DishID: "SKA001", VCCID: 1, K: 1}, {DishID: "SKA036", VCCID: 1, K: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, ValidateEntries(tt.entries), ErrInvalidEntry)
		})
	}

	require.NoError(t, ValidateEntries(testEntries()))
}

func TestStatic_Update(t *testing.T) {
	reg, err := NewStatic(testEntries())
	require.NoError(t, err)

	t.Run("invalid update keeps contents", func(t *testing.T) {
		err := reg.Update([]Entry{{DishID: "SKA001", VCCID: 1, K: 0}})
		require.ErrorIs(t, err, ErrInvalidEntry)
		require.Equal(t, 2, reg.Len())
	})

	t.Run("snapshot is not affected by later updates", func(t *testing.T) {
		snap := reg.Snapshot()

		require.NoError(t, reg.Update([]Entry{{DishID: "SKA001", VCCID: 7, K: 5}}))

		vcc, ok := snap.VCCID("SKA001")
		require.True(t, ok)
		require.Equal(t, 1, vcc)
		_, ok = snap.VCCID("SKA036")
		require.True(t, ok)

		vcc, _ = reg.VCCID("SKA001")
		require.Equal(t, 7, vcc)
		_, ok = reg.VCCID("SKA036")
		require.False(t, ok)
	})
}

func TestStatic_Lookup(t *testing.T) {
	reg, err := NewStatic(testEntries())
	require.NoError(t, err)

	e, err := reg.Lookup("SKA036")
	require.NoError(t, err)
	require.Equal(t, Entry{DishID: "SKA036", VCCID: 2, K: 1000}, e)

	_, err = reg.Lookup("SKA100")
	require.ErrorIs(t, err, ErrDishNotFound)
	require.Contains(t, err.Error(), "SKA100")
}

func TestStatic_Fingerprint(t *testing.T) {
	a, err := NewStatic(testEntries())
	require.NoError(t, err)
	entries := testEntries()
	b, err := NewStatic([]Entry{entries[1], entries[0]})
	require.NoError(t, err)

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.Equal(t, Fingerprint(testEntries()), a.Fingerprint())

	require.NoError(t, b.Update([]Entry{{DishID: "SKA001", VCCID: 1, K: 101}}))
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestStatic_ConcurrentAccess(t *testing.T) {
	reg, err := NewStatic(testEntries())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				_, _ = reg.K("SKA001")
				_ = reg.Snapshot()
			}
		}()
		go func(k int) {
			defer wg.Done()
			for range 100 {
				_ = reg.Update([]Entry{{DishID: "SKA001", VCCID: 1, K: k + 1}})
			}
		}(i)
	}
	wg.Wait()

	var _ types.DishRegistry = reg
	require.Equal(t, 1, reg.Len())
}
