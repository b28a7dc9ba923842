package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewIsUniqueAndSortable(t *testing.T) {
	t.Parallel()

	seen := make(map[ID]struct{})
	var prev ID
	for range 100 {
		id := New()
		require.Len(t, id.String(), 26)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}

		if prev != Zero {
			require.LessOrEqual(t, prev.String(), id.String())
		}
		prev = id
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	id := New()
	parsed, err := Parse("  " + id.String() + " ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	for _, bad := range []string{"", "nope", "0123456789012345678901234!"} {
		_, err := Parse(bad)
		require.ErrorIs(t, err, ErrInvalid)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	id := NewAt(at)
	require.True(t, at.Equal(id.Time()), "got %s", id.Time())

	require.True(t, Zero.Time().IsZero())
}
