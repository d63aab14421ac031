package tandem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocal(t *testing.T) {
	w := NewWorld()

	var countSeen int

	counter := func(count *Local[int], other *Local[int]) {
		count.Value += 1
		countSeen = count.Value

		// every parameter gets its own state
		require.Equal(t, 0, other.Value)
	}

	w.AddSystems(Update, counter)

	w.RunSchedule(Update)
	w.RunSchedule(Update)

	require.Equal(t, 2, countSeen)
}
