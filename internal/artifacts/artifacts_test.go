package artifacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestReportRoundTripsThroughMsgpack(t *testing.T) {
	r := Report{
		RunID:       "run-1",
		GeneratedAt: time.Unix(0, 0).UTC(),
		BestFormula: "x + 2",
		BestFitness: 1.0,
		HallOfFame:  []string{"x + 2", "x * 2"},
		Code:        []string{"add(x, 2)"},
	}

	payload, err := msgpack.Marshal(r)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, msgpack.Unmarshal(payload, &decoded))
	assert.Equal(t, r, decoded)
}
