package fixture

import (
	"testing"

	"github.com/oslab-go/ossim/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestRecorderCapturesTrace(t *testing.T) {
	r := NewRecorder(logging.LevelInfo)
	r.Trace("line one")
	r.Trace("line two")
	require.Equal(t, []string{"line one", "line two"}, r.Lines())
}

func TestIOSCHScenarioText(t *testing.T) {
	text := IOSCHScenarioText([][2]int{{0, 42}, {1, 20}})
	require.Equal(t, "0 42\n1 20\n", text)
}

func TestRandomFileText(t *testing.T) {
	text := RandomFileText([]int64{5, 5, 5})
	require.Equal(t, "3\n5\n5\n5\n", text)
}

func TestSCHEDScenarioText(t *testing.T) {
	text := SCHEDScenarioText([][4]int{{0, 100, 10, 5}})
	require.Equal(t, "0 100 10 5\n", text)
}
