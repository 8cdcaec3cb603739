package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Tiliavir/weektracker/internal/logging"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		verbose bool
		debug   bool
	}{
		{false, false},
		{true, true},
	}
	for _, tt := range tests {
		logger, err := logging.New(tt.verbose)
		if err != nil {
			t.Fatalf("New(%v): %v", tt.verbose, err)
		}
		if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Errorf("New(%v): debug enabled = %v, want %v", tt.verbose, got, tt.debug)
		}
		if !logger.Core().Enabled(zapcore.WarnLevel) {
			t.Errorf("New(%v): warnings disabled", tt.verbose)
		}
	}
}
