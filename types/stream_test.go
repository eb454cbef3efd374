package types

import "testing"

func TestFusionModeString(t *testing.T) {
	tests := []struct {
		mode FusionMode
		want string
	}{
		{FusionNone, "None"},
		{FusionSync, "Sync"},
		{FusionAsync, "Async"},
		{FusionAny, "Any"},
		{FusionMode(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("FusionMode.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
