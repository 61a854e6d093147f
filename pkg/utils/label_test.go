package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "empty existing takes incoming",
			existing: Label{},
			incoming: RecallLabel("top"),
			want:     Label{Value: "top", Source: "recall"},
		},
		{
			name:     "empty incoming keeps existing",
			existing: RecallLabel("top"),
			incoming: Label{},
			want:     Label{Value: "top", Source: "recall"},
		},
		{
			name:     "same source accumulates value only",
			existing: RecallLabel("user_user"),
			incoming: RecallLabel("content"),
			want:     Label{Value: "user_user|content", Source: "recall"},
		},
		{
			name:     "different sources accumulate",
			existing: Label{Value: "a", Source: "recall"},
			incoming: Label{Value: "b", Source: "filter"},
			want:     Label{Value: "a|b", Source: "recall,filter"},
		},
		{
			name:     "identical label is not duplicated",
			existing: RecallLabel("top"),
			incoming: RecallLabel("top"),
			want:     Label{Value: "top", Source: "recall"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
