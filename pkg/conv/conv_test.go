package conv

import (
	"reflect"
	"testing"
)

func TestParseArticleID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1430", want: 1430},
		{in: "1430.0", want: 1430},
		{in: " 12 ", want: 12},
		{in: "12.5", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseArticleID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseArticleID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseArticleID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestConfigGetInt(t *testing.T) {
	cfg := map[string]any{"a": 3, "b": float64(4), "c": "x", "d": 2.5}
	if got := ConfigGetInt(cfg, "a", 0); got != 3 {
		t.Errorf("a = %d", got)
	}
	if got := ConfigGetInt(cfg, "b", 0); got != 4 {
		t.Errorf("b = %d", got)
	}
	if got := ConfigGetInt(cfg, "c", 7); got != 7 {
		t.Errorf("c = %d, want default", got)
	}
	if got := ConfigGetInt(cfg, "d", 7); got != 7 {
		t.Errorf("d = %d, want default for non-integer", got)
	}
	if got := ConfigGetInt(nil, "a", 1); got != 1 {
		t.Errorf("nil map = %d", got)
	}
}

func TestSliceAnyToInt64(t *testing.T) {
	got := SliceAnyToInt64([]any{1, float64(2), "3", int64(4)})
	if want := []int64{1, 2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("SliceAnyToInt64() = %v, want %v", got, want)
	}
	if SliceAnyToInt64("nope") != nil {
		t.Errorf("non-slice should return nil")
	}
}
