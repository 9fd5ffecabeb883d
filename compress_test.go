package depotskat

import (
	"testing"

	"github.com/bkrogh/depotskat/date"
)

func TestCompressRoundTrip(t *testing.T) {
	h := &date.History{}
	h.Append(day("2024-01-02"), 101.237) // rounds to 101.24
	h.Append(day("2024-01-03"), 99.5)
	h.Append(day("2024-03-01"), 100)

	packed, err := Compress(h)
	if err != nil {
		t.Fatal(err)
	}
	if packed == "" {
		t.Fatal("non-empty history packed to empty string")
	}

	got, err := Decompress(packed)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 3 {
		t.Fatalf("length = %d, want 3", got.Len())
	}
	tests := []struct {
		on   string
		want float64
	}{
		{"2024-01-02", 101.24},
		{"2024-01-03", 99.5},
		{"2024-03-01", 100},
	}
	for _, tc := range tests {
		if v, ok := got.Get(day(tc.on)); !ok || v != tc.want {
			t.Errorf("value on %s = %.2f, %v, want %.2f", tc.on, v, ok, tc.want)
		}
	}
}

func TestCompressEmpty(t *testing.T) {
	packed, err := Compress(nil)
	if err != nil || packed != "" {
		t.Fatalf("Compress(nil) = %q, %v, want empty", packed, err)
	}
	h, err := Decompress("")
	if err != nil {
		t.Fatal(err)
	}
	if h.Len() != 0 {
		t.Errorf("length = %d, want 0", h.Len())
	}
}

func TestDecompressCorrupt(t *testing.T) {
	if _, err := Decompress("!!! not base64 !!!"); err == nil {
		t.Error("expected an error for invalid base64")
	}
	if _, err := Decompress("Zm9vYmFy"); err == nil { // valid base64, not msgpack
		t.Error("expected an error for invalid payload")
	}
}
