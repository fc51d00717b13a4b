package randompkg

import (
	"testing"
	"time"
)

func TestIntBetween(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		if got := IntBetween(3, 7); got < 3 || got > 7 {
			t.Fatalf("IntBetween(3, 7) = %v, want within [3, 7]", got)
		}
	}
}

func TestAsset(t *testing.T) {
	t.Parallel()

	if got := Asset(1); got != "IDR" {
		t.Errorf("Asset(1) = %v, want IDR", got)
	}

	if got := Asset(0); got != "BTC" {
		t.Errorf("Asset(0) = %v, want BTC", got)
	}
}

func TestTimeInMonth(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		got := TimeInMonth(2024, time.February, time.UTC)
		if got.Year() != 2024 || got.Month() != time.February {
			t.Fatalf("TimeInMonth(2024, February) = %v, want within February 2024", got)
		}
	}
}
