package catalog

import (
	"context"
	"testing"
	"time"
)

func TestReferenceTime(t *testing.T) {
	pinned := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	fallback := pinned.Add(time.Hour)
	calls := 0
	now := func() time.Time {
		calls++
		return fallback
	}

	if got := ReferenceTime(context.Background(), now); !got.Equal(fallback) {
		t.Errorf("ReferenceTime(unset) = %v, want %v", got, fallback)
	}
	if calls != 1 {
		t.Errorf("clock called %d times, want 1", calls)
	}

	ctx := WithReferenceTime(context.Background(), pinned)
	if got := ReferenceTime(ctx, now); !got.Equal(pinned) {
		t.Errorf("ReferenceTime(pinned) = %v, want %v", got, pinned)
	}
	if calls != 1 {
		t.Errorf("clock should not be called when the time is pinned, called %d times", calls)
	}
}
