package listing

import (
	"testing"
	"time"
)

// testNow は2025-03-12（水曜）10:00 UTC。

// TestClassifyUrgency は開催までの残り時間による緊急度をテストする。
func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		until time.Duration
		want  Urgency
	}{
		{-time.Minute, UrgencyStarted},
		{0, UrgencyImminent},
		{time.Hour + 59*time.Minute, UrgencyImminent},
		{2 * time.Hour, UrgencySoon},
		{5*time.Hour + 59*time.Minute, UrgencySoon},
		{6 * time.Hour, UrgencyLater},
		{72 * time.Hour, UrgencyLater},
	}
	for _, tt := range tests {
		if got := ClassifyUrgency(testNow.Add(tt.until), testNow); got != tt.want {
			t.Errorf("ClassifyUrgency(now+%v) = %q, want %q", tt.until, got, tt.want)
		}
	}
}

// TestScheduleLabel は開催日ラベルをテストする。
func TestScheduleLabel(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"当日", testNow.Add(3 * time.Hour), "Today"},
		{"当日の深夜", time.Date(2025, 3, 12, 23, 59, 0, 0, time.UTC), "Today"},
		{"翌日", time.Date(2025, 3, 13, 9, 0, 0, 0, time.UTC), "Tomorrow"},
		{"3日後は曜日", time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC), "Saturday"},
		{"6日後は曜日", time.Date(2025, 3, 18, 20, 0, 0, 0, time.UTC), "Tuesday"},
		{"7日後は日付", time.Date(2025, 3, 19, 20, 0, 0, 0, time.UTC), "Mar 19"},
		{"翌年は年付き", time.Date(2026, 1, 5, 20, 0, 0, 0, time.UTC), "Jan 5, 2026"},
		{"前日は日付", time.Date(2025, 3, 11, 20, 0, 0, 0, time.UTC), "Mar 11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScheduleLabel(tt.at, testNow, time.UTC); got != tt.want {
				t.Errorf("ScheduleLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestScheduleLabel_UsesLocation はタイムゾーンによって日付の境界が変わることをテストする。
func TestScheduleLabel_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// UTC 2025-03-12 16:00 は JST 2025-03-13 01:00
	at := time.Date(2025, 3, 12, 16, 0, 0, 0, time.UTC)

	if got := ScheduleLabel(at, testNow, time.UTC); got != "Today" {
		t.Errorf("UTC label = %q, want Today", got)
	}
	if got := ScheduleLabel(at, testNow, tokyo); got != "Tomorrow" {
		t.Errorf("JST label = %q, want Tomorrow", got)
	}
	if got := ScheduleClock(at, tokyo); got != "01:00" {
		t.Errorf("ScheduleClock() = %q, want 01:00", got)
	}
	if got := ScheduleLabel(at, testNow, nil); got != "Today" {
		t.Errorf("nil location label = %q, want Today", got)
	}
}

// TestTimeAgo は経過時間の表記をテストする。
func TestTimeAgo(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{0, "Just now"},
		{time.Minute, "1m ago"},
		{59 * time.Minute, "59m ago"},
		{time.Hour + 30*time.Minute, "1h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(testNow.Add(-tt.ago), testNow); got != tt.want {
			t.Errorf("TimeAgo(now-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

// TestQuickWindow はクイックフィルタの期間をテストする。
func TestQuickWindow(t *testing.T) {
	endOf := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
	}
	midnight := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	saturday := time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 16, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		kind     QuickWindowKind
		now      time.Time
		wantFrom time.Time
		wantTo   time.Time
	}{
		{"today", WindowToday, testNow, midnight(2025, 3, 12), endOf(2025, 3, 12)},
		{"week（水曜）", WindowWeek, testNow, testNow, endOf(2025, 3, 16)},
		{"week（日曜）", WindowWeek, sunday, sunday, endOf(2025, 3, 16)},
		{"weekend（水曜）", WindowWeekend, testNow, midnight(2025, 3, 15), endOf(2025, 3, 16)},
		{"weekend（土曜）", WindowWeekend, saturday, midnight(2025, 3, 15), endOf(2025, 3, 16)},
		{"weekend（日曜）", WindowWeekend, sunday, midnight(2025, 3, 16), endOf(2025, 3, 16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, ok := QuickWindow(tt.kind, tt.now, time.UTC)
			if !ok {
				t.Fatal("ok = false, want true")
			}
			if !from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", from, tt.wantFrom)
			}
			if !to.Equal(tt.wantTo) {
				t.Errorf("to = %v, want %v", to, tt.wantTo)
			}
		})
	}

	if _, _, ok := QuickWindow(QuickWindowKind("month"), testNow, time.UTC); ok {
		t.Error("unknown window ok = true, want false")
	}
}
