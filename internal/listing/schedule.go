package listing

import (
	"fmt"
	"time"
)

// Urgency は開催までの残り時間による表示上の緊急度を表す。
type Urgency string

const (
	UrgencyStarted  Urgency = "started"  // 開催時刻を過ぎている
	UrgencyImminent Urgency = "imminent" // 2時間未満
	UrgencySoon     Urgency = "soon"     // 6時間未満
	UrgencyLater    Urgency = "later"
)

const (
	imminentWithin = 2 * time.Hour
	soonWithin     = 6 * time.Hour
)

// ClassifyUrgency は開催時刻 t と現在時刻 now から緊急度を返す。
func ClassifyUrgency(t, now time.Time) Urgency {
	until := t.Sub(now)
	switch {
	case until < 0:
		return UrgencyStarted
	case until < imminentWithin:
		return UrgencyImminent
	case until < soonWithin:
		return UrgencySoon
	}
	return UrgencyLater
}

// ScheduleLabel は開催日のラベルを loc のカレンダーで返す。
// 当日は "Today"、翌日は "Tomorrow"、6日以内は曜日名、それ以外は "Jan 2"
// （年が異なる場合は "Jan 2, 2006"）。過去の日付も日付表記になる。
func ScheduleLabel(t, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	now = now.In(loc)

	days := daysBetween(startOfDay(now), startOfDay(t))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days > 1 && days <= 6:
		return t.Weekday().String()
	}
	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

// ScheduleClock は開催時刻の "15:04" 表記を返す。
func ScheduleClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// TimeAgo は投稿からの経過時間を "3d ago"、"5h ago"、"12m ago"、"Just now" の形式で返す。
func TimeAgo(postedAt, now time.Time) string {
	elapsed := now.Sub(postedAt)
	switch {
	case elapsed >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed/(24*time.Hour)))
	case elapsed >= time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed/time.Hour))
	case elapsed >= time.Minute:
		return fmt.Sprintf("%dm ago", int(elapsed/time.Minute))
	}
	return "Just now"
}

// QuickWindowKind はクイックフィルタの期間種別を表す。
type QuickWindowKind string

const (
	WindowToday   QuickWindowKind = "today"
	WindowWeek    QuickWindowKind = "week"
	WindowWeekend QuickWindowKind = "weekend"
)

// QuickWindow はクイックフィルタの期間 [from, to] を loc のカレンダーで返す。
//
//   - today:   当日の0時から23:59:59.999999999まで
//   - week:    現在時刻から今週（月曜始まり）の日曜終わりまで
//   - weekend: 次の土曜0時から日曜終わりまで（週末中なら当日から）
//
// 未知の種別の場合 ok は false。
func QuickWindow(kind QuickWindowKind, now time.Time, loc *time.Location) (from, to time.Time, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := startOfDay(now)

	switch kind {
	case WindowToday:
		return today, endOfDay(today), true
	case WindowWeek:
		// 月曜=0 ... 日曜=6
		offset := (int(today.Weekday()) + 6) % 7
		sunday := today.AddDate(0, 0, 6-offset)
		return now, endOfDay(sunday), true
	case WindowWeekend:
		var saturday time.Time
		switch today.Weekday() {
		case time.Saturday:
			saturday = today
		case time.Sunday:
			saturday = today.AddDate(0, 0, -1)
		default:
			saturday = today.AddDate(0, 0, int(time.Saturday-today.Weekday()))
		}
		start := saturday
		if today.Weekday() == time.Sunday {
			start = today
		}
		return start, endOfDay(saturday.AddDate(0, 0, 1)), true
	}
	return time.Time{}, time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// daysBetween はカレンダー上の日数差を返す。夏時間の切り替えで23/25時間になる日も1日と数える。
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
