package listing

import (
	"fmt"
	"strconv"

	"github.com/hitoshi/raidboard/internal/gamedata"
	"github.com/hitoshi/raidboard/internal/model"
)

// FullClearLabel はフルクリア募集のボス数表示。
const FullClearLabel = "Full Clear"

// IsFullClear は募集がレイドの全ボスを対象としているかどうかを返す。
// SelectedBosses が空、またはその件数がレイドの総ボス数と一致する場合にtrue。
// ボス一覧が未登録のレイドは総ボス数0として扱う。
func IsFullClear(l model.Listing) bool {
	if len(l.SelectedBosses) == 0 {
		return true
	}
	return len(l.SelectedBosses) == gamedata.BossCount(l.RaidName)
}

// BossCountLabel はボス数の表示文字列を返す。
// フルクリアなら "Full Clear"、それ以外は "{選択数}/{総数} Bosses"。
func BossCountLabel(l model.Listing) string {
	if IsFullClear(l) {
		return FullClearLabel
	}
	return fmt.Sprintf("%d/%d Bosses", len(l.SelectedBosses), gamedata.BossCount(l.RaidName))
}

// MarketPosition は相場に対する価格の位置を表す。
type MarketPosition string

const (
	MarketAbove MarketPosition = "above"
	MarketBelow MarketPosition = "below"
	MarketAt    MarketPosition = "at"
)

// marketThresholdPercent は相場並みとみなす乖離率の幅（±%）。
const marketThresholdPercent = 5.0

// MarketComparison は相場比較の結果を表す。
type MarketComparison struct {
	DeviationPercent float64
	Position         MarketPosition
}

// CompareToMarket は価格の相場平均からの乖離率を計算し分類する。
// 相場平均が0の場合は乖離率0の相場並みとして扱う。
func CompareToMarket(price, marketAverage int64) MarketComparison {
	if marketAverage == 0 {
		return MarketComparison{Position: MarketAt}
	}
	deviation := float64(price-marketAverage) / float64(marketAverage) * 100
	position := MarketAt
	switch {
	case deviation > marketThresholdPercent:
		position = MarketAbove
	case deviation < -marketThresholdPercent:
		position = MarketBelow
	}
	return MarketComparison{DeviationPercent: deviation, Position: position}
}

// FormatGold はゴールド額を短縮表記で返す。
// 100万以上は "2.5M"、1000以上は "150.0K"、それ未満は整数のまま。
func FormatGold(amount int64) string {
	switch {
	case amount >= 1_000_000:
		return strconv.FormatFloat(float64(amount)/1_000_000, 'f', 1, 64) + "M"
	case amount >= 1_000:
		return strconv.FormatFloat(float64(amount)/1_000, 'f', 1, 64) + "K"
	}
	return strconv.FormatInt(amount, 10)
}

// OpenSlots はロールごとの空き枠数を返す。
func OpenSlots(l model.Listing) map[model.Role]int {
	open := make(map[model.Role]int, len(l.RoleSlots))
	for _, slot := range l.RoleSlots {
		open[slot.Role] += slot.Open()
	}
	return open
}
