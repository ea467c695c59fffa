package board

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hitoshi/raidboard/internal/listing"
	"github.com/hitoshi/raidboard/internal/model"
)

// クエリパラメータ名
const (
	ParamGameVersion   = "game_version"
	ParamExpansion     = "expansion"
	ParamRaidName      = "raid_name"
	ParamDifficulty    = "difficulty"
	ParamFaction       = "faction"
	ParamMinPrice      = "min_price"
	ParamMaxPrice      = "max_price"
	ParamRoles         = "roles"
	ParamSaved         = "saved"
	ParamTier          = "tier"
	ParamScheduledFrom = "scheduled_from"
	ParamScheduledTo   = "scheduled_to"
	ParamWindow        = "window"
	ParamBossClear     = "boss_clear"
	ParamSearch        = "q"
	ParamSort          = "sort"
	ParamPage          = "page"
)

// ParseSort は並び順の文字列を検証する。空文字はデフォルト（新着順）。
func ParseSort(raw string) (model.SortOption, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.DefaultSortOption, nil
	}
	opt := model.SortOption(raw)
	if !listing.IsSupportedSort(opt) {
		return "", model.NewInvalidSortError(raw)
	}
	return opt, nil
}

// ParseSearchRequest はクエリパラメータから検索条件を組み立てる。
// 列挙値・数値・日時の形式はここで検証し、不正な値は INVALID_FILTER/INVALID_SORT/INVALID_PAGE を返す。
// 価格の上下限の逆転や負の値は検証せず、そのまま絞り込みに渡す。
// window と scheduled_from/scheduled_to が両方指定された場合は明示的な日時を優先する。
func ParseSearchRequest(values url.Values, now time.Time, loc *time.Location) (SearchRequest, error) {
	f, err := ParseFilter(values, now, loc)
	if err != nil {
		return SearchRequest{}, err
	}

	sortOpt, err := ParseSort(values.Get(ParamSort))
	if err != nil {
		return SearchRequest{}, err
	}

	page := 1
	if raw := strings.TrimSpace(values.Get(ParamPage)); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return SearchRequest{}, model.NewInvalidPageError(raw)
		}
	}

	return SearchRequest{Filter: f, Sort: sortOpt, Page: page}, nil
}

// ParseFilter はクエリパラメータからフィルタ条件を組み立てる。
func ParseFilter(values url.Values, now time.Time, loc *time.Location) (model.ListingFilter, error) {
	var f model.ListingFilter

	if raw := values.Get(ParamGameVersion); raw != "" {
		v := model.GameVersion(raw)
		if !v.Valid() {
			return f, model.NewInvalidFilterError(ParamGameVersion, raw)
		}
		f.GameVersion = &v
	}
	if raw := values.Get(ParamExpansion); raw != "" {
		e := model.Expansion(raw)
		if !e.Valid() {
			return f, model.NewInvalidFilterError(ParamExpansion, raw)
		}
		f.Expansion = &e
	}
	if raw := values.Get(ParamRaidName); raw != "" {
		f.RaidName = &raw
	}
	if raw := values.Get(ParamDifficulty); raw != "" {
		d := model.Difficulty(raw)
		if !d.Valid() {
			return f, model.NewInvalidFilterError(ParamDifficulty, raw)
		}
		f.Difficulty = &d
	}
	if raw := values.Get(ParamFaction); raw != "" {
		fa := model.Faction(raw)
		if !fa.Valid() {
			return f, model.NewInvalidFilterError(ParamFaction, raw)
		}
		f.Faction = &fa
	}

	var err error
	if f.MinPrice, err = parsePrice(values, ParamMinPrice); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(values, ParamMaxPrice); err != nil {
		return f, err
	}

	for _, raw := range splitList(values[ParamRoles]) {
		r := model.Role(raw)
		if !r.Valid() {
			return f, model.NewInvalidFilterError(ParamRoles, raw)
		}
		f.RolesNeeded = append(f.RolesNeeded, r)
	}
	for _, raw := range splitList(values[ParamTier]) {
		tier := model.PosterTier(raw)
		if !tier.Valid() {
			return f, model.NewInvalidFilterError(ParamTier, raw)
		}
		f.PosterTiers = append(f.PosterTiers, tier)
	}

	if raw := values.Get(ParamSaved); raw != "" {
		saved, err := strconv.ParseBool(raw)
		if err != nil {
			return f, model.NewInvalidFilterError(ParamSaved, raw)
		}
		f.IsSaved = &saved
	}

	if raw := values.Get(ParamWindow); raw != "" {
		from, to, ok := listing.QuickWindow(listing.QuickWindowKind(raw), now, loc)
		if !ok {
			return f, model.NewInvalidFilterError(ParamWindow, raw)
		}
		f.ScheduledFrom = &from
		f.ScheduledTo = &to
	}
	if raw := values.Get(ParamScheduledFrom); raw != "" {
		t, err := parseTime(raw)
		if err != nil {
			return f, model.NewInvalidFilterError(ParamScheduledFrom, raw)
		}
		f.ScheduledFrom = &t
	}
	if raw := values.Get(ParamScheduledTo); raw != "" {
		t, err := parseTime(raw)
		if err != nil {
			return f, model.NewInvalidFilterError(ParamScheduledTo, raw)
		}
		f.ScheduledTo = &t
	}

	if raw := values.Get(ParamBossClear); raw != "" {
		b := model.BossClearType(raw)
		if !b.Valid() {
			return f, model.NewInvalidFilterError(ParamBossClear, raw)
		}
		f.BossClear = &b
	}

	f.Search = strings.TrimSpace(values.Get(ParamSearch))

	return f, nil
}

func parsePrice(values url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, model.NewInvalidFilterError(key, raw)
	}
	return &v, nil
}

// parseTime はRFC3339またはUnixミリ秒の日時を解析する。
func parseTime(raw string) (time.Time, error) {
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

// splitList は繰り返し指定とカンマ区切りの両方を受け付けて値を展開する。
func splitList(raw []string) []string {
	var result []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
