package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hitoshi/raidboard/internal/model"
)

// Record は募集ドキュメントのJSON表現。
// シードでは posted_ago/scheduled_in（読み込み時刻からの相対時間）を使い、
// データベースでは posted_at/scheduled_time（絶対時刻）を使う。
type Record struct {
	ID                 string             `json:"id"`
	GameVersion        string             `json:"game_version"`
	Expansion          string             `json:"expansion"`
	RaidName           string             `json:"raid_name"`
	Difficulty         string             `json:"difficulty"`
	Price              int64              `json:"price"`
	MarketAveragePrice int64              `json:"market_average_price"`
	Faction            string             `json:"faction"`
	Server             string             `json:"server"`
	PostedAgo          string             `json:"posted_ago,omitempty"`
	PostedAt           *time.Time         `json:"posted_at,omitempty"`
	ScheduledIn        string             `json:"scheduled_in,omitempty"`
	ScheduledTime      *time.Time         `json:"scheduled_time,omitempty"`
	Poster             posterRecord       `json:"poster"`
	Signups            int                `json:"signups"`
	RolesNeeded        []string           `json:"roles_needed"`
	ClassesAllowed     classSetRecord     `json:"classes_allowed"`
	AvgPayTime         string             `json:"avg_pay_time"`
	PayLimit           string             `json:"pay_limit"`
	IsSaved            bool               `json:"is_saved"`
	Credibility        credibilityRecord  `json:"credibility"`
	NumberOfRuns       int                `json:"number_of_runs"`
	IsTimed            bool               `json:"is_timed"`
	MaxBuyers          int                `json:"max_buyers"`
	CurrentBuyers      int                `json:"current_buyers"`
	Requirements       requirementsRecord `json:"requirements"`
	RoleSlots          []roleSlotRecord   `json:"role_slots"`
	GroupMembers       []memberRecord     `json:"group_members"`
	BuyerInfo          buyerInfoRecord    `json:"buyer_info"`
	EligibleClasses    eligibleRecord     `json:"eligible_classes"`
	Note               string             `json:"note"`
	SelectedBosses     []string           `json:"selected_bosses,omitempty"`
}

type posterRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Avatar   string  `json:"avatar"`
	Credit   float64 `json:"credit"`
	Karma    int     `json:"karma"`
	IsOnline bool    `json:"is_online"`
	Tier     string  `json:"tier"`
}

type credibilityRecord struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	KarmaChange   float64 `json:"karma_change"`
	RiskLevel     string  `json:"risk_level"`
}

type requirementsRecord struct {
	MinIOScore int     `json:"min_io_score"`
	MinIlvl    int     `json:"min_ilvl"`
	MinRating  float64 `json:"min_rating"`
	MinKarma   int     `json:"min_karma"`
}

type roleSlotRecord struct {
	Role    string `json:"role"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
}

type memberRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Class  string `json:"class"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

type buyerInfoRecord struct {
	WillParticipate bool `json:"will_participate"`
	Count           int  `json:"count"`
}

type eligibleRecord struct {
	Tank   classSetRecord `json:"tank"`
	Healer classSetRecord `json:"healer"`
	DPS    classSetRecord `json:"dps"`
}

// classSetRecord は "any"/"all" またはクラス名の配列を受け付ける。
// フィールドが省略された場合は全クラス許可として扱う。
type classSetRecord struct {
	set     model.ClassSet
	present bool
}

// UnmarshalJSON は文字列または配列からクラス集合を復元する。
func (c *classSetRecord) UnmarshalJSON(data []byte) error {
	c.present = true
	var keyword string
	if err := json.Unmarshal(data, &keyword); err == nil {
		if keyword != "any" && keyword != "all" {
			return fmt.Errorf("unknown class set keyword %q", keyword)
		}
		c.set = model.ClassSet{Any: true}
		return nil
	}
	var classes []model.WoWClass
	if err := json.Unmarshal(data, &classes); err != nil {
		return fmt.Errorf("class set must be \"any\" or a list of classes: %w", err)
	}
	c.set = model.ClassSet{Classes: classes}
	return nil
}

// MarshalJSON は全クラス許可を "any"、それ以外を配列として出力する。
func (c classSetRecord) MarshalJSON() ([]byte, error) {
	if !c.present || c.set.Any {
		return json.Marshal("any")
	}
	return json.Marshal(c.set.Classes)
}

func (c classSetRecord) toModel() model.ClassSet {
	if !c.present {
		return model.ClassSet{Any: true}
	}
	return c.set
}

// ToListing はRecordをmodel.Listingに変換する。相対時間は now を基準に解決する。
func (r Record) ToListing(now time.Time) (model.Listing, error) {
	postedAt, err := resolveTime(r.PostedAt, r.PostedAgo, now, -1)
	if err != nil {
		return model.Listing{}, fmt.Errorf("listing %s: posted time: %w", r.ID, err)
	}
	if postedAt == nil {
		return model.Listing{}, fmt.Errorf("listing %s: posted time is missing", r.ID)
	}
	scheduled, err := resolveTime(r.ScheduledTime, r.ScheduledIn, now, 1)
	if err != nil {
		return model.Listing{}, fmt.Errorf("listing %s: scheduled time: %w", r.ID, err)
	}

	l := model.Listing{
		ID:                 r.ID,
		GameVersion:        model.GameVersion(r.GameVersion),
		Expansion:          model.Expansion(r.Expansion),
		RaidName:           r.RaidName,
		Difficulty:         model.Difficulty(r.Difficulty),
		Price:              r.Price,
		MarketAveragePrice: r.MarketAveragePrice,
		Faction:            model.Faction(r.Faction),
		Server:             r.Server,
		ScheduledTime:      scheduled,
		PostedAt:           *postedAt,
		Poster: model.Poster{
			ID:       r.Poster.ID,
			Name:     r.Poster.Name,
			Avatar:   r.Poster.Avatar,
			Credit:   r.Poster.Credit,
			Karma:    r.Poster.Karma,
			IsOnline: r.Poster.IsOnline,
			Tier:     model.PosterTier(r.Poster.Tier),
		},
		Signups:        r.Signups,
		MaxBuyers:      r.MaxBuyers,
		CurrentBuyers:  r.CurrentBuyers,
		ClassesAllowed: r.ClassesAllowed.toModel(),
		EligibleClasses: model.EligibleClasses{
			Tank:   r.EligibleClasses.Tank.toModel(),
			Healer: r.EligibleClasses.Healer.toModel(),
			DPS:    r.EligibleClasses.DPS.toModel(),
		},
		Requirements: model.Requirements{
			MinIOScore: r.Requirements.MinIOScore,
			MinIlvl:    r.Requirements.MinIlvl,
			MinRating:  r.Requirements.MinRating,
			MinKarma:   r.Requirements.MinKarma,
		},
		Credibility: model.Credibility{
			TotalReviews:  r.Credibility.TotalReviews,
			AverageRating: r.Credibility.AverageRating,
			KarmaChange:   r.Credibility.KarmaChange,
			RiskLevel:     model.RiskLevel(r.Credibility.RiskLevel),
		},
		NumberOfRuns: r.NumberOfRuns,
		IsTimed:      r.IsTimed,
		BuyerInfo: model.BuyerInfo{
			WillParticipate: r.BuyerInfo.WillParticipate,
			Count:           r.BuyerInfo.Count,
		},
		AvgPayTime:     r.AvgPayTime,
		PayLimit:       r.PayLimit,
		Note:           r.Note,
		SelectedBosses: r.SelectedBosses,
		IsSaved:        r.IsSaved,
	}

	for _, role := range r.RolesNeeded {
		l.RolesNeeded = append(l.RolesNeeded, model.Role(role))
	}
	for _, s := range r.RoleSlots {
		l.RoleSlots = append(l.RoleSlots, model.RoleSlot{Role: model.Role(s.Role), Current: s.Current, Max: s.Max})
	}
	for _, m := range r.GroupMembers {
		l.GroupMembers = append(l.GroupMembers, model.GroupMember{
			ID:     m.ID,
			Name:   m.Name,
			Class:  model.WoWClass(m.Class),
			Role:   model.Role(m.Role),
			Avatar: m.Avatar,
		})
	}
	return l, nil
}

// resolveTime は絶対時刻があればそれを、なければ now に相対時間を sign 方向に加えた時刻を返す。
// どちらも未設定の場合は nil。
func resolveTime(abs *time.Time, rel string, now time.Time, sign time.Duration) (*time.Time, error) {
	if abs != nil {
		t := *abs
		return &t, nil
	}
	if rel == "" {
		return nil, nil
	}
	d, err := time.ParseDuration(rel)
	if err != nil {
		return nil, err
	}
	t := now.Add(sign * d)
	return &t, nil
}
