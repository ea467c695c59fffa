package handler

import (
	"math"
	"time"

	"github.com/hitoshi/raidboard/internal/gamedata"
	"github.com/hitoshi/raidboard/internal/listing"
	"github.com/hitoshi/raidboard/internal/model"
	"github.com/hitoshi/raidboard/internal/security"
)

// --- レスポンス型 ---

// marketResponse は相場比較の表示値。
type marketResponse struct {
	AveragePrice      int64   `json:"average_price"`
	AveragePriceLabel string  `json:"average_price_label"`
	DeviationPercent  float64 `json:"deviation_percent"` // 小数第1位に丸める
	Position          string  `json:"position"`
}

// scheduleResponse は開催日時の表示値。
type scheduleResponse struct {
	Time    time.Time `json:"time"`
	Label   string    `json:"label"`
	Clock   string    `json:"clock"`
	Urgency string    `json:"urgency"`
}

// posterResponse は募集者の表示値。
type posterResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Avatar   string  `json:"avatar"`
	Credit   float64 `json:"credit"`
	Karma    int     `json:"karma"`
	IsOnline bool    `json:"is_online"`
	Tier     string  `json:"tier"`
}

// roleSlotResponse はロール枠の表示値。
type roleSlotResponse struct {
	Role    string `json:"role"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
	Open    int    `json:"open"`
}

// classSetResponse は参加可能クラスの表示値。Any が true の場合は全クラス。
type classSetResponse struct {
	Any     bool     `json:"any"`
	Classes []string `json:"classes"`
}

// listingResponse は募集一覧のサマリーレスポンス。
type listingResponse struct {
	ID              string `json:"id"`
	GameVersion     string `json:"game_version"`
	Expansion       string `json:"expansion"`
	ExpansionLabel  string `json:"expansion_label"`
	RaidName        string `json:"raid_name"`
	Difficulty      string `json:"difficulty"`
	DifficultyLabel string `json:"difficulty_label"`
	DifficultyColor string `json:"difficulty_color"`

	Price      int64          `json:"price"`
	PriceLabel string         `json:"price_label"`
	Market     marketResponse `json:"market"`

	Faction  string            `json:"faction"`
	Server   string            `json:"server"`
	Schedule *scheduleResponse `json:"schedule"`

	PostedAt  time.Time `json:"posted_at"`
	PostedAgo string    `json:"posted_ago"`

	Poster posterResponse `json:"poster"`

	Signups        int                `json:"signups"`
	MaxBuyers      int                `json:"max_buyers"`
	CurrentBuyers  int                `json:"current_buyers"`
	RoleSlots      []roleSlotResponse `json:"role_slots"`
	OpenSlots      map[string]int     `json:"open_slots"`
	RolesNeeded    []string           `json:"roles_needed"`
	ClassesAllowed classSetResponse   `json:"classes_allowed"`

	FullClear      bool     `json:"full_clear"`
	BossLabel      string   `json:"boss_label"`
	SelectedBosses []string `json:"selected_bosses"`

	IsSaved  bool   `json:"is_saved"`
	Note     string `json:"note"`      // 平文
	NoteHTML string `json:"note_html"` // インライン装飾のみ許可したHTML
}

// requirementsResponse は参加条件の表示値。
type requirementsResponse struct {
	MinIOScore int     `json:"min_io_score"`
	MinIlvl    int     `json:"min_ilvl"`
	MinRating  float64 `json:"min_rating"`
	MinKarma   int     `json:"min_karma"`
}

// credibilityResponse は募集者のレビュー集計の表示値。
type credibilityResponse struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	KarmaChange   float64 `json:"karma_change"`
	RiskLevel     string  `json:"risk_level"`
}

// groupMemberResponse は参加済みメンバーの表示値。
type groupMemberResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Class  string `json:"class"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// listingDetailResponse は募集詳細のレスポンス。
type listingDetailResponse struct {
	listingResponse
	EligibleClasses map[string]classSetResponse `json:"eligible_classes"`
	Requirements    requirementsResponse        `json:"requirements"`
	Credibility     credibilityResponse         `json:"credibility"`
	NumberOfRuns    int                         `json:"number_of_runs"`
	IsTimed         bool                        `json:"is_timed"`
	GroupMembers    []groupMemberResponse       `json:"group_members"`
	BuyerInfo       buyerInfoResponse           `json:"buyer_info"`
	AvgPayTime      string                      `json:"avg_pay_time"`
	PayLimit        string                      `json:"pay_limit"`
	RaidBosses      []string                    `json:"raid_bosses"`
}

// buyerInfoResponse は購入者の参加状況の表示値。
type buyerInfoResponse struct {
	WillParticipate bool `json:"will_participate"`
	Count           int  `json:"count"`
}

// listingListResponse は募集一覧のレスポンス。
type listingListResponse struct {
	Listings     []listingResponse `json:"listings"`
	Sort         string            `json:"sort"`
	Page         int               `json:"page"`
	PageSize     int               `json:"page_size"`
	TotalPages   int               `json:"total_pages"`
	TotalCount   int               `json:"total_count"`
	EmptyMessage string            `json:"empty_message,omitempty"`
}

// presenter は募集を表示用のレスポンスに変換する。
type presenter struct {
	sanitizer security.NoteSanitizer
	loc       *time.Location
}

func newPresenter(sanitizer security.NoteSanitizer, loc *time.Location) *presenter {
	if sanitizer == nil {
		sanitizer = security.NewNoteSanitizer()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &presenter{sanitizer: sanitizer, loc: loc}
}

// summary は一覧用の表示値を組み立てる。
func (p *presenter) summary(l model.Listing, now time.Time) listingResponse {
	market := listing.CompareToMarket(l.Price, l.MarketAveragePrice)

	resp := listingResponse{
		ID:              l.ID,
		GameVersion:     string(l.GameVersion),
		Expansion:       string(l.Expansion),
		ExpansionLabel:  gamedata.ExpansionLabel(l.Expansion),
		RaidName:        l.RaidName,
		Difficulty:      string(l.Difficulty),
		DifficultyLabel: gamedata.DifficultyLabel(l.Difficulty),
		DifficultyColor: string(gamedata.DifficultyColor(l.Difficulty)),
		Price:           l.Price,
		PriceLabel:      listing.FormatGold(l.Price),
		Market: marketResponse{
			AveragePrice:      l.MarketAveragePrice,
			AveragePriceLabel: listing.FormatGold(l.MarketAveragePrice),
			DeviationPercent:  math.Round(market.DeviationPercent*10) / 10,
			Position:          string(market.Position),
		},
		Faction:   string(l.Faction),
		Server:    l.Server,
		PostedAt:  l.PostedAt.In(p.loc),
		PostedAgo: listing.TimeAgo(l.PostedAt, now),
		Poster: posterResponse{
			ID:       l.Poster.ID,
			Name:     l.Poster.Name,
			Avatar:   l.Poster.Avatar,
			Credit:   l.Poster.Credit,
			Karma:    l.Poster.Karma,
			IsOnline: l.Poster.IsOnline,
			Tier:     string(l.Poster.Tier),
		},
		Signups:        l.Signups,
		MaxBuyers:      l.MaxBuyers,
		CurrentBuyers:  l.CurrentBuyers,
		RoleSlots:      make([]roleSlotResponse, 0, len(l.RoleSlots)),
		OpenSlots:      make(map[string]int),
		RolesNeeded:    make([]string, 0, len(l.RolesNeeded)),
		ClassesAllowed: classSet(l.ClassesAllowed),
		FullClear:      listing.IsFullClear(l),
		BossLabel:      listing.BossCountLabel(l),
		SelectedBosses: append([]string{}, l.SelectedBosses...),
		IsSaved:        l.IsSaved,
		Note:           p.sanitizer.PlainText(l.Note),
		NoteHTML:       p.sanitizer.Markup(l.Note),
	}

	if l.ScheduledTime != nil {
		resp.Schedule = &scheduleResponse{
			Time:    l.ScheduledTime.In(p.loc),
			Label:   listing.ScheduleLabel(*l.ScheduledTime, now, p.loc),
			Clock:   listing.ScheduleClock(*l.ScheduledTime, p.loc),
			Urgency: string(listing.ClassifyUrgency(*l.ScheduledTime, now)),
		}
	}
	for _, slot := range l.RoleSlots {
		resp.RoleSlots = append(resp.RoleSlots, roleSlotResponse{
			Role:    string(slot.Role),
			Current: slot.Current,
			Max:     slot.Max,
			Open:    slot.Open(),
		})
	}
	for role, open := range listing.OpenSlots(l) {
		resp.OpenSlots[string(role)] = open
	}
	for _, role := range l.RolesNeeded {
		resp.RolesNeeded = append(resp.RolesNeeded, string(role))
	}
	return resp
}

// detail は詳細用の表示値を組み立てる。
func (p *presenter) detail(l model.Listing, now time.Time) listingDetailResponse {
	resp := listingDetailResponse{
		listingResponse: p.summary(l, now),
		EligibleClasses: map[string]classSetResponse{
			string(model.RoleTank):   classSet(l.EligibleClasses.Tank),
			string(model.RoleHealer): classSet(l.EligibleClasses.Healer),
			string(model.RoleDPS):    classSet(l.EligibleClasses.DPS),
		},
		Requirements: requirementsResponse{
			MinIOScore: l.Requirements.MinIOScore,
			MinIlvl:    l.Requirements.MinIlvl,
			MinRating:  l.Requirements.MinRating,
			MinKarma:   l.Requirements.MinKarma,
		},
		Credibility: credibilityResponse{
			TotalReviews:  l.Credibility.TotalReviews,
			AverageRating: l.Credibility.AverageRating,
			KarmaChange:   l.Credibility.KarmaChange,
			RiskLevel:     string(l.Credibility.RiskLevel),
		},
		NumberOfRuns: l.NumberOfRuns,
		IsTimed:      l.IsTimed,
		GroupMembers: make([]groupMemberResponse, 0, len(l.GroupMembers)),
		BuyerInfo: buyerInfoResponse{
			WillParticipate: l.BuyerInfo.WillParticipate,
			Count:           l.BuyerInfo.Count,
		},
		AvgPayTime: l.AvgPayTime,
		PayLimit:   l.PayLimit,
		RaidBosses: gamedata.BossesForRaid(l.RaidName),
	}
	for _, m := range l.GroupMembers {
		resp.GroupMembers = append(resp.GroupMembers, groupMemberResponse{
			ID:     m.ID,
			Name:   m.Name,
			Class:  string(m.Class),
			Role:   string(m.Role),
			Avatar: m.Avatar,
		})
	}
	return resp
}

// list は検索結果を一覧レスポンスに変換する。
func (p *presenter) list(listings []model.Listing, now time.Time) []listingResponse {
	items := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, p.summary(l, now))
	}
	return items
}

func classSet(c model.ClassSet) classSetResponse {
	resp := classSetResponse{Any: c.Any, Classes: make([]string, 0, len(c.Classes))}
	if c.Any {
		return resp
	}
	for _, class := range c.Classes {
		resp.Classes = append(resp.Classes, string(class))
	}
	return resp
}
