package listing

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/hitoshi/raidboard/internal/model"
)

// searchTerm は大文字小文字を区別しない部分一致検索の検索語。
type searchTerm struct {
	fold   cases.Caser
	needle string
}

// newSearchTerm は検索語を正規化する。空白のみの検索語は条件なしとしてnilを返す。
func newSearchTerm(query string) *searchTerm {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	fold := cases.Fold()
	needle := strings.TrimSpace(fold.String(query))
	if needle == "" {
		return nil
	}
	return &searchTerm{fold: fold, needle: needle}
}

// matches はレイド名・サーバー・募集者名・メモのいずれかに検索語が含まれるかを返す。
func (s *searchTerm) matches(l model.Listing) bool {
	for _, field := range []string{l.RaidName, l.Server, l.Poster.Name, l.Note} {
		if strings.Contains(s.fold.String(field), s.needle) {
			return true
		}
	}
	return false
}
