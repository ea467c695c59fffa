package listing

import "github.com/hitoshi/raidboard/internal/model"

// Result は絞り込み・並び替え・ページングを通した表示用の結果。
type Result = Page[model.Listing]

// Query はカタログに対してフィルタ、並び替え、ページングの順に適用する。
// 同じ入力に対しては常に同じ結果を返す。
func Query(catalog []model.Listing, f model.ListingFilter, opt model.SortOption, pageSize, page int) Result {
	filtered := Filter(catalog, f)
	return Paginate(SortedBy(filtered, opt), pageSize, page)
}
