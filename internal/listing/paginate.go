package listing

// DefaultPageSize は1ページあたりのデフォルト件数。
const DefaultPageSize = 10

// Page はページングの結果を表す。
type Page[T any] struct {
	Items      []T
	Page       int // クランプ後の1始まりのページ番号
	PageSize   int
	TotalPages int // 0件でも1
	TotalCount int
}

// Paginate は items を pageSize 件ごとに区切り、page 番目（1始まり）を返す。
//
// 範囲外のページ番号はエラーにせずクランプする（1未満は1、最終ページ超過は最終ページ）。
// pageSize が0以下の場合は DefaultPageSize を使う。
// 0件の場合は総ページ数1、空のItemsを返す。
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return Page[T]{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
	}
}
