// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, listing, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidFilter   = "INVALID_FILTER"
	ErrCodeInvalidSort     = "INVALID_SORT"
	ErrCodeInvalidPage     = "INVALID_PAGE"
	ErrCodeListingNotFound = "LISTING_NOT_FOUND"
	ErrCodeInvalidCatalog  = "INVALID_CATALOG"
)

// NewInvalidFilterError は無効なフィルタ値エラーを生成する。
func NewInvalidFilterError(field, value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFilter,
		Message:  fmt.Sprintf("無効なフィルタ値です: %s=%s", field, value),
		Category: "validation",
		Action:   "フィルタ条件を確認してください。",
	}
}

// NewInvalidSortError は無効な並び順エラーを生成する。
func NewInvalidSortError(sort string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSort,
		Message:  fmt.Sprintf("無効な並び順です: %s", sort),
		Category: "validation",
		Action:   "並び順には price_asc、price_desc、posted_desc、posted_asc、scheduled_asc、scheduled_desc、signups_desc、karma_desc のいずれかを指定してください。",
	}
}

// NewInvalidPageError は無効なページ番号エラーを生成する。
func NewInvalidPageError(page string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPage,
		Message:  fmt.Sprintf("無効なページ番号です: %s", page),
		Category: "validation",
		Action:   "ページ番号には1以上の整数を指定してください。",
	}
}

// NewListingNotFoundError は募集未検出エラーを生成する。
func NewListingNotFoundError(listingID string) *APIError {
	return &APIError{
		Code:     ErrCodeListingNotFound,
		Message:  fmt.Sprintf("指定された募集が見つかりません: %s", listingID),
		Category: "listing",
		Action:   "募集IDを確認してください。",
	}
}

// NewInvalidCatalogError はカタログデータ不整合エラーを生成する。
func NewInvalidCatalogError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCatalog,
		Message:  fmt.Sprintf("カタログデータが不正です: %s", reason),
		Category: "system",
		Action:   "カタログの内容を確認してください。",
	}
}
