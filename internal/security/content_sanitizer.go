// Package security はアプリケーションのセキュリティ機能を提供する。
//
// NoteSanitizer は募集の投稿者メモ（自由記述）を表示前に無害化する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 平文表示用とインライン装飾付き表示用の2種類の出力を提供する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NoteSanitizer は投稿者メモのサニタイズ機能のインターフェースを定義する。
// API応答の生成時に使用される。
type NoteSanitizer interface {
	// PlainText は全てのタグを除去し、連続する空白を1つにまとめた平文を返す。
	// HTMLエンティティはデコードされる（JSONとして返すため）。
	PlainText(raw string) string
	// Markup は許可されたインラインタグ（br, strong, em, a）のみを残したHTMLを返す。
	// aタグはhttpsのみ許可し、target="_blank"とrel="noopener noreferrer"を付与する。
	Markup(raw string) string
}

// noteSanitizer はNoteSanitizerの実装。
// bluemondayのポリシーはスレッドセーフなため、生成後は共有してよい。
type noteSanitizer struct {
	strict *bluemonday.Policy
	inline *bluemonday.Policy
}

// NewNoteSanitizer はNoteSanitizerの新しいインスタンスを生成する。
func NewNoteSanitizer() NoteSanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("br", "strong", "em")

	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("https")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	return &noteSanitizer{
		strict: bluemonday.StrictPolicy(),
		inline: p,
	}
}

// PlainText は全てのタグを除去した平文を返す。
func (s *noteSanitizer) PlainText(raw string) string {
	if raw == "" {
		return ""
	}
	text := html.UnescapeString(s.strict.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}

// Markup は許可されたインラインタグのみを残したHTMLを返す。
func (s *noteSanitizer) Markup(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(s.inline.Sanitize(raw))
}
