package catalog

import (
	"context"
	"time"
)

type referenceTimeKey struct{}

// WithReferenceTime は相対時刻の解決に使う基準時刻をコンテキストに設定する。
// 1リクエスト内の読み込みと表示用の派生値が同じ時刻を参照するために使う。
func WithReferenceTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, referenceTimeKey{}, t)
}

// ReferenceTime はコンテキストの基準時刻を返す。未設定の場合は now() を返す。
func ReferenceTime(ctx context.Context, now func() time.Time) time.Time {
	if t, ok := ctx.Value(referenceTimeKey{}).(time.Time); ok {
		return t
	}
	return now()
}
