package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Options はロガーの出力形式を指定する。
type Options struct {
	// Format は "json"（デフォルト）または "text"。
	Format string
	// Level は出力する最小レベル。nil の場合は Info。
	Level slog.Leveler
	// NoColor は text 形式でANSIカラーを無効にする。
	NoColor bool
}

// Setup はJSON構造化ログ出力のslog.Loggerを生成して返す。
// writerが指定された場合はそのwriterに出力する。
func Setup(w io.Writer) *slog.Logger {
	return New(w, Options{})
}

// New は opts に従ったslog.Loggerを生成する。
// text 形式はローカル開発向けのカラー出力（tint）になる。
func New(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if opts.Format == "text" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			NoColor:    opts.NoColor,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(handler)
}

// SetupDefault は opts に従ったロガーをグローバルロガーとして設定する。
// 本番ではos.Stdoutを渡すことを想定している。
func SetupDefault(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	l := New(w, opts)
	slog.SetDefault(l)
	return l
}
