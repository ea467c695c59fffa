package app

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/hitoshi/raidboard/internal/board"
)

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はAPIサーバーモードで起動することを示す。
	CommandServe Command = "serve"
	// CommandMigrate はデータベースマイグレーションを実行することを示す。
	CommandMigrate Command = "migrate"
	// CommandQuery はカタログを検索して結果を標準出力に表示することを示す。
	CommandQuery Command = "query"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandServeを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "query":
		return CommandQuery
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}

// MigrateAction は migrate サブコマンドの操作を表す。
type MigrateAction string

const (
	MigrateUp     MigrateAction = "up"
	MigrateDown   MigrateAction = "down"
	MigrateStatus MigrateAction = "status"
	// MigrateSeed は組み込みの募集カタログをデータベースに取り込む。
	MigrateSeed MigrateAction = "seed"
)

// ParseMigrateAction は "migrate" に続く引数から操作を解析する。
// 省略時は MigrateUp。
func ParseMigrateAction(args []string) (MigrateAction, error) {
	if len(args) == 0 {
		return MigrateUp, nil
	}
	switch a := MigrateAction(args[0]); a {
	case MigrateUp, MigrateDown, MigrateStatus, MigrateSeed:
		return a, nil
	}
	return "", fmt.Errorf("unknown migrate action %q (want up, down, status or seed)", args[0])
}

// QueryOptions は query サブコマンドの引数。
type QueryOptions struct {
	Values   url.Values // 検索APIと同じクエリパラメータ
	PageSize int        // 0 の場合は設定値を使う
}

// ParseQueryArgs は "query" に続くフラグを検索APIのクエリパラメータに変換する。
// 値の検証は board.ParseSearchRequest に任せる。
func ParseQueryArgs(args []string, output io.Writer) (*QueryOptions, error) {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	if output == nil {
		output = io.Discard
	}
	fs.SetOutput(output)

	params := []struct {
		name  string
		param string
		usage string
	}{
		{"game-version", board.ParamGameVersion, "retail または classic"},
		{"expansion", board.ParamExpansion, "拡張パック（例: tww, wotlk）"},
		{"raid", board.ParamRaidName, "レイド名"},
		{"difficulty", board.ParamDifficulty, "難易度（例: heroic, 25h）"},
		{"faction", board.ParamFaction, "alliance または horde"},
		{"min-price", board.ParamMinPrice, "最低価格（ゴールド）"},
		{"max-price", board.ParamMaxPrice, "最高価格（ゴールド）"},
		{"roles", board.ParamRoles, "募集ロール（カンマ区切り）"},
		{"tier", board.ParamTier, "募集者ティア（カンマ区切り）"},
		{"saved", board.ParamSaved, "保存済みのみ（true/false）"},
		{"window", board.ParamWindow, "today, week または weekend"},
		{"from", board.ParamScheduledFrom, "開催日時の下限（RFC3339）"},
		{"to", board.ParamScheduledTo, "開催日時の上限（RFC3339）"},
		{"boss-clear", board.ParamBossClear, "full または partial"},
		{"q", board.ParamSearch, "レイド名・サーバー名・募集者名・メモの部分一致"},
		{"sort", board.ParamSort, "並び順（例: price_asc）"},
	}
	raw := make(map[string]*string, len(params))
	for _, p := range params {
		raw[p.param] = fs.String(p.name, "", p.usage)
	}
	page := fs.Int("page", 1, "ページ番号（1始まり）")
	pageSize := fs.Int("page-size", 0, "1ページあたりの件数")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	values := url.Values{}
	for _, p := range params {
		if v := *raw[p.param]; v != "" {
			values.Set(p.param, v)
		}
	}
	values.Set(board.ParamPage, strconv.Itoa(*page))

	return &QueryOptions{Values: values, PageSize: *pageSize}, nil
}
