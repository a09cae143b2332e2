// Package main provides localization for the gifcast CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Capture a segment of a web video as an animated GIF": "Web動画の一部をアニメーションGIFとしてキャプチャ",

		// Flags
		"Output GIF file path (required)":              "出力GIFファイルパス（必須）",
		"YAML configuration file":                      "YAML設定ファイル",
		"CSS selector for the video element":           "動画要素のCSSセレクタ",
		"Segment start in seconds":                     "開始位置（秒）",
		"Segment end in seconds":                       "終了位置（秒）",
		"Frames per second":                            "フレームレート",
		"Output width (default: 480)":                  "出力の幅（デフォルト: 480）",
		"Output height (default: 270)":                 "出力の高さ（デフォルト: 270）",
		"GIF quality (1-100)":                          "GIF品質（1-100）",
		"Loop count (0 = forever)":                     "ループ回数（0 = 無限）",
		"Text overlay, TEXT@X,Y in percent (repeatable)": "テキストオーバーレイ、TEXT@X,Y（パーセント指定、複数可）",
		"Force GIF engine (std-gif, median-cut-gif)":   "GIFエンジンを指定（std-gif, median-cut-gif）",
		"Path to Chrome executable":                    "Chrome実行ファイルのパス",
		"Run browser in non-headless mode":             "ブラウザを非ヘッドレスモードで実行",
		"Ignore HTTPS certificate errors":              "HTTPS証明書エラーを無視",
		"HTTP proxy server (e.g., http://proxy:8080)":  "HTTPプロキシサーバー（例: http://proxy:8080）",
		"Output session summary to file (Markdown format)": "セッションサマリーをファイルに出力（Markdown形式）",
		"Enable debug output":                          "デバッグ出力を有効化",
		"Directory for debug output":                   "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":         "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                      "全てのログ出力を抑制",

		// Runtime messages
		"Attaching to %s":               "%s に接続中",
		"Output saved to %s":            "出力を %s に保存しました",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Error messages
		"URL argument is required":       "URL引数が必要です",
		"Output path is required (-o)":   "出力パスが必要です（-o）",
		"invalid overlay %q, expected TEXT@X,Y": "不正なオーバーレイ %q、TEXT@X,Y 形式で指定してください",
		"invalid overlay position in %q":        "%q のオーバーレイ位置が不正です",
		"overlay position out of range in %q":   "%q のオーバーレイ位置が範囲外です",

		// Summary content
		"Capture Summary":      "キャプチャサマリー",
		"Generated":            "生成日時",
		"Source":               "ソース",
		"URL":                  "URL",
		"Selector":             "セレクタ",
		"Segment":              "セグメント",
		"Capture":              "キャプチャ",
		"Frames":               "フレーム数",
		"Method":               "キャプチャ方式",
		"Duplicates Recovered": "重複リカバリ数",
		"Actual Frame Rate":    "実効フレームレート",
		"Output":               "出力",
		"File":                 "ファイル",
		"Dimensions":           "サイズ",
		"Duration":             "再生時間",
		"Size":                 "ファイルサイズ",
		"Encoder":              "エンコーダ",
		"Quality":              "品質",
		"Loop":                 "ループ",
		"forever":              "無限",
	})
}
