package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting capture session":        "キャプチャセッションを開始します",
		"Session completed successfully":  "セッションが正常に完了しました",
		"Output saved to %s":              "出力を %s に保存しました",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",

		// Schedule stage
		"Computing frame schedule":                      "フレームスケジュールを計算中",
		"Schedule: %d frames at %.3fs intervals, %dx%d": "スケジュール: %d フレーム, 間隔 %.3f 秒, %dx%d",

		// Capture stage
		"Capturing %d frames, duplicate bound %d":             "%d フレームをキャプチャ中 (重複上限 %d)",
		"Captured %d frames, %d recovered from duplicates":    "%d フレームをキャプチャ (重複からの回復 %d)",
		"Seek inaccuracy: requested %.3fs, source reports %.3fs": "シーク誤差: 要求 %.3f 秒, 実際 %.3f 秒",
		"Seek polling stalled at %.3fs after %d attempts":     "シークが %.3f 秒で停止 (%d 回試行)",
		"Recovered distinct frame after duplicate at %.3fs":   "%.3f 秒の重複フレームから回復しました",
		"Video stuck: %d consecutive identical frames":        "動画が停止: %d 連続で同一フレーム",
		"Primary capture timed out, switching to fallback":    "キャプチャがタイムアウトしました。フォールバックに切り替えます",
		"Fallback capture of %d frames":                       "フォールバックで %d フレームをキャプチャ中",

		// Composite stage
		"Compositing %d overlays onto %d frames with %d workers": "%d 個のオーバーレイを %d フレームに %d ワーカーで合成中",
		"Composition completed": "合成が完了しました",

		// Encode stage
		"Encoding %d frames at %.1f fps": "%d フレームを %.1f fps でエンコード中",
		"Encoded %d bytes with %s":       "%s で %d バイトにエンコード完了",

		// Playback state
		"Restoring playback position %.3fs": "再生位置 %.3f 秒を復元中",

		// Errors
		"Failed to attach to video source: %s": "動画ソースへの接続に失敗しました: %s",
		"Capture failed: %s":                   "キャプチャに失敗しました: %s",
		"Encoding failed: %s":                  "エンコードに失敗しました: %s",
	})
}
