// Package main はアプリケーションのエントリーポイントを提供します
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"FileData/internal/gui"
	"FileData/internal/infrastructure/config"
	"FileData/internal/infrastructure/exif"
	"FileData/internal/infrastructure/filesystem"
	"FileData/internal/infrastructure/logging"
	"FileData/internal/infrastructure/mimedb"
	"FileData/internal/infrastructure/watcher"
	"FileData/internal/interface/ui"
	"FileData/internal/usecase/filedata"
	"FileData/internal/usecase/format"
	"FileData/internal/usecase/report"
)

func main() {
	configPath := flag.String("config", "", "設定ファイルのパス")
	writeConfig := flag.String("write-config", "", "現在の設定を指定パスへ書き出して終了する")
	useGUI := flag.Bool("gui", false, "情報ウィンドウを表示する")
	watch := flag.Bool("watch", false, "変更を監視して再読み込みする")
	outputDir := flag.String("out", "", "レポートの出力先フォルダ（省略時は標準出力）")
	counts := flag.Bool("counts", false, "ディレクトリ配下の要素数を数える")
	pickDir := flag.Bool("pick-dir", false, "パス未指定時にフォルダを選択する")
	flag.Parse()

	// 設定の読み込み
	cfg, loadedFrom, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("エラー: %v", err)
	}

	// ロガーの初期化（標準出力はレポートに使うため標準エラーへ）
	logger := logging.NewJSONLoggerWithLevel(os.Stderr, cfg.LogLevel)
	defer logger.Sync()
	if loadedFrom != "" {
		logging.LogPath(logger, "INFO", "設定ファイルを読み込みました", loadedFrom, nil)
	}

	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			logger.Log("ERROR", "設定ファイルの書き出しに失敗", err)
			log.Fatalf("エラー: %v", err)
		}
		logging.LogPath(logger, "INFO", "設定ファイルを書き出しました", *writeConfig, nil)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 依存関係の組み立て
	mime := mimedb.New(cfg.Mime.SharedMimeDir, cfg.Locale)
	var extractor exif.MetadataExtractor
	if cfg.ExifEnabled() {
		extractor = exif.NewExtractor(logger, cfg.Exif.Command, cfg.Exif.Args)
	}
	reader := filesystem.NewReader(logger, mime, extractor)
	formatter := format.New(cfg.Locale)
	deps := filedata.Deps{
		Reader:    reader,
		Counter:   filesystem.NewCounter(logger),
		Mime:      mime,
		Formatter: formatter,
		Logger:    logger,
	}

	// 対象パスの決定（未指定ならダイアログで選択。GUIではウィンドウ内で選択する）
	path := flag.Arg(0)
	if path == "" && !*useGUI {
		path, err = selectPath(ui.NewPathSelector(reader), *pickDir)
		if err != nil {
			logger.Log("ERROR", "パスの選択に失敗", err)
			log.Fatalf("エラー: %v", err)
		}
	}

	data := filedata.New(ctx, deps, path)
	if path != "" {
		logging.LogPath(logger, "INFO", "対象を読み込みました", path, nil)
	}

	if (*watch || cfg.Watch) && path != "" {
		w := watcher.New(logger, path, func() {
			data.Refresh(ctx)
		})
		go func() {
			if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
				logger.Log("ERROR", "監視に失敗", err)
			}
		}()
	}

	if *useGUI {
		gui.ShowInfo(data, gui.NewFileSelector(reader))
		return
	}

	generator := report.NewGenerator(formatter)
	renderer := report.NewRenderer(generator, report.Options{Counts: *counts})
	if err := writeReport(ctx, generator, renderer, data, *outputDir, logger); err != nil {
		logger.Log("ERROR", "レポートの生成に失敗", err)
		log.Fatalf("エラー: %v", err)
	}

	if *watch || cfg.Watch {
		// 内容が変わった場合のみレポートを出し直す（登録直後の通知や件数の更新では出力しない）
		unsubscribe := data.Subscribe(func() {
			if err := writeReport(ctx, generator, renderer, data, *outputDir, logger); err != nil {
				logger.Log("ERROR", "レポートの生成に失敗", err)
			}
		})
		defer unsubscribe()
		<-ctx.Done()
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func selectPath(selector *ui.PathSelector, dir bool) (string, error) {
	if dir {
		return selector.SelectDirectory("情報を表示するフォルダを選択してください")
	}
	return selector.SelectFile("情報を表示するファイルを選択してください")
}

func writeReport(ctx context.Context, generator *report.Generator, renderer *report.Renderer, data *filedata.FileData, outputDir string, logger *logging.JSONLogger) error {
	out, changed := renderer.Render(ctx, data)
	if !changed {
		return nil
	}

	if outputDir == "" {
		_, err := os.Stdout.Write(out)
		return err
	}

	outputFile, outputPath, err := generator.CreateOutputFile(outputDir)
	if err != nil {
		return err
	}
	defer outputFile.Close()

	if _, err := outputFile.Write(out); err != nil {
		return fmt.Errorf("レポートの書き込みに失敗しました: %w", err)
	}
	logging.LogPath(logger, "INFO", "レポートを生成しました", outputPath, nil)
	return nil
}
