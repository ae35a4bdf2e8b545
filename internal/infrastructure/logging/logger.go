// Package logging はロギング機能を提供します
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogEntry はJSONLoggerが出力する1行分のログを表す構造体です
type LogEntry struct {
	// Timestamp はログが記録された時刻をRFC3339形式で表します
	Timestamp string `json:"timestamp"`
	// Level はログレベル（info, warn, error等）を表します
	Level string `json:"level"`
	// Message はログメッセージの内容を表します
	Message string `json:"message"`
	// Error はエラーが発生した場合のエラーメッセージを表します
	Error string `json:"error,omitempty"`
	// Path は対象となったパスを表します
	Path string `json:"path,omitempty"`
}

// Logger は構造化ログを出力するためのインターフェースです
type Logger interface {
	Log(level, message string, err error)
}

// PathLogger は対象パスを独立したフィールドとして記録できるロガーです
type PathLogger interface {
	Logger
	LogPath(level, message, path string, err error)
}

// LogPath は l が PathLogger であればパスをフィールドとして記録し、
// そうでなければメッセージの末尾にパスを付けて出力します
func LogPath(l Logger, level, message, path string, err error) {
	if pl, ok := l.(PathLogger); ok {
		pl.LogPath(level, message, path, err)
		return
	}
	l.Log(level, message+": "+path, err)
}

// JSONLogger はJSONフォーマットでログを出力するロガーです
type JSONLogger struct {
	logger *zap.Logger
}

// NewJSONLogger は全レベルを出力する新しいJSONLoggerインスタンスを作成します
func NewJSONLogger(writer io.Writer) *JSONLogger {
	return NewJSONLoggerWithLevel(writer, "debug")
}

// NewJSONLoggerWithLevel は指定レベル以上のみを出力するJSONLoggerを作成します
func NewJSONLoggerWithLevel(writer io.Writer, level string) *JSONLogger {
	if writer == nil {
		writer = os.Stdout
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(writer),
		zap.NewAtomicLevelAt(parseLevel(level)),
	)
	return &JSONLogger{logger: zap.New(core)}
}

// Log はメッセージをJSONフォーマットでログ出力します
func (l *JSONLogger) Log(level, message string, err error) {
	l.write(parseLevel(level), message, err)
}

// LogPath はパスをフィールドとして付与してログ出力します
func (l *JSONLogger) LogPath(level, message, path string, err error) {
	l.write(parseLevel(level), message, err, zap.String("path", path))
}

// Sync はバッファされたログを書き出します
func (l *JSONLogger) Sync() error {
	return l.logger.Sync()
}

func (l *JSONLogger) write(level zapcore.Level, message string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if ce := l.logger.Check(level, message); ce != nil {
		ce.Write(fields...)
	}
}

// parseLevel はレベル文字列を解釈します。不明なレベルは info として扱います
func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	// panic/fatal はプロセスを止めるため error に丸めます
	if l > zapcore.ErrorLevel {
		return zapcore.ErrorLevel
	}
	return l
}
