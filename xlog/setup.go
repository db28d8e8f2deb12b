package xlog

import (
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/DeRuina/timberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	initMu sync.Mutex
	// levelController 日志输出基本控制器
	levelController = zap.NewAtomicLevelAt(zap.DebugLevel)
)

// Config 日志配置, 零值表示输出到标准输出
type Config struct {
	File        string        // 日志文件路径, 为空时输出到屏幕
	Level       zapcore.Level // 最低输出级别
	MaxSizeMB   int           // 单个日志文件最大M
	MaxBackups  int           // 最多保留备份数
	MaxAgeDays  int           // 最大保存天数
	Compression string        // 压缩方式, none, gzip, zstd
}

func (c Config) withDefaults() Config {
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 50
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 7
	}
	if c.MaxAgeDays <= 0 {
		c.MaxAgeDays = 7
	}
	if c.Compression == "" {
		c.Compression = "none"
	}
	return c
}

// initDefaultLogger 在没有外部调用Setup进行日志库设置的情况下，进行默认的日志库配置；
func initDefaultLogger() {
	initMu.Lock()
	defer initMu.Unlock()
	if rootLogger.Load() == nil {
		setRoot(newzLogger(build(Config{Level: zap.DebugLevel})))
	}
}

// CloseLogger 系统运行结束时，将日志落盘；
func CloseLogger() {
	if l := rootLogger.Load(); l != nil {
		_ = l.Sync()
	}
}

func header() string {
	var strs = []string{
		os.Getenv("SIGNALS_APP"),
		os.Getenv("SIGNALS_INSTANCE"),
	}
	strs = slices.DeleteFunc(strs, func(s string) bool {
		s = strings.TrimSpace(s)
		return s == "" || s == "0"
	})
	return strings.Join(strs, " ")
}

// SetupLogger 按配置重建根logger
func SetupLogger(c Config) {
	initMu.Lock()
	defer initMu.Unlock()
	setRoot(newzLogger(build(c)))
}

// SetLogger 直接替换根logger
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}
	initMu.Lock()
	defer initMu.Unlock()
	setRoot(newzLogger(logger))
}

func build(c Config) *zap.Logger {
	c = c.withDefaults()
	levelController.SetLevel(c.Level)
	head := header()
	config := zapcore.EncoderConfig{
		CallerKey:     "line", // 打印文件名和行数
		LevelKey:      "level",
		MessageKey:    "message",
		TimeKey:       "time",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeTime: func(t time.Time, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString(t.Format("2006-01-02 15:04:05.999"))
			if head != "" {
				encoder.AppendString(head)
			}
		},
		EncodeLevel: func(level zapcore.Level, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString(strings.ToTitle(level.String()))
		},
		EncodeCaller: func(caller zapcore.EntryCaller, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString("[" + caller.TrimmedPath() + "]")
		},
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
	encoder := zapcore.NewConsoleEncoder(config)

	ws := zapcore.AddSync(os.Stdout)
	// 将日志输出到滚动切割文件中
	if c.File != "" {
		ws = zapcore.AddSync(fileWriter(c))
	}
	core := zapcore.NewCore(encoder, ws, levelController)
	// 输出调用点, 跳过层数由包装层决定; Error级别输出堆栈
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// SetLevel 动态调整输出级别
func SetLevel(l zapcore.Level) {
	levelController.SetLevel(l)
}

func fileWriter(c Config) io.Writer {
	return &timberjack.Logger{
		Filename:         c.File,
		MaxBackups:       c.MaxBackups,
		MaxSize:          c.MaxSizeMB,
		MaxAge:           c.MaxAgeDays,
		Compression:      c.Compression,
		LocalTime:        true,
		RotationInterval: 24 * time.Hour,
		BackupTimeFormat: "2006-01-02-15-04-05",
	}
}
