package xlog

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	rootLogger atomic.Pointer[zLogger]
	// pkgLogger 供包级函数使用, 比rootLogger多跳过一层调用点
	pkgLogger atomic.Pointer[zLogger]
)

// setRoot 先替换pkgLogger, 保证rootLogger可见时pkgLogger也已就绪
func setRoot(l *zLogger) {
	pkgLogger.Store(wrap(l.logger.WithOptions(zap.AddCallerSkip(1))))
	rootLogger.Store(l)
}

func root() *zLogger {
	if rootLogger.Load() == nil {
		initDefaultLogger()
	}
	return rootLogger.Load()
}

func pkg() *zLogger {
	if pkgLogger.Load() == nil {
		initDefaultLogger()
	}
	return pkgLogger.Load()
}

// Debugf 输出格式化的"Debug"级别日志信息；
func Debugf(format string, args ...any) {
	pkg().Debugf(format, args...)
}

// Debugw 输出定制化的"Debug"级别日志信息；
func Debugw(msg string, keysAndValues ...any) {
	pkg().Debugw(msg, keysAndValues...)
}

// Infof 输出格式化的"Info"级别日志信息；
func Infof(format string, args ...any) {
	pkg().Infof(format, args...)
}

// Infow 输出定制化的"Info"级别日志信息；
func Infow(msg string, keysAndValues ...any) {
	pkg().Infow(msg, keysAndValues...)
}

// Warnf 输出格式化的"Warn"级别日志信息；
func Warnf(format string, args ...any) {
	pkg().Warnf(format, args...)
}

// Errorf 输出格式化的"Error"级别日志信息；
func Errorf(format string, args ...any) {
	pkg().Errorf(format, args...)
}

// Errorx 以zapfield方式输出"Error"级别日志信息；
func Errorx(msg string, fields ...zapcore.Field) {
	pkg().Errorx(msg, fields...)
}

// Default 返回根logger
func Default() ILogger {
	return root()
}

// GetSubLoggerWithFields 获取一个带固定字段的子logger
func GetSubLoggerWithFields(fields ...zap.Field) ILogger {
	return root().GetSubLoggerWithFields(fields...)
}

// GetSubLoggerWithKeyValue 使用指定的key/value,获取一个带有输出key/value内容的子logger
func GetSubLoggerWithKeyValue(keysAndValues map[string]string) ILogger {
	return root().GetSubLoggerWithKeyValue(keysAndValues)
}
