// Package obslog wraps zap with the dev/production split used throughout
// the retrieved corpus (see michibiki-io-hems-metrics-go/main.go), so
// the control core and cmd/vawtctl share one logger construction path.
package obslog

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger. debug selects zap's human-readable
// development encoder; otherwise a production JSON encoder is used with
// an ISO-8601-ish UTC timestamp.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	return cfg.Build()
}
