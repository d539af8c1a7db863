package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-starter/framework/routing"
)

// RequestLog logs one line per dispatched request.
type RequestLog struct {
	logger *slog.Logger
}

func NewRequestLog(logger *slog.Logger) *RequestLog {
	return &RequestLog{logger: logger}
}

func (m *RequestLog) Handle(w http.ResponseWriter, r *http.Request, next routing.Next) error {
	start := time.Now()
	ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

	err := next(ww, r)

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", ww.Status()),
		slog.Duration("duration", time.Since(start)),
	}
	if rt := routing.CurrentRoute(r); rt != nil && rt.RouteName() != "" {
		attrs = append(attrs, slog.String("route", rt.RouteName()))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	m.logger.InfoContext(r.Context(), "request", attrs...)
	return err
}
