package middlewarectx

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/tomasen/realip"

	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
)

// Logger пишет строку журнала доступа на каждый запрос и кладёт запись
// журнала в контекст, чтобы middleware.Recoverer писал панику через slog.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	log = log.With(slog.String("component", "middleware/logger"))
	log.Info("logger middleware enabled")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := &logEntry{log: log.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remoteAddr(r)),
				slog.String("user_agent", r.UserAgent()),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				entry.Write(ww.Status(), ww.BytesWritten(), ww.Header(), time.Since(t1), nil)
			}()

			next.ServeHTTP(ww, middleware.WithLogEntry(r, entry))
		})
	}
}

// remoteAddr возвращает адрес клиента. realip отбрасывает частные адреса
// из X-Forwarded-For, тогда берётся адрес соединения.
func remoteAddr(r *http.Request) string {
	if ip := realip.FromRequest(r); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

type logEntry struct {
	log *slog.Logger
}

func (e *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.log.Info("request completed",
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.String("duration", elapsed.String()),
	)
}

func (e *logEntry) Panic(v interface{}, stack []byte) {
	e.log.Error("request panicked",
		sl.Err(fmt.Errorf("%v", v)),
		slog.String("stack", string(stack)),
	)
}
