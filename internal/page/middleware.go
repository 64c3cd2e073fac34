package page

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Middleware parses the Quickview-Context header and attaches the result to
// the request context.
//
// An absent or malformed header is not an error: the request proceeds with
// an empty context and the upsell promotion stays inert, mirroring how the
// widget behaves when the section carries no attribute. Only a widget
// version below minVersion is rejected, with 426 so the page knows to
// reload its assets.
func Middleware(minVersion string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pc := &Context{}

			if header := r.Header.Get(HeaderName); header != "" {
				parsed, err := ParseHeader(header)
				if err != nil {
					logger.Warn("unusable page context header",
						slog.String("error", err.Error()),
						slog.String("path", r.URL.Path),
					)
				} else {
					pc = parsed
				}
			}

			if err := CheckWidgetVersion(pc.WidgetVersion, minVersion); err != nil {
				logger.Info("outdated widget rejected",
					slog.String("widget_version", pc.WidgetVersion),
					slog.String("min_version", minVersion),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUpgradeRequired)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{
						"code":    "WIDGET_OUTDATED",
						"message": err.Error(),
					},
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), pc)))
		})
	}
}
