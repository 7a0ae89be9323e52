package api

import (
	"net/http"

	"github.com/recipevault/recipevault-server/internal/maintenance"
)

// maintenanceBody is the exact response body clients key off during
// maintenance windows.
const maintenanceBody = "Service under maintenance"

// MaintenanceMiddleware rejects read and write traffic while the maintenance
// flag is raised, before any routing or authentication runs. DELETE is let
// through so operators can clean up while the service is otherwise closed.
func MaintenanceMiddleware(flag *maintenance.Flag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if flag.Enabled() {
				switch r.Method {
				case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch:
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte(maintenanceBody))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
