package middleware

import (
	"net/http"

	perr "attendance/internal/platform/errors"
	pnet "attendance/internal/platform/net"
)

// HeaderAuth is a minimal AuthPort that trusts an upstream gateway to have
// already authenticated the caller and stamped the result on two headers.
// Bearer-token issuance and role/claims verification are out of scope here
// (an external collaborator's concern); this only reads what the gateway
// already decided.
type HeaderAuth struct {
	UserHeader  string
	AdminHeader string
}

// NewHeaderAuth builds a HeaderAuth reading X-User-Id and X-Admin
func NewHeaderAuth() HeaderAuth {
	return HeaderAuth{UserHeader: "X-User-Id", AdminHeader: "X-Admin"}
}

// Parse implements AuthPort. tenantID is always empty: attendance has no
// multi-tenancy concept, only users and admins.
func (h HeaderAuth) Parse(r *http.Request) (userID string, tenantID string, err error) {
	uid := r.Header.Get(h.UserHeader)
	if uid == "" {
		return "", "", perr.Unauthorizedf("missing %s header", h.UserHeader)
	}
	return uid, "", nil
}

// IsAdmin reports whether the request carries the admin header, truthy by
// mere presence (set/stripped by the upstream gateway, not parsed here)
func (h HeaderAuth) IsAdmin(r *http.Request) bool {
	return r.Header.Get(h.AdminHeader) != ""
}

// RequireAdmin rejects requests that don't carry h's admin header. Mount
// after Auth so the 401/403 ordering favors "who are you" over "you can't
// do this". Takes write the same way Auth does, to avoid this package
// depending on the response-writing package.
func RequireAdmin(h HeaderAuth, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.IsAdmin(r) {
				status, body := pnet.Error(perr.Forbiddenf("admin access required"), pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
