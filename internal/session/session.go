package session

import (
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/dashboard"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/samber/lo"
	"net/http"
	"time"
)

// Session is the state of one browser. The store hands out copies, so
// changes become visible only through Store.Update and friends.
type Session struct {
	ID        string              `json:"id"`
	User      *models.User        `json:"user,omitempty"`
	Cookies   backend.Credentials `json:"cookies,omitempty"`
	Dashboard dashboard.Board     `json:"dashboard"`
	Flash     string              `json:"flash,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

func (s Session) IsAdmin() bool {
	return s.User.IsAdmin()
}

func (s Session) Credentials() backend.Credentials {
	return cloneCookies(s.Cookies)
}

func (s Session) clone() Session {
	if s.User != nil {
		user := *s.User
		s.User = &user
	}
	s.Cookies = cloneCookies(s.Cookies)
	s.Dashboard = s.Dashboard.Clone()
	return s
}

func cloneCookies(cookies []*http.Cookie) backend.Credentials {
	if len(cookies) == 0 {
		return nil
	}
	return lo.Map(cookies, func(cookie *http.Cookie, _ int) *http.Cookie {
		copied := *cookie
		return &copied
	})
}

// mergeCookies applies cookies set by the backend on top of the existing
// ones. A cookie with the same name is replaced, a deleted one is dropped.
func mergeCookies(existing []*http.Cookie, updates []*http.Cookie, now time.Time) backend.Credentials {
	merged := cloneCookies(existing)

	for _, update := range updates {
		merged = lo.Reject(merged, func(cookie *http.Cookie, _ int) bool {
			return cookie.Name == update.Name
		})
		if isDeleted(update, now) {
			continue
		}
		copied := *update
		merged = append(merged, &copied)
	}

	return merged
}

func isDeleted(cookie *http.Cookie, now time.Time) bool {
	if cookie.MaxAge < 0 || cookie.Value == "" {
		return true
	}
	return !cookie.Expires.IsZero() && cookie.Expires.Before(now)
}
