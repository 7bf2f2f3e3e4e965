package handler

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/go-chi/chi/v5"
)

// MemberAdminHandler is the member directory for staff.
type MemberAdminHandler struct {
	Users repository.UserRepository
}

func (h MemberAdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/members", h.list)
	r.Get("/admin/members/{memberId}", h.get)
	r.Put("/admin/members/{memberId}/role", h.setRole)
}

func (h MemberAdminHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var (
		users []domain.User
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		users, err = h.Users.Search(r.Context(), q, limit)
	} else {
		users, err = h.Users.List(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Birthday members surface at the top of the directory.
	now := time.Now()
	sort.SliceStable(users, func(i, j int) bool {
		return isBirthday(users[i].BirthDate, now) && !isBirthday(users[j].BirthDate, now)
	})

	out := make([]map[string]any, 0, len(users))
	for i := range users {
		entry := toUserResponse(&users[i])
		entry["isBirthday"] = isBirthday(users[i].BirthDate, now)
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, out)
}

// isBirthday reports whether the stored birth date (YYYY-MM-DD) falls on
// today's month and day.
func isBirthday(birthDate *string, now time.Time) bool {
	if birthDate == nil || *birthDate == "" {
		return false
	}
	parsed, err := time.Parse(dateLayout, *birthDate)
	if err != nil {
		return false
	}
	return parsed.Month() == now.Month() && parsed.Day() == now.Day()
}

func (h MemberAdminHandler) get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetByMemberID(r.Context(), chi.URLParam(r, "memberId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h MemberAdminHandler) setRole(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetByMemberID(r.Context(), chi.URLParam(r, "memberId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	role := domain.UserRole(r.URL.Query().Get("role"))
	if role != domain.RoleMember && role != domain.RoleAdmin {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	if err := h.Users.SetRole(r.Context(), user.ID, role); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
