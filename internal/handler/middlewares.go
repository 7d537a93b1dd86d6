package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("requête traitée", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "utilisateur non connecté")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "jeton de session invalide")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) myProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subString := r.Context().Value(SubCtxKey).(string)

		sub, err := uuid.Parse(subString)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		myProfile, err := h.repository.GetProfileByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "profil introuvable")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyProfileCtx, myProfile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleCtx := r.Context().Value(RoleCtxKey).(string)
			role := domain.Role(roleCtx)
			if !slices.Contains(roles, role) {
				h.errorResponse(w, r, "droits insuffisants")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// timesheetRecord loads the timesheet named in the URL and checks the
// caller may see it: an agency sees its own agency's records, a worker only
// what they submitted. The row-level policies in the store remain the
// enforcement authority; this keeps the API honest on its own.
func (h *Handler) timesheetRecord(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idParam := chi.URLParam(r, "id")
		id, err := uuid.Parse(idParam)
		if err != nil {
			h.errorResponse(w, r, "identifiant de relevé invalide")
			return
		}

		ts, err := h.repository.GetTimesheetByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "relevé introuvable")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		myProfile := r.Context().Value(MyProfileCtx).(*domain.Profile)
		if !canSeeTimesheet(myProfile, ts) {
			h.errorResponse(w, r, "relevé introuvable")
			return
		}

		ctx := context.WithValue(r.Context(), TimesheetCtx, ts)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func canSeeTimesheet(p *domain.Profile, ts *domain.Timesheet) bool {
	switch p.Role {
	case domain.RoleAgence:
		return ts.AgencyID != nil && *ts.AgencyID == p.ID
	case domain.RoleInterimaire:
		return ts.SubmittedBy == p.ID
	default:
		return false
	}
}
