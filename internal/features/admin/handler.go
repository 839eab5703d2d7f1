package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/internal/middleware"
	"github.com/codearc/codearc-server/pkg/cache"
	"github.com/codearc/codearc-server/pkg/email"
	"github.com/codearc/codearc-server/pkg/response"
)

// statsCacheKey holds the snapshot the background job refreshes.
const (
	statsCacheKey = "codearc:stats:platform"
	statsCacheTTL = 10 * time.Minute
)

// Handler processes admin HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	cache  cache.Client
	mailer *email.Client
}

// NewHandler constructs an admin handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, cacheClient cache.Client, mailer *email.Client) *Handler {
	return &Handler{db: db, logger: logger, cache: cacheClient, mailer: mailer}
}

// Stats serves the platform overview, preferring the cached snapshot and
// falling back to a live computation.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil && h.cache.Enabled() {
		if raw, err := h.cache.Get(ctx, statsCacheKey); err == nil {
			var stats PlatformStats
			if json.Unmarshal([]byte(raw), &stats) == nil {
				response.Success(c, http.StatusOK, stats, "", nil)
				return
			}
		} else if !cache.IsMiss(err) {
			h.logger.Warn("stats cache read failed", "error", err)
		}
	}

	stats, err := CollectStats(h.db.WithContext(ctx))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to collect stats", err)
		return
	}

	h.storeSnapshot(ctx, stats)

	response.Success(c, http.StatusOK, stats, "", nil)
}

func (h *Handler) storeSnapshot(ctx context.Context, stats PlatformStats) {
	if h.cache == nil || !h.cache.Enabled() {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, statsCacheKey, string(payload), statsCacheTTL); err != nil {
		h.logger.Warn("stats cache write failed", "error", err)
	}
}

// Users lists every account.
func (h *Handler) Users(c *gin.Context) {
	users, err := ListUsers(h.db.WithContext(c.Request.Context()))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list users", err)
		return
	}

	response.Success(c, http.StatusOK, users, "", nil)
}

// SetApproval approves or revokes a mentor account. Approval emails are
// best-effort.
func (h *Handler) SetApproval(c *gin.Context) {
	mentorID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	var req struct {
		Approved *bool `json:"approved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "approved flag is required", err)
		return
	}

	usr, err := SetMentorApproval(h.db.WithContext(c.Request.Context()), mentorID, *req.Approved)
	if err != nil {
		h.respondError(c, err, "failed to update approval")
		return
	}

	if *req.Approved && h.mailer != nil {
		go func() {
			if err := h.mailer.SendMentorApproved(usr.Email, usr.Name); err != nil {
				h.logger.Warn("approval email failed", "user_id", usr.ID, "error", err)
			}
		}()
	}

	response.Success(c, http.StatusOK, usr, "Approval updated", nil)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (h *Handler) DeleteUser(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	if targetID == caller.ID {
		h.respondError(c, ErrSelfDeletion, "failed to delete user")
		return
	}

	if err := DeleteUser(h.db.WithContext(c.Request.Context()), targetID); err != nil {
		h.respondError(c, err, "failed to delete user")
		return
	}

	// The cached overview is stale now; drop it so the next read recomputes.
	if h.cache != nil && h.cache.Enabled() {
		if err := h.cache.Delete(c.Request.Context(), statsCacheKey); err != nil {
			h.logger.Warn("stats cache invalidation failed", "error", err)
		}
	}

	response.Success(c, http.StatusOK, true, "User deleted", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found."
	case errors.Is(err, user.ErrInvalidRole):
		status = http.StatusBadRequest
		message = "Only mentor accounts have approval state."
	case errors.Is(err, ErrSelfDeletion):
		status = http.StatusBadRequest
		message = "You cannot delete your own account."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
