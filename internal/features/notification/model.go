package notification

import (
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/pkg/metrics"
	"github.com/codearc/codearc-server/pkg/pagination"
	"github.com/codearc/codearc-server/pkg/types"
)

// Notification is an in-app message for a single recipient.
type Notification struct {
	types.BaseModel

	UserID  uuid.UUID              `gorm:"type:uuid;not null;column:user_id;index" json:"userId"`
	Title   string                 `gorm:"type:varchar(255);not null" json:"title"`
	Message string                 `gorm:"type:text;not null" json:"message"`
	Type    types.NotificationType `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	IsRead  bool                   `gorm:"not null;default:false;column:is_read" json:"isRead"`
}

// TableName overrides the default table name.
func (Notification) TableName() string { return "notifications" }

// NotifyUser inserts a notification for one recipient.
func NotifyUser(db *gorm.DB, userID uuid.UUID, title, message string, ntype types.NotificationType) error {
	if !ntype.Valid() {
		ntype = types.NotificationInfo
	}

	n := Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    ntype,
	}
	return db.Create(&n).Error
}

// NotifyRole inserts one notification per user currently holding the role.
// Membership is resolved at call time. Returns the number of rows written.
func NotifyRole(db *gorm.DB, role types.Role, title, message string, ntype types.NotificationType) (int, error) {
	ids, err := user.IDsByRole(db, role)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if !ntype.Valid() {
		ntype = types.NotificationInfo
	}

	rows := make([]Notification, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, Notification{
			UserID:  id,
			Title:   title,
			Message: message,
			Type:    ntype,
		})
	}

	if err := db.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// SendToUser is the best-effort variant of NotifyUser: delivery failures are
// logged and counted, never propagated.
func SendToUser(db *gorm.DB, logger *slog.Logger, userID uuid.UUID, title, message string, ntype types.NotificationType) {
	if err := NotifyUser(db, userID, title, message, ntype); err != nil {
		metrics.NotificationFailed()
		logger.Warn("notification delivery failed", "user_id", userID, "title", title, "error", err)
		return
	}
	metrics.NotificationDelivered(1)
}

// SendToRole is the best-effort variant of NotifyRole.
func SendToRole(db *gorm.DB, logger *slog.Logger, role types.Role, title, message string, ntype types.NotificationType) {
	count, err := NotifyRole(db, role, title, message, ntype)
	if err != nil {
		metrics.NotificationFailed()
		logger.Warn("notification fanout failed", "role", role, "title", title, "error", err)
		return
	}
	metrics.NotificationDelivered(count)
}

// List returns a recipient's notifications, newest first.
func List(db *gorm.DB, userID uuid.UUID, params pagination.Params) ([]Notification, int64, error) {
	query := db.Model(&Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []Notification
	err := query.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&notifications).Error

	return notifications, total, err
}

// UnreadCount returns how many unread notifications a recipient has.
func UnreadCount(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification as read. The update is scoped to the
// recipient, so ids belonging to other users are silently ignored.
func MarkRead(db *gorm.DB, userID, notificationID uuid.UUID) error {
	return db.Model(&Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

// MarkAllRead marks every one of a recipient's notifications as read.
func MarkAllRead(db *gorm.DB, userID uuid.UUID) error {
	return db.Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
