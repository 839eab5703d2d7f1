package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/pkg/types"
)

// DisplayWindow bounds how far back conversation history reaches. Older
// messages stay in storage; they just fall out of view.
const DisplayWindow = 48 * time.Hour

// Message is one direct message between two users.
type Message struct {
	types.BaseModel

	SenderID   uuid.UUID `gorm:"type:uuid;not null;column:sender_id;index:idx_conversation,priority:1" json:"senderId"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;column:receiver_id;index:idx_conversation,priority:2" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false;column:is_read" json:"isRead"`
}

// TableName overrides the default table name.
func (Message) TableName() string { return "messages" }

// Contact is one row of the contacts listing.
type Contact struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        types.Role `json:"role"`
	UnreadCount int64      `json:"unreadCount"`
}

// Send stores a message after checking the receiver exists.
func Send(db *gorm.DB, senderID, receiverID uuid.UUID, content string) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyMessage
	}
	if senderID == receiverID {
		return Message{}, ErrSelfMessage
	}

	if _, err := user.GetByID(db, receiverID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return Message{}, ErrReceiverNotFound
		}
		return Message{}, err
	}

	msg := Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := db.Create(&msg).Error; err != nil {
		return Message{}, err
	}

	return msg, nil
}

// History returns the visible conversation between two users, newest first,
// and marks the caller's incoming messages read.
func History(db *gorm.DB, userID, otherID uuid.UUID) ([]Message, error) {
	cutoff := time.Now().Add(-DisplayWindow)

	var messages []Message
	err := db.Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND created_at >= ?",
		userID, otherID, otherID, userID, cutoff,
	).Order("created_at DESC").Find(&messages).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, userID, false).
		Update("is_read", true).Error
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// InWindow reports whether a message timestamp is still visible at the
// given moment.
func InWindow(sentAt, now time.Time) bool {
	return !sentAt.Before(now.Add(-DisplayWindow))
}

// contactRoles maps a caller's role to who they may message.
func contactRoles(role types.Role) []types.Role {
	switch role {
	case types.RoleStudent:
		return []types.Role{types.RoleMentor, types.RoleAdmin}
	case types.RoleMentor:
		return []types.Role{types.RoleStudent, types.RoleAdmin}
	case types.RoleAdmin:
		return []types.Role{types.RoleStudent, types.RoleMentor, types.RoleAdmin}
	default:
		return nil
	}
}

// Contacts lists everyone the caller may message, each with the number of
// unread messages they have sent the caller. Counts are recomputed on every
// call rather than maintained incrementally.
func Contacts(db *gorm.DB, callerID uuid.UUID, callerRole types.Role) ([]Contact, error) {
	roles := contactRoles(callerRole)
	if len(roles) == 0 {
		return []Contact{}, nil
	}

	var users []user.User
	err := db.Where("role IN ? AND id <> ?", roles, callerID).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	type unreadRow struct {
		SenderID uuid.UUID
		Count    int64
	}
	var unread []unreadRow
	err = db.Model(&Message{}).
		Select("sender_id, COUNT(*) AS count").
		Where("receiver_id = ? AND is_read = ?", callerID, false).
		Group("sender_id").
		Scan(&unread).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(unread))
	for _, row := range unread {
		counts[row.SenderID] = row.Count
	}

	contacts := make([]Contact, 0, len(users))
	for _, u := range users {
		contacts = append(contacts, Contact{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			Role:        u.Role,
			UnreadCount: counts[u.ID],
		})
	}

	return contacts, nil
}
