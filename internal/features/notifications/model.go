package notifications

import (
	"time"

	users_enums "itconnect-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeWorkspaceInvitation NotificationType = "WORKSPACE_INVITATION"
	NotificationTypeTaskAssigned        NotificationType = "TASK_ASSIGNED"
	NotificationTypeCommentAdded        NotificationType = "COMMENT_ADDED"
	NotificationTypeBoardShared         NotificationType = "BOARD_SHARED"
	NotificationTypeMention             NotificationType = "MENTION"
)

type Notification struct {
	ID          uuid.UUID        `json:"id"          gorm:"column:id"`
	ReceiverID  uuid.UUID        `json:"receiverId"  gorm:"column:receiver_id"`
	SenderID    *uuid.UUID       `json:"senderId"    gorm:"column:sender_id"`
	Type        NotificationType `json:"type"        gorm:"column:type"`
	Title       string           `json:"title"       gorm:"column:title"`
	Message     string           `json:"message"     gorm:"column:message"`
	IsRead      bool             `json:"isRead"      gorm:"column:is_read"`
	IsCompleted bool             `json:"isCompleted" gorm:"column:is_completed"`
	CreatedAt   time.Time        `json:"createdAt"   gorm:"column:created_at"`

	// type specific payload
	Invitation *NotificationInvitation `json:"invitation,omitempty" gorm:"foreignKey:NotificationID"`
}

func (Notification) TableName() string {
	return "notifications"
}

type NotificationInvitation struct {
	NotificationID uuid.UUID                 `json:"notificationId" gorm:"column:notification_id;primaryKey"`
	WorkspaceID    uuid.UUID                 `json:"workspaceId"    gorm:"column:workspace_id"`
	Role           users_enums.WorkspaceRole `json:"role"           gorm:"column:role"`
	Token          uuid.UUID                 `json:"token"          gorm:"column:token"`
	ExpiresAt      time.Time                 `json:"expiresAt"      gorm:"column:expires_at"`
}

func (NotificationInvitation) TableName() string {
	return "notification_invitations"
}

// IsExpired is derived from the stored deadline, expiry never mutates
// the row by itself.
func (i *NotificationInvitation) IsExpired() bool {
	return time.Now().UTC().After(i.ExpiresAt)
}
