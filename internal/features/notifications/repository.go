package notifications

import (
	"errors"
	"time"

	"itconnect-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository struct{}

func (r *NotificationRepository) Save(notification *Notification) (*Notification, error) {
	db := storage.GetDb()

	err := db.Transaction(func(tx *gorm.DB) error {
		isNew := notification.ID == uuid.Nil
		if isNew {
			notification.ID = uuid.New()
		}

		if notification.CreatedAt.IsZero() {
			notification.CreatedAt = time.Now().UTC()
		}

		if isNew {
			if err := tx.Omit("Invitation").Create(notification).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit("Invitation").Save(notification).Error; err != nil {
				return err
			}
		}

		if notification.Invitation != nil {
			notification.Invitation.NotificationID = notification.ID
			if err := tx.Save(notification.Invitation).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return notification, nil
}

func (r *NotificationRepository) GetByID(notificationID uuid.UUID) (*Notification, error) {
	var notification Notification

	err := storage.GetDb().
		Preload("Invitation").
		Where("id = ?", notificationID).
		First(&notification).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &notification, nil
}

func (r *NotificationRepository) GetByReceiver(receiverID uuid.UUID) ([]*Notification, error) {
	var notifications []*Notification

	err := storage.GetDb().
		Preload("Invitation").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&notifications).Error

	return notifications, err
}

func (r *NotificationRepository) GetUnreadByReceiver(
	receiverID uuid.UUID,
) ([]*Notification, error) {
	var notifications []*Notification

	err := storage.GetDb().
		Preload("Invitation").
		Where("receiver_id = ? AND is_read = false", receiverID).
		Order("created_at DESC").
		Find(&notifications).Error

	return notifications, err
}

func (r *NotificationRepository) CountUnreadByReceiver(receiverID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&Notification{}).
		Where("receiver_id = ? AND is_read = false", receiverID).
		Count(&count).Error

	return count, err
}

func (r *NotificationRepository) GetWorkspaceInvitationsByReceiver(
	receiverID uuid.UUID,
) ([]*Notification, error) {
	var notifications []*Notification

	err := storage.GetDb().
		Preload("Invitation").
		Joins("JOIN notification_invitations ni ON ni.notification_id = notifications.id").
		Where(
			"notifications.receiver_id = ? AND notifications.type = ? "+
				"AND notifications.is_completed = false AND ni.expires_at > ?",
			receiverID,
			NotificationTypeWorkspaceInvitation,
			time.Now().UTC(),
		).
		Order("notifications.created_at DESC").
		Find(&notifications).Error

	return notifications, err
}

// FindActiveInvitation returns a pending, non-expired invitation for the
// same workspace and invitee, if one exists.
func (r *NotificationRepository) FindActiveInvitation(
	workspaceID, receiverID uuid.UUID,
) (*Notification, error) {
	var notification Notification

	err := storage.GetDb().
		Preload("Invitation").
		Joins("JOIN notification_invitations ni ON ni.notification_id = notifications.id").
		Where(
			"notifications.receiver_id = ? AND notifications.type = ? "+
				"AND notifications.is_completed = false "+
				"AND ni.workspace_id = ? AND ni.expires_at > ?",
			receiverID,
			NotificationTypeWorkspaceInvitation,
			workspaceID,
			time.Now().UTC(),
		).
		First(&notification).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &notification, nil
}

func (r *NotificationRepository) MarkAsRead(notificationID uuid.UUID) error {
	return storage.GetDb().
		Model(&Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllAsRead(receiverID uuid.UUID) error {
	return storage.GetDb().
		Model(&Notification{}).
		Where("receiver_id = ? AND is_read = false", receiverID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAsCompleted(notificationID uuid.UUID, read bool) error {
	updates := map[string]any{"is_completed": true}
	if read {
		updates["is_read"] = true
	}

	return storage.GetDb().
		Model(&Notification{}).
		Where("id = ?", notificationID).
		Updates(updates).Error
}

func (r *NotificationRepository) Delete(notificationID uuid.UUID) error {
	return storage.GetDb().Delete(&Notification{}, notificationID).Error
}

// DeleteWorkspaceInvitations removes every invitation targeting the
// workspace, used when the workspace itself is deleted.
func (r *NotificationRepository) DeleteWorkspaceInvitations(workspaceID uuid.UUID) error {
	var notificationIDs []uuid.UUID

	err := storage.GetDb().
		Model(&NotificationInvitation{}).
		Where("workspace_id = ?", workspaceID).
		Pluck("notification_id", &notificationIDs).Error
	if err != nil {
		return err
	}

	if len(notificationIDs) == 0 {
		return nil
	}

	return storage.GetDb().Delete(&Notification{}, notificationIDs).Error
}
