package users_repositories

import (
	"errors"
	"time"

	users_models "itconnect-backend/internal/features/users/models"
	"itconnect-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Create(user).Error
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) SearchUsersByEmail(
	emailQuery string,
	limit int,
) ([]*users_models.User, error) {
	var users []*users_models.User

	err := storage.GetDb().
		Where("email ILIKE ?", "%"+emailQuery+"%").
		Order("email ASC").
		Limit(limit).
		Find(&users).Error

	return users, err
}

func (r *UserRepository) UpdateUserInfo(userID uuid.UUID, username *string, email *string) error {
	updates := map[string]any{
		"updated_at": time.Now().UTC(),
	}

	if username != nil {
		updates["username"] = *username
	}
	if email != nil {
		updates["email"] = *email
	}

	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (r *UserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"hashed_password": hashedPassword,
			"updated_at":      time.Now().UTC(),
		}).Error
}
