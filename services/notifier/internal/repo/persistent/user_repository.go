package persistent

import (
	"context"
	"errors"
	"fmt"

	"campus-hub/services/notifier/internal/model"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	// GetDeliveryToken returns the user's token, "" when the user has none,
	// or ErrUserNotFound.
	GetDeliveryToken(ctx context.Context, userID string) (string, error)
	// ListDeliveryTokens returns every present token across all users.
	ListDeliveryTokens(ctx context.Context) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetDeliveryToken(ctx context.Context, userID string) (string, error) {
	var userModel model.UserModel
	err := r.db.WithContext(ctx).Select("id", "fcm_token").Where("id = ?", userID).First(&userModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return ToDeliveryToken(&userModel), nil
}

func (r *userRepository) ListDeliveryTokens(ctx context.Context) ([]string, error) {
	var userModels []model.UserModel
	if err := r.db.WithContext(ctx).
		Select("id", "fcm_token").
		Where("fcm_token IS NOT NULL AND fcm_token <> ''").
		Order("id").
		Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list delivery tokens: %w", err)
	}
	return ToTokenSet(userModels), nil
}
