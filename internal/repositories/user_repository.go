package repositories

import (
	"errors"
	"time"

	"markbook_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	// FindByStripeCustomerID resolves webhook events that only carry the
	// external billing customer id.
	FindByStripeCustomerID(customerID string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error

	// Admin / analytics
	FindAll(limit, offset int) ([]models.User, error)
	CountAll() (int64, error)
	CountByPlan() (map[models.SubscriptionPlan]int64, error)
	CountCreatedSince(since time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByStripeCustomerID(customerID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "stripe_customer_id = ?", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) FindAll(limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *userRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByPlan() (map[models.SubscriptionPlan]int64, error) {
	type row struct {
		SubscriptionPlan models.SubscriptionPlan
		Count            int64
	}
	var rows []row
	err := r.db.Model(&models.User{}).
		Select("subscription_plan, count(*) as count").
		Group("subscription_plan").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[models.SubscriptionPlan]int64, len(rows))
	for _, r := range rows {
		result[r.SubscriptionPlan] = r.Count
	}
	return result, nil
}

func (r *userRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
