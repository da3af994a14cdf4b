package repo

import (
	"context"

	"github.com/Skotchmaster/phast_auth/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, name, email, passwordHash string) error {
	u := models.User{Name: name, Email: email, PasswordHash: passwordHash}
	tx := r.DB.WithContext(ctx).Where("email = ?", email).FirstOrCreate(&u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

func (r *GormRepo) PasswordHashByEmail(ctx context.Context, email string) (string, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Select("password_hash").Where("email = ?", email).First(&u).Error; err != nil {
		return "", notFound(err)
	}
	return u.PasswordHash, nil
}

// ValidateLogin resolves the user whose email and stored hash both match.
func (r *GormRepo) ValidateLogin(ctx context.Context, email, passwordHash string) (uint, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Select("id").
		Where("email = ? AND password_hash = ?", email, passwordHash).
		First(&u).Error; err != nil {
		return 0, notFound(err)
	}
	return u.ID, nil
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.UserView, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return u.View(), nil
}

func (r *GormRepo) UpdateUser(ctx context.Context, id uint, name, email, passwordHash string) error {
	db := r.DB.WithContext(ctx)

	var taken int64
	if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return ErrUserAlreadyExist
	}

	tx := db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"name":          name,
		"email":         email,
		"password_hash": passwordHash,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id uint) error {
	tx := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
