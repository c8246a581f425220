package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Repository interface {
	UpsertGameUser(u *User) error
	FindByGameUserID(gameUserID int64) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)
	UpdateLastLogin(userID uint, at time.Time) error
	UpdateRole(userID uint, roleID uint) error
	UpdateTitle(userID uint, titleID *uint) error
	UpdateEmail(userID uint, email string) error
	GetUserIDsByRole(roleName string) ([]uint, error)
	GetEmailsByRole(roleName string) ([]string, error)
	GetEmailsByIDs(userIDs []uint) (map[uint]string, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// UpsertGameUser inserts a user on first login or refreshes the
// game-reported profile fields on every later login.
func (r *repository) UpsertGameUser(u *User) error {
	var existing User
	err := r.db.Where("game_user_id = ?", u.GameUserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(u).Error
	}
	if err != nil {
		return err
	}

	existing.Username = u.Username
	existing.Level = u.Level
	existing.Syndicate = u.Syndicate
	existing.HasPassport = u.HasPassport
	existing.HasMobile = u.HasMobile
	existing.OldPassport = u.OldPassport
	existing.UserSex = u.UserSex
	existing.LastLogin = u.LastLogin

	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*u = existing
	return nil
}

func (r *repository) FindByGameUserID(gameUserID int64) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("game_user_id = ?", gameUserID).First(&u).Error
	return &u, err
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

func (r *repository) UpdateLastLogin(userID uint, at time.Time) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("last_login", at).Error
}

func (r *repository) UpdateRole(userID uint, roleID uint) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("role_id", roleID).Error
}

func (r *repository) UpdateTitle(userID uint, titleID *uint) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("title_id", titleID).Error
}

func (r *repository) UpdateEmail(userID uint, email string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("email", email).Error
}

func (r *repository) GetUserIDsByRole(roleName string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&User{}).
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("user_roles.role_name = ?", roleName).
		Pluck("users.id", &ids).Error
	return ids, err
}

func (r *repository) GetEmailsByRole(roleName string) ([]string, error) {
	var emails []string
	err := r.db.Model(&User{}).
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("user_roles.role_name = ? AND users.email <> ''", roleName).
		Pluck("users.email", &emails).Error
	return emails, err
}

func (r *repository) GetEmailsByIDs(userIDs []uint) (map[uint]string, error) {
	type row struct {
		ID    uint
		Email string
	}
	var rows []row
	err := r.db.Model(&User{}).
		Where("id IN ? AND email <> ''", userIDs).
		Select("id", "email").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	emails := make(map[uint]string, len(rows))
	for _, u := range rows {
		emails[u.ID] = u.Email
	}
	return emails, nil
}

// ===========================
// 🌱 Seeding

// SeedUserRoles creates the fixed role set if missing
func SeedUserRoles(db *gorm.DB) error {
	roles := []UserRole{
		{RoleName: "superadmin", Description: "Full administrative access"},
		{RoleName: "organizer", Description: "Manages events, approvals and pairing"},
		{RoleName: "participant", Description: "Registers for events, sends and receives gifts"},
	}

	for _, role := range roles {
		var existing UserRole
		err := db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", role.RoleName, err)
			}
			log.Printf("✅ Seeded role: %s", role.RoleName)
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SeedSuperAdminUser creates the local-login superadmin if missing
func SeedSuperAdminUser(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		log.Println("⚠️ SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD not set, skipping superadmin seed")
		return nil
	}

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var role UserRole
	if err := db.Where("role_name = ?", "superadmin").First(&role).Error; err != nil {
		return fmt.Errorf("superadmin role missing: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		GameUserID:   -1, // not a game account
		Username:     "superadmin",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("✅ Seeded superadmin user")
	return nil
}
