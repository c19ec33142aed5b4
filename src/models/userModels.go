package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type UserModel struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"column:username;type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(255);not null"`
	Email        *string   `json:"email" gorm:"column:email;type:varchar(255)"`
	FullName     *string   `json:"full_name" gorm:"column:full_name;type:varchar(255)"`
	Role         string    `json:"role" gorm:"column:role;type:varchar(50);default:user;not null"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (UserModel) TableName() string { return "users" }

// IsAdmin reports whether the user may manage other accounts.
func (u UserModel) IsAdmin() bool { return u.Role == RoleAdmin }

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role" binding:"omitempty,oneof=admin user"`
}
