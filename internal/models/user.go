// Package models содержит доменные структуры платформы: пользователя, класс,
// входные DTO запросов и агрегаты статистики дашбордов.
package models

import "time"

// Роли пользователей.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User представляет зарегистрированного пользователя.
//
// PasswordHash никогда не сериализуется в JSON.
type User struct {
	ID              string     `json:"_id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	Role            string     `json:"role" db:"role"`
	EnrolledClasses []string   `json:"enrolledClasses" db:"-"`
	ProfilePicture  string     `json:"profilePicture" db:"profile_picture"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	LastLogin       *time.Time `json:"lastLogin,omitempty" db:"last_login"`
}

// PublicUser публичные поля пользователя в ответах auth-маршрутов.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public возвращает публичное представление пользователя.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// AuthResult результат регистрации или входа.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// UserUpdate изменяемые администратором поля пользователя.
// Пароль через этот путь не меняется.
type UserUpdate struct {
	Name  string
	Email string
	Role  string
}
