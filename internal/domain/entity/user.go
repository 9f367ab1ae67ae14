package entity

import "time"

// UserRole is the account type stored on users.role.
type UserRole string

const (
	RolePaciente UserRole = "paciente"
	RoleProvedor UserRole = "provedor"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RolePaciente, RoleProvedor, RoleAdmin:
		return true
	}
	return false
}

// User represents the centralized authentication table
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:uq_users_email;not null" json:"email"`
	SenhaHash      string    `gorm:"column:senha_hash;type:text;not null" json:"-"`
	Role           UserRole  `gorm:"type:varchar(20);not null;index" json:"role"`
	Nome           string    `gorm:"type:varchar(255);not null" json:"nome"`
	Sobrenome      string    `gorm:"type:varchar(255);not null" json:"sobrenome"`
	Telefone       *string   `gorm:"type:varchar(30)" json:"telefone"`
	DataNascimento *string   `gorm:"type:varchar(10)" json:"data_nascimento"` // YYYY-MM-DD
	Endereco       *string   `gorm:"type:text" json:"endereco"`
	Cidade         *string   `gorm:"type:varchar(120)" json:"cidade"`
	Estado         *string   `gorm:"type:varchar(60)" json:"estado"`
	Cep            *string   `gorm:"type:varchar(20)" json:"cep"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Provider *Provider `gorm:"foreignKey:UserID" json:"provider,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Active treats a missing flag as active; the column defaults to true.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}
