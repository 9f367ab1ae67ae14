package dto

// Request DTOs

type UserCreateRequest struct {
	Email          string  `json:"email" validate:"required,email,max=255"`
	Senha          string  `json:"senha" validate:"required,max=72"`
	Nome           string  `json:"nome" validate:"required,max=255"`
	Sobrenome      string  `json:"sobrenome" validate:"required,max=255"`
	Role           string  `json:"role" validate:"omitempty,oneof=paciente provedor"`
	Telefone       *string `json:"telefone" validate:"omitempty,max=30"`
	DataNascimento *string `json:"data_nascimento" validate:"omitempty,isodate"` // Format: YYYY-MM-DD
	Endereco       *string `json:"endereco"`
	Cidade         *string `json:"cidade" validate:"omitempty,max=120"`
	Estado         *string `json:"estado" validate:"omitempty,max=60"`
	Cep            *string `json:"cep" validate:"omitempty,max=20"`
}

// Response DTOs

// UserResponse is the public view of an account; it never carries the hash.
type UserResponse struct {
	ID             uint    `json:"id"`
	Email          string  `json:"email"`
	Nome           string  `json:"nome"`
	Sobrenome      string  `json:"sobrenome"`
	Telefone       *string `json:"telefone"`
	DataNascimento *string `json:"data_nascimento"`
	Endereco       *string `json:"endereco"`
	Cidade         *string `json:"cidade"`
	Estado         *string `json:"estado"`
	Cep            *string `json:"cep"`
	Role           string  `json:"role"`
}
