package converter

import (
	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Nome:           user.Nome,
		Sobrenome:      user.Sobrenome,
		Telefone:       user.Telefone,
		DataNascimento: user.DataNascimento,
		Endereco:       user.Endereco,
		Cidade:         user.Cidade,
		Estado:         user.Estado,
		Cep:            user.Cep,
		Role:           string(user.Role),
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

// UserCreateRequestToEntity copies the profile fields; hashing and role
// resolution are left to the caller.
func UserCreateRequestToEntity(req *dto.UserCreateRequest) *entity.User {
	return &entity.User{
		Email:          req.Email,
		Role:           entity.UserRole(req.Role),
		Nome:           req.Nome,
		Sobrenome:      req.Sobrenome,
		Telefone:       req.Telefone,
		DataNascimento: req.DataNascimento,
		Endereco:       req.Endereco,
		Cidade:         req.Cidade,
		Estado:         req.Estado,
		Cep:            req.Cep,
	}
}
