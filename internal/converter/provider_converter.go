package converter

import (
	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/domain/entity"
)

// ProviderToResponse flattens the provider and its user into one object.
// Link names keep the order they were loaded in.
func ProviderToResponse(provider *entity.Provider) *dto.ProviderResponse {
	if provider == nil {
		return nil
	}

	response := &dto.ProviderResponse{
		UserResponse:        *UserToResponse(&provider.User),
		Bio:                 provider.Bio,
		Educacao:            provider.Educacao,
		InstituicaoEducacao: provider.InstituicaoEducacao,
		AnoFormacao:         provider.AnoFormacao,
		CRM:                 provider.CRM,
		Subespecialidades:   make([]string, len(provider.Subespecialidades)),
		Idiomas:             make([]string, len(provider.Idiomas)),
	}

	for i, s := range provider.Subespecialidades {
		response.Subespecialidades[i] = s.Nome
	}
	for i, l := range provider.Idiomas {
		response.Idiomas[i] = l.Nome
	}

	return response
}

func ProviderListQueryToFilter(query *dto.ProviderListQuery) *entity.ProviderFilter {
	if query == nil {
		return nil
	}
	return &entity.ProviderFilter{
		Subespecialidade: query.Subespecialidade,
		Idioma:           query.Idioma,
		Search:           query.Q,
	}
}
