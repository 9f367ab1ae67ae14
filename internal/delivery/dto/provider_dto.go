package dto

// Request DTOs

type ProviderCreateRequest struct {
	Bio                 *string  `json:"bio"`
	Educacao            string   `json:"educacao" validate:"required,max=255"`
	InstituicaoEducacao string   `json:"instituicao_educacao" validate:"required,max=255"`
	AnoFormacao         int      `json:"ano_formacao" validate:"required,gte=1900,lte=2100"`
	CRM                 string   `json:"crm" validate:"required,max=50"`
	Subespecialidades   []string `json:"subespecialidades" validate:"dive,required,max=120"`
	Idiomas             []string `json:"idiomas" validate:"dive,required,max=120"`
}

// RegisterProviderRequest creates the account and its professional profile together.
type RegisterProviderRequest struct {
	User     UserCreateRequest     `json:"user"`
	Provider ProviderCreateRequest `json:"provider"`
}

// Query DTOs

type ProviderListQuery struct {
	Subespecialidade string
	Idioma           string
	Q                string
}

// Response DTOs

type ProviderResponse struct {
	UserResponse
	Bio                 *string  `json:"bio"`
	Educacao            string   `json:"educacao"`
	InstituicaoEducacao string   `json:"instituicao_educacao"`
	AnoFormacao         int      `json:"ano_formacao"`
	CRM                 string   `json:"crm"`
	Subespecialidades   []string `json:"subespecialidades"`
	Idiomas             []string `json:"idiomas"`
}
