package entity

// Provider is the professional profile of a user with role provedor.
type Provider struct {
	ID                  uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID              uint    `gorm:"uniqueIndex:uq_providers_user_id;not null" json:"user_id"`
	Bio                 *string `gorm:"type:text" json:"bio"`
	Educacao            string  `gorm:"type:varchar(255);not null" json:"educacao"`
	InstituicaoEducacao string  `gorm:"type:varchar(255);not null" json:"instituicao_educacao"`
	AnoFormacao         int     `gorm:"not null" json:"ano_formacao"`
	CRM                 string  `gorm:"column:crm;type:varchar(50);uniqueIndex:uq_providers_crm;not null" json:"crm"`

	// Relationships
	User              User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Subespecialidades []Subespecialidade `gorm:"many2many:provider_subespecialidade;" json:"subespecialidades,omitempty"`
	Idiomas           []Idioma           `gorm:"many2many:provider_idioma;" json:"idiomas,omitempty"`
}

func (Provider) TableName() string {
	return "providers"
}

// ProviderFilter narrows the public provider listing.
// Used by repository layer to avoid coupling with delivery DTOs.
type ProviderFilter struct {
	Subespecialidade string // exact name
	Idioma           string // exact name
	Search           string // nome/sobrenome (ILIKE)
}
