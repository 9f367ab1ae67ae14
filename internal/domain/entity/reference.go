package entity

// Subespecialidade is a sub-specialty tag attached to providers.
type Subespecialidade struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome string `gorm:"type:varchar(120);uniqueIndex:uq_subespecialidades_nome;not null" json:"nome"`
}

func (Subespecialidade) TableName() string {
	return "subespecialidades"
}

// Idioma is a language spoken by providers.
type Idioma struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome string `gorm:"type:varchar(120);uniqueIndex:uq_idiomas_nome;not null" json:"nome"`
}

func (Idioma) TableName() string {
	return "idiomas"
}
