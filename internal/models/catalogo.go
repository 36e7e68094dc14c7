package models

// TipoObra classifies an obra (Escuela, Hospital, Vial...).
type TipoObra struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Nombre string `gorm:"size:128;uniqueIndex;not null"`
}

// AreaResponsable is the government area in charge of an obra.
type AreaResponsable struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Nombre string `gorm:"size:128;uniqueIndex;not null"`
}

// Barrio is a city neighbourhood. Names are stored in normalized form:
// lower-cased, trimmed, diacritics stripped.
type Barrio struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Nombre string `gorm:"size:128;uniqueIndex;not null"`
}
