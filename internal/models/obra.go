package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapa labels as stored in the database. CSV data may carry stages
// outside the managed lifecycle (Paralizada, Desestimada); those rows
// are stored as-is and simply offer no lifecycle operations.
const (
	EtapaProyecto       = "Proyecto"
	EtapaEnContratacion = "En Contratacion"
	EtapaAdjudicada     = "Adjudicada"
	EtapaEnEjecucion    = "En Ejecucion"
	EtapaFinalizada     = "Finalizada"
	EtapaRescindida     = "Rescindida"
)

// Obra is the central public-works record.
type Obra struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Nombre string `gorm:"size:255;not null;uniqueIndex:idx_obras_nombre_barrio"`
	Etapa  string `gorm:"size:32;default:Proyecto;index"`

	Entorno       string `gorm:"size:128"`
	Descripcion   string `gorm:"type:text"`
	Beneficiarios string `gorm:"type:text"`
	Compromiso    string `gorm:"type:text"`
	Destacada     bool   `gorm:"default:false"`
	BAElige       bool   `gorm:"column:ba_elige;default:false"`
	Enlace        string `gorm:"size:255"`

	TipoObraID *uint `gorm:"index"`
	AreaID     *uint `gorm:"index"`
	BarrioID   *uint `gorm:"uniqueIndex:idx_obras_nombre_barrio"`

	EmpresaLicitacion string `gorm:"size:255"`
	NroContratacion   string `gorm:"size:64"`
	CuitContratista   string `gorm:"size:64"`
	ContratacionTipo  string `gorm:"size:64"`
	NroExpediente     string `gorm:"size:64"`
	LicitacionAnio    int    `gorm:"default:0"`

	MontoContrato        decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	FuenteFinanciamiento string              `gorm:"size:128"`
	PorcentajeAvance     int                 `gorm:"default:0"`

	FechaInicio     *time.Time
	FechaFinInicial *time.Time
	PlazoMeses      *int

	Comuna    string `gorm:"size:16"`
	Direccion string `gorm:"size:255"`
	Latitud   *float64
	Longitud  *float64

	ManoObra *int

	CreadoEn time.Time `gorm:"autoCreateTime"`

	TipoObra *TipoObra        `gorm:"foreignKey:TipoObraID"`
	Area     *AreaResponsable `gorm:"foreignKey:AreaID"`
	Barrio   *Barrio          `gorm:"foreignKey:BarrioID"`
}
