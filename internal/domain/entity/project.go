package entity

import "time"

// Estados de un proyecto de instalación.
const (
	ProjectActive   = "ACTIVE"
	ProjectFinished = "FINISHED"
	ProjectOnHold   = "ON_HOLD"
)

// Project proyecto de instalación solar al que se asocian facturas.
type Project struct {
	ID        string
	Name      string
	ClientRef string // referencia al cliente en el sistema comercial
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
