package dto

import "github.com/jhoicas/proman-api/internal/domain"

// DataResponse envoltorio de respuestas exitosas: { "data": ... }.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Code    string             `json:"code"`
	Details []domain.Violation `json:"details,omitempty"`
	Detail  string             `json:"detail,omitempty"` // causa interna, solo en development
}

// PeriodDTO periodo consultado.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DeletedResponse confirmación de borrado.
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
