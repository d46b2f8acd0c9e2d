package dto

// SAFTExportRequest body de POST /api/saft/export y /api/saft/validate.
type SAFTExportRequest struct {
	FiscalYear  int             `json:"fiscal_year" validate:"required"`
	StartMonth  int             `json:"start_month" validate:"required,min=1,max=12"`
	EndMonth    int             `json:"end_month" validate:"required,min=1,max=12"`
	CompanyInfo SAFTCompanyInfo `json:"company_info"`
	Encoding    string          `json:"encoding" validate:"omitempty,oneof=UTF-8 windows-1252"`
}

// SAFTCompanyInfo datos del sujeto pasivo que declara.
type SAFTCompanyInfo struct {
	NIF        string `json:"nif" validate:"required,nif9"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Address    string `json:"address" validate:"required,min=1,max=200"`
	City       string `json:"city" validate:"required,min=1,max=50"`
	PostalCode string `json:"postal_code" validate:"required,pt_postal_code"`
	Country    string `json:"country" validate:"omitempty,len=2"`
}

// SAFTPeriod eco del periodo exportado.
type SAFTPeriod struct {
	FiscalYear int    `json:"fiscal_year"`
	StartMonth int    `json:"start_month"`
	EndMonth   int    `json:"end_month"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// SAFTExportResponse metadatos del fichero (y el XML con ?response=json).
type SAFTExportResponse struct {
	Filename     string          `json:"filename"`
	InvoiceCount int             `json:"invoiceCount"`
	TotalAmount  string          `json:"totalAmount"` // 2 decimales, como TotalCredit
	Period       SAFTPeriod      `json:"period"`
	Encoding     string          `json:"encoding"`
	Digest       string          `json:"digest"`
	XML          string          `json:"xml,omitempty"`
}

// SAFTValidateResponse resultado de POST /api/saft/validate.
type SAFTValidateResponse struct {
	Valid bool `json:"valid"`
}
