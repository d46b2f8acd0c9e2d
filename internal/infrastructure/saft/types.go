// Package saft construye el fichero SAF-T PT (AuditFile 1.04_01) a partir de datos ya
// filtrados y ordenados, calcula su digest canónico y lo codifica o empaqueta.
package saft

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyData sujeto pasivo declarante (Header).
type CompanyData struct {
	NIF        string
	Name       string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// ProductData software que produce el fichero (Header).
type ProductData struct {
	ProductID                 string
	ProductVersion            string
	ProductCompanyTaxID       string
	SoftwareCertificateNumber string
}

// CustomerData entrada de MasterFiles/Customer.
type CustomerData struct {
	CustomerID  string
	TaxID       string
	CompanyName string
	Address     string
	City        string
	PostalCode  string
	Country     string
}

// LineData línea de un documento de venta.
type LineData struct {
	LineNumber   int
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	CreditAmount decimal.Decimal
	TaxPointDate time.Time
}

// InvoiceData documento de SourceDocuments/SalesInvoices.
type InvoiceData struct {
	InvoiceNo   string
	Status      string // N | A
	InvoiceDate time.Time
	CustomerID  string
	SourceID    string
	Lines       []LineData
	NetTotal    decimal.Decimal
	GrossTotal  decimal.Decimal
}

// AuditFileData todo lo necesario para construir el fichero; el builder no consulta nada más.
type AuditFileData struct {
	Company     CompanyData
	Product     ProductData
	FiscalYear  int
	StartDate   time.Time
	EndDate     time.Time
	DateCreated time.Time
	Customers   []CustomerData
	Invoices    []InvoiceData
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}
