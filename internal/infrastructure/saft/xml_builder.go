package saft

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	pkgsaft "github.com/jhoicas/proman-api/pkg/saft"
)

const (
	nsXsi      = "http://www.w3.org/2001/XMLSchema-instance"
	dateLayout = "2006-01-02"
	// SystemEntryDate / InvoiceStatusDate
	dateTimeLayout = "2006-01-02T15:04:05"

	// Producto único declarado: renda habitacional.
	rentProductCode        = "RENDA"
	rentProductDescription = "Arrendamento habitacional"
	rentUnitOfMeasure      = "UN"
)

// XMLBuilderService construye el AuditFile con etree.
// La salida depende solo de AuditFileData: mismo dato, mismos bytes.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el XML en UTF-8 con sangría de 2 espacios.
func (s *XMLBuilderService) Build(data *AuditFileData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("saft: datos del fichero vacíos")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("AuditFile")
	root.CreateAttr("xmlns", pkgsaft.Namespace)
	root.CreateAttr("xmlns:xsi", nsXsi)

	writeHeader(root.CreateElement("Header"), data)
	writeMasterFiles(root.CreateElement("MasterFiles"), data)
	writeSalesInvoices(root.CreateElement("SourceDocuments").CreateElement("SalesInvoices"), data)

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("saft: serializar XML: %w", err)
	}
	return buf.Bytes(), nil
}

// ── Header ──────────────────────────────────────────────────────────────────

func writeHeader(h *etree.Element, d *AuditFileData) {
	text(h, "AuditFileVersion", pkgsaft.AuditFileVersion)
	text(h, "CompanyID", d.Company.NIF)
	text(h, "TaxRegistrationNumber", d.Company.NIF)
	text(h, "TaxAccountingBasis", pkgsaft.TaxAccountingBasis)
	text(h, "CompanyName", d.Company.Name)
	addr := h.CreateElement("CompanyAddress")
	text(addr, "AddressDetail", d.Company.Address)
	text(addr, "City", d.Company.City)
	text(addr, "PostalCode", d.Company.PostalCode)
	text(addr, "Country", orDefault(d.Company.Country, pkgsaft.CountryPT))
	text(h, "FiscalYear", strconv.Itoa(d.FiscalYear))
	text(h, "StartDate", d.StartDate.Format(dateLayout))
	text(h, "EndDate", d.EndDate.Format(dateLayout))
	text(h, "CurrencyCode", pkgsaft.CurrencyCode)
	text(h, "DateCreated", d.DateCreated.Format(dateLayout))
	text(h, "TaxEntity", pkgsaft.TaxEntityGlobal)
	text(h, "ProductCompanyTaxID", d.Product.ProductCompanyTaxID)
	text(h, "SoftwareCertificateNumber", d.Product.SoftwareCertificateNumber)
	text(h, "ProductID", d.Product.ProductID)
	text(h, "ProductVersion", d.Product.ProductVersion)
}

// ── MasterFiles ─────────────────────────────────────────────────────────────

func writeMasterFiles(mf *etree.Element, d *AuditFileData) {
	for _, c := range d.Customers {
		ce := mf.CreateElement("Customer")
		text(ce, "CustomerID", c.CustomerID)
		text(ce, "AccountID", pkgsaft.Desconhecido)
		text(ce, "CustomerTaxID", orDefault(c.TaxID, pkgsaft.ConsumidorFinalNIF))
		text(ce, "CompanyName", c.CompanyName)
		ba := ce.CreateElement("BillingAddress")
		text(ba, "AddressDetail", orDefault(c.Address, pkgsaft.Desconhecido))
		text(ba, "City", orDefault(c.City, pkgsaft.Desconhecido))
		text(ba, "PostalCode", orDefault(c.PostalCode, pkgsaft.Desconhecido))
		text(ba, "Country", orDefault(c.Country, pkgsaft.CountryPT))
		text(ce, "SelfBillingIndicator", "0")
	}

	if len(d.Invoices) > 0 {
		p := mf.CreateElement("Product")
		text(p, "ProductType", "S")
		text(p, "ProductCode", rentProductCode)
		text(p, "ProductDescription", rentProductDescription)
		text(p, "ProductNumberCode", rentProductCode)
	}

	entry := mf.CreateElement("TaxTable").CreateElement("TaxTableEntry")
	text(entry, "TaxType", pkgsaft.TaxTypeIVA)
	text(entry, "TaxCountryRegion", pkgsaft.CountryPT)
	text(entry, "TaxCode", pkgsaft.TaxCodeISE)
	text(entry, "Description", "Isenta")
	text(entry, "TaxPercentage", "0")
}

// ── SourceDocuments/SalesInvoices ───────────────────────────────────────────

func writeSalesInvoices(si *etree.Element, d *AuditFileData) {
	text(si, "NumberOfEntries", strconv.Itoa(len(d.Invoices)))
	text(si, "TotalDebit", money(d.TotalDebit))
	text(si, "TotalCredit", money(d.TotalCredit))

	for _, inv := range d.Invoices {
		ie := si.CreateElement("Invoice")
		text(ie, "InvoiceNo", inv.InvoiceNo)
		text(ie, "ATCUD", "0")
		ds := ie.CreateElement("DocumentStatus")
		text(ds, "InvoiceStatus", inv.Status)
		text(ds, "InvoiceStatusDate", inv.InvoiceDate.Format(dateTimeLayout))
		text(ds, "SourceID", inv.SourceID)
		text(ds, "SourceBilling", "P")
		text(ie, "Hash", "0")
		text(ie, "Period", strconv.Itoa(int(inv.InvoiceDate.Month())))
		text(ie, "InvoiceDate", inv.InvoiceDate.Format(dateLayout))
		text(ie, "InvoiceType", pkgsaft.InvoiceTypeFatura)
		sr := ie.CreateElement("SpecialRegimes")
		text(sr, "SelfBillingIndicator", "0")
		text(sr, "CashVATSchemeIndicator", "0")
		text(sr, "ThirdPartiesBillingIndicator", "0")
		text(ie, "SourceID", inv.SourceID)
		text(ie, "SystemEntryDate", inv.InvoiceDate.Format(dateTimeLayout))
		text(ie, "CustomerID", inv.CustomerID)

		for _, l := range inv.Lines {
			le := ie.CreateElement("Line")
			text(le, "LineNumber", strconv.Itoa(l.LineNumber))
			text(le, "ProductCode", rentProductCode)
			text(le, "ProductDescription", rentProductDescription)
			text(le, "Quantity", l.Quantity.String())
			text(le, "UnitOfMeasure", rentUnitOfMeasure)
			text(le, "UnitPrice", money(l.UnitPrice))
			text(le, "TaxPointDate", l.TaxPointDate.Format(dateLayout))
			text(le, "Description", l.Description)
			text(le, "CreditAmount", money(l.CreditAmount))
			tax := le.CreateElement("Tax")
			text(tax, "TaxType", pkgsaft.TaxTypeIVA)
			text(tax, "TaxCountryRegion", pkgsaft.CountryPT)
			text(tax, "TaxCode", pkgsaft.TaxCodeISE)
			text(tax, "TaxPercentage", "0")
			text(le, "TaxExemptionReason", pkgsaft.TaxExemptionReasonResidentialRent)
			text(le, "TaxExemptionCode", pkgsaft.TaxExemptionCodeResidentialRent)
		}

		dt := ie.CreateElement("DocumentTotals")
		text(dt, "TaxPayable", "0.00")
		text(dt, "NetTotal", money(inv.NetTotal))
		text(dt, "GrossTotal", money(inv.GrossTotal))
	}
}

// ── helpers ─────────────────────────────────────────────────────────────────

func text(parent *etree.Element, tag, value string) *etree.Element {
	e := parent.CreateElement(tag)
	e.SetText(value)
	return e
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
