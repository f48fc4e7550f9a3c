package ports

import "github.com/jhoicas/Cobranza-api/internal/domain/entity"

// InvoicePDFGenerator define el puerto de salida para la representación
// gráfica (PDF) de una factura de cobranza. Cualquier adaptador (maroto,
// mock) debe implementar esta interfaz.
type InvoicePDFGenerator interface {
	// GenerateReceipt arma el PDF de la factura con los datos de la empresa
	// emisora (nombre, CNPJ, color corporativo).
	GenerateReceipt(company *entity.Company, invoice *entity.Invoice) ([]byte, error)
}
