package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/utils"
)

// ReceiptService renders the confirmation receipt of a reservation
type ReceiptService struct {
	reservations repository.ReservationRepositoryInterface
	payments     repository.PaymentRepositoryInterface
	settings     repository.SettingsRepositoryInterface
	baseURL      string
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	reservations repository.ReservationRepositoryInterface,
	payments repository.PaymentRepositoryInterface,
	settings repository.SettingsRepositoryInterface,
	baseURL string,
) *ReceiptService {
	return &ReceiptService{
		reservations: reservations,
		payments:     payments,
		settings:     settings,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
	}
}

// Generate returns the PDF receipt for reservationID. Only the reservation's owner or an
// admin may read it.
func (s *ReceiptService) Generate(ctx context.Context, reservationID, userID string, admin bool) ([]byte, error) {
	log.Printf("📥 ReceiptService.Generate: reservation=%s user=%s", reservationID, userID)

	r, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !admin && (r.UserID == "" || r.UserID != userID) {
		return nil, models.ErrForbidden
	}

	var p *models.Payment
	if r.PaymentID != "" {
		p, err = s.payments.GetByID(ctx, r.PaymentID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("load payment: %w", err)
		}
	}

	settings := models.DefaultSettings()
	if s.settings != nil {
		if stored, err := s.settings.Get(ctx); err == nil {
			settings = *stored
		} else {
			log.Printf("⚠️  ReceiptService.Generate: using default settings: %v", err)
		}
	}

	data, err := s.render(r, p, settings)
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	log.Printf("✅ ReceiptService.Generate: reservation=%s bytes=%d", reservationID, len(data))
	return data, nil
}

func (s *ReceiptService) render(r *models.Reservation, p *models.Payment, settings models.PropertySettings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	money := func(v int64) string { return utils.FormatMoney(settings.CurrencySymbol, v) }

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, tr(settings.Name))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, tr("Comprobante de reserva"))
	pdf.Ln(12)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	// Summary + QR
	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 55, "F")

	pdf.SetXY(20, yStart+6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "RESUMEN")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Reserva: %s", r.ID),
		fmt.Sprintf("Habitación: %s", r.RoomName),
		fmt.Sprintf("Entrada: %s  Salida: %s", r.CheckIn.Format(utils.DateLayout), r.CheckOut.Format(utils.DateLayout)),
		fmt.Sprintf("Huéspedes: %d", r.GuestCount),
		fmt.Sprintf("Estado: %s", r.Status),
	}
	for _, line := range lines {
		pdf.SetX(20)
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(6)
	}

	qrURL := fmt.Sprintf("%s/reservations/%s", s.baseURL, r.ID)
	qrBytes, err := qrcode.Encode(qrURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrBytes))
	pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 62)

	// Charges
	receiptSectionTitle(pdf, tr("DETALLE"))
	pdf.SetFont("Helvetica", "", 11)
	nights := int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
	servicesTotal := int64(0)
	for _, svc := range r.AdditionalServices {
		servicesTotal += svc.Price
	}
	pdf.CellFormat(130, 7, tr(fmt.Sprintf("Alojamiento (%d noches)", nights)), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, tr(money(r.Total-servicesTotal)), "", 1, "R", false, 0, "")
	for _, svc := range r.AdditionalServices {
		pdf.CellFormat(130, 7, tr(svc.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, tr(money(svc.Price)), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(130, 9, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 9, tr(money(r.Total)), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	if p != nil {
		receiptSectionTitle(pdf, tr("PAGO"))
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 7, tr(fmt.Sprintf("Método: %s", p.Method)))
		pdf.Ln(6)
		pdf.Cell(0, 7, tr(fmt.Sprintf("Estado: %s", p.Status)))
		pdf.Ln(6)
		if p.Reference != "" {
			pdf.Cell(0, 7, tr(fmt.Sprintf("Referencia: %s", p.Reference)))
			pdf.Ln(6)
		}
		pdf.Cell(0, 7, tr(fmt.Sprintf("Titular: %s <%s>", p.Customer.Name, p.Customer.Email)))
		pdf.Ln(8)
	}

	if r.Comments != "" {
		receiptSectionTitle(pdf, tr("COMENTARIOS"))
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(r.Comments), "", "", false)
	}

	// Footer
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 280, 195, 280)
	pdf.SetY(283)
	pdf.SetFont("Helvetica", "I", 9)
	footer := fmt.Sprintf("Check-in %s · Check-out %s", settings.CheckInTime, settings.CheckOutTime)
	if settings.Phone != "" {
		footer += " · " + settings.Phone
	}
	pdf.CellFormat(0, 6, tr(footer), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func receiptSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}
