package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/repositories"
	"adminhub/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the handover receipt of an assignment.
type DocsService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
	Loader    func(context.Context, domain.ID) (receiptData, error)
}

type receiptData struct {
	Assignment models.Assignment
	Asset      models.Asset
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Receipt returns the PDF and its file name. Callers outside admin may only
// fetch receipts for their own handovers.
func (s DocsService) Receipt(ctx context.Context, rc domain.RequestContext, assignmentID domain.ID) ([]byte, string, error) {
	d, err := s.load(ctx, assignmentID)
	if err != nil {
		return nil, "", err
	}
	if !rc.CanActOn(d.Assignment.UserID) {
		return nil, "", domain.ForbiddenError{}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("assignment_id=%d", assignmentID))
	return buildReceiptPDF(d, s.now())
}

func (s DocsService) load(ctx context.Context, id domain.ID) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	var out receiptData
	a, err := repositories.AssignmentRepository{DB: s.DB}.GetByID(ctx, id)
	if err != nil {
		return out, err
	}
	out.Assignment = a
	// The asset may have been soft-deleted since; the receipt still renders from the ref.
	if asset, err := (repositories.AssetRepository{DB: s.DB}).GetByID(ctx, a.AssetID); err == nil {
		out.Asset = asset
	} else if !domain.IsNotFound(err) {
		return out, err
	}
	return out, nil
}

// Core PDF fonts are cp1252; letters outside it are folded to ASCII first.
var pdfFold = strings.NewReplacer("ğ", "g", "Ğ", "G", "ş", "s", "Ş", "S", "ı", "i", "İ", "I")

func buildReceiptPDF(d receiptData, printed time.Time) ([]byte, string, error) {
	a := d.Assignment
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(pdfFold.Replace(s)) }

	title := "ZİMMET TESLİM TUTANAĞI"
	if a.Type == domain.AssignmentReturn {
		title = "İADE TUTANAĞI"
	}
	pdf.SetTitle(text(title), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, text(title))
	pdf.Ln(12)

	assetName, assetCode := d.Asset.Name, d.Asset.AssetCode
	if assetName == "" && a.Asset != nil {
		assetName, assetCode = a.Asset.Name, a.Asset.AssetCode
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Belge No        : ZMT-%d", a.ID),
		fmt.Sprintf("İşlem           : %s", a.Type.Label()),
		fmt.Sprintf("Tarih           : %s", utils.FormatDateTime(a.AssignmentDate)),
		fmt.Sprintf("İade Tarihi     : %s", utils.FormatDatePtr(a.ReturnDate)),
		fmt.Sprintf("Demirbaş        : %s", safe(assetName, "-")),
		fmt.Sprintf("Demirbaş Kodu   : %s", safe(assetCode, "-")),
		fmt.Sprintf("Seri No         : %s", safe(d.Asset.SerialNumber, "-")),
		fmt.Sprintf("Marka / Model   : %s / %s", safe(d.Asset.Brand, "-"), safe(d.Asset.Model, "-")),
		fmt.Sprintf("Teslim Alan     : %s", refName(a.User)),
		fmt.Sprintf("Teslim Eden     : %s", refName(a.AssignedByUser)),
		fmt.Sprintf("Durum           : %s", safe(a.Condition, "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, text(l))
		pdf.Ln(7)
	}
	if strings.TrimSpace(a.Notes) != "" {
		pdf.Ln(3)
		pdf.MultiCell(0, 6, text("Notlar: "+a.Notes), "", "", false)
	}

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(95, 7, text("Teslim Eden"))
	pdf.Cell(95, 7, text("Teslim Alan"))
	pdf.Ln(20)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, text("Düzenlenme: "+utils.FormatDateTime(printed)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ZIMMET_%d_%s.pdf", a.ID, safeFilenamePart(assetCode))
	return buf.Bytes(), filename, nil
}

func refName(r *models.UserRef) string {
	if r == nil {
		return "-"
	}
	return safe(r.Name, "-")
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	s = strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_").Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
