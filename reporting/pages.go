package reporting

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

const a4WidthMM = 210.0

// TileOffsets returns the top offset of every page needed to cover contentHeight.
// There is always at least one page.
func TileOffsets(contentHeight, pageHeight int) []int {
	if pageHeight <= 0 {
		pageHeight = PageHeightPx
	}
	offsets := []int{0}
	for off := pageHeight; off < contentHeight; off += pageHeight {
		offsets = append(offsets, off)
	}
	return offsets
}

// SplitPages cuts a tall snapshot into page-height tiles, top to bottom
func SplitPages(img image.Image, pageHeight int) []image.Image {
	b := img.Bounds()
	var pages []image.Image
	for _, off := range TileOffsets(b.Dy(), pageHeight) {
		bottom := b.Min.Y + off + pageHeight
		if bottom > b.Max.Y {
			bottom = b.Max.Y
		}
		pages = append(pages, imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, bottom)))
	}
	return pages
}

// WriteImagePDF writes one A4 page per image, each scaled to the page width
func WriteImagePDF(w io.Writer, pages []image.Image) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	if len(pages) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "I", 14)
		pdf.SetXY(0, 140)
		pdf.CellFormat(a4WidthMM, 10, noDataLabel, "", 0, "C", false, 0, "")
	}

	for i, page := range pages {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, page, imaging.JPEG, imaging.JPEGQuality(88)); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("page-%d", i+1)
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)

		b := page.Bounds()
		heightMM := float64(b.Dy()) * a4WidthMM / float64(b.Dx())
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, a4WidthMM, heightMM, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	return pdf.Output(w)
}
