package certificate

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// US Letter in points.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	marginX    = 50.0
)

// Render draws a single-page certificate for the given profile
// attributes and returns the PDF bytes. All inputs are drawn as literal
// text; nothing user-supplied is ever interpreted as markup.
func Render(name, color string, forms []string) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	// Uncompressed content streams keep the drawn text inspectable,
	// which the download verification relies on.
	pdf.SetCompression(false)
	pdf.AddPage()

	// Dark background.
	pdf.SetFillColor(0, 0, 0)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 32)
	pdf.Text(marginX, 80, "Jedi Certificate")

	pdf.SetTextColor(204, 204, 204)
	pdf.SetFont("Helvetica", "", 20)
	pdf.Text(marginX, 130, tr(fmt.Sprintf("Name: %s", name)))

	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(marginX, 160, tr(fmt.Sprintf("Lightsaber Colour: %s", color)))
	pdf.Text(marginX, 190, "Forms:")

	pdf.SetTextColor(178, 178, 178)
	pdf.SetFont("Helvetica", "", 16)
	y := 210.0
	for _, form := range forms {
		pdf.Text(marginX+20, y, tr(fmt.Sprintf("- %s", form)))
		y += 20
	}

	pdf.SetTextColor(153, 153, 153)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(marginX, pageHeight-80, "This certificate recognises your completion of the Jedi Path Quiz.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
