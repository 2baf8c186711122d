// Package source abstracts where the page raster comes from: a captured
// screenshot file, a folder of screenshots, or a page of a PDF design
// mock rendered via MuPDF.
package source

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// Source yields decoded page rasters for the pipeline. Implementations
// own any underlying handles until Close.
type Source interface {
	Pages() int
	Dimensions(index int) (width, height float64, err error)
	Render(index int, dpi int) (image.Image, error)
	Close() error
}

// PDFSource renders pages of a PDF design mock.
type PDFSource struct {
	doc  *fitz.Document
	path string
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{doc: doc, path: path}, nil
}

func (p *PDFSource) Pages() int {
	return p.doc.NumPage()
}

func (p *PDFSource) Dimensions(index int) (float64, float64, error) {
	rect, err := p.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (p *PDFSource) Render(index int, dpi int) (image.Image, error) {
	// fitz documents are not safe for concurrent rendering; open a
	// short-lived handle per call so callers may parallelize.
	doc, err := fitz.New(p.path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return doc.ImageDPI(index, float64(dpi))
}

func (p *PDFSource) Close() error {
	return p.doc.Close()
}
