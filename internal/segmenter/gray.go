package segmenter

import (
	"image"
	"image/color"
)

// matrix is a dense grayscale pixel grid in row-major order.
// The separation-line detector works on rows; column detection
// runs the same logic over the transpose.
type matrix struct {
	pix  []uint8
	rows int
	cols int
}

// newMatrix converts the rectangle r of img to grayscale.
func newMatrix(img image.Image, r image.Rectangle) matrix {
	m := matrix{
		pix:  make([]uint8, r.Dx()*r.Dy()),
		rows: r.Dy(),
		cols: r.Dx(),
	}

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < m.rows; y++ {
			src := gray.PixOffset(r.Min.X, r.Min.Y+y)
			copy(m.pix[y*m.cols:(y+1)*m.cols], gray.Pix[src:src+m.cols])
		}
		return m
	}

	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			c := color.GrayModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.Gray)
			m.pix[y*m.cols+x] = c.Y
		}
	}
	return m
}

func (m matrix) row(i int) []uint8 {
	return m.pix[i*m.cols : (i+1)*m.cols]
}

// crop returns the sub-grid for rect, which is given in the
// coordinate space of m itself.
func (m matrix) crop(rect image.Rectangle) matrix {
	out := matrix{
		pix:  make([]uint8, rect.Dx()*rect.Dy()),
		rows: rect.Dy(),
		cols: rect.Dx(),
	}
	for y := 0; y < out.rows; y++ {
		src := (rect.Min.Y+y)*m.cols + rect.Min.X
		copy(out.row(y), m.pix[src:src+out.cols])
	}
	return out
}

// transpose swaps rows and columns so column logic can reuse row logic.
func (m matrix) transpose() matrix {
	out := matrix{
		pix:  make([]uint8, len(m.pix)),
		rows: m.cols,
		cols: m.rows,
	}
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			out.pix[x*out.cols+y] = m.pix[y*m.cols+x]
		}
	}
	return out
}
