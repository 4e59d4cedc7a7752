// Package pgm implements the external PGM image-I/O collaborator spec.md
// treats as out of scope for the core: loading and saving 8-bit
// greyscale P5 PGM files, translated from image.c's lire_ligne/
// lecture_image/ecriture_image. Comment lines are skipped exactly as
// lire_ligne does, and the in-memory layout mirrors image.Gray's field
// shape so conversion is a single copy loop.
package pgm

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/pkg/errors"

	"github.com/dlecorfec/tpcodec/internal/tpcodecerr"
)

// Image is a height×width greyscale pixel grid, maxval fixed at 255.
type Image struct {
	Height, Width int
	Pix           []byte // row-major, length Height*Width
}

// At returns the pixel at (row, col).
func (im *Image) At(j, i int) byte { return im.Pix[j*im.Width+i] }

// Set stores the pixel at (row, col).
func (im *Image) Set(j, i int, v byte) { im.Pix[j*im.Width+i] = v }

// ToGray converts to a standard library *image.Gray.
func (im *Image) ToGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, im.Width, im.Height))
	for j := 0; j < im.Height; j++ {
		copy(g.Pix[j*g.Stride:j*g.Stride+im.Width], im.Pix[j*im.Width:(j+1)*im.Width])
	}
	return g
}

// FromGray copies a standard library *image.Gray into a new Image.
func FromGray(g *image.Gray) *Image {
	b := g.Bounds()
	im := &Image{Height: b.Dy(), Width: b.Dx(), Pix: make([]byte, b.Dx()*b.Dy())}
	for j := 0; j < im.Height; j++ {
		for i := 0; i < im.Width; i++ {
			c := g.GrayAt(b.Min.X+i, b.Min.Y+j)
			im.Set(j, i, c.Y)
		}
	}
	return im
}

// readLine skips lines beginning with '#', translating lire_ligne.
func readLine(r *bufio.Reader) (string, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		return line, nil
	}
}

// Decode reads a P5 PGM image.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	magic, err := readLine(br)
	if err != nil {
		return nil, tpcodecerr.Wrap(tpcodecerr.IoError, "pgm.Decode", err)
	}
	if len(magic) < 2 || magic[0] != 'P' || magic[1] != '5' {
		return nil, tpcodecerr.New(tpcodecerr.MalformedInput, "pgm.Decode", "missing P5 magic")
	}
	dims, err := readLine(br)
	if err != nil {
		return nil, tpcodecerr.Wrap(tpcodecerr.IoError, "pgm.Decode", err)
	}
	var width, height int
	if _, err := fmt.Sscanf(dims, "%d %d", &width, &height); err != nil {
		return nil, tpcodecerr.Wrap(tpcodecerr.MalformedInput, "pgm.Decode", err)
	}
	if _, err := readLine(br); err != nil { // maxval line, assumed 255
		return nil, tpcodecerr.Wrap(tpcodecerr.IoError, "pgm.Decode", err)
	}
	im := &Image{Height: height, Width: width, Pix: make([]byte, height*width)}
	if _, err := io.ReadFull(br, im.Pix); err != nil {
		return nil, errors.Wrap(tpcodecerr.Wrap(tpcodecerr.IoError, "pgm.Decode", err), "reading pixel data")
	}
	return im, nil
}

// Encode writes a P5 PGM image, translating ecriture_image.
func Encode(w io.Writer, im *Image) error {
	header := fmt.Sprintf("P5\n%d %d\n255\n", im.Width, im.Height)
	if _, err := io.WriteString(w, header); err != nil {
		return tpcodecerr.Wrap(tpcodecerr.IoError, "pgm.Encode", err)
	}
	if _, err := w.Write(im.Pix); err != nil {
		return tpcodecerr.Wrap(tpcodecerr.IoError, "pgm.Encode", err)
	}
	return nil
}
