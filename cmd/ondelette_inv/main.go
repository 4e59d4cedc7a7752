// Command ondelette_inv decodes a wavelet container read from stdin
// back into a PGM image written to stdout, translated from
// ondelette.c's ondelette_decode_image driver.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dlecorfec/tpcodec"
	"github.com/dlecorfec/tpcodec/pgm"
)

func main() {
	input := pflag.StringP("input", "i", "-", "input container file, - for stdin")
	output := pflag.StringP("output", "o", "-", "output PGM file, - for stdout")
	pflag.Parse()

	in, err := openInput(*input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := openOutput(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	img, err := tpcodec.DecompressWavelet(bufio.NewReader(in))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bw := bufio.NewWriter(out)
	if err := pgm.Encode(bw, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := bw.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openInput(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openOutput(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
