// Command ondelette compresses a PGM image read from stdin into the
// wavelet container written to stdout, translated from ondelette.c's
// ondelette_encode_image driver.
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
	input := pflag.StringP("input", "i", "-", "input PGM file, - for stdin")
	output := pflag.StringP("output", "o", "-", "output container file, - for stdout")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ondelette [-i in.pgm] [-o out.ond] <quality>")
		os.Exit(2)
	}
	var quality float32
	if _, err := fmt.Sscanf(pflag.Arg(0), "%f", &quality); err != nil {
		fmt.Fprintln(os.Stderr, "invalid quality:", err)
		os.Exit(2)
	}

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

	img, err := pgm.Decode(bufio.NewReader(in))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bw := bufio.NewWriter(out)
	if err := tpcodec.CompressWavelet(bw, img, quality); err != nil {
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
