// SPDX-License-Identifier: EPL-2.0

// Command adpcm2pcm converts a recorder IMA ADPCM WAV file into 16-bit PCM.
// With -encode it goes the other way and produces a recorder style file
// from a mono 16-bit PCM WAV.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ik5/adpcmpbx"
	"github.com/ik5/adpcmpbx/formats/wav"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "adpcm2pcm:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adpcm2pcm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rate := fs.Int("rate", wav.DefaultSampleRate, "sample rate declared in the output header")
	check := fs.Bool("check", false, "reject input without RIFF/WAVE magic")
	encode := fs.Bool("encode", false, "encode a mono 16-bit PCM WAV into IMA ADPCM instead")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: adpcm2pcm [-rate 16000] [-check] [-encode] <in.wav> <out.wav>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected 2 arguments, got %d", fs.NArg())
	}

	inPath, outPath := fs.Arg(0), fs.Arg(1)

	if *encode {
		if err := adpcmpbx.EncodeFile(inPath, outPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "encoded %s -> %s\n", inPath, outPath)
		return nil
	}

	opts := []wav.TransformOption{wav.WithSampleRate(*rate)}
	if *check {
		opts = append(opts, wav.WithHeaderCheck())
	}

	stats, err := adpcmpbx.ConvertFile(ctx, inPath, outPath, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "decoded %d ADPCM bytes from %s into %d bytes at %s\n",
		stats.PayloadBytes, inPath, stats.OutputBytes, outPath)

	return nil
}
