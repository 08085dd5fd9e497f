// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/woozymasta/deflate"
)

var (
	flagDecompress bool
	flagOutput     string
	flagLevel      int
	flagVerbose    bool
	flagOutLen     int
)

// rootCmd is a thin wrapper over the package's Compress/Decompress: it never
// implements codec logic itself, only flag parsing, file I/O, and error
// reporting.
var rootCmd = &cobra.Command{
	Use:   "deflatec [input-file]",
	Short: "compress or decompress a file using the deflate package",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	var flags *pflag.FlagSet = rootCmd.Flags()
	flags.BoolVarP(&flagDecompress, "decompress", "d", false, "decompress input instead of compressing it")
	flags.StringVarP(&flagOutput, "output", "o", "", "output file path (default: stdout)")
	flags.IntVarP(&flagLevel, "level", "l", 6, "compression level (0-9, 0 = stored only)")
	flags.IntVar(&flagOutLen, "out-len", 0, "expected decompressed size for -d (0 = guess 8x the compressed size)")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}

	inputPath := args[0]
	log.WithField("path", inputPath).Debug("reading input file")

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "reading %s", inputPath)
	}

	var out []byte
	if flagDecompress {
		out, err = runDecompress(src)
	} else {
		out, err = runCompress(src)
	}
	if err != nil {
		return err
	}

	if flagOutput == "" {
		_, err = os.Stdout.Write(out)
		return pkgerrors.Wrap(err, "writing to stdout")
	}

	log.WithFields(log.Fields{"path": flagOutput, "bytes": len(out)}).Debug("writing output file")
	if err := os.WriteFile(flagOutput, out, 0o644); err != nil {
		return pkgerrors.Wrapf(err, "writing %s", flagOutput)
	}
	return nil
}

func runCompress(src []byte) ([]byte, error) {
	opts := &deflate.CompressOptions{Level: flagLevel, Strategy: deflate.BlockAuto}
	out, err := deflate.Compress(src, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "compress")
	}
	log.WithFields(log.Fields{"in": len(src), "out": len(out), "level": flagLevel}).Debug("compressed")
	return out, nil
}

func runDecompress(src []byte) ([]byte, error) {
	outLen := flagOutLen
	if outLen == 0 {
		// No size hint available; guess generously and let DecompressN tell us
		// the real consumed length. 8x the compressed size comfortably covers
		// ordinary text/binary compression ratios for a CLI convenience path.
		outLen = len(src) * 8
	}

	out, _, err := deflate.DecompressN(src, deflate.DefaultDecompressOptions(outLen))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "decompress")
	}
	log.WithFields(log.Fields{"in": len(src), "out": len(out)}).Debug("decompressed")
	return out, nil
}
