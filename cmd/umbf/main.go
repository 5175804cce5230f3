// Command umbf inspects UMBF container files: it dumps the header,
// lists blocks, reports the payload checksum and audits header fields
// against their declared wire widths.
package main

import (
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	umbf "github.com/logicossoftware/go-umbf"
)

func main() {
	verbose := flag.BoolP("verbose", "v", false, "print per-block detail")
	audit := flag.Bool("audit", false, "report structural findings and exit nonzero if any")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: umbf [flags] <file.umbf>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	exit := 0
	for _, path := range flag.Args() {
		if err := inspect(path, logger, *verbose, *audit); err != nil {
			fmt.Fprintf(os.Stderr, "umbf: %s: %v\n", path, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func inspect(path string, logger *slog.Logger, verbose, audit bool) error {
	f, err := umbf.Load(path, umbf.WithDecodeLogger(logger))
	if err != nil {
		return err
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  vendor:      0x%06X v0x%06X\n", f.Header.VendorSign, f.Header.VendorVersion)
	fmt.Printf("  type:        0x%04X (%s)\n", f.Header.TypeSign, typeName(f.Header.TypeSign))
	fmt.Printf("  spec:        0x%06X\n", f.Header.SpecVersion)
	fmt.Printf("  compression: %s\n", compName(f.Header.Compression))
	fmt.Printf("  checksum:    0x%08X\n", f.Checksum)
	fmt.Printf("  blocks:      %d\n", len(f.Blocks))
	if verbose {
		for i, b := range f.Blocks {
			fmt.Printf("    [%d] 0x%08X %s\n", i, b.Signature(), blockSummary(b))
		}
	}
	if audit {
		findings := f.Validate()
		for _, finding := range findings {
			fmt.Printf("  audit: %s\n", finding)
		}
		if len(findings) > 0 {
			return fmt.Errorf("%d finding(s)", len(findings))
		}
	}
	return nil
}

func typeName(sign uint16) string {
	switch sign {
	case umbf.FormatImage:
		return "image"
	case umbf.FormatScene:
		return "scene"
	case umbf.FormatMaterial:
		return "material"
	case umbf.FormatTarget:
		return "target"
	case umbf.FormatLibrary:
		return "library"
	case umbf.FormatRaw:
		return "raw"
	default:
		return "unknown"
	}
}

func compName(c umbf.Compression) string {
	switch c {
	case umbf.CompNone:
		return "none"
	case umbf.CompZSTD:
		return "zstd"
	case umbf.CompLZ4:
		return "lz4"
	case umbf.CompBR:
		return "brotli"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

func blockSummary(b umbf.Block) string {
	switch v := b.(type) {
	case *umbf.Image2D:
		return fmt.Sprintf("image2d %dx%d, %d channel(s), %d byte(s)/channel",
			v.Width, v.Height, len(v.Channels), v.Format.BytesPerChannel)
	case *umbf.Atlas:
		return fmt.Sprintf("atlas, %d placement(s), padding %d", len(v.Rects), v.Padding)
	case *umbf.Material:
		return fmt.Sprintf("material, %d texture(s)", len(v.Textures))
	case *umbf.MaterialInfo:
		return fmt.Sprintf("material info %q", v.Name)
	case *umbf.MaterialRange:
		return fmt.Sprintf("material range, %d face(s)", len(v.Faces))
	case *umbf.Scene:
		return fmt.Sprintf("scene, %d object(s)", len(v.Objects))
	case *umbf.Mesh:
		return fmt.Sprintf("mesh, %d vertices, %d face(s)", len(v.Vertices), len(v.Faces))
	case *umbf.Target:
		return fmt.Sprintf("target %q", v.URL)
	case *umbf.Library:
		return fmt.Sprintf("library %q", v.Tree.Name)
	default:
		return "extension block"
	}
}
