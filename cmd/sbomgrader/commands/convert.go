package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbomgrader/sbomgrader/document"
	"github.com/sbomgrader/sbomgrader/internal/catalog"
	"github.com/sbomgrader/sbomgrader/internal/cliutil"
)

// ConvertFlags contains flags for the convert command.
type ConvertFlags struct {
	Map    string
	To     string
	Output string
	Format string
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.Map, "map", "", "built-in translation-map name or file path, e.g. spdx23-cdx16 (required)")
	fs.StringVar(&flags.To, "to", "", "target format (e.g. SPDX-2.3, CycloneDX-1.6); inferred from map and doc when omitted")
	fs.StringVar(&flags.Output, "o", "", "output file path; written to stdout when omitted")
	fs.StringVar(&flags.Format, "output-format", FormatJSON, "output encoding: json or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: sbomgrader convert -map <name> [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Convert an SBOM document between SPDX and CycloneDX using a named translation map.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  sbomgrader convert -map spdx23-cdx16 -o sbom.cdx.json sbom.spdx.json\n")
		cliutil.Writef(fs.Output(), "  cat sbom.spdx.json | sbomgrader convert -map spdx23-cdx16 - > sbom.cdx.json\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    conversion succeeded\n")
		cliutil.Writef(fs.Output(), "  1    input could not be read, decoded, or converted\n")
	}

	return fs, flags
}

// HandleConvert executes the convert command.
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires exactly one file path or '-' for stdin")
	}
	docPath := fs.Arg(0)

	if flags.Map == "" {
		fs.Usage()
		return fmt.Errorf("convert command requires -map")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	if flags.Output != "" {
		if docPath != StdinFilePath {
			if err := ValidateOutputPath(flags.Output, []string{docPath}); err != nil {
				return err
			}
		}
		if err := RejectSymlinkOutput(flags.Output); err != nil {
			return err
		}
	}

	doc, err := catalog.DecodeFile(docPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", FormatDocPath(docPath), err)
	}

	maps, err := catalog.LoadTranslationMap(flags.Map)
	if err != nil {
		return fmt.Errorf("loading translation map %q: %w", flags.Map, err)
	}

	format, err := catalog.DetectFormat(doc)
	if err != nil {
		return err
	}

	var direction string
	for key, m := range maps {
		if m.SourceFormat.String() == format.String() && (flags.To == "" || m.TargetFormat.String() == flags.To) {
			direction = key
			break
		}
	}
	if direction == "" {
		return fmt.Errorf("no direction in map %q converts from %q to %q", flags.Map, format, flags.To)
	}
	tmap := maps[direction]

	converted, err := tmap.Translate(doc)
	if err != nil {
		return fmt.Errorf("translating %s: %w", FormatDocPath(docPath), err)
	}

	var data []byte
	if flags.Format == FormatYAML {
		data, err = document.EncodeYAML(converted)
	} else {
		data, err = document.EncodeJSON(converted)
	}
	if err != nil {
		return fmt.Errorf("encoding converted document: %w", err)
	}

	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", flags.Output, err)
		}
		cliutil.Writef(os.Stderr, "%s -> %s: wrote %s\n", tmap.SourceFormat, tmap.TargetFormat, filepath.Clean(flags.Output))
		return nil
	}

	fmt.Println(string(data))
	return nil
}
