package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sbomgrader/sbomgrader/internal/catalog"
	"github.com/sbomgrader/sbomgrader/internal/cliutil"

	"github.com/sbomgrader/sbomgrader/grading"
)

// GradeFlags contains flags for the grade command.
type GradeFlags struct {
	Format   string
	Cookbook string
	Decisive string
	Passing  string
	Quiet    bool
}

// SetupGradeFlags creates and configures a FlagSet for the grade command.
func SetupGradeFlags() (*flag.FlagSet, *GradeFlags) {
	fs := flag.NewFlagSet("grade", flag.ContinueOnError)
	flags := &GradeFlags{}

	fs.StringVar(&flags.Format, "format", "", "SBOM format of the document (e.g. SPDX-2.3, CycloneDX-1.6); detected from the document when omitted")
	fs.StringVar(&flags.Cookbook, "cookbook", "default", "comma-separated built-in cookbook name(s) or file path(s); more than one forms a bundle")
	fs.StringVar(&flags.Decisive, "decisive", "", "when grading a bundle, the cookbook name whose grade is authoritative")
	fs.StringVar(&flags.Passing, "passing", "C", "minimum acceptable grade (A-F)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: print only the letter grade")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: print only the letter grade")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: sbomgrader grade [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Grade an SBOM document against a cookbook (or bundle of cookbooks) and print a markdown report.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  sbomgrader grade sbom.json\n")
		cliutil.Writef(fs.Output(), "  sbomgrader grade --cookbook default,strict --decisive strict sbom.json\n")
		cliutil.Writef(fs.Output(), "  cat sbom.json | sbomgrader grade -q --passing B -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    grade meets the passing threshold\n")
		cliutil.Writef(fs.Output(), "  1    grade falls below the passing threshold, or grading failed\n")
	}

	return fs, flags
}

// HandleGrade executes the grade command.
func HandleGrade(args []string) error {
	fs, flags := SetupGradeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("grade command requires exactly one file path or '-' for stdin")
	}
	docPath := fs.Arg(0)

	passingGrade, err := grading.ParseGrade(flags.Passing)
	if err != nil {
		return err
	}

	doc, err := catalog.DecodeFile(docPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", FormatDocPath(docPath), err)
	}

	format := flags.Format
	if format == "" {
		f, err := catalog.DetectFormat(doc)
		if err != nil {
			return err
		}
		format = f.String()
	}

	names := strings.Split(flags.Cookbook, ",")
	cookbooks := make([]*grading.Cookbook, 0, len(names))
	for _, name := range names {
		cb, err := catalog.LoadCookbook(strings.TrimSpace(name), format)
		if err != nil {
			return fmt.Errorf("loading cookbook %q: %w", name, err)
		}
		cookbooks = append(cookbooks, cb)
	}

	var grade grading.Grade
	var report string
	if len(cookbooks) == 1 {
		res := cookbooks[0].Evaluate(doc, nil, nil)
		grade = res.Grade
		report = grading.RenderMarkdown(res, cookbooks[0])
	} else {
		bundle := &grading.CookbookBundle{Cookbooks: cookbooks, Decisive: flags.Decisive}
		res, err := bundle.Evaluate(doc, nil, nil)
		if err != nil {
			return fmt.Errorf("evaluating cookbook bundle: %w", err)
		}
		grade = res.Grade
		report = grading.RenderBundleMarkdown(res, cookbooks)
	}

	if flags.Quiet {
		cliutil.Writef(os.Stdout, "%s\n", grade)
	} else {
		cliutil.Writef(os.Stderr, "sbomgrader version: %s\n", sbomgraderVersion())
		cliutil.Writef(os.Stderr, "Document: %s\n", FormatDocPath(docPath))
		cliutil.Writef(os.Stderr, "Format: %s\n", format)
		cliutil.Writef(os.Stderr, "Grade: %s (passing: %s)\n\n", grade, passingGrade)
		fmt.Println(report)
	}

	if grade.Compare(passingGrade) > 0 {
		os.Exit(1)
	}
	return nil
}
