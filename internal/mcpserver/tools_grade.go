package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sbomgrader/sbomgrader/grading"
	"github.com/sbomgrader/sbomgrader/internal/catalog"
)

type gradeInput struct {
	Doc      docInput `json:"doc"                jsonschema:"The SBOM document to grade"`
	Format   string   `json:"format,omitempty"    jsonschema:"SBOM format of doc (e.g. SPDX-2.3, CycloneDX-1.6). Detected from the document when omitted."`
	Cookbook []string `json:"cookbook,omitempty"  jsonschema:"Built-in cookbook name(s) or file path(s) to grade against. Defaults to SBOMGRADER_DEFAULT_COOKBOOK when omitted. More than one forms a bundle."`
	Decisive string   `json:"decisive,omitempty"  jsonschema:"When grading a bundle, the cookbook name whose grade is authoritative. Omitted means the worst grade among all cookbooks wins."`
	Passing  string   `json:"passing,omitempty"   jsonschema:"Minimum acceptable grade (A-F). Defaults to SBOMGRADER_DEFAULT_PASSING."`
}

type gradeOutput struct {
	Format   string `json:"format"`
	Grade    string `json:"grade"`
	Passing  string `json:"passing"`
	Passed   bool   `json:"passed"`
	Report   string `json:"report"`
}

func handleGrade(_ context.Context, _ *mcp.CallToolRequest, input gradeInput) (*mcp.CallToolResult, gradeOutput, error) {
	doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), gradeOutput{}, nil
	}

	format := input.Format
	if format == "" {
		f, err := catalog.DetectFormat(doc)
		if err != nil {
			return errResult(err), gradeOutput{}, nil
		}
		format = f.String()
	}

	names := input.Cookbook
	if len(names) == 0 {
		names = []string{cfg.DefaultCookbook}
	}

	passing := input.Passing
	if passing == "" {
		passing = cfg.DefaultPassing
	}
	passingGrade, err := grading.ParseGrade(passing)
	if err != nil {
		return errResult(err), gradeOutput{}, nil
	}

	cookbooks := make([]*grading.Cookbook, 0, len(names))
	for _, name := range names {
		cb, err := catalog.LoadCookbook(name, format)
		if err != nil {
			return errResult(err), gradeOutput{}, nil
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
		bundle := &grading.CookbookBundle{Cookbooks: cookbooks, Decisive: input.Decisive}
		res, err := bundle.Evaluate(doc, nil, nil)
		if err != nil {
			return errResult(err), gradeOutput{}, nil
		}
		grade = res.Grade
		report = grading.RenderBundleMarkdown(res, cookbooks)
	}

	output := gradeOutput{
		Format:  format,
		Grade:   grade.String(),
		Passing: passingGrade.String(),
		Passed:  grade.Compare(passingGrade) <= 0,
		Report:  report,
	}
	return nil, output, nil
}
