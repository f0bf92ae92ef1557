package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sbomgrader/sbomgrader/document"
	"github.com/sbomgrader/sbomgrader/internal/catalog"
)

type convertInput struct {
	Doc    docInput `json:"doc"              jsonschema:"The SBOM document to convert"`
	Map    string   `json:"map"              jsonschema:"Built-in translation-map name or file path, e.g. spdx23-cdx16"`
	To     string   `json:"to,omitempty"     jsonschema:"Target format (e.g. SPDX-2.3, CycloneDX-1.6). Determined from the map's two formats when omitted and the map only has one usable direction for doc."`
	Output string   `json:"output,omitempty" jsonschema:"File path to write the converted document as JSON. If omitted the document is returned inline."`
}

type convertOutput struct {
	SourceFormat string `json:"source_format"`
	TargetFormat string `json:"target_format"`
	WrittenTo    string `json:"written_to,omitempty"`
	Document     string `json:"document,omitempty"`
}

func handleConvert(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	if input.Map == "" {
		return errResult(fmt.Errorf("map is required")), convertOutput{}, nil
	}

	doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	maps, err := catalog.LoadTranslationMap(input.Map)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	format, err := catalog.DetectFormat(doc)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	var direction string
	for key, m := range maps {
		if m.SourceFormat.String() == format.String() && (input.To == "" || m.TargetFormat.String() == input.To) {
			direction = key
			break
		}
	}
	if direction == "" {
		return errResult(fmt.Errorf("convert: no direction in map %q converts from %q to %q", input.Map, format, input.To)), convertOutput{}, nil
	}
	tmap := maps[direction]

	converted, err := tmap.Translate(doc)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	data, err := document.EncodeJSON(converted)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	output := convertOutput{
		SourceFormat: tmap.SourceFormat.String(),
		TargetFormat: tmap.TargetFormat.String(),
	}
	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, 0o644); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), convertOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}
