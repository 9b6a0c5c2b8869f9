package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"bundlecheck/internal/api"
	"bundlecheck/internal/template"
	"bundlecheck/internal/validator"
	"bundlecheck/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleValidateBundle runs the full pipeline and returns the report as
// JSON. Identical concurrent calls share one run through singleflight:
// validation is deterministic over static input, so the second caller gets
// the first caller's bytes.
func (s *Server) handleValidateBundle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", s.defaultRoot)
	if path == "" {
		return mcp.NewToolResultError("path argument is required (no default bundle root configured)"), nil
	}
	strict := request.GetBool("strict", false)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	key := fmt.Sprintf("%s|strict=%t", abs, strict)

	rendered, err, shared := s.validations.Do(key, func() (interface{}, error) {
		outcome, runErr := validator.Run(ctx, validator.Options{BundlePath: path})
		if runErr != nil {
			return nil, runErr
		}

		report := *outcome.Report
		if strict && report.HasWarnings() {
			report.Valid = false
		}

		data, marshalErr := json.MarshalIndent(&report, "", "  ")
		if marshalErr != nil {
			return nil, marshalErr
		}
		return string(data), nil
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Validation failed: %v", err)), nil
	}

	logging.Debug(subsystem, "validate_bundle %s (strict=%t, shared=%t)", abs, strict, shared)
	return mcp.NewToolResultText(rendered.(string)), nil
}

// componentListing is the list_components payload.
type componentListing struct {
	BundlePath string                `json:"bundlePath"`
	Components []api.ComponentRecord `json:"components"`
	Valid      bool                  `json:"valid"`
}

// handleListComponents resolves a bundle and returns its component records.
func (s *Server) handleListComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", s.defaultRoot)
	if path == "" {
		return mcp.NewToolResultError("path argument is required (no default bundle root configured)"), nil
	}

	outcome, err := validator.Run(ctx, validator.Options{BundlePath: path})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Cannot resolve bundle: %v", err)), nil
	}

	listing := componentListing{
		BundlePath: outcome.Report.BundlePath,
		Components: outcome.Records,
		Valid:      outcome.Report.Valid,
	}
	if listing.Components == nil {
		listing.Components = []api.ComponentRecord{}
	}

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format components: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// expansionResult is the expand_string payload.
type expansionResult struct {
	Expanded string   `json:"expanded"`
	Missing  []string `json:"missing"`
}

// handleExpandString runs the placeholder engine over one value. Names in
// the vars argument shadow the process environment.
func (s *Server) handleExpandString(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value argument is required"), nil
	}

	lookup := template.EnvLookup()
	if raw, ok := request.GetArguments()["vars"].(map[string]interface{}); ok {
		vars := make(map[string]string, len(raw))
		for name, v := range raw {
			vars[name] = fmt.Sprintf("%v", v)
		}
		lookup = template.ChainLookup(template.MapLookup(vars), lookup)
	}

	expanded, missing := s.engine.Expand(value, lookup)
	result := expansionResult{Expanded: expanded, Missing: missing}
	if result.Missing == nil {
		result.Missing = []string{}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
