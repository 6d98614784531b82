package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"testrail-mcp-server/internal/domain"
)

// Tool name constants for the combined tool surface
const (
	ToolManageProjects = "manage_testrail_projects"
	ToolManageSuites   = "manage_testrail_suites"
	ToolManageSections = "manage_testrail_sections"
	ToolManageCases    = "manage_testrail_cases"
)

// combinedToolNames maps each resource family to its combined tool name.
var combinedToolNames = map[domain.Family]string{
	domain.FamilyProjects: ToolManageProjects,
	domain.FamilySuites:   ToolManageSuites,
	domain.FamilySections: ToolManageSections,
	domain.FamilyCases:    ToolManageCases,
}

// ToolProvider builds the MCP tools of one resource family and executes
// their calls. Every call runs the same pipeline: validate the arguments,
// build the resolved request, send it, normalize the response.
type ToolProvider struct {
	family  domain.Family
	invoker domain.Invoker
	logger  *StructuredLogger
}

// NewToolProvider creates a tool provider for one resource family.
func NewToolProvider(family domain.Family, invoker domain.Invoker, logger *StructuredLogger) *ToolProvider {
	return &ToolProvider{
		family:  family,
		invoker: invoker,
		logger:  logger,
	}
}

// Register adds the family's tools to the MCP server. Combined mode exposes
// one multi-operation tool per family with an operation discriminant; split
// mode exposes one tool per operation with the operation fixed at
// registration time. Both run the same pipeline.
func (p *ToolProvider) Register(s *server.MCPServer, mode string) {
	if mode == domain.ToolModeSplit {
		for _, op := range domain.FamilyOperations(p.family) {
			s.AddTool(p.splitTool(op), p.splitHandler(op))
		}
		return
	}
	s.AddTool(p.combinedTool(), p.combinedHandler())
}

// combinedTool declares the family's single multi-operation tool. The schema
// lists every field any operation of the family accepts; which ones are
// required depends on the chosen operation and is enforced at call time.
func (p *ToolProvider) combinedTool() mcp.Tool {
	ops := domain.FamilyOperations(p.family)
	verbs := make([]string, len(ops))
	for i, op := range ops {
		verbs[i] = op.String()
	}

	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf(
			"Manage TestRail %s. The operation field selects the action to perform: %s. Which other fields are required depends on the chosen operation.",
			p.family, strings.Join(verbs, ", "))),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("The operation to perform"),
			mcp.Enum(verbs...),
		),
	}
	for _, field := range domain.FamilyFields(p.family) {
		opts = append(opts, fieldOption(field, false))
	}

	return mcp.NewTool(combinedToolNames[p.family], opts...)
}

// combinedHandler resolves the operation discriminant and runs the pipeline.
func (p *ToolProvider) combinedHandler() server.ToolHandlerFunc {
	name := combinedToolNames[p.family]
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := toolArguments(request)

		op, err := resolveOperation(p.family, args)
		if err != nil {
			p.logger.LogError("operation resolution failed", err, map[string]interface{}{
				"tool": name,
			})
			return mcp.NewToolResultError(err.Error()), nil
		}

		return p.run(ctx, name, op, args), nil
	}
}

// splitTool declares one single-operation tool. Its schema carries exactly
// the fields the operation accepts, with the required ones marked.
func (p *ToolProvider) splitTool(op domain.Operation) mcp.Tool {
	spec, _ := domain.Lookup(op)

	opts := []mcp.ToolOption{mcp.WithDescription(spec.Summary)}
	for _, name := range spec.Required {
		if field, ok := domain.FieldByName(p.family, name); ok {
			opts = append(opts, fieldOption(field, true))
		}
	}
	for _, name := range spec.Optional {
		if field, ok := domain.FieldByName(p.family, name); ok {
			opts = append(opts, fieldOption(field, false))
		}
	}

	return mcp.NewTool(op.String(), opts...)
}

// splitHandler runs the pipeline with the operation fixed at registration.
func (p *ToolProvider) splitHandler(op domain.Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return p.run(ctx, op.String(), op, toolArguments(request)), nil
	}
}

// run executes one operation through the full pipeline. Failures never
// propagate as Go errors past this point: the caller is a tool-invocation
// protocol, so every failure surfaces as an error result carrying a
// descriptive string that names the operation and the underlying cause.
func (p *ToolProvider) run(ctx context.Context, tool string, op domain.Operation, args domain.Arguments) *mcp.CallToolResult {
	requestID := uuid.NewString()
	start := time.Now()

	fields := map[string]interface{}{
		"tool":       tool,
		"operation":  op.String(),
		"request_id": requestID,
	}

	// Validate the arguments before anything reaches the network
	if err := domain.Validate(op, args); err != nil {
		p.logger.LogError("validation failed", err, fields)
		return mcp.NewToolResultError(err.Error())
	}

	// Build the resolved request
	req, err := domain.BuildRequest(p.invoker.BaseURL(), op, args)
	if err != nil {
		p.logger.LogError("request build failed", err, fields)
		return mcp.NewToolResultError(fmt.Sprintf("failed to execute %s: %v", op, err))
	}

	// Send it to the remote API
	body, err := p.invoker.Send(ctx, req)
	fields["duration_ms"] = time.Since(start).Milliseconds()
	if err != nil {
		p.logger.LogError("remote call failed", err, fields)
		return mcp.NewToolResultError(fmt.Sprintf("failed to execute %s: %v", op, err))
	}

	p.logger.LogInfo("operation completed", fields)
	return mcp.NewToolResultText(domain.NormalizeResponse(op, args, body))
}

// fieldOption declares one argument in a tool's input schema.
func fieldOption(field domain.Field, required bool) mcp.ToolOption {
	opts := []mcp.PropertyOption{mcp.Description(field.Description)}
	if required {
		opts = append(opts, mcp.Required())
	}

	switch field.Kind {
	case domain.KindName, domain.KindText:
		return mcp.WithString(field.Name, opts...)
	case domain.KindBool:
		return mcp.WithBoolean(field.Name, opts...)
	case domain.KindIDList:
		opts = append(opts, mcp.Items(map[string]interface{}{"type": "number"}))
		return mcp.WithArray(field.Name, opts...)
	case domain.KindStepList:
		opts = append(opts, mcp.Items(map[string]interface{}{"type": "object"}))
		return mcp.WithArray(field.Name, opts...)
	default:
		return mcp.WithNumber(field.Name, opts...)
	}
}
