package application

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"testrail-mcp-server/internal/domain"
)

// toolArguments returns the call's argument object. A missing or non-object
// payload yields an empty map so validation can report each absent field
// individually instead of failing wholesale.
func toolArguments(request mcp.CallToolRequest) domain.Arguments {
	args := request.GetArguments()
	if args == nil {
		return domain.Arguments{}
	}
	return domain.Arguments(args)
}

// resolveOperation extracts the operation discriminant from a combined tool
// call and checks that it names an operation of the given family.
func resolveOperation(family domain.Family, args domain.Arguments) (domain.Operation, error) {
	value, exists := args["operation"]
	if !exists {
		return "", fmt.Errorf("missing required parameter: operation")
	}

	name, ok := value.(string)
	if !ok || name == "" {
		return "", fmt.Errorf("parameter operation must be a non-empty string")
	}

	op := domain.Operation(name)
	if owner, known := domain.FamilyOf(op); !known || owner != family {
		return "", fmt.Errorf("unknown %s operation: %s", family, name)
	}

	return op, nil
}
