package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genOperation generates operations drawn from the full catalog.
func genOperation() gopter.Gen {
	var ops []interface{}
	for _, family := range Families() {
		for _, op := range FamilyOperations(family) {
			ops = append(ops, op)
		}
	}
	return gen.OneConstOf(ops...)
}

// genSoftDeleteOperation generates the operations that accept the soft flag.
func genSoftDeleteOperation() gopter.Gen {
	return gen.OneConstOf(OpDeleteSuite, OpDeleteSection, OpDeleteCase, OpDeleteCases)
}

// propertyRequiredArgs builds a well-formed argument object carrying exactly
// the operation's required fields.
func propertyRequiredArgs(op Operation) Arguments {
	spec, _ := Lookup(op)
	args := Arguments{}
	for _, name := range spec.Required {
		field, _ := FieldByName(spec.Family, name)
		args[name] = sampleValue(field)
	}
	return args
}

// TestGopterSetup verifies that gopter is properly configured.
// This is a simple property test to ensure the testing framework is working.
func TestGopterSetup(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: Operation string round-trip
	// An operation converted to a string and back identifies the same operation
	properties.Property("Operation string conversion is consistent", prop.ForAll(
		func(op Operation) bool {
			return Operation(op.String()) == op
		},
		genOperation(),
	))

	// Property: Every catalog operation resolves to its own family
	properties.Property("Catalog lookups are consistent", prop.ForAll(
		func(op Operation) bool {
			spec, ok := Lookup(op)
			if !ok {
				return false
			}
			family, ok := FamilyOf(op)
			return ok && family == spec.Family
		},
		genOperation(),
	))

	properties.TestingRun(t)
}

// Feature: testrail-mcp-server, Property 1: Validation Completeness
//
// For any operation, supplying exactly the required fields passes validation,
// and removing any single required field fails validation with an issue that
// names exactly the missing field.
func TestProperty1_ValidationCompleteness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: Required fields alone pass validation
	properties.Property("Required fields alone pass validation", prop.ForAll(
		func(op Operation) bool {
			return Validate(op, propertyRequiredArgs(op)) == nil
		},
		genOperation(),
	))

	// Property: Dropping any required field fails with an issue naming it
	properties.Property("Missing required field is reported by name", prop.ForAll(
		func(op Operation, pick int) bool {
			spec, _ := Lookup(op)
			if len(spec.Required) == 0 {
				return true // Nothing to drop
			}

			missing := spec.Required[pick%len(spec.Required)]
			args := propertyRequiredArgs(op)
			delete(args, missing)

			err := Validate(op, args)
			if err == nil {
				return false
			}

			verr, ok := err.(*ValidationError)
			if !ok {
				return false
			}
			return verr.HasField(missing) && len(verr.Issues) == 1
		},
		genOperation(),
		gen.IntRange(0, 31),
	))

	// Property: Unknown operations are always rejected
	properties.Property("Unknown operations are rejected", prop.ForAll(
		func(verb string) bool {
			op := Operation(verb)
			if _, ok := Lookup(op); ok {
				return true // Happened to generate a real operation
			}

			err := Validate(op, Arguments{})
			if err == nil {
				return false
			}

			verr, ok := err.(*ValidationError)
			return ok && verr.HasField("operation")
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

// Feature: testrail-mcp-server, Property 2: Request URL Composition
//
// For any operation and any positive entity id, the built request targets the
// remote API entry point followed by the operation verb, with the id as the
// final path segment when the operation addresses a single entity.
func TestProperty2_RequestURLComposition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: Every URL opens with the API entry point and the verb
	properties.Property("URL opens with the API entry point", prop.ForAll(
		func(op Operation, id int) bool {
			spec, _ := Lookup(op)
			args := propertyRequiredArgs(op)
			if spec.PathArg != "" {
				args[spec.PathArg] = float64(id)
			}

			req, err := BuildRequest("https://rail.example.com", op, args)
			if err != nil {
				return false
			}
			return strings.HasPrefix(req.URL, "https://rail.example.com/index.php?/api/v2/"+op.String())
		},
		genOperation(),
		gen.IntRange(1, 1000000),
	))

	// Property: The positional id is the final path segment
	properties.Property("Positional id lands at the end of the path", prop.ForAll(
		func(op Operation, id int) bool {
			spec, _ := Lookup(op)
			if spec.PathArg == "" {
				return true // Collection-level operation
			}

			args := propertyRequiredArgs(op)
			args[spec.PathArg] = float64(id)

			req, err := BuildRequest("https://rail.example.com", op, args)
			if err != nil {
				return false
			}

			// Required-only arguments never add query parameters
			want := "https://rail.example.com/index.php?/api/v2/" + op.String() + "/" + strconv.Itoa(id)
			return req.URL == want
		},
		genOperation(),
		gen.IntRange(1, 1000000),
	))

	// Property: Reads use GET, writes use POST
	properties.Property("HTTP method matches the verb", prop.ForAll(
		func(op Operation) bool {
			req, err := BuildRequest("https://rail.example.com", op, propertyRequiredArgs(op))
			if err != nil {
				return false
			}

			if strings.HasPrefix(op.String(), "get_") {
				return req.Method == "GET"
			}
			return req.Method == "POST"
		},
		genOperation(),
	))

	properties.TestingRun(t)
}

// Feature: testrail-mcp-server, Property 3: Query Filter Encoding
//
// For any supplied filter value, the URL carries it as an ampersand-joined
// query parameter whose encoded value parses back to the original.
func TestProperty3_QueryFilterEncoding(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: String filters survive URL encoding
	properties.Property("Filter values round-trip through URL encoding", prop.ForAll(
		func(left string, right string, projectID int) bool {
			// Compose a filter that needs escaping
			filter := left + " & " + right + "?"
			args := Arguments{
				"project_id": float64(projectID),
				"filter":     filter,
			}

			req, err := BuildRequest("https://rail.example.com", OpGetCases, args)
			if err != nil {
				return false
			}

			idx := strings.Index(req.URL, "?")
			if idx < 0 {
				return false
			}
			values, err := url.ParseQuery(req.URL[idx+1:])
			if err != nil {
				return false
			}
			return values.Get("filter") == filter
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.IntRange(1, 10000),
	))

	// Property: Numeric filters serialize as plain integers
	properties.Property("Numeric filters serialize as integers", prop.ForAll(
		func(limit int, offset int) bool {
			args := Arguments{
				"limit":  float64(limit),
				"offset": float64(offset),
			}

			req, err := BuildRequest("https://rail.example.com", OpGetProjects, args)
			if err != nil {
				return false
			}
			return strings.Contains(req.URL, "&limit="+strconv.Itoa(limit)) &&
				strings.Contains(req.URL, "&offset="+strconv.Itoa(offset))
		},
		gen.IntRange(1, 500),
		gen.IntRange(0, 10000),
	))

	// Property: Boolean filters serialize as 1 or 0
	properties.Property("Boolean filters serialize as 1 or 0", prop.ForAll(
		func(completed bool) bool {
			args := Arguments{"is_completed": completed}

			req, err := BuildRequest("https://rail.example.com", OpGetProjects, args)
			if err != nil {
				return false
			}

			if completed {
				return strings.Contains(req.URL, "&is_completed=1")
			}
			return strings.Contains(req.URL, "&is_completed=0")
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Feature: testrail-mcp-server, Property 4: Body Assembly
//
// For any operation that carries a JSON payload, the body never repeats the
// operation discriminant or the positional id, and passthrough operations
// forward arbitrary custom fields unchanged.
func TestProperty4_BodyAssembly(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: Consumed arguments never leak into the body
	properties.Property("Body never carries the discriminant or the positional id", prop.ForAll(
		func(op Operation, id int) bool {
			spec, _ := Lookup(op)
			args := propertyRequiredArgs(op)
			args["operation"] = op.String()
			if spec.PathArg != "" {
				args[spec.PathArg] = float64(id)
			}

			req, err := BuildRequest("https://rail.example.com", op, args)
			if err != nil {
				return false
			}
			if !req.HasBody() {
				return true
			}

			var body map[string]interface{}
			if err := json.Unmarshal(req.Body, &body); err != nil {
				return false
			}

			if _, present := body["operation"]; present {
				return false
			}
			if spec.PathArg != "" {
				if _, present := body[spec.PathArg]; present {
					return false
				}
			}
			return true
		},
		genOperation(),
		gen.IntRange(1, 1000000),
	))

	// Property: Passthrough operations forward custom fields unchanged
	properties.Property("Custom fields survive passthrough", prop.ForAll(
		func(key string, value string, caseID int) bool {
			name := "x_" + key
			args := Arguments{
				"case_id": float64(caseID),
				name:      value,
			}

			req, err := BuildRequest("https://rail.example.com", OpUpdateCase, args)
			if err != nil {
				return false
			}

			var body map[string]interface{}
			if err := json.Unmarshal(req.Body, &body); err != nil {
				return false
			}
			return body[name] == value
		},
		gen.Identifier(),
		gen.AlphaString(),
		gen.IntRange(1, 10000),
	))

	// Property: Declared-body operations forward only declared fields
	properties.Property("Declared bodies exclude undeclared fields", prop.ForAll(
		func(key string, projectID int) bool {
			name := "x_" + key
			args := Arguments{
				"project_id": float64(projectID),
				"name":       "Regression",
				name:         "ignored",
			}

			req, err := BuildRequest("https://rail.example.com", OpAddSuite, args)
			if err != nil {
				return false
			}

			var body map[string]interface{}
			if err := json.Unmarshal(req.Body, &body); err != nil {
				return false
			}

			if _, present := body[name]; present {
				return false
			}
			if _, present := body["project_id"]; present {
				return false
			}
			return body["name"] == "Regression"
		},
		gen.Identifier(),
		gen.IntRange(1, 10000),
	))

	properties.TestingRun(t)
}

// Feature: testrail-mcp-server, Property 5: Soft Delete Serialization
//
// For any delete operation that supports previews, the soft flag serializes
// as a numeric query parameter and never travels in the body.
func TestProperty5_SoftDeleteSerialization(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: The soft flag becomes soft=1 or soft=0
	properties.Property("Soft flag serializes as a numeric query parameter", prop.ForAll(
		func(op Operation, soft bool) bool {
			args := propertyRequiredArgs(op)
			args["soft"] = soft

			req, err := BuildRequest("https://rail.example.com", op, args)
			if err != nil {
				return false
			}

			if soft {
				return strings.Contains(req.URL, "&soft=1") && !strings.Contains(req.URL, "&soft=0")
			}
			return strings.Contains(req.URL, "&soft=0") && !strings.Contains(req.URL, "&soft=1")
		},
		genSoftDeleteOperation(),
		gen.Bool(),
	))

	// Property: The soft flag stays out of the body
	properties.Property("Soft flag never travels in the body", prop.ForAll(
		func(op Operation, soft bool) bool {
			args := propertyRequiredArgs(op)
			args["soft"] = soft

			req, err := BuildRequest("https://rail.example.com", op, args)
			if err != nil {
				return false
			}
			if !req.HasBody() {
				return true
			}

			var body map[string]interface{}
			if err := json.Unmarshal(req.Body, &body); err != nil {
				return false
			}
			_, present := body["soft"]
			return !present
		},
		genSoftDeleteOperation(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Feature: testrail-mcp-server, Property 6: Response Normalization
//
// For any JSON response, normalization preserves the decoded content while
// re-indenting it, and delete operations always answer with their fixed
// message unless a soft preview was requested.
func TestProperty6_ResponseNormalization(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: JSON object content survives formatting
	properties.Property("JSON bodies round-trip through formatting", prop.ForAll(
		func(key string, value int) bool {
			body := fmt.Sprintf(`{"%s":%d}`, key, value)

			got := NormalizeResponse(OpGetProject, Arguments{"project_id": float64(1)}, []byte(body))

			var decoded map[string]interface{}
			if err := json.Unmarshal([]byte(got), &decoded); err != nil {
				return false
			}
			want := map[string]interface{}{key: float64(value)}
			return reflect.DeepEqual(decoded, want)
		},
		gen.Identifier(),
		gen.IntRange(-1000000, 1000000),
	))

	// Property: Non-JSON bodies pass through trimmed
	properties.Property("Non-JSON bodies pass through trimmed", prop.ForAll(
		func(text string) bool {
			body := "note " + text + " \n"

			got := NormalizeResponse(OpGetProjects, Arguments{}, []byte(body))

			return got == strings.TrimSpace(body)
		},
		gen.AlphaString(),
	))

	// Property: Hard deletes answer with the fixed message
	properties.Property("Hard deletes always answer with the fixed message", prop.ForAll(
		func(op Operation, body string) bool {
			got := NormalizeResponse(op, propertyRequiredArgs(op), []byte(body))
			return got == fmt.Sprintf("Successfully executed %s.", op)
		},
		genSoftDeleteOperation(),
		gen.AlphaString(),
	))

	// Property: Soft delete previews preserve the remote JSON
	properties.Property("Soft delete previews preserve the remote JSON", prop.ForAll(
		func(count int) bool {
			args := Arguments{"suite_id": float64(3), "soft": true}
			body := fmt.Sprintf(`{"cases":%d}`, count)

			got := NormalizeResponse(OpDeleteSuite, args, []byte(body))

			var decoded map[string]interface{}
			if err := json.Unmarshal([]byte(got), &decoded); err != nil {
				return false
			}
			return decoded["cases"] == float64(count)
		},
		gen.IntRange(0, 100000),
	))

	properties.TestingRun(t)
}

// Feature: testrail-mcp-server, Property 7: Error Reporting
//
// For any remote failure or argument violation, the resulting error names
// everything the caller needs: the status and body of an API error, or every
// broken field of a validation error.
func TestProperty7_ErrorReporting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: API errors carry the status code and body
	properties.Property("API errors carry status and body", prop.ForAll(
		func(code int, body string) bool {
			err := NewAPIError(code, "Error", body)

			if !contains(err.Error(), strconv.Itoa(code)) {
				return false
			}
			if body != "" && !contains(err.Error(), body) {
				return false
			}
			return err.StatusCode == code && err.Body == body
		},
		gen.IntRange(400, 599),
		gen.AlphaString(),
	))

	// Property: Validation reports every broken field at once
	properties.Property("Validation errors name every broken field", prop.ForAll(
		func(bad string) bool {
			// suite_id has the wrong type and case_ids is missing entirely
			err := Validate(OpUpdateCases, Arguments{"suite_id": bad})
			if err == nil {
				return false
			}

			verr, ok := err.(*ValidationError)
			if !ok {
				return false
			}
			return verr.HasField("suite_id") && verr.HasField("case_ids") && len(verr.Issues) == 2
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
