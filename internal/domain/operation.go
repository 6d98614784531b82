package domain

import "net/http"

// Operation identifies one remote TestRail action. It doubles as the
// discriminant field of the combined tools and as the canonical verb segment
// of the remote URL (e.g. add_section -> .../index.php?/api/v2/add_section).
type Operation string

// Family groups operations by the remote entity type they manage.
type Family string

// Resource families exposed by the server.
const (
	FamilyProjects Family = "projects"
	FamilySuites   Family = "suites"
	FamilySections Family = "sections"
	FamilyCases    Family = "cases"
)

// Project operations.
const (
	OpGetProjects   Operation = "get_projects"
	OpGetProject    Operation = "get_project"
	OpAddProject    Operation = "add_project"
	OpUpdateProject Operation = "update_project"
	OpDeleteProject Operation = "delete_project"
)

// Suite operations.
const (
	OpGetSuite    Operation = "get_suite"
	OpGetSuites   Operation = "get_suites"
	OpAddSuite    Operation = "add_suite"
	OpUpdateSuite Operation = "update_suite"
	OpDeleteSuite Operation = "delete_suite"
)

// Section operations.
const (
	OpGetSection    Operation = "get_section"
	OpGetSections   Operation = "get_sections"
	OpAddSection    Operation = "add_section"
	OpUpdateSection Operation = "update_section"
	OpDeleteSection Operation = "delete_section"
	OpMoveSection   Operation = "move_section"
)

// Case operations.
const (
	OpGetCase            Operation = "get_case"
	OpGetCases           Operation = "get_cases"
	OpGetHistoryForCase  Operation = "get_history_for_case"
	OpAddCase            Operation = "add_case"
	OpUpdateCase         Operation = "update_case"
	OpUpdateCases        Operation = "update_cases"
	OpCopyCasesToSection Operation = "copy_cases_to_section"
	OpMoveCasesToSection Operation = "move_cases_to_section"
	OpDeleteCase         Operation = "delete_case"
	OpDeleteCases        Operation = "delete_cases"
)

// String returns the operation verb.
func (op Operation) String() string {
	return string(op)
}

// FieldKind classifies an argument field for base shape validation and for
// the declared tool schema.
type FieldKind int

// Argument field kinds.
const (
	KindID         FieldKind = iota // positive integer
	KindNullableID                  // positive integer, or explicit null on operations that allow it
	KindName                        // non-empty string
	KindText                        // free-form string
	KindBool                        // boolean
	KindLimit                       // positive integer
	KindOffset                      // non-negative integer
	KindSuiteMode                   // integer between 1 and 3
	KindIDList                      // non-empty array of positive integers
	KindStepList                    // array of objects, forwarded opaquely
)

// Field describes one argument a family's operations accept.
type Field struct {
	Name        string
	Kind        FieldKind
	Description string
}

// familyFields lists every argument each family accepts, in the order the
// combined tool schema declares them. The same name can carry a different
// description per family.
var familyFields = map[Family][]Field{
	FamilyProjects: {
		{Name: "project_id", Kind: KindID, Description: "The ID of the project"},
		{Name: "name", Kind: KindName, Description: "The name of the project"},
		{Name: "announcement", Kind: KindText, Description: "The description or announcement of the project"},
		{Name: "show_announcement", Kind: KindBool, Description: "Whether the announcement is shown on the project overview page"},
		{Name: "suite_mode", Kind: KindSuiteMode, Description: "The suite mode of the project (1 = single suite, 2 = single suite with baselines, 3 = multiple suites)"},
		{Name: "is_completed", Kind: KindBool, Description: "Whether the project is marked as completed"},
		{Name: "limit", Kind: KindLimit, Description: "The maximum number of entries to return"},
		{Name: "offset", Kind: KindOffset, Description: "The number of entries to skip"},
	},
	FamilySuites: {
		{Name: "suite_id", Kind: KindID, Description: "The ID of the test suite"},
		{Name: "project_id", Kind: KindID, Description: "The ID of the project the suite belongs to"},
		{Name: "name", Kind: KindName, Description: "The name of the test suite"},
		{Name: "description", Kind: KindText, Description: "The description of the test suite"},
		{Name: "soft", Kind: KindBool, Description: "If true, a delete returns a preview of the affected data instead of deleting"},
	},
	FamilySections: {
		{Name: "section_id", Kind: KindID, Description: "The ID of the section"},
		{Name: "project_id", Kind: KindID, Description: "The ID of the project the section belongs to"},
		{Name: "suite_id", Kind: KindID, Description: "The ID of the test suite (required for projects in multi-suite mode)"},
		{Name: "name", Kind: KindName, Description: "The name of the section"},
		{Name: "description", Kind: KindText, Description: "The description of the section"},
		{Name: "parent_id", Kind: KindNullableID, Description: "The ID of the parent section (null moves the section to the root level)"},
		{Name: "after_id", Kind: KindNullableID, Description: "The ID of the section to position this section after (null moves it to the first position)"},
		{Name: "limit", Kind: KindLimit, Description: "The maximum number of entries to return"},
		{Name: "offset", Kind: KindOffset, Description: "The number of entries to skip"},
		{Name: "soft", Kind: KindBool, Description: "If true, a delete returns a preview of the affected data instead of deleting"},
	},
	FamilyCases: {
		{Name: "case_id", Kind: KindID, Description: "The ID of the test case"},
		{Name: "project_id", Kind: KindID, Description: "The ID of the project the cases belong to"},
		{Name: "section_id", Kind: KindID, Description: "The ID of the section"},
		{Name: "suite_id", Kind: KindID, Description: "The ID of the test suite"},
		{Name: "title", Kind: KindName, Description: "The title of the test case"},
		{Name: "template_id", Kind: KindID, Description: "The ID of the template (field layout)"},
		{Name: "type_id", Kind: KindID, Description: "The ID of the case type"},
		{Name: "priority_id", Kind: KindID, Description: "The ID of the case priority"},
		{Name: "milestone_id", Kind: KindID, Description: "The ID of the milestone to link the case to"},
		{Name: "estimate", Kind: KindText, Description: "The estimate, e.g. \"30s\" or \"1m 45s\""},
		{Name: "refs", Kind: KindText, Description: "A comma-separated list of references or requirements"},
		{Name: "custom_preconds", Kind: KindText, Description: "The preconditions of the test case"},
		{Name: "custom_steps", Kind: KindText, Description: "The steps of the test case as plain text"},
		{Name: "custom_expected", Kind: KindText, Description: "The expected result of the test case"},
		{Name: "custom_steps_separated", Kind: KindStepList, Description: "The steps of the test case as a list of objects with content and expected fields"},
		{Name: "case_ids", Kind: KindIDList, Description: "The IDs of the test cases the operation applies to"},
		{Name: "filter", Kind: KindText, Description: "Only return cases whose title matches this filter string"},
		{Name: "limit", Kind: KindLimit, Description: "The maximum number of entries to return"},
		{Name: "offset", Kind: KindOffset, Description: "The number of entries to skip"},
		{Name: "soft", Kind: KindBool, Description: "If true, a delete returns a preview of the affected data instead of deleting"},
	},
}

// FamilyFields returns the family's argument fields in declaration order.
func FamilyFields(f Family) []Field {
	return familyFields[f]
}

// FieldByName returns the named field within a family's catalog.
func FieldByName(f Family, name string) (Field, bool) {
	for _, field := range familyFields[f] {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// OpSpec describes how one operation maps onto the remote API: the HTTP
// method, which argument becomes the positional URL id, which arguments must
// be present, which are serialized as query filters, and how the JSON body is
// assembled from the remaining arguments.
type OpSpec struct {
	Family   Family
	Summary  string
	Method   string
	PathArg  string   // argument consumed as the positional URL id, "" for collection-level operations
	Required []string // arguments that must be present for this operation
	Optional []string // arguments this operation accepts beyond the required ones
	Query    []string // optional filters serialized into the query string when present

	// Body assembly. Passthrough forwards every argument except operation and
	// PathArg; otherwise only BodyFields are forwarded. Nullable names body
	// fields where an explicit null is preserved rather than dropped.
	Passthrough bool
	BodyFields  []string
	Nullable    []string

	Soft   bool // accepts the soft flag, serialized as soft=1/0 in the query
	Delete bool // member of the delete family for response normalization
}

// familyOperations preserves the declaration order of each family's
// operations for tool registration.
var familyOperations = map[Family][]Operation{
	FamilyProjects: {OpGetProjects, OpGetProject, OpAddProject, OpUpdateProject, OpDeleteProject},
	FamilySuites:   {OpGetSuite, OpGetSuites, OpAddSuite, OpUpdateSuite, OpDeleteSuite},
	FamilySections: {OpGetSection, OpGetSections, OpAddSection, OpUpdateSection, OpDeleteSection, OpMoveSection},
	FamilyCases: {
		OpGetCase, OpGetCases, OpGetHistoryForCase, OpAddCase, OpUpdateCase,
		OpUpdateCases, OpCopyCasesToSection, OpMoveCasesToSection, OpDeleteCase, OpDeleteCases,
	},
}

// FamilyOperations returns the family's operations in declaration order.
func FamilyOperations(f Family) []Operation {
	return familyOperations[f]
}

// Families returns all resource families in declaration order.
func Families() []Family {
	return []Family{FamilyProjects, FamilySuites, FamilySections, FamilyCases}
}

var operations = map[Operation]OpSpec{
	OpGetProjects: {
		Family:   FamilyProjects,
		Summary:  "Retrieve all projects",
		Method:   http.MethodGet,
		Optional: []string{"is_completed", "limit", "offset"},
		Query:    []string{"is_completed", "limit", "offset"},
	},
	OpGetProject: {
		Family:   FamilyProjects,
		Summary:  "Retrieve a project by its ID",
		Method:   http.MethodGet,
		PathArg:  "project_id",
		Required: []string{"project_id"},
	},
	OpAddProject: {
		Family:     FamilyProjects,
		Summary:    "Create a new project",
		Method:     http.MethodPost,
		Required:   []string{"name"},
		Optional:   []string{"announcement", "show_announcement", "suite_mode"},
		BodyFields: []string{"name", "announcement", "show_announcement", "suite_mode"},
	},
	OpUpdateProject: {
		Family:     FamilyProjects,
		Summary:    "Update an existing project",
		Method:     http.MethodPost,
		PathArg:    "project_id",
		Required:   []string{"project_id"},
		Optional:   []string{"name", "announcement", "show_announcement", "is_completed"},
		BodyFields: []string{"name", "announcement", "show_announcement", "is_completed"},
	},
	OpDeleteProject: {
		Family:   FamilyProjects,
		Summary:  "Delete a project (cannot be undone)",
		Method:   http.MethodPost,
		PathArg:  "project_id",
		Required: []string{"project_id"},
		Delete:   true,
	},

	OpGetSuite: {
		Family:   FamilySuites,
		Summary:  "Retrieve a test suite by its ID",
		Method:   http.MethodGet,
		PathArg:  "suite_id",
		Required: []string{"suite_id"},
	},
	OpGetSuites: {
		Family:   FamilySuites,
		Summary:  "Retrieve all test suites of a project",
		Method:   http.MethodGet,
		PathArg:  "project_id",
		Required: []string{"project_id"},
	},
	OpAddSuite: {
		Family:     FamilySuites,
		Summary:    "Create a new test suite in a project",
		Method:     http.MethodPost,
		PathArg:    "project_id",
		Required:   []string{"project_id", "name"},
		Optional:   []string{"description"},
		BodyFields: []string{"name", "description"},
	},
	OpUpdateSuite: {
		Family:     FamilySuites,
		Summary:    "Update an existing test suite",
		Method:     http.MethodPost,
		PathArg:    "suite_id",
		Required:   []string{"suite_id"},
		Optional:   []string{"name", "description"},
		BodyFields: []string{"name", "description"},
	},
	OpDeleteSuite: {
		Family:   FamilySuites,
		Summary:  "Delete a test suite, or preview the deletion with soft=true",
		Method:   http.MethodPost,
		PathArg:  "suite_id",
		Required: []string{"suite_id"},
		Optional: []string{"soft"},
		Soft:     true,
		Delete:   true,
	},

	OpGetSection: {
		Family:   FamilySections,
		Summary:  "Retrieve a section by its ID",
		Method:   http.MethodGet,
		PathArg:  "section_id",
		Required: []string{"section_id"},
	},
	OpGetSections: {
		Family:   FamilySections,
		Summary:  "Retrieve the sections of a project, optionally filtered by suite",
		Method:   http.MethodGet,
		PathArg:  "project_id",
		Required: []string{"project_id"},
		Optional: []string{"suite_id", "limit", "offset"},
		Query:    []string{"suite_id", "limit", "offset"},
	},
	OpAddSection: {
		Family:     FamilySections,
		Summary:    "Create a new section in a project",
		Method:     http.MethodPost,
		PathArg:    "project_id",
		Required:   []string{"project_id", "name"},
		Optional:   []string{"description", "suite_id", "parent_id"},
		BodyFields: []string{"name", "description", "suite_id", "parent_id"},
	},
	OpUpdateSection: {
		Family:     FamilySections,
		Summary:    "Update the name or description of a section",
		Method:     http.MethodPost,
		PathArg:    "section_id",
		Required:   []string{"section_id"},
		Optional:   []string{"name", "description"},
		BodyFields: []string{"name", "description"},
	},
	OpDeleteSection: {
		Family:   FamilySections,
		Summary:  "Delete a section, or preview the deletion with soft=true",
		Method:   http.MethodPost,
		PathArg:  "section_id",
		Required: []string{"section_id"},
		Optional: []string{"soft"},
		Soft:     true,
		Delete:   true,
	},
	OpMoveSection: {
		Family:     FamilySections,
		Summary:    "Move a section to another parent or position (null parent_id moves it to the root)",
		Method:     http.MethodPost,
		PathArg:    "section_id",
		Required:   []string{"section_id"},
		Optional:   []string{"parent_id", "after_id"},
		BodyFields: []string{"parent_id", "after_id"},
		Nullable:   []string{"parent_id", "after_id"},
	},

	OpGetCase: {
		Family:   FamilyCases,
		Summary:  "Retrieve a test case by its ID",
		Method:   http.MethodGet,
		PathArg:  "case_id",
		Required: []string{"case_id"},
	},
	OpGetCases: {
		Family:   FamilyCases,
		Summary:  "Retrieve the test cases of a project, with optional filters",
		Method:   http.MethodGet,
		PathArg:  "project_id",
		Required: []string{"project_id"},
		Optional: []string{"suite_id", "section_id", "priority_id", "filter", "limit", "offset"},
		Query:    []string{"suite_id", "section_id", "priority_id", "filter", "limit", "offset"},
	},
	OpGetHistoryForCase: {
		Family:   FamilyCases,
		Summary:  "Retrieve the edit history of a test case",
		Method:   http.MethodGet,
		PathArg:  "case_id",
		Required: []string{"case_id"},
		Optional: []string{"limit", "offset"},
		Query:    []string{"limit", "offset"},
	},
	OpAddCase: {
		Family:   FamilyCases,
		Summary:  "Create a new test case in a section",
		Method:   http.MethodPost,
		PathArg:  "section_id",
		Required: []string{"section_id", "title"},
		Optional: []string{
			"template_id", "type_id", "priority_id", "milestone_id", "estimate", "refs",
			"custom_preconds", "custom_steps", "custom_expected", "custom_steps_separated",
		},
		Passthrough: true,
	},
	OpUpdateCase: {
		Family:   FamilyCases,
		Summary:  "Update an existing test case",
		Method:   http.MethodPost,
		PathArg:  "case_id",
		Required: []string{"case_id"},
		Optional: []string{
			"title", "template_id", "type_id", "priority_id", "milestone_id", "estimate", "refs",
			"custom_preconds", "custom_steps", "custom_expected", "custom_steps_separated",
		},
		Passthrough: true,
	},
	OpUpdateCases: {
		Family:   FamilyCases,
		Summary:  "Update multiple test cases of a suite with the same values",
		Method:   http.MethodPost,
		PathArg:  "suite_id",
		Required: []string{"suite_id", "case_ids"},
		Optional: []string{
			"title", "template_id", "type_id", "priority_id", "milestone_id", "estimate", "refs",
			"custom_preconds", "custom_steps", "custom_expected", "custom_steps_separated",
		},
		Passthrough: true,
	},
	OpCopyCasesToSection: {
		Family:     FamilyCases,
		Summary:    "Copy test cases to another section",
		Method:     http.MethodPost,
		PathArg:    "section_id",
		Required:   []string{"section_id", "case_ids"},
		BodyFields: []string{"case_ids"},
	},
	OpMoveCasesToSection: {
		Family:     FamilyCases,
		Summary:    "Move test cases to another section",
		Method:     http.MethodPost,
		PathArg:    "section_id",
		Required:   []string{"section_id", "case_ids"},
		Optional:   []string{"suite_id"},
		BodyFields: []string{"suite_id", "case_ids"},
	},
	OpDeleteCase: {
		Family:   FamilyCases,
		Summary:  "Delete a test case, or preview the deletion with soft=true",
		Method:   http.MethodPost,
		PathArg:  "case_id",
		Required: []string{"case_id"},
		Optional: []string{"soft"},
		Soft:     true,
		Delete:   true,
	},
	OpDeleteCases: {
		Family:     FamilyCases,
		Summary:    "Delete multiple test cases of a suite, or preview the deletion with soft=true",
		Method:     http.MethodPost,
		PathArg:    "suite_id",
		Required:   []string{"suite_id", "case_ids"},
		Optional:   []string{"soft"},
		BodyFields: []string{"case_ids"},
		Soft:       true,
		Delete:     true,
	},
}

// Lookup returns the OpSpec for an operation.
func Lookup(op Operation) (OpSpec, bool) {
	spec, ok := operations[op]
	return spec, ok
}

// FamilyOf returns the resource family an operation belongs to.
// The second return value is false for unknown operations.
func FamilyOf(op Operation) (Family, bool) {
	spec, ok := operations[op]
	return spec.Family, ok
}
