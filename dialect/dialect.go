package dialect

import (
	"strings"

	"github.com/recastml/recast/ir"
)

// Info identifies a target dialect.
type Info struct {
	// Name is the lookup key, lowercase.
	Name string
	// Extension is the output file suffix, dot included.
	Extension string
}

// Features declares which source constructs a target can express
// natively. The driver records an unsupported-feature warning when a
// construct falls outside them; the renderer still emits a visibly
// marked placeholder so output is never silently dropped.
type Features struct {
	Inheritance bool
	Partials    bool
	Filters     bool
	Macros      bool
	AsyncOutput bool
	RawOutput   bool
	Comments    bool
}

// Branch is one arm of a folded condition chain. Body text is already
// rendered.
type Branch struct {
	Kind ir.BranchKind
	Cond string
	Body string
}

// Validation is the result of a renderer's self-check over its own
// output. The check is pure: validating the same output twice yields the
// same result.
type Validation struct {
	Valid  bool
	Errors []string
}

// Renderer spells the dynamic constructs of one target dialect. Body,
// fallback, and chain arguments arrive fully rendered; implementations
// only frame them.
type Renderer interface {
	Info() Info
	Features() Features

	// Filters returns the filter vocabulary this target accepts, mapping
	// canonical names to the target-native spelling.
	Filters() FilterTable

	RenderLoop(loop ir.Loop, body string) string
	RenderCondition(chain []Branch) string
	RenderVariable(v ir.Variable) string
	RenderSlot(s ir.Slot, fallback string) string
	RenderInclude(inc ir.Include) string
	RenderBlock(b ir.Block, body string) string
	RenderExtends(b ir.Block) string
	RenderComment(text string) string

	// ApplyFilter spells one filter application over an already rendered
	// expression. Names outside the filter table spell as a verbatim
	// native call.
	ApplyFilter(expr, name string, args []string) string

	// Validate self-checks finished output for balanced construct
	// delimiters and leftover internal artifacts.
	Validate(output string) Validation
}

// NormalizeEquality rewrites strict comparison operators into the
// two-character forms every template dialect shares.
func NormalizeEquality(expr string) string {
	expr = strings.ReplaceAll(expr, "===", "==")

	return strings.ReplaceAll(expr, "!==", "!=")
}

// PropExpr splits an include-prop value into its text and whether it is
// dynamic. Dynamic props keep their {{ }} delimiters through analysis;
// everything else is a string literal.
func PropExpr(val string) (string, bool) {
	t := strings.TrimSpace(val)

	if strings.HasPrefix(t, "{{") && strings.HasSuffix(t, "}}") {
		return strings.TrimSpace(t[2 : len(t)-2]), true
	}

	return val, false
}

// BaseName returns the final path segment of a partial or layout
// reference: "partials/site-header" yields "site-header".
func BaseName(ref string) string {
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return ref[i+1:]
	}

	return ref
}
