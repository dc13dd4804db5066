package analyze

// KnownGlobals is the closed list of identifiers never reported as free
// variables: host-environment globals and framework intrinsics that every
// target dialect is expected to provide (or that have no data-binding
// meaning).
var KnownGlobals = []string{
	"children",
	"props",
	"this",
	"loop",
	"Math",
	"JSON",
	"Date",
	"Object",
	"Array",
	"String",
	"Number",
	"Boolean",
	"parseInt",
	"parseFloat",
	"window",
	"document",
	"console",
	"undefined",
	"null",
	"true",
	"false",
}

// isKnownGlobal reports whether name is on the [KnownGlobals] list.
func isKnownGlobal(name string) bool {
	for _, g := range KnownGlobals {
		if name == g {
			return true
		}
	}

	return false
}
