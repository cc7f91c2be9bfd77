package persist

import (
	"strconv"
	"strings"

	"github.com/sarchlab/relaysim/relerr"
)

// parsedVersion is a split major.minor.patch, loosely parsed: missing or
// non-numeric trailing components default to 0 rather than failing,
// since spec §6.1 only requires a major-compatibility check.
type parsedVersion struct {
	major, minor, patch int
}

func parseVersion(s string) parsedVersion {
	parts := strings.SplitN(s, ".", 3)
	var v parsedVersion
	if len(parts) > 0 {
		v.major, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		v.minor, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		v.patch, _ = strconv.Atoi(parts[2])
	}
	return v
}

// checkVersionCompatible enforces spec §6.1's "major-compatible check on
// load": the document's major version must equal SchemaVersion's. No
// semver library is present anywhere in the pack (verified against every
// go.mod under _examples/), so this stays a small stdlib splitter rather
// than reaching outside the corpus for one; see DESIGN.md.
func checkVersionCompatible(docVersion string) error {
	if docVersion == "" {
		return relerr.NewLoadError("missing version field")
	}
	want := parseVersion(SchemaVersion)
	got := parseVersion(docVersion)
	if got.major != want.major {
		return relerr.NewLoadError("incompatible schema version " + docVersion + ", expected major version " + strconv.Itoa(want.major))
	}
	return nil
}
