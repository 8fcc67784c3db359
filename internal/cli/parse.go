package cli

import (
	"regexp"

	"github.com/matzehuels/crategraph/pkg/depgraph"
	"github.com/matzehuels/crategraph/pkg/errors"
)

// crateNamePattern matches valid crates.io package names.
var crateNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// parseCrateSpec parses a "name" or "name@version" argument into a PackageID.
func parseCrateSpec(spec string) (depgraph.PackageID, error) {
	id, err := depgraph.ParsePackageID(spec)
	if err != nil {
		return depgraph.PackageID{}, errors.Wrap(errors.ErrCodeInvalidPackage, err, "invalid crate spec %q", spec)
	}
	if !crateNamePattern.MatchString(id.Name) {
		return depgraph.PackageID{}, errors.New(errors.ErrCodeInvalidPackage, "invalid crate name %q", id.Name)
	}
	return id, nil
}
