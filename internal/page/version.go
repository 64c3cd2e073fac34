package page

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// CheckWidgetVersion gates requests from widget builds older than the
// configured minimum. Old widgets predate the structured context header and
// the add-retry contract, so letting them through produces confusing
// partial behavior.
//
// Missing versions pass: an empty minimum disables the gate, and an empty
// reported version means a pre-gate widget the merchant has chosen to keep
// serving. Non-semver strings on either side also pass rather than locking
// shoppers out on a malformed config.
func CheckWidgetVersion(got, min string) error {
	if min == "" || got == "" {
		return nil
	}

	gv := normalizeVersion(got)
	mv := normalizeVersion(min)
	if !semver.IsValid(gv) || !semver.IsValid(mv) {
		return nil
	}

	if semver.Compare(gv, mv) < 0 {
		return fmt.Errorf("widget version %s below minimum %s", got, min)
	}
	return nil
}

// normalizeVersion adds the "v" prefix semver parsing requires.
func normalizeVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
