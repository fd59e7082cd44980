// internal/domain/notification/shared_types.go
package notification

// OutcomeKind identifies which notice a run produces.
type OutcomeKind string

const (
	OutcomeNormal         OutcomeKind = "NORMAL"          // Both windows have an assignment
	OutcomeMissingCurrent OutcomeKind = "MISSING_CURRENT" // Nothing scheduled in the current window
	OutcomeMissingNext    OutcomeKind = "MISSING_NEXT"    // Current is covered, next window is empty
)

// Missing reports whether the kind is a maintainer-only alert.
func (k OutcomeKind) Missing() bool {
	return k == OutcomeMissingCurrent || k == OutcomeMissingNext
}

// Mode controls how a composed notice leaves the process.
type Mode string

const (
	ModeLive   Mode = "LIVE"    // Deliver to the computed recipients
	ModeTest   Mode = "TEST"    // Deliver only to the override address
	ModeDryRun Mode = "DRY_RUN" // Print the body, deliver nothing
)

// ResolveMode picks the run mode from the command line switches. A dry run
// wins over a test address.
func ResolveMode(dryRun bool, testEmail string) Mode {
	switch {
	case dryRun:
		return ModeDryRun
	case testEmail != "":
		return ModeTest
	default:
		return ModeLive
	}
}
