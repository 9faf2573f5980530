package allocate

// IssueKind classifies a degraded-but-valid allocation outcome. None of
// these stop a run; they are reported on the match and counted in metrics.
type IssueKind string

const (
	// IssueUnfilledSlot: the slot target could not be reached because every
	// remaining candidate is at cap or unavailable.
	IssueUnfilledSlot IssueKind = "unfilled_slot"

	// IssueNoEligibleGoalkeeper: no candidate satisfies the goalkeeper cap.
	IssueNoEligibleGoalkeeper IssueKind = "no_eligible_goalkeeper"

	// IssueReserveChainSkipped: the exact-four condition was not met under
	// the strict configuration.
	IssueReserveChainSkipped IssueKind = "reserve_chain_skipped"
)

// Issue is one degraded outcome on a match.
type Issue struct {
	Kind   IssueKind
	Detail string
}
