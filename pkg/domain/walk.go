package domain

// WalkStatus is the state of a single realization walk.
type WalkStatus string

const (
	WalkWalking          WalkStatus = "walking"
	WalkSucceeded        WalkStatus = "succeeded"
	WalkFailedNoPath     WalkStatus = "failed_no_path"
	WalkFailedIncomplete WalkStatus = "failed_incomplete"
	// WalkRejected covers queries that never start walking (empty query,
	// missing start state).
	WalkRejected WalkStatus = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s WalkStatus) Terminal() bool {
	return s != WalkWalking
}
