// Package gate defines the messages screens emit when the signed-in
// state changes. The root model owns the mapping from these messages to
// screen transitions, so screens never need to construct each other
// across the login boundary.
package gate

// SignedInMsg is emitted after a successful sign-in.
type SignedInMsg struct{}

// SignedOutMsg is emitted after the user signs out.
type SignedOutMsg struct{}

// AssessmentDoneMsg is emitted when the first-time assessment result has
// been acknowledged.
type AssessmentDoneMsg struct{}
