package model

import "fmt"

// Kind identifies which submission table an approval targets.
type Kind string

const (
	KindDonor Kind = "donor"
	KindNeedy Kind = "needy"
)

// ParseKind accepts exactly "donor" or "needy".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDonor, KindNeedy:
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid user type %q", s)
}

// ApprovalRow is one row of the aggregated approval queue. Columns are
// whatever get_all_approvals() returns.
type ApprovalRow map[string]any
