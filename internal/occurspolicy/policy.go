// Package occurspolicy checks occurrence ranges against XSD particle rules.
package occurspolicy

import (
	"math/big"

	"github.com/jacoelho/multiplicity"
	xerrors "github.com/jacoelho/multiplicity/errors"
)

// BoundsIssue enumerates bounds issue values.
type BoundsIssue uint8

const (
	BoundsOK BoundsIssue = iota
	BoundsOverflow
	BoundsMaxZeroWithMinNonZero
	BoundsMinGreaterThanMax
)

// AllGroupIssue enumerates all group issue values.
type AllGroupIssue uint8

const (
	AllGroupOK AllGroupIssue = iota
	AllGroupMinNotZeroOrOne
	AllGroupMaxNotOne
)

// CheckBounds validates general minOccurs/maxOccurs consistency.
// Multiplicity accepts inverted pairs as given; this is where they are reported.
func CheckBounds(m *multiplicity.Multiplicity) BoundsIssue {
	upper := m.Max()
	if upper.IsZero() && m.Min().Sign() != 0 {
		return BoundsMaxZeroWithMinNonZero
	}
	if upper.Cmp(multiplicity.Finite(m.Min())) < 0 {
		return BoundsMinGreaterThanMax
	}
	return BoundsOK
}

// CheckLimit reports BoundsOverflow when a finite bound of m exceeds limit.
// A zero limit disables the check.
func CheckLimit(m *multiplicity.Multiplicity, limit uint64) BoundsIssue {
	if limit == 0 {
		return BoundsOK
	}
	ceiling := new(big.Int).SetUint64(limit)
	if m.Min().Cmp(ceiling) > 0 {
		return BoundsOverflow
	}
	if upper, ok := m.Max().Int(); ok && upper.Cmp(ceiling) > 0 {
		return BoundsOverflow
	}
	return BoundsOK
}

// CheckAllGroupBounds validates minOccurs/maxOccurs constraints for xs:all particles.
func CheckAllGroupBounds(m *multiplicity.Multiplicity) AllGroupIssue {
	lower := m.Min()
	if lower.Sign() != 0 && lower.Cmp(big.NewInt(1)) != 0 {
		return AllGroupMinNotZeroOrOne
	}
	if m.Max().CmpInt64(1) != 0 {
		return AllGroupMaxNotOne
	}
	return AllGroupOK
}

// IsAllGroupChildMaxValid reports whether an xs:all child maxOccurs is within the XSD 1.0 limit.
func IsAllGroupChildMaxValid(m *multiplicity.Multiplicity) bool {
	return m.IsAtMostOnce()
}

// RangeOK reports whether a derived particle's range is a valid restriction of base.
func RangeOK(base, derived *multiplicity.Multiplicity) bool {
	return base.Includes(derived)
}

// Code maps a bounds issue to its diagnostic code. BoundsOK maps to "".
func (i BoundsIssue) Code() xerrors.ErrorCode {
	switch i {
	case BoundsOverflow:
		return xerrors.ErrOccursOverflow
	case BoundsMaxZeroWithMinNonZero:
		return xerrors.ErrOccursMaxZero
	case BoundsMinGreaterThanMax:
		return xerrors.ErrOccursMinGreaterThanMax
	default:
		return ""
	}
}

func (i BoundsIssue) String() string {
	switch i {
	case BoundsOK:
		return "ok"
	case BoundsOverflow:
		return "occurrence bound exceeds limit"
	case BoundsMaxZeroWithMinNonZero:
		return "maxOccurs is 0 but minOccurs is not"
	case BoundsMinGreaterThanMax:
		return "minOccurs is greater than maxOccurs"
	default:
		return "unknown bounds issue"
	}
}

// Code maps an all group issue to its diagnostic code. AllGroupOK maps to "".
func (i AllGroupIssue) Code() xerrors.ErrorCode {
	if i == AllGroupOK {
		return ""
	}
	return xerrors.ErrAllGroupBounds
}

func (i AllGroupIssue) String() string {
	switch i {
	case AllGroupOK:
		return "ok"
	case AllGroupMinNotZeroOrOne:
		return "all group minOccurs must be 0 or 1"
	case AllGroupMaxNotOne:
		return "all group maxOccurs must be 1"
	default:
		return "unknown all group issue"
	}
}
