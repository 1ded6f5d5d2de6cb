package catalog

import (
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
)

// Kind tags which catalog table a Ref points at. The string tag is branched
// on exactly once, inside Resolve; everything downstream carries the typed Ref.
type Kind string

const (
	KindTrip   Kind = "trip"
	KindTravel Kind = "travel"
)

var ErrUnknownKind = apperr.Validation("unknown catalog type")

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTrip, KindTravel:
		return Kind(s), nil
	}
	return "", ErrUnknownKind
}

// MaxPartySize is the largest party a single booking of this kind may carry.
func (k Kind) MaxPartySize() int {
	if k == KindTravel {
		return 10
	}
	return 50
}

// Ref identifies a bookable item without a typed foreign key: the same
// booking row must be able to point at either catalog table.
type Ref struct {
	Kind Kind
	ID   int
}
