package match

import "github.com/makersair/fhbridge/internal/domain"

// ResolveDirection assigns depart and return legs of a merged round trip.
//
// The two legs of a round trip are origin/destination mirror images, so
// geometry alone cannot tell which is which. FareHarbor delivers the return
// leg's webhook first: the stored (first-received) leg is the return flight
// and the leg that triggered the merge is the depart flight. Callers that
// cannot guarantee return-leg-first ordering get unreliable results.
func ResolveDirection(stored, current domain.ResolvedLeg) (depart, ret domain.ResolvedLeg) {
	return current, stored
}
