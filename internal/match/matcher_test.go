package match

import (
	"testing"
	"time"

	"github.com/makersair/fhbridge/internal/domain"
	"github.com/makersair/fhbridge/internal/fareharbor"
	"github.com/stretchr/testify/assert"
)

func candidates516() []domain.FlightCandidate {
	return []domain.FlightCandidate{
		{Identifier: 2001, Origin: "FXE", Destination: "COX", FlightDate: "2025-10-28T08:00:00-04:00", FlightNumber: "516"},
		{Identifier: 2002, Origin: "FXE", Destination: "COX", FlightDate: "2025-10-28T12:00:00-04:00", FlightNumber: "518"},
		{Identifier: 2003, Origin: "FXE", Destination: "COX", FlightDate: "2025-10-29T08:00:00-04:00", FlightNumber: "516"},
	}
}

func mustTime(t *testing.T, s string) time.Time {
	ts, err := fareharbor.ParseTimestamp(s)
	assert.NoError(t, err)
	return ts
}

func TestFind(t *testing.T) {
	date := mustTime(t, "2025-10-28T08:00:00-0400")

	c, ok := Find(candidates516(), date, "516")
	assert.True(t, ok)
	assert.Equal(t, int64(2001), c.Identifier)
}

func TestFind_NoMatch(t *testing.T) {
	date := mustTime(t, "2025-10-28T08:00:00-0400")

	_, ok := Find(candidates516(), date, "999")
	assert.False(t, ok)

	_, ok = Find(nil, date, "516")
	assert.False(t, ok)
}

func TestFind_WrongDate(t *testing.T) {
	date := mustTime(t, "2025-10-30T08:00:00-0400")

	_, ok := Find(candidates516(), date, "516")
	assert.False(t, ok)
}

func TestFind_NormalizesFlightNumber(t *testing.T) {
	date := mustTime(t, "2025-10-28T08:00:00-0400")
	list := []domain.FlightCandidate{
		{Identifier: 2001, FlightDate: "2025-10-28T08:00:00-04:00", FlightNumber: "0516"},
	}

	c, ok := Find(list, date, " 516 ")
	assert.True(t, ok)
	assert.Equal(t, int64(2001), c.Identifier)
}

func TestFind_MixedOffsetFormats(t *testing.T) {
	// FareHarbor sends -0400, the search API -04:00; both refer to the
	// same local date.
	date := mustTime(t, "2025-10-28T23:30:00-0400")
	list := []domain.FlightCandidate{
		{Identifier: 3001, FlightDate: "2025-10-28T23:30:00-04:00", FlightNumber: "101"},
	}

	c, ok := Find(list, date, "101")
	assert.True(t, ok)
	assert.Equal(t, int64(3001), c.Identifier)
}

func TestFind_FirstWinsOnDuplicates(t *testing.T) {
	date := mustTime(t, "2025-10-28T08:00:00-0400")
	list := []domain.FlightCandidate{
		{Identifier: 2001, FlightDate: "2025-10-28T08:00:00-04:00", FlightNumber: "516"},
		{Identifier: 2002, FlightDate: "2025-10-28T12:00:00-04:00", FlightNumber: "516"},
	}

	c, ok := Find(list, date, "516")
	assert.True(t, ok)
	assert.Equal(t, int64(2001), c.Identifier)
}

func TestFind_Deterministic(t *testing.T) {
	date := mustTime(t, "2025-10-28T08:00:00-0400")
	list := candidates516()

	first, ok := Find(list, date, "516")
	assert.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := Find(list, date, "516")
		assert.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestFind_SkipsUnparseableCandidateDates(t *testing.T) {
	date := mustTime(t, "2025-10-28T08:00:00-0400")
	list := []domain.FlightCandidate{
		{Identifier: 1, FlightDate: "garbage", FlightNumber: "516"},
		{Identifier: 2, FlightDate: "2025-10-28T08:00:00-04:00", FlightNumber: "516"},
	}

	c, ok := Find(list, date, "516")
	assert.True(t, ok)
	assert.Equal(t, int64(2), c.Identifier)
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "516", NormalizeNumber("0516"))
	assert.Equal(t, "516", NormalizeNumber(" 516 "))
	assert.Equal(t, "0", NormalizeNumber("000"))
	assert.Equal(t, "", NormalizeNumber(""))
	assert.Equal(t, "", NormalizeNumber("   "))
}
