package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// AgeSuite covers validation boundaries and the breakdown algorithm.
type AgeSuite struct {
	suite.Suite
}

func TestAgeSuite(t *testing.T) {
	suite.Run(t, new(AgeSuite))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *AgeSuite) TestValidate_Boundaries() {
	ref := date(2024, 6, 15)

	s.Run("zero birth is missing input", func() {
		s.ErrorIs(Validate(time.Time{}, ref), ErrMissingInput)
	})

	s.Run("one day after reference is in the future", func() {
		s.ErrorIs(Validate(ref.AddDate(0, 0, 1), ref), ErrFutureDate)
	})

	s.Run("same day is accepted", func() {
		s.NoError(Validate(ref, ref))
	})

	s.Run("exactly 150 years is accepted", func() {
		s.NoError(Validate(date(1874, 6, 15), ref))
	})

	s.Run("150 years and one day is too old", func() {
		s.ErrorIs(Validate(date(1874, 6, 14), ref), ErrTooOld)
	})
}

func (s *AgeSuite) TestValidate_KindsAreDistinct() {
	ref := date(2024, 6, 15)
	err := Validate(ref.AddDate(0, 0, 1), ref)

	s.NotErrorIs(err, ErrTooOld)
	s.NotErrorIs(err, ErrMissingInput)

	kind, ok := KindOf(err)
	s.True(ok)
	s.Equal(KindFutureDate, kind)
	s.Contains(err.Error(), "invalid birth date")
}

func (s *AgeSuite) TestValidate_LeapDayReference() {
	// 1874 is not a leap year: the lower bound normalizes to 1874-03-01.
	ref := date(2024, 2, 29)
	s.NoError(Validate(date(1874, 3, 1), ref))
	s.ErrorIs(Validate(date(1874, 2, 28), ref), ErrTooOld)
}

func (s *AgeSuite) TestComputeBreakdown_Scenarios() {
	tests := []struct {
		name                string
		birth, ref          time.Time
		years, months, days int
		totalDays           int64
	}{
		{"whole years across six leap days", date(2000, 1, 1), date(2024, 1, 1), 24, 0, 0, 8766},
		{"month borrow from april", date(2023, 3, 31), date(2023, 5, 1), 0, 1, 0, 31},
		{"same date", date(2024, 6, 15), date(2024, 6, 15), 0, 0, 0, 0},
		{"month and year borrow", date(1990, 12, 20), date(2024, 3, 5), 33, 2, 14, 12129},
		{"borrow uses reference february in a leap year", date(2023, 1, 29), date(2024, 3, 1), 1, 1, 1, 397},
		{"borrow uses reference february in a common year", date(2022, 1, 29), date(2023, 3, 1), 1, 1, 0, 396},
		{"31st against march 1st borrows twice in a leap year", date(2023, 1, 31), date(2024, 3, 1), 1, 0, 30, 395},
		{"31st against march 1st borrows twice in a common year", date(2022, 1, 31), date(2023, 3, 1), 1, 0, 29, 394},
		{"one day", date(2024, 12, 31), date(2025, 1, 1), 0, 0, 1, 1},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			b := ComputeBreakdown(tt.birth, tt.ref)
			s.Equal(tt.years, b.Years, "years")
			s.Equal(tt.months, b.Months, "months")
			s.Equal(tt.days, b.Days, "days")
			s.Equal(tt.totalDays, b.TotalDays, "total days")
		})
	}
}

func (s *AgeSuite) TestComputeBreakdown_TotalsAreProjections() {
	b := ComputeBreakdown(date(1985, 7, 13), date(2024, 11, 2))
	s.Equal(b.TotalDays*24, b.TotalHours)
	s.Equal(b.TotalDays*1440, b.TotalMinutes)
	s.Equal(b.TotalDays*86400, b.TotalSeconds)
}

func (s *AgeSuite) TestComputeBreakdown_PartialDayRoundsUp() {
	birth := date(2024, 1, 1)
	ref := time.Date(2024, 1, 3, 0, 0, 1, 0, time.UTC)
	s.Equal(int64(3), ComputeBreakdown(birth, ref).TotalDays)
}

func (s *AgeSuite) TestComputeBreakdown_DSTFallBackAddsADay() {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		s.T().Skipf("tzdata unavailable: %v", err)
	}
	birth := time.Date(2024, 6, 1, 0, 0, 0, 0, ny)
	ref := time.Date(2024, 12, 1, 0, 0, 0, 0, ny)

	b := ComputeBreakdown(birth, ref)

	s.Equal(0, b.Years)
	s.Equal(6, b.Months)
	s.Equal(0, b.Days)
	// 183 calendar days plus the hour gained on 2024-11-03.
	s.Equal(int64(184), b.TotalDays)
	s.Equal(b.TotalDays*24, b.TotalHours)
}

func (s *AgeSuite) TestComputeBreakdown_DaysCanExceedFebruary() {
	b := ComputeBreakdown(date(2023, 1, 31), date(2023, 3, 1))

	s.Equal(0, b.Years)
	s.Equal(0, b.Months)
	s.Equal(29, b.Days)
	s.Greater(b.Days, daysInMonthBefore(date(2023, 3, 1), 0))
	s.Equal(int64(29), b.TotalDays)
}

func (s *AgeSuite) TestComputeBreakdown_Invariants() {
	ref := date(2024, 3, 1)
	for birth := date(1874, 3, 1); !birth.After(ref); birth = birth.AddDate(0, 0, 97) {
		b := ComputeBreakdown(birth, ref)
		s.GreaterOrEqual(b.Years, 0)
		s.GreaterOrEqual(b.Months, 0)
		s.LessOrEqual(b.Months, 11)
		s.GreaterOrEqual(b.Days, 0)
		s.LessOrEqual(b.Days, 30)
		s.Equal(b.TotalDays*86400, b.TotalSeconds)
	}
}

func (s *AgeSuite) TestComputeBreakdown_Idempotent() {
	birth, ref := date(1999, 9, 9), date(2024, 4, 30)
	s.Equal(ComputeBreakdown(birth, ref), ComputeBreakdown(birth, ref))
}

func (s *AgeSuite) TestIsBirthday() {
	s.True(IsBirthday(date(1990, 6, 15), date(2024, 6, 15)))
	s.True(IsBirthday(date(2024, 6, 15), date(2024, 6, 15)))
	s.False(IsBirthday(date(1990, 6, 15), date(2024, 6, 16)))
	s.False(IsBirthday(date(2000, 2, 29), date(2025, 3, 1)))
}

func (s *AgeSuite) TestCalculate() {
	s.Run("valid input is fully populated", func() {
		res, err := Calculate(date(2024, 6, 15), date(2024, 6, 15))
		s.Require().NoError(err)
		s.True(res.IsBirthday)
		s.Equal(Breakdown{}, res.Breakdown)
		s.Len(res.Facts, 4)
	})

	s.Run("invalid input never computes", func() {
		res, err := Calculate(date(2030, 1, 1), date(2024, 6, 15))
		s.ErrorIs(err, ErrFutureDate)
		s.Equal(Result{}, res)
	})
}
