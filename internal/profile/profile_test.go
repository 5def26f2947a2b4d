package profile

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPeriod(t *testing.T) {
	now := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period Period
		want   FormattedPeriod
	}{
		{
			name:   "years and months",
			period: Period{StartDate: "2023-06-01", EndDate: "2025-06-01"},
			want:   FormattedPeriod{Start: "Jun 2023", End: "Jun 2025", Duration: "2 yrs"},
		},
		{
			name:   "month borrow",
			period: Period{StartDate: "2022-09-01", EndDate: "2023-05-01"},
			want:   FormattedPeriod{Start: "Sep 2022", End: "May 2023", Duration: "8 mos"},
		},
		{
			name:   "singular units",
			period: Period{StartDate: "2021-08-01", EndDate: "2022-09-01"},
			want:   FormattedPeriod{Start: "Aug 2021", End: "Sep 2022", Duration: "1 yr 1 mo"},
		},
		{
			name:   "present uses now",
			period: Period{StartDate: "2025-06-01", EndDate: Present},
			want:   FormattedPeriod{Start: "Jun 2025", End: "Present", Duration: "4 mos"},
		},
		{
			name:   "same month is empty",
			period: Period{StartDate: "2025-10-01", EndDate: Present},
			want:   FormattedPeriod{Start: "Oct 2025", End: "Present", Duration: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatPeriod(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPeriodInvalidDate(t *testing.T) {
	_, err := FormatPeriod(Period{StartDate: "June 2023", EndDate: Present}, time.Now())
	assert.Error(t, err)

	_, err = FormatPeriod(Period{StartDate: "2023-06-01", EndDate: "later"}, time.Now())
	assert.Error(t, err)
}

func TestFormatExperiences(t *testing.T) {
	now := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	got, err := FormatExperiences(Experiences, now)
	require.NoError(t, err)
	require.Len(t, got, len(Experiences))

	wedevx := got[1]
	assert.Equal(t, "WEDEVX", wedevx.Company)
	assert.Equal(t, "2 yrs", wedevx.Duration.Duration)
	require.Len(t, wedevx.Positions, 3)
	assert.Equal(t, "4 mos", wedevx.Positions[0].Period.Duration)
	assert.Contains(t, string(wedevx.Positions[1].Description), "<br")
	assert.Equal(t, "Software Development Engineer II", wedevx.Positions[1].Title)
}

func TestVisibleProjects(t *testing.T) {
	assert.Len(t, VisibleProjects(Projects, false), DefaultProjectsCount)
	assert.Len(t, VisibleProjects(Projects, true), len(Projects))
	assert.True(t, HasMoreProjects(Projects))

	few := Projects[:1]
	assert.Len(t, VisibleProjects(few, false), 1)
	assert.False(t, HasMoreProjects(few))
}

func TestLogoIDsAreOneBased(t *testing.T) {
	for i, l := range Logos {
		assert.Equal(t, i+1, l.ID)
	}
}

func TestDistributeLogos(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))

	logos := Logos[:7]
	cols := DistributeLogos(logos, 3, rnd)

	require.Len(t, cols, 3)
	seen := map[int]bool{}
	for _, col := range cols {
		assert.Len(t, col, 3, "columns are padded to the longest")
		for _, l := range col {
			seen[l.ID] = true
		}
	}
	for _, l := range logos {
		assert.True(t, seen[l.ID], "logo %s is dealt to a column", l.Name)
	}
	assert.Equal(t, "Typescript", Logos[0].Name, "input is not reordered")
}

func TestDistributeLogosEdgeCases(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	assert.Nil(t, DistributeLogos(Logos, 0, rnd))
	assert.Nil(t, DistributeLogos(nil, 3, rnd))

	cols := DistributeLogos(Logos[:2], 4, rnd)
	require.Len(t, cols, 4)
	for _, col := range cols {
		assert.Len(t, col, 1)
	}
}

func TestSiteEmailAddress(t *testing.T) {
	assert.Equal(t, "sherbolotarbaev@gmail.com", Owner.EmailAddress())
}
