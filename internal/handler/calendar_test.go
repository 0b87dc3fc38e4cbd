package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-events/internal/model"
	"github.com/iliyamo/campus-events/internal/repository"
)

func TestMergeCalendarOrdersByDate(t *testing.T) {
	d := func(day int) time.Time {
		return time.Date(2026, time.September, day, 18, 0, 0, 0, time.UTC)
	}
	tickets := []repository.CalendarTicket{
		{TicketID: 1, EventID: 10, EventName: "Concert", Location: "Main Hall", Date: d(5), Persons: 2},
		{TicketID: 2, EventID: 11, EventName: "Workshop", Location: "Lab 3", Date: d(1), Persons: 1},
	}
	personal := []model.PersonalEvent{
		{ID: 7, Name: "Dentist", Date: d(3)},
		{ID: 8, Name: "Study group", Date: d(5)},
	}

	got := MergeCalendar(tickets, personal)
	require.Len(t, got, 4)

	assert.Equal(t, "Workshop", got[0].Name)
	assert.Equal(t, "Dentist", got[1].Name)
	// Same date: the ticket entry sorts before the personal one.
	assert.Equal(t, "Concert", got[2].Name)
	assert.Equal(t, "Study group", got[3].Name)

	assert.Equal(t, "ticket", got[0].Kind)
	assert.Equal(t, uint64(2), got[0].TicketID)
	assert.Equal(t, "Lab 3", got[0].Location)
	assert.Equal(t, "personal", got[1].Kind)
	assert.Equal(t, uint64(7), got[1].PersonalID)
}

func TestMergeCalendarEmptyInputs(t *testing.T) {
	assert.Empty(t, MergeCalendar(nil, nil))

	onlyPersonal := MergeCalendar(nil, []model.PersonalEvent{{ID: 1, Name: "Gym", Date: time.Now()}})
	require.Len(t, onlyPersonal, 1)
	assert.Equal(t, "personal", onlyPersonal[0].Kind)

	onlyTickets := MergeCalendar([]repository.CalendarTicket{{TicketID: 9, EventName: "Expo", Date: time.Now()}}, nil)
	require.Len(t, onlyTickets, 1)
	assert.Equal(t, "ticket", onlyTickets[0].Kind)
}
