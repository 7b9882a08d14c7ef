package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTakeStatus(t *testing.T) {
	for _, status := range []string{
		TakeStatusOK, TakeStatusPrint, TakeStatusCircled, TakeStatusHold,
		TakeStatusNG, TakeStatusWild, TakeStatusMOS, TakeStatusFalseStart,
	} {
		assert.True(t, ValidTakeStatus(status), status)
	}

	assert.False(t, ValidTakeStatus(""))
	assert.False(t, ValidTakeStatus("great"))
	assert.False(t, ValidTakeStatus("OK"), "statuses are lowercase")
}

func TestValidProjectStatus(t *testing.T) {
	for _, status := range []string{
		ProjectStatusPending, ProjectStatusApproved, ProjectStatusShortlisted,
		ProjectStatusRejected, ProjectStatusFlagged,
	} {
		assert.True(t, ValidProjectStatus(status), status)
	}

	assert.False(t, ValidProjectStatus(""))
	assert.False(t, ValidProjectStatus("winner"))
}

func TestReceiptMapped(t *testing.T) {
	receipt := &Receipt{}
	assert.False(t, receipt.Mapped())

	lineID := 4
	receipt.BudgetLineID = &lineID
	assert.True(t, receipt.Mapped())
}

func TestVotingTicketRemaining(t *testing.T) {
	tests := []struct {
		name      string
		allowance int
		used      int
		expected  int
	}{
		{name: "untouched", allowance: 10, used: 0, expected: 10},
		{name: "partially spent", allowance: 10, used: 3, expected: 7},
		{name: "exhausted", allowance: 10, used: 10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &VotingTicket{Allowance: tt.allowance, Used: tt.used}
			assert.Equal(t, tt.expected, ticket.Remaining())
		})
	}
}
