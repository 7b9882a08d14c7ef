package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

func personalDraft(amount *float64) *models.Receipt {
	return &models.Receipt{
		ID:                  1,
		ProductionID:        1,
		UploaderID:          7,
		ExpenseType:         models.ExpenseTypePersonal,
		ReimbursementStatus: models.ReimbStatusDraft,
		Amount:              amount,
	}
}

func TestSubmitGuardEligible(t *testing.T) {
	amount := 42.50
	assert.NoError(t, submitGuard(personalDraft(&amount)))
}

func TestSubmitGuardRejectsMissingAmount(t *testing.T) {
	err := submitGuard(personalDraft(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount is required")
}

func TestSubmitGuardRejectsCompanyCard(t *testing.T) {
	amount := 42.50
	receipt := personalDraft(&amount)
	receipt.ExpenseType = models.ExpenseTypeCompanyCard
	receipt.ReimbursementStatus = models.ReimbStatusNotApplicable

	err := submitGuard(receipt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reimbursable")
}

func TestSubmitGuardRejectsNonDraft(t *testing.T) {
	amount := 42.50
	for _, status := range []string{
		models.ReimbStatusPending,
		models.ReimbStatusApproved,
		models.ReimbStatusChangesRequested,
		models.ReimbStatusRejected,
		models.ReimbStatusReimbursed,
	} {
		receipt := personalDraft(&amount)
		receipt.ReimbursementStatus = status

		err := submitGuard(receipt)
		require.Error(t, err, "status %s", status)
		assert.Contains(t, err.Error(), "only draft")
	}
}

func TestEditTransitionReturnsReviewedReceiptToDraft(t *testing.T) {
	amount := 10.00
	for _, status := range []string{
		models.ReimbStatusChangesRequested,
		models.ReimbStatusRejected,
	} {
		receipt := personalDraft(&amount)
		receipt.ReimbursementStatus = status

		next, clear, err := editTransition(receipt, models.ExpenseTypePersonal, nil, false)
		require.NoError(t, err)
		assert.Equal(t, models.ReimbStatusDraft, next)
		// Reason survives the edit so the form can still show it.
		assert.False(t, clear)
	}
}

func TestEditTransitionResubmitReentersPending(t *testing.T) {
	amount := 10.00
	receipt := personalDraft(&amount)
	receipt.ReimbursementStatus = models.ReimbStatusChangesRequested

	next, clear, err := editTransition(receipt, models.ExpenseTypePersonal, nil, true)
	require.NoError(t, err)
	assert.Equal(t, models.ReimbStatusPending, next)
	assert.True(t, clear)
}

func TestEditTransitionResubmitUsesEditedAmount(t *testing.T) {
	receipt := personalDraft(nil)
	newAmount := 18.25

	next, clear, err := editTransition(receipt, models.ExpenseTypePersonal, &newAmount, true)
	require.NoError(t, err)
	assert.Equal(t, models.ReimbStatusPending, next)
	assert.True(t, clear)
}

func TestEditTransitionResubmitRequiresAmount(t *testing.T) {
	_, _, err := editTransition(personalDraft(nil), models.ExpenseTypePersonal, nil, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount is required")
}

func TestEditTransitionResubmitRejectedWhileUnderReview(t *testing.T) {
	amount := 10.00
	receipt := personalDraft(&amount)
	receipt.ReimbursementStatus = models.ReimbStatusPending

	_, _, err := editTransition(receipt, models.ExpenseTypePersonal, nil, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only draft")
}

func TestEditTransitionCompanyCardForcesNotApplicable(t *testing.T) {
	amount := 10.00
	next, clear, err := editTransition(personalDraft(&amount), models.ExpenseTypeCompanyCard, nil, false)
	require.NoError(t, err)
	assert.Equal(t, models.ReimbStatusNotApplicable, next)
	assert.False(t, clear)
}

func TestEditTransitionCompanyCardCannotResubmit(t *testing.T) {
	amount := 10.00
	_, _, err := editTransition(personalDraft(&amount), models.ExpenseTypeCompanyCard, nil, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reimbursable")
}

func TestEditTransitionBackToPersonalReentersDraft(t *testing.T) {
	amount := 10.00
	receipt := personalDraft(&amount)
	receipt.ExpenseType = models.ExpenseTypeCompanyCard
	receipt.ReimbursementStatus = models.ReimbStatusNotApplicable

	next, _, err := editTransition(receipt, models.ExpenseTypePersonal, nil, false)
	require.NoError(t, err)
	assert.Equal(t, models.ReimbStatusDraft, next)
}

func TestEditTransitionPlainEditKeepsStatus(t *testing.T) {
	amount := 10.00
	for _, status := range []string{
		models.ReimbStatusDraft,
		models.ReimbStatusPending,
		models.ReimbStatusApproved,
		models.ReimbStatusReimbursed,
	} {
		receipt := personalDraft(&amount)
		receipt.ReimbursementStatus = status

		next, clear, err := editTransition(receipt, models.ExpenseTypePersonal, nil, false)
		require.NoError(t, err)
		assert.Equal(t, status, next, "status %s should survive a plain edit", status)
		assert.False(t, clear)
	}
}
