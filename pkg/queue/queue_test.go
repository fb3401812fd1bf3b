package queue

import (
	"testing"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mnoItem(id string) models.PaymentItem {
	return models.PaymentItem{
		ItemID:   id,
		Mode:     models.ModeWalletToMno,
		Mno:      &models.MnoPayout{PhoneNumber: "255700000001", Provider: "vodacom"},
		Amount:   decimal.NewFromInt(100),
		Currency: "TZS",
	}
}

func TestAdd(t *testing.T) {
	t.Run("Assigns Unique Ids", func(t *testing.T) {
		q := New()

		id1, err := q.Add(mnoItem(""))
		assert.NoError(t, err)
		id2, err := q.Add(mnoItem(""))
		assert.NoError(t, err)

		assert.NotEmpty(t, id1)
		assert.NotEmpty(t, id2)
		assert.NotEqual(t, id1, id2)
		assert.Equal(t, 2, q.Len())
	})

	t.Run("New Items Start Pending And Unvalidated", func(t *testing.T) {
		q := New()
		item := mnoItem("")
		item.Status = models.ItemSuccess
		item.Validated = true
		item.Error = "stale"

		id, err := q.Add(item)
		assert.NoError(t, err)

		added, ok := q.Get(id)
		assert.True(t, ok)
		assert.Equal(t, models.ItemPending, added.Status)
		assert.False(t, added.Validated)
		assert.Empty(t, added.Error)
	})

	t.Run("Rejects Duplicate Id", func(t *testing.T) {
		q := New()
		_, err := q.Add(mnoItem("A"))
		assert.NoError(t, err)
		_, err = q.Add(mnoItem("A"))
		assert.Error(t, err)
	})
}

func TestRemove(t *testing.T) {
	q := New()
	id1, _ := q.Add(mnoItem(""))
	id2, _ := q.Add(mnoItem(""))

	assert.NoError(t, q.Remove(id1))
	assert.Equal(t, 1, q.Len())
	assert.Error(t, q.Remove(id1))

	// A removed id is burned: fresh ids never collide with it.
	id3, _ := q.Add(mnoItem(""))
	assert.NotEqual(t, id1, id3)
	assert.NotEqual(t, id2, id3)
}

func TestSeal(t *testing.T) {
	q := New()
	id, _ := q.Add(mnoItem(""))
	q.Seal()

	_, err := q.Add(mnoItem(""))
	assert.ErrorIs(t, err, ErrQueueSealed)
	assert.ErrorIs(t, q.Remove(id), ErrQueueSealed)
	assert.ErrorIs(t, q.Update(mnoItem(id)), ErrQueueSealed)

	// Reads stay available while sealed.
	assert.Equal(t, 1, q.Len())

	q.Unseal()
	_, err = q.Add(mnoItem(""))
	assert.NoError(t, err)
}

func TestApplyValidation(t *testing.T) {
	// Validate 2 items where one fails: the failed one becomes Failed with the
	// stored error, the other stays Pending and validated.
	q := New()
	_, _ = q.Add(mnoItem("A"))
	_, _ = q.Add(mnoItem("B"))

	q.ApplyValidation([]models.ValidationResult{
		{ItemID: "A", IsValid: true, AccountName: "JOHN DOE"},
		{ItemID: "B", IsValid: false, Error: "invalid account"},
	})

	a, _ := q.Get("A")
	assert.True(t, a.Validated)
	assert.Equal(t, models.ItemPending, a.Status)
	assert.Equal(t, "JOHN DOE", a.AccountName)

	b, _ := q.Get("B")
	assert.True(t, b.Validated)
	assert.Equal(t, models.ItemFailed, b.Status)
	assert.Equal(t, "invalid account", b.Error)
}

func TestApplyResults(t *testing.T) {
	t.Run("Merges By Id Not Position", func(t *testing.T) {
		q := New()
		_, _ = q.Add(mnoItem("A"))
		_, _ = q.Add(mnoItem("B"))
		_, _ = q.Add(mnoItem("C"))

		// Results arrive in an order unrelated to submission order.
		q.ApplyResults([]models.ItemResult{
			{ItemID: "C", Status: models.ItemFailed, ErrorMessage: "insufficient float"},
			{ItemID: "A", Status: models.ItemSuccess},
		})

		a, _ := q.Get("A")
		assert.Equal(t, models.ItemSuccess, a.Status)
		b, _ := q.Get("B")
		assert.Equal(t, models.ItemPending, b.Status)
		c, _ := q.Get("C")
		assert.Equal(t, models.ItemFailed, c.Status)
		assert.Equal(t, "insufficient float", c.Error)
	})

	t.Run("Idempotent", func(t *testing.T) {
		q := New()
		_, _ = q.Add(mnoItem("A"))
		_, _ = q.Add(mnoItem("B"))

		results := []models.ItemResult{
			{ItemID: "A", Status: models.ItemSuccess},
			{ItemID: "B", Status: models.ItemFailed, ErrorMessage: "rejected"},
		}
		q.ApplyResults(results)
		once := q.Items()

		q.ApplyResults(results)
		twice := q.Items()

		assert.Equal(t, once, twice)
	})

	t.Run("Ignores Unknown Ids", func(t *testing.T) {
		q := New()
		_, _ = q.Add(mnoItem("A"))

		q.ApplyResults([]models.ItemResult{{ItemID: "ghost", Status: models.ItemSuccess}})

		a, _ := q.Get("A")
		assert.Equal(t, models.ItemPending, a.Status)
		assert.Equal(t, 1, q.Len())
	})
}

func TestUpdate(t *testing.T) {
	q := New()
	_, _ = q.Add(mnoItem("A"))
	q.ApplyValidation([]models.ValidationResult{{ItemID: "A", IsValid: true, AccountName: "JOHN DOE"}})

	// Editing resets validation state.
	edited := mnoItem("A")
	edited.Amount = decimal.NewFromInt(250)
	assert.NoError(t, q.Update(edited))

	a, _ := q.Get("A")
	assert.False(t, a.Validated)
	assert.Equal(t, models.ItemPending, a.Status)
	assert.True(t, a.Amount.Equal(decimal.NewFromInt(250)))

	assert.ErrorIs(t, q.Update(mnoItem("missing")), ErrItemNotFound)
}

func TestCompleteBatch(t *testing.T) {
	q := New()
	_, _ = q.Add(mnoItem("A"))
	_, _ = q.Add(mnoItem("B"))
	_, _ = q.Add(mnoItem("C"))
	q.Seal()
	q.ApplyResults([]models.ItemResult{
		{ItemID: "A", Status: models.ItemSuccess},
		{ItemID: "B", Status: models.ItemFailed, ErrorMessage: "recipient blocked"},
		{ItemID: "C", Status: models.ItemSuccess},
	})

	q.CompleteBatch()

	// Paid items are gone for good, the failed one stays for retry.
	assert.False(t, q.Sealed())
	assert.Equal(t, 1, q.Len())
	_, ok := q.Get("A")
	assert.False(t, ok)
	b, ok := q.Get("B")
	assert.True(t, ok)
	assert.Equal(t, models.ItemFailed, b.Status)

	// The queue is open for the next batch.
	_, err := q.Add(mnoItem("D"))
	assert.NoError(t, err)
}

func TestReset(t *testing.T) {
	q := New()
	id1, _ := q.Add(mnoItem(""))
	q.Seal()

	q.Reset()
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Sealed())

	// The id sequence survives a reset, so ids are session-unique.
	id2, err := q.Add(mnoItem(""))
	assert.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}
