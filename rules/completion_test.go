package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCompletion(t *testing.T) {
	phys := PhysicalRule()
	fin := FinancialRule(1500)

	assert.True(t, phys.IsCompletion(100))
	assert.True(t, phys.IsCompletion(99.5), "rounds half up to 100")
	assert.False(t, phys.IsCompletion(99.4))

	assert.True(t, fin.IsCompletion(1500))
	assert.True(t, fin.IsCompletion(1499.99), "within tolerance of the ceiling")
	assert.False(t, fin.IsCompletion(1499.98))
	assert.False(t, fin.IsCompletion(1400))
}

func TestCheckCompletionRequiresFiles(t *testing.T) {
	phys := PhysicalRule()

	t.Run("completion without documents rejected", func(t *testing.T) {
		errs := phys.CheckCompletion(fptr(100), nil, false)
		require.False(t, errs.Valid())
		assert.Equal(t, MsgCompletionNeedsFiles, errs[FieldFiles])
	})

	t.Run("completion with a document passes", func(t *testing.T) {
		files := []FileRef{{Name: "handover.pdf", Size: 2048, MimeType: "application/pdf"}}
		errs := phys.CheckCompletion(fptr(100), files, false)
		assert.True(t, errs.Valid())
	})

	t.Run("non-completion values pass untouched", func(t *testing.T) {
		errs := phys.CheckCompletion(fptr(80), nil, false)
		assert.True(t, errs.Valid())
	})

	t.Run("nil proposed passes", func(t *testing.T) {
		errs := phys.CheckCompletion(nil, nil, false)
		assert.True(t, errs.Valid())
	})
}

func TestCheckCompletionFinancialNeedsBillNumber(t *testing.T) {
	fin := FinancialRule(1500)
	files := []FileRef{{Name: "final_bill.pdf", Size: 4096, MimeType: "application/pdf"}}

	t.Run("financial completion without bill number rejected", func(t *testing.T) {
		errs := fin.CheckCompletion(fptr(1500), files, false)
		require.False(t, errs.Valid())
		assert.Equal(t, MsgCompletionNeedsBillNumber, errs[FieldBillNumber])
	})

	t.Run("both files and bill number missing reports both", func(t *testing.T) {
		errs := fin.CheckCompletion(fptr(1500), nil, false)
		assert.Equal(t, MsgCompletionNeedsFiles, errs[FieldFiles])
		assert.Equal(t, MsgCompletionNeedsBillNumber, errs[FieldBillNumber])
	})

	t.Run("financial completion with evidence passes", func(t *testing.T) {
		errs := fin.CheckCompletion(fptr(1500), files, true)
		assert.True(t, errs.Valid())
	})

	t.Run("physical completion never asks for a bill number", func(t *testing.T) {
		phys := PhysicalRule()
		errs := phys.CheckCompletion(fptr(100), files, false)
		assert.True(t, errs.Valid())
	})
}
