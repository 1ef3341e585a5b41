package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService(t *testing.T) {
	catalog, err := NewCatalogService()
	require.NoError(t, err)

	t.Run("LoadsEmbeddedLanguages", func(t *testing.T) {
		en := catalog.LabelsFor("en")
		de := catalog.LabelsFor("de")
		assert.Equal(t, "Payslip", en["payslip"])
		assert.Equal(t, "Gehaltsabrechnung", de["payslip"])
		assert.Equal(t, "Kontoauszug", de["bank_statement"])
	})

	t.Run("FallsBackToEnglish", func(t *testing.T) {
		fr := catalog.LabelsFor("fr")
		assert.Equal(t, "Payslip", fr["payslip"])
	})

	t.Run("CatalogsCoverTheSameKeys", func(t *testing.T) {
		en := catalog.LabelsFor("en")
		de := catalog.LabelsFor("de")
		require.Equal(t, len(en), len(de))
		for key := range en {
			assert.Contains(t, de, key)
		}
	})
}
