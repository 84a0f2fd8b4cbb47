package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeArticleForm(t *testing.T) {
	t.Run("FrenchFieldNames", func(t *testing.T) {
		input := NormalizeArticleForm(map[string][]string{
			"titre":          {"Chaise en bois"},
			"categorie":      {"meubles"},
			"etat":           {"bon"},
			"localisation":   {"Tunis"},
			"prix":           {"25"},
			"souhaitEchange": {"table"},
		})

		assert.Equal(t, "Chaise en bois", input.Title)
		assert.Equal(t, "meubles", input.Category)
		assert.Equal(t, "bon", input.Condition)
		assert.Equal(t, "Tunis", input.Location)
		assert.Equal(t, "25", input.Price)
		assert.Equal(t, "table", input.ExchangeFor)
	})

	t.Run("EnglishAliases", func(t *testing.T) {
		input := NormalizeArticleForm(map[string][]string{
			"title":    {"Wooden chair"},
			"category": {"furniture"},
			"location": {"Sfax"},
		})

		assert.Equal(t, "Wooden chair", input.Title)
		assert.Equal(t, "furniture", input.Category)
		assert.Equal(t, "Sfax", input.Location)
	})

	t.Run("FrenchWinsOverEnglish", func(t *testing.T) {
		input := NormalizeArticleForm(map[string][]string{
			"titre": {"Chaise"},
			"title": {"Chair"},
		})

		assert.Equal(t, "Chaise", input.Title)
	})

	t.Run("UnknownFieldsIgnored", func(t *testing.T) {
		input := NormalizeArticleForm(map[string][]string{
			"titre":    {"Chaise"},
			"whatever": {"noise"},
		})

		assert.Equal(t, "Chaise", input.Title)
		assert.Empty(t, input.Category)
	})

	t.Run("EmptyValuesSkipped", func(t *testing.T) {
		input := NormalizeArticleForm(map[string][]string{
			"titre": {""},
			"title": {"Chair"},
		})

		assert.Equal(t, "Chair", input.Title)
	})

	t.Run("TypeAndStatusCarriedThrough", func(t *testing.T) {
		input := NormalizeArticleForm(map[string][]string{
			"type":   {"echanger"},
			"statut": {"sale"},
		})

		assert.Equal(t, "echanger", input.Type)
		assert.Equal(t, "sale", input.Status)
	})
}

func TestCreateDefiRequestCauseName(t *testing.T) {
	t.Run("LongFormWins", func(t *testing.T) {
		req := CreateDefiRequest{Cause: "Croissant Rouge", CauseAlias: "autre"}
		assert.Equal(t, "Croissant Rouge", req.CauseName())
	})

	t.Run("ShortFormFallback", func(t *testing.T) {
		req := CreateDefiRequest{CauseAlias: "Croissant Rouge"}
		assert.Equal(t, "Croissant Rouge", req.CauseName())
	})
}
