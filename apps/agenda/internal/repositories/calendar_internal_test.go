package repositories

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesParamKeepsCommas(t *testing.T) {
	param, err := categoriesParam([]string{"Food, Drinks", "Fair"})
	require.Nil(t, err)
	assert.Equal(t, `["Food, Drinks","Fair"]`, param)

	var decoded []string
	require.Nil(t, json.Unmarshal([]byte(param), &decoded))
	assert.Equal(t, []string{"Food, Drinks", "Fair"}, decoded)
}

func TestCategoriesParamWithoutCategories(t *testing.T) {
	param, err := categoriesParam(nil)
	require.Nil(t, err)
	assert.Equal(t, "[]", param)
}
