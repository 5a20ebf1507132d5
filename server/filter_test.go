package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	databridge "github.com/opendatakr/databridge"
)

func TestApplyFilterEmptyWhitelistReturnsAllFields(t *testing.T) {
	items := []map[string]string{
		{"title": "Gyeongbokgung", "contentid": "264337", "addr1": "Seoul"},
	}

	assert.Equal(t, items, applyFilter(items, nil))
	assert.Equal(t, items, applyFilter(items, []string{}))
}

func TestApplyFilterKeepsOnlyWhitelistedFields(t *testing.T) {
	items := []map[string]string{
		{"title": "Gyeongbokgung", "contentid": "264337", "addr1": "Seoul"},
		{"title": "Bukchon", "contentid": "264338", "addr1": "Seoul"},
	}

	filtered := applyFilter(items, []string{"title", "contentid"})

	assert.Equal(t, []map[string]string{
		{"title": "Gyeongbokgung", "contentid": "264337"},
		{"title": "Bukchon", "contentid": "264338"},
	}, filtered)
}

func TestApplyFilterUnknownFieldsYieldEmptyItems(t *testing.T) {
	items := []map[string]string{{"title": "Gyeongbokgung"}}

	filtered := applyFilter(items, []string{"no_such_field"})

	assert.Len(t, filtered, 1)
	assert.Empty(t, filtered[0])
}

func TestResultPayloadShape(t *testing.T) {
	result := &databridge.NormalizedResult{
		TotalCount: 42,
		NumOfRows:  20,
		PageNo:     2,
		Items:      []map[string]string{{"title": "Gyeongbokgung", "addr1": "Seoul"}},
	}

	payload := resultPayload(result, []string{"title"}, map[string]any{
		"search_radius": 1000,
	})

	assert.Equal(t, 42, payload["total_count"])
	assert.Equal(t, 20, payload["num_of_rows"])
	assert.Equal(t, 2, payload["page_no"])
	assert.Equal(t, 1000, payload["search_radius"])
	assert.Equal(t, []map[string]string{{"title": "Gyeongbokgung"}}, payload["items"])
}
