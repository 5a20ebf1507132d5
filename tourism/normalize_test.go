package tourism

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	databridge "github.com/opendatakr/databridge"
)

const testURL = "http://upstream.test/EngService2/searchKeyword2"

func TestNormalizeArrayOfItems(t *testing.T) {
	body := []byte(`{"response":{"header":{"resultCode":"0000","resultMsg":"OK"},
		"body":{"totalCount":2,"numOfRows":2,"pageNo":1,
		"items":{"item":[{"contentid":"1","title":"A"},{"contentid":"2","title":"B"}]}}}}`)

	result, err := Normalize(body, testURL)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 2, result.NumOfRows)
	assert.Equal(t, 1, result.PageNo)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "A", result.Items[0]["title"])
}

func TestNormalizeSingleItemBecomesSlice(t *testing.T) {
	body := []byte(`{"response":{"header":{"resultCode":"0000","resultMsg":"OK"},
		"body":{"totalCount":1,"numOfRows":1,"pageNo":1,
		"items":{"item":{"contentid":"264337","title":"Gyeongbokgung Palace"}}}}}`)

	result, err := Normalize(body, testURL)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "264337", result.Items[0]["contentid"])
}

func TestNormalizeZeroCountYieldsEmptyItems(t *testing.T) {
	// An empty result carries "" in the items slot instead of an object.
	body := []byte(`{"response":{"header":{"resultCode":"0000","resultMsg":"OK"},
		"body":{"totalCount":0,"numOfRows":0,"pageNo":1,"items":""}}}`)

	result, err := Normalize(body, testURL)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalCount)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestNormalizeZeroCountIgnoresStrayItems(t *testing.T) {
	body := []byte(`{"response":{"header":{"resultCode":"0000","resultMsg":"OK"},
		"body":{"totalCount":0,"numOfRows":0,"pageNo":1,"items":{"item":[{"contentid":"1"}]}}}}`)

	result, err := Normalize(body, testURL)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestNormalizeNonSuccessResultCode(t *testing.T) {
	body := []byte(`{"response":{"header":{"resultCode":"99","resultMsg":"INVALID REQUEST PARAMETER ERROR"},
		"body":{}}}`)

	_, err := Normalize(body, testURL)
	var protoErr *databridge.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "99", protoErr.ResultCode)
	assert.Contains(t, protoErr.Message, "INVALID REQUEST PARAMETER ERROR")
	assert.False(t, databridge.IsTransient(err))
}

func TestNormalizeEmptyBody(t *testing.T) {
	_, err := Normalize([]byte("  "), testURL)
	var protoErr *databridge.ProtocolError
	require.ErrorAs(t, err, &protoErr)
}

func TestNormalizeInvalidJSON(t *testing.T) {
	_, err := Normalize([]byte(`<html>service unavailable</html>`), testURL)
	var protoErr *databridge.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Contains(t, protoErr.Message, "invalid JSON")
}

func TestNormalizeMissingEnvelopeStructure(t *testing.T) {
	// No header at all: the zero result code is not success.
	_, err := Normalize([]byte(`{"unexpected":"shape"}`), testURL)
	var protoErr *databridge.ProtocolError
	require.ErrorAs(t, err, &protoErr)
}

func TestNormalizeStringNumericFields(t *testing.T) {
	body := []byte(`{"response":{"header":{"resultCode":"0000","resultMsg":"OK"},
		"body":{"totalCount":"1","numOfRows":"10","pageNo":"1",
		"items":{"item":{"contentid":"5","mapx":126.9768,"readcount":4321,"homepage":null}}}}}`)

	result, err := Normalize(body, testURL)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, 10, result.NumOfRows)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "126.9768", result.Items[0]["mapx"])
	assert.Equal(t, "4321", result.Items[0]["readcount"])
	assert.Equal(t, "", result.Items[0]["homepage"])
}

func TestNormalizeMissingPageNoDefaultsToOne(t *testing.T) {
	body := []byte(`{"response":{"header":{"resultCode":"0000","resultMsg":"OK"},
		"body":{"totalCount":0,"numOfRows":0,"items":""}}}`)

	result, err := Normalize(body, testURL)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PageNo)
}
