package tourism

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyIgnoresParameterOrder(t *testing.T) {
	a := cacheKey("/searchKeyword2", map[string]string{
		"keyword": "Seoul", "areaCode": "1", "pageNo": "1",
	}, "en")
	b := cacheKey("/searchKeyword2", map[string]string{
		"pageNo": "1", "areaCode": "1", "keyword": "Seoul",
	}, "en")
	assert.Equal(t, a, b)
}

func TestCacheKeyIgnoresBoilerplate(t *testing.T) {
	bare := cacheKey("/searchKeyword2", map[string]string{"keyword": "Seoul"}, "en")
	noisy := cacheKey("/searchKeyword2", map[string]string{
		"keyword":    "Seoul",
		"MobileOS":   "ETC",
		"MobileApp":  "MobileApp",
		"serviceKey": "secret",
		"_type":      "json",
	}, "en")
	assert.Equal(t, bare, noisy)
	assert.NotContains(t, noisy, "secret")
}

func TestCacheKeySeparatesLanguages(t *testing.T) {
	en := cacheKey("/searchKeyword2", map[string]string{"keyword": "Seoul"}, "en")
	jp := cacheKey("/searchKeyword2", map[string]string{"keyword": "Seoul"}, "jp")
	assert.NotEqual(t, en, jp)
}

func TestCacheKeySeparatesEndpoints(t *testing.T) {
	search := cacheKey("/searchKeyword2", map[string]string{"keyword": "Seoul"}, "en")
	area := cacheKey("/areaBasedList2", map[string]string{"keyword": "Seoul"}, "en")
	assert.NotEqual(t, search, area)
}

func TestCacheKeyShape(t *testing.T) {
	key := cacheKey("/searchKeyword2", map[string]string{
		"keyword":  "Seoul",
		"areaCode": "1",
	}, "en")
	assert.Equal(t, "/searchKeyword2?lang=en&areaCode=1&keyword=Seoul", key)
}
