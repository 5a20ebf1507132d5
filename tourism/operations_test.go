package tourism

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendatakr/databridge/mock"
)

func TestSearchByKeywordRequiresKeyword(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.SearchByKeyword(context.Background(), SearchKeywordRequest{})
	require.Error(t, err)
	assert.EqualValues(t, 0, upstream.Calls())
}

func TestAreaBasedListOptionalArea(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.AreaBasedList(context.Background(), AreaBasedRequest{SigunguCode: "2"})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/EngService2/areaBasedList2", recorded.Path)
	assert.False(t, recorded.Query.Has("areaCode"))
	assert.False(t, recorded.Query.Has("sigunguCode"))
}

func TestLocationBasedListValidatesRadius(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	for _, radius := range []int{0, -5, 20001} {
		_, err := client.LocationBasedList(context.Background(), LocationBasedRequest{
			MapX: 126.98, MapY: 37.57, Radius: radius,
		})
		require.Error(t, err, "radius %d", radius)
	}
	assert.EqualValues(t, 0, upstream.Calls())
}

func TestLocationBasedListSendsCoordinates(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.LocationBasedList(context.Background(), LocationBasedRequest{
		MapX: 126.9816, MapY: 37.5785, Radius: 2000,
	})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/EngService2/locationBasedList2", recorded.Path)
	assert.Equal(t, "126.9816", recorded.Query.Get("mapX"))
	assert.Equal(t, "37.5785", recorded.Query.Get("mapY"))
	assert.Equal(t, "2000", recorded.Query.Get("radius"))
}

func TestSearchFestivalsValidatesDates(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.SearchFestivals(context.Background(), FestivalSearchRequest{})
	require.Error(t, err)

	_, err = client.SearchFestivals(context.Background(), FestivalSearchRequest{EventStartDate: "2026-08-01"})
	require.Error(t, err)

	_, err = client.SearchFestivals(context.Background(), FestivalSearchRequest{
		EventStartDate: "20260801",
		EventEndDate:   "bad",
	})
	require.Error(t, err)
	assert.EqualValues(t, 0, upstream.Calls())
}

func TestSearchFestivalsSendsDateWindow(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.SearchFestivals(context.Background(), FestivalSearchRequest{
		EventStartDate: "20260801",
		EventEndDate:   "20260831",
		AreaCode:       "1",
	})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/EngService2/searchFestival2", recorded.Path)
	assert.Equal(t, "20260801", recorded.Query.Get("eventStartDate"))
	assert.Equal(t, "20260831", recorded.Query.Get("eventEndDate"))
	assert.Equal(t, "1", recorded.Query.Get("areaCode"))
}

func TestSearchStaysOptionalArea(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.SearchStays(context.Background(), StaySearchRequest{})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/EngService2/searchStay2", recorded.Path)
	assert.False(t, recorded.Query.Has("areaCode"))
}

func TestSigunguCodeRequiresAreaCode(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.SearchStays(context.Background(), StaySearchRequest{SigunguCode: "2"})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.False(t, recorded.Query.Has("sigunguCode"))
}

func TestDetailCommonSendsDetailFlags(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.DetailCommon(context.Background(), DetailCommonRequest{})
	require.Error(t, err)

	_, err = client.DetailCommon(context.Background(), DetailCommonRequest{ContentID: "264337"})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/EngService2/detailCommon2", recorded.Path)
	assert.Equal(t, "264337", recorded.Query.Get("contentId"))
	assert.Equal(t, "Y", recorded.Query.Get("overviewYN"))
	assert.Equal(t, "Y", recorded.Query.Get("firstImageYN"))
	assert.Equal(t, "Y", recorded.Query.Get("transGuideYN"))
	assert.False(t, recorded.Query.Has("defaultYN"))
}

func TestDetailIntroRequiresContentType(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.DetailIntro(context.Background(), DetailIntroRequest{ContentID: "264337"})
	require.Error(t, err)

	_, err = client.DetailIntro(context.Background(), DetailIntroRequest{ContentID: "264337", ContentTypeID: "76"})
	require.NoError(t, err)
}

func TestDetailInfoRequiresContentAndType(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.DetailInfo(context.Background(), DetailInfoRequest{ContentTypeID: "76"})
	require.Error(t, err)

	_, err = client.DetailInfo(context.Background(), DetailInfoRequest{ContentID: "264337", ContentTypeID: "76"})
	require.NoError(t, err)
}

func TestDetailImagesSendsImageFlags(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.DetailImages(context.Background(), DetailImagesRequest{ContentID: "264337"})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/EngService2/detailImage2", recorded.Path)
	assert.Equal(t, "Y", recorded.Query.Get("imageYN"))
	assert.Equal(t, "Y", recorded.Query.Get("subImageYN"))
}

func TestAreaBasedSyncListSendsFilters(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.AreaBasedSyncList(context.Background(), SyncListRequest{
		ShowFlag:      "1",
		AreaCode:      "1",
		SigunguCode:   "2",
		ContentTypeID: "76",
		Cat1:          "A01",
		Cat2:          "A0101",
	})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/EngService2/areaBasedSyncList2", recorded.Path)
	assert.Equal(t, "1", recorded.Query.Get("showFlag"))
	assert.Equal(t, "1", recorded.Query.Get("areaCode"))
	assert.Equal(t, "2", recorded.Query.Get("sigunguCode"))
	assert.Equal(t, "76", recorded.Query.Get("contentTypeId"))
	assert.Equal(t, "A01", recorded.Query.Get("cat1"))
	assert.Equal(t, "A0101", recorded.Query.Get("cat2"))
	assert.Equal(t, "Q", recorded.Query.Get("arrange"))
}

func TestAreaBasedSyncListDependentFiltersNeedParents(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.AreaBasedSyncList(context.Background(), SyncListRequest{
		SigunguCode: "2",
		Cat2:        "A0101",
		Cat3:        "A01010100",
	})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.False(t, recorded.Query.Has("sigunguCode"))
	assert.False(t, recorded.Query.Has("cat2"))
	assert.False(t, recorded.Query.Has("cat3"))
}

func TestAreaBasedSyncListSecondCallServedFromCache(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	req := SyncListRequest{ShowFlag: "1", AreaCode: "1"}

	_, err := client.AreaBasedSyncList(context.Background(), req)
	require.NoError(t, err)
	_, err = client.AreaBasedSyncList(context.Background(), req)
	require.NoError(t, err)

	assert.EqualValues(t, 1, upstream.Calls())
}

func TestAreaCodesDefaultsToLargePage(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.AreaCodes(context.Background(), AreaCodesRequest{})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/EngService2/areaCode2", recorded.Path)
	assert.Equal(t, "100", recorded.Query.Get("numOfRows"))
	assert.False(t, recorded.Query.Has("areaCode"))
}

func TestCategoryCodesCategoryChain(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	// cat3 without cat2 must be dropped.
	_, err := client.CategoryCodes(context.Background(), CategoryCodesRequest{
		Cat1: "A01", Cat3: "A01010100",
	})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "A01", recorded.Query.Get("cat1"))
	assert.False(t, recorded.Query.Has("cat3"))
}

func TestPaginationDefaults(t *testing.T) {
	upstream := mock.NewUpstream()
	defer upstream.Close()

	client := newTestClient(t, upstream)
	_, err := client.SearchByKeyword(context.Background(), SearchKeywordRequest{Keyword: "Seoul"})
	require.NoError(t, err)

	recorded, ok := upstream.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "1", recorded.Query.Get("pageNo"))
	assert.Equal(t, "20", recorded.Query.Get("numOfRows"))
}
