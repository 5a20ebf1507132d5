package tourism

import (
	"context"
	"fmt"
	"strconv"
	"time"

	databridge "github.com/opendatakr/databridge"
)

// Pagination defaults shared by the list operations.
const (
	defaultPage = 1
	defaultRows = 20
)

func paginate(params map[string]string, page, rows int) {
	if page < 1 {
		page = defaultPage
	}
	if rows < 1 {
		rows = defaultRows
	}
	params["pageNo"] = strconv.Itoa(page)
	params["numOfRows"] = strconv.Itoa(rows)
}

func setOptional(params map[string]string, name, value string) {
	if value != "" {
		params[name] = value
	}
}

// listParams seeds the parameter set for the list/search endpoints, which
// all share pagination and the arrange order.
func listParams(page, rows int) map[string]string {
	params := map[string]string{"arrange": arrangeByModifiedWithImage}
	paginate(params, page, rows)
	return params
}

func validateDate(name, value string) error {
	if _, err := time.Parse("20060102", value); err != nil {
		return fmt.Errorf("%s must be in YYYYMMDD format, got %q", name, value)
	}
	return nil
}

// SearchKeywordRequest filters a full-text keyword search.
type SearchKeywordRequest struct {
	Keyword       string
	ContentTypeID string
	AreaCode      string
	SigunguCode   string
	Cat1          string
	Cat2          string
	Cat3          string
	Language      string
	Page          int
	Rows          int
}

// SearchByKeyword searches tourism content by keyword.
func (c *Client) SearchByKeyword(ctx context.Context, req SearchKeywordRequest) (*databridge.NormalizedResult, error) {
	if req.Keyword == "" {
		return nil, fmt.Errorf("keyword must not be empty")
	}
	params := listParams(req.Page, req.Rows)
	params["keyword"] = req.Keyword
	setOptional(params, "contentTypeId", req.ContentTypeID)
	setOptional(params, "areaCode", req.AreaCode)
	if req.AreaCode != "" {
		setOptional(params, "sigunguCode", req.SigunguCode)
	}
	setOptional(params, "cat1", req.Cat1)
	if req.Cat1 != "" {
		setOptional(params, "cat2", req.Cat2)
		if req.Cat2 != "" {
			setOptional(params, "cat3", req.Cat3)
		}
	}
	return c.execute(ctx, endpointSearchKeyword, params, req.Language)
}

// AreaBasedRequest filters content listed by administrative area.
type AreaBasedRequest struct {
	AreaCode      string
	SigunguCode   string
	ContentTypeID string
	Cat1          string
	Cat2          string
	Cat3          string
	Language      string
	Page          int
	Rows          int
}

// AreaBasedList lists tourism content, optionally narrowed by area.
func (c *Client) AreaBasedList(ctx context.Context, req AreaBasedRequest) (*databridge.NormalizedResult, error) {
	params := listParams(req.Page, req.Rows)
	setOptional(params, "areaCode", req.AreaCode)
	if req.AreaCode != "" {
		setOptional(params, "sigunguCode", req.SigunguCode)
	}
	setOptional(params, "contentTypeId", req.ContentTypeID)
	setOptional(params, "cat1", req.Cat1)
	if req.Cat1 != "" {
		setOptional(params, "cat2", req.Cat2)
		if req.Cat2 != "" {
			setOptional(params, "cat3", req.Cat3)
		}
	}
	return c.execute(ctx, endpointAreaBasedList, params, req.Language)
}

// LocationBasedRequest filters content near a coordinate.
type LocationBasedRequest struct {
	MapX          float64 // longitude
	MapY          float64 // latitude
	Radius        int     // meters, 1..20000
	ContentTypeID string
	Language      string
	Page          int
	Rows          int
}

// LocationBasedList lists tourism content within radius meters of a point.
func (c *Client) LocationBasedList(ctx context.Context, req LocationBasedRequest) (*databridge.NormalizedResult, error) {
	if req.Radius < 1 || req.Radius > 20000 {
		return nil, fmt.Errorf("radius must be between 1 and 20000 meters, got %d", req.Radius)
	}
	params := listParams(req.Page, req.Rows)
	params["mapX"] = strconv.FormatFloat(req.MapX, 'f', -1, 64)
	params["mapY"] = strconv.FormatFloat(req.MapY, 'f', -1, 64)
	params["radius"] = strconv.Itoa(req.Radius)
	setOptional(params, "contentTypeId", req.ContentTypeID)
	return c.execute(ctx, endpointLocationBasedList, params, req.Language)
}

// FestivalSearchRequest filters festivals by date window and area.
type FestivalSearchRequest struct {
	EventStartDate string // YYYYMMDD, required
	EventEndDate   string // YYYYMMDD, optional
	AreaCode       string
	SigunguCode    string
	Language       string
	Page           int
	Rows           int
}

// SearchFestivals lists festivals running within the given date window.
func (c *Client) SearchFestivals(ctx context.Context, req FestivalSearchRequest) (*databridge.NormalizedResult, error) {
	if req.EventStartDate == "" {
		return nil, fmt.Errorf("event start date must not be empty")
	}
	if err := validateDate("event start date", req.EventStartDate); err != nil {
		return nil, err
	}
	if req.EventEndDate != "" {
		if err := validateDate("event end date", req.EventEndDate); err != nil {
			return nil, err
		}
	}
	params := listParams(req.Page, req.Rows)
	params["eventStartDate"] = req.EventStartDate
	setOptional(params, "eventEndDate", req.EventEndDate)
	setOptional(params, "areaCode", req.AreaCode)
	if req.AreaCode != "" {
		setOptional(params, "sigunguCode", req.SigunguCode)
	}
	return c.execute(ctx, endpointSearchFestival, params, req.Language)
}

// StaySearchRequest filters accommodation listings.
type StaySearchRequest struct {
	AreaCode    string
	SigunguCode string
	Language    string
	Page        int
	Rows        int
}

// SearchStays lists accommodation content, optionally narrowed by area.
func (c *Client) SearchStays(ctx context.Context, req StaySearchRequest) (*databridge.NormalizedResult, error) {
	params := listParams(req.Page, req.Rows)
	setOptional(params, "areaCode", req.AreaCode)
	if req.AreaCode != "" {
		setOptional(params, "sigunguCode", req.SigunguCode)
	}
	return c.execute(ctx, endpointSearchStay, params, req.Language)
}

// DetailCommonRequest fetches the shared fields of one content item.
type DetailCommonRequest struct {
	ContentID     string // required
	ContentTypeID string
	Language      string
	Page          int
	Rows          int
}

// DetailCommon returns the common detail fields (title, address, overview,
// first image) for one content ID.
func (c *Client) DetailCommon(ctx context.Context, req DetailCommonRequest) (*databridge.NormalizedResult, error) {
	if req.ContentID == "" {
		return nil, fmt.Errorf("content ID must not be empty")
	}
	params := map[string]string{
		"contentId":    req.ContentID,
		"firstImageYN": "Y",
		"areacodeYN":   "Y",
		"catcodeYN":    "Y",
		"addrinfoYN":   "Y",
		"mapinfoYN":    "Y",
		"overviewYN":   "Y",
		"transGuideYN": "Y",
	}
	setOptional(params, "contentTypeId", req.ContentTypeID)
	paginate(params, req.Page, req.Rows)
	return c.execute(ctx, endpointDetailCommon, params, req.Language)
}

// DetailIntroRequest fetches the type-specific fields of one content item.
type DetailIntroRequest struct {
	ContentID     string // required
	ContentTypeID string // required
	Language      string
	Page          int
	Rows          int
}

// DetailIntro returns the type-specific detail fields (hours, parking,
// fees) for one content ID.
func (c *Client) DetailIntro(ctx context.Context, req DetailIntroRequest) (*databridge.NormalizedResult, error) {
	if req.ContentID == "" {
		return nil, fmt.Errorf("content ID must not be empty")
	}
	if req.ContentTypeID == "" {
		return nil, fmt.Errorf("content type ID must not be empty")
	}
	params := map[string]string{
		"contentId":     req.ContentID,
		"contentTypeId": req.ContentTypeID,
	}
	paginate(params, req.Page, req.Rows)
	return c.execute(ctx, endpointDetailIntro, params, req.Language)
}

// DetailInfoRequest fetches the repeatable extra fields of one content item.
type DetailInfoRequest struct {
	ContentID     string // required
	ContentTypeID string // required
	Language      string
	Page          int
	Rows          int
}

// DetailInfo returns additional repeatable detail records (room info,
// course stops) for one content ID.
func (c *Client) DetailInfo(ctx context.Context, req DetailInfoRequest) (*databridge.NormalizedResult, error) {
	if req.ContentID == "" {
		return nil, fmt.Errorf("content ID must not be empty")
	}
	if req.ContentTypeID == "" {
		return nil, fmt.Errorf("content type ID must not be empty")
	}
	params := map[string]string{
		"contentId":     req.ContentID,
		"contentTypeId": req.ContentTypeID,
	}
	paginate(params, req.Page, req.Rows)
	return c.execute(ctx, endpointDetailInfo, params, req.Language)
}

// DetailImagesRequest fetches the image list of one content item.
type DetailImagesRequest struct {
	ContentID string // required
	Language  string
	Page      int
	Rows      int
}

// DetailImages returns the images registered for one content ID.
func (c *Client) DetailImages(ctx context.Context, req DetailImagesRequest) (*databridge.NormalizedResult, error) {
	if req.ContentID == "" {
		return nil, fmt.Errorf("content ID must not be empty")
	}
	params := map[string]string{
		"contentId":  req.ContentID,
		"imageYN":    "Y",
		"subImageYN": "Y",
	}
	paginate(params, req.Page, req.Rows)
	return c.execute(ctx, endpointDetailImage, params, req.Language)
}

// SyncListRequest lists content with its publication state, for consumers
// mirroring the catalog.
type SyncListRequest struct {
	ShowFlag      string // "1" shown, "0" hidden, empty for both
	AreaCode      string
	SigunguCode   string
	ContentTypeID string
	Cat1          string
	Cat2          string
	Cat3          string
	Language      string
	Page          int
	Rows          int
}

// AreaBasedSyncList lists content including show/hide state and
// modification stamps.
func (c *Client) AreaBasedSyncList(ctx context.Context, req SyncListRequest) (*databridge.NormalizedResult, error) {
	params := listParams(req.Page, req.Rows)
	setOptional(params, "showFlag", req.ShowFlag)
	setOptional(params, "areaCode", req.AreaCode)
	if req.AreaCode != "" {
		setOptional(params, "sigunguCode", req.SigunguCode)
	}
	setOptional(params, "cat1", req.Cat1)
	if req.Cat1 != "" {
		setOptional(params, "cat2", req.Cat2)
		if req.Cat2 != "" {
			setOptional(params, "cat3", req.Cat3)
		}
	}
	setOptional(params, "contentTypeId", req.ContentTypeID)
	return c.execute(ctx, endpointAreaBasedSyncList, params, req.Language)
}

// AreaCodesRequest lists area codes, or sigungu codes under a parent area.
type AreaCodesRequest struct {
	ParentAreaCode string // empty lists the top-level areas
	Language       string
	Page           int
	Rows           int
}

// AreaCodes returns the administrative area code table.
func (c *Client) AreaCodes(ctx context.Context, req AreaCodesRequest) (*databridge.NormalizedResult, error) {
	params := map[string]string{}
	setOptional(params, "areaCode", req.ParentAreaCode)
	rows := req.Rows
	if rows < 1 {
		rows = 100
	}
	paginate(params, req.Page, rows)
	return c.execute(ctx, endpointAreaCode, params, req.Language)
}

// CategoryCodesRequest lists category codes at the requested depth.
type CategoryCodesRequest struct {
	ContentTypeID string
	Cat1          string
	Cat2          string
	Cat3          string
	Language      string
	Page          int
	Rows          int
}

// CategoryCodes returns the content category code table. Passing cat1
// narrows to its children, cat1+cat2 to grandchildren.
func (c *Client) CategoryCodes(ctx context.Context, req CategoryCodesRequest) (*databridge.NormalizedResult, error) {
	params := map[string]string{}
	setOptional(params, "contentTypeId", req.ContentTypeID)
	setOptional(params, "cat1", req.Cat1)
	if req.Cat1 != "" {
		setOptional(params, "cat2", req.Cat2)
		if req.Cat2 != "" {
			setOptional(params, "cat3", req.Cat3)
		}
	}
	rows := req.Rows
	if rows < 1 {
		rows = 100
	}
	paginate(params, req.Page, rows)
	return c.execute(ctx, endpointCategoryCode, params, req.Language)
}
