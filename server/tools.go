package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/opendatakr/databridge/tourism"
)

const supportedLanguages = "ko, en, jp, zh-cn, zh-tw, de, fr, es, ru"

// resolveContentType maps a human-readable content type name to its ID.
// An empty name passes through.
func resolveContentType(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	id, ok := tourism.ContentTypeID(name)
	if !ok {
		return "", fmt.Errorf("invalid content_type: %q. Valid types are: %s",
			name, strings.Join(tourism.ContentTypeNames(), ", "))
	}
	return id, nil
}

// jsonResult marshals a payload into a text tool result.
func jsonResult(payload any) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}

// filterOption declares the shared post-hoc field whitelist argument.
func filterOption() mcp.ToolOption {
	return mcp.WithArray("filter",
		mcp.Description("Optional list of item fields to include in the response. Empty returns all fields."),
		mcp.Items(map[string]any{"type": "string"}),
	)
}

func languageOption() mcp.ToolOption {
	return mcp.WithString("language",
		mcp.Description("Language for results (default from server config). Supported: "+supportedLanguages))
}

func pageOption() mcp.ToolOption {
	return mcp.WithNumber("page", mcp.DefaultNumber(1), mcp.Description("Page number for pagination."))
}

func rowsOption() mcp.ToolOption {
	return mcp.WithNumber("rows", mcp.DefaultNumber(20), mcp.Description("Number of items per page."))
}

// The code-table tools page at 100 rows so the full table fits in one call.
func codeTableRowsOption() mcp.ToolOption {
	return mcp.WithNumber("rows", mcp.DefaultNumber(100), mcp.Description("Number of items per page."))
}

func (s *Server) registerTourismTools() {
	contentTypes := strings.Join(tourism.ContentTypeNames(), ", ")

	searchTool := mcp.NewTool("search_tourism_by_keyword",
		mcp.WithDescription("Search for tourism information in Korea by keyword, optionally narrowed by content type and area."),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Search keyword, e.g. 'Gyeongbokgung' or 'Hanok'.")),
		mcp.WithString("content_type", mcp.Description("Type of content to search for. Valid values: "+contentTypes)),
		mcp.WithString("area_code", mcp.Description("Area code to filter results, e.g. '1' for Seoul.")),
		languageOption(),
		pageOption(), rowsOption(),
		filterOption(),
	)
	s.mcp.AddTool(searchTool, s.handleSearchByKeyword)

	areaTool := mcp.NewTool("get_tourism_by_area",
		mcp.WithDescription("Browse tourism information by geographic area in Korea."),
		mcp.WithString("area_code", mcp.Required(), mcp.Description("Area code, e.g. '1' for Seoul, '39' for Jeju.")),
		mcp.WithString("sigungu_code", mcp.Description("District code within the area.")),
		mcp.WithString("content_type", mcp.Description("Type of content to filter. Valid values: "+contentTypes)),
		languageOption(),
		pageOption(), rowsOption(),
		filterOption(),
	)
	s.mcp.AddTool(areaTool, s.handleTourismByArea)

	nearbyTool := mcp.NewTool("find_nearby_attractions",
		mcp.WithDescription("Find tourism attractions near a GPS coordinate in Korea."),
		mcp.WithNumber("longitude", mcp.Required(), mcp.Description("Longitude, e.g. 126.9780.")),
		mcp.WithNumber("latitude", mcp.Required(), mcp.Description("Latitude, e.g. 37.5665.")),
		mcp.WithNumber("radius", mcp.DefaultNumber(1000), mcp.Description("Search radius in meters, 1 to 20000.")),
		mcp.WithString("content_type", mcp.Description("Type of content to filter. Valid values: "+contentTypes)),
		languageOption(),
		pageOption(), rowsOption(),
		filterOption(),
	)
	s.mcp.AddTool(nearbyTool, s.handleNearbyAttractions)

	festivalTool := mcp.NewTool("search_festivals_by_date",
		mcp.WithDescription("Search for festivals in Korea by date range."),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date in YYYYMMDD format, e.g. '20260501'.")),
		mcp.WithString("end_date", mcp.Description("End date in YYYYMMDD format. Omit to search from start_date onward.")),
		mcp.WithString("area_code", mcp.Description("Area code to filter results.")),
		languageOption(),
		pageOption(), rowsOption(),
		filterOption(),
	)
	s.mcp.AddTool(festivalTool, s.handleFestivalsByDate)

	stayTool := mcp.NewTool("find_accommodations",
		mcp.WithDescription("Find accommodations in Korea, optionally narrowed by area."),
		mcp.WithString("area_code", mcp.Description("Area code, e.g. '1' for Seoul.")),
		mcp.WithString("sigungu_code", mcp.Description("District code within the area.")),
		languageOption(),
		pageOption(), rowsOption(),
		filterOption(),
	)
	s.mcp.AddTool(stayTool, s.handleAccommodations)

	detailTool := mcp.NewTool("get_detailed_information",
		mcp.WithDescription("Get comprehensive details about a tourism item: common fields, type-specific introduction, and additional records."),
		mcp.WithString("content_id", mcp.Required(), mcp.Description("Content ID obtained from a search tool.")),
		mcp.WithString("content_type", mcp.Description("Type of the content. Valid values: "+contentTypes)),
		languageOption(),
	)
	s.mcp.AddTool(detailTool, s.handleDetailedInformation)

	imagesTool := mcp.NewTool("get_tourism_images",
		mcp.WithDescription("Get the images registered for a tourism item."),
		mcp.WithString("content_id", mcp.Required(), mcp.Description("Content ID obtained from a search tool.")),
		languageOption(),
		pageOption(), rowsOption(),
	)
	s.mcp.AddTool(imagesTool, s.handleTourismImages)

	areaCodesTool := mcp.NewTool("get_area_codes",
		mcp.WithDescription("Get the administrative area codes, or the district codes under a parent area."),
		mcp.WithString("parent_area_code", mcp.Description("Parent area code. Omit to list the top-level areas.")),
		languageOption(),
		pageOption(), codeTableRowsOption(),
	)
	s.mcp.AddTool(areaCodesTool, s.handleAreaCodes)

	categoryCodesTool := mcp.NewTool("get_category_codes",
		mcp.WithDescription("Get the tourism category code table. Pass cat1/cat2 to descend the hierarchy."),
		mcp.WithString("content_type", mcp.Description("Type of content to scope the categories. Valid values: "+contentTypes)),
		mcp.WithString("cat1", mcp.Description("Top-level category code, e.g. 'A01'.")),
		mcp.WithString("cat2", mcp.Description("Mid-level category code; requires cat1.")),
		mcp.WithString("cat3", mcp.Description("Leaf category code; requires cat2.")),
		languageOption(),
		pageOption(), codeTableRowsOption(),
	)
	s.mcp.AddTool(categoryCodesTool, s.handleCategoryCodes)
}

func (s *Server) handleSearchByKeyword(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contentTypeID, err := resolveContentType(req.GetString("content_type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.tourism.SearchByKeyword(ctx, tourism.SearchKeywordRequest{
		Keyword:       keyword,
		ContentTypeID: contentTypeID,
		AreaCode:      req.GetString("area_code", ""),
		Language:      req.GetString("language", ""),
		Page:          req.GetInt("page", 1),
		Rows:          req.GetInt("rows", 20),
	})
	if err != nil {
		s.logger.Warn("search_tourism_by_keyword failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resultPayload(result, req.GetStringSlice("filter", nil), nil))
}

func (s *Server) handleTourismByArea(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	areaCode, err := req.RequireString("area_code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contentTypeID, err := resolveContentType(req.GetString("content_type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.tourism.AreaBasedList(ctx, tourism.AreaBasedRequest{
		AreaCode:      areaCode,
		SigunguCode:   req.GetString("sigungu_code", ""),
		ContentTypeID: contentTypeID,
		Language:      req.GetString("language", ""),
		Page:          req.GetInt("page", 1),
		Rows:          req.GetInt("rows", 20),
	})
	if err != nil {
		s.logger.Warn("get_tourism_by_area failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resultPayload(result, req.GetStringSlice("filter", nil), nil))
}

func (s *Server) handleNearbyAttractions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	longitude, err := req.RequireFloat("longitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	latitude, err := req.RequireFloat("latitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contentTypeID, err := resolveContentType(req.GetString("content_type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	radius := req.GetInt("radius", 1000)

	result, err := s.tourism.LocationBasedList(ctx, tourism.LocationBasedRequest{
		MapX:          longitude,
		MapY:          latitude,
		Radius:        radius,
		ContentTypeID: contentTypeID,
		Language:      req.GetString("language", ""),
		Page:          req.GetInt("page", 1),
		Rows:          req.GetInt("rows", 20),
	})
	if err != nil {
		s.logger.Warn("find_nearby_attractions failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resultPayload(result, req.GetStringSlice("filter", nil), map[string]any{
		"search_radius": radius,
	}))
}

func (s *Server) handleFestivalsByDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startDate, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endDate := req.GetString("end_date", "")

	result, err := s.tourism.SearchFestivals(ctx, tourism.FestivalSearchRequest{
		EventStartDate: startDate,
		EventEndDate:   endDate,
		AreaCode:       req.GetString("area_code", ""),
		Language:       req.GetString("language", ""),
		Page:           req.GetInt("page", 1),
		Rows:           req.GetInt("rows", 20),
	})
	if err != nil {
		s.logger.Warn("search_festivals_by_date failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	endDateLabel := endDate
	if endDateLabel == "" {
		endDateLabel = "ongoing"
	}
	return jsonResult(resultPayload(result, req.GetStringSlice("filter", nil), map[string]any{
		"start_date": startDate,
		"end_date":   endDateLabel,
	}))
}

func (s *Server) handleAccommodations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.tourism.SearchStays(ctx, tourism.StaySearchRequest{
		AreaCode:    req.GetString("area_code", ""),
		SigunguCode: req.GetString("sigungu_code", ""),
		Language:    req.GetString("language", ""),
		Page:        req.GetInt("page", 1),
		Rows:        req.GetInt("rows", 20),
	})
	if err != nil {
		s.logger.Warn("find_accommodations failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resultPayload(result, req.GetStringSlice("filter", nil), nil))
}

// handleDetailedInformation composes up to three upstream calls into one
// merged record: common fields, then type-specific introduction fields,
// then the repeatable additional records under "additional_info".
func (s *Server) handleDetailedInformation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contentID, err := req.RequireString("content_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contentTypeID, err := resolveContentType(req.GetString("content_type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language := req.GetString("language", "")

	common, err := s.tourism.DetailCommon(ctx, tourism.DetailCommonRequest{
		ContentID:     contentID,
		ContentTypeID: contentTypeID,
		Language:      language,
	})
	if err != nil {
		s.logger.Warn("get_detailed_information failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	merged := map[string]any{}
	if len(common.Items) > 0 {
		for field, value := range common.Items[0] {
			merged[field] = value
		}
	}

	// Intro and additional records need the content type; without it the
	// common fields alone are returned.
	if contentTypeID != "" {
		intro, err := s.tourism.DetailIntro(ctx, tourism.DetailIntroRequest{
			ContentID:     contentID,
			ContentTypeID: contentTypeID,
			Language:      language,
		})
		if err != nil {
			s.logger.Warn("get_detailed_information intro lookup failed", zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(intro.Items) > 0 {
			for field, value := range intro.Items[0] {
				merged[field] = value
			}
		}

		info, err := s.tourism.DetailInfo(ctx, tourism.DetailInfoRequest{
			ContentID:     contentID,
			ContentTypeID: contentTypeID,
			Language:      language,
		})
		if err != nil {
			s.logger.Warn("get_detailed_information info lookup failed", zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}
		merged["additional_info"] = info.Items
	}
	return jsonResult(merged)
}

func (s *Server) handleTourismImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contentID, err := req.RequireString("content_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.tourism.DetailImages(ctx, tourism.DetailImagesRequest{
		ContentID: contentID,
		Language:  req.GetString("language", ""),
		Page:      req.GetInt("page", 1),
		Rows:      req.GetInt("rows", 20),
	})
	if err != nil {
		s.logger.Warn("get_tourism_images failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resultPayload(result, nil, map[string]any{
		"content_id": contentID,
	}))
}

func (s *Server) handleAreaCodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parent := req.GetString("parent_area_code", "")

	result, err := s.tourism.AreaCodes(ctx, tourism.AreaCodesRequest{
		ParentAreaCode: parent,
		Language:       req.GetString("language", ""),
		Page:           req.GetInt("page", 1),
		Rows:           req.GetInt("rows", 100),
	})
	if err != nil {
		s.logger.Warn("get_area_codes failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	var parentValue any
	if parent != "" {
		parentValue = parent
	}
	return jsonResult(resultPayload(result, nil, map[string]any{
		"parent_area_code": parentValue,
	}))
}

func (s *Server) handleCategoryCodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contentTypeID, err := resolveContentType(req.GetString("content_type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.tourism.CategoryCodes(ctx, tourism.CategoryCodesRequest{
		ContentTypeID: contentTypeID,
		Cat1:          req.GetString("cat1", ""),
		Cat2:          req.GetString("cat2", ""),
		Cat3:          req.GetString("cat3", ""),
		Language:      req.GetString("language", ""),
		Page:          req.GetInt("page", 1),
		Rows:          req.GetInt("rows", 100),
	})
	if err != nil {
		s.logger.Warn("get_category_codes failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resultPayload(result, nil, nil))
}
