package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

func coordinateOptions() (mcp.ToolOption, mcp.ToolOption) {
	return mcp.WithNumber("longitude", mcp.Required(), mcp.Description("Longitude, e.g. 126.9780.")),
		mcp.WithNumber("latitude", mcp.Required(), mcp.Description("Latitude, e.g. 37.5665."))
}

func (s *Server) registerWeatherTools() {
	lon, lat := coordinateOptions()
	observationTool := mcp.NewTool("get_nowcast_observation",
		mcp.WithDescription("Get the current weather conditions at a coordinate in Korea, as Korean text."),
		lon, lat,
	)
	s.mcp.AddTool(observationTool, s.handleNowcastObservation)

	lon, lat = coordinateOptions()
	forecastTool := mcp.NewTool("get_nowcast_forecast",
		mcp.WithDescription("Get the six-hour weather forecast at a coordinate in Korea, as Korean text."),
		lon, lat,
	)
	s.mcp.AddTool(forecastTool, s.handleNowcastForecast)

	lon, lat = coordinateOptions()
	shortTermTool := mcp.NewTool("get_short_term_forecast",
		mcp.WithDescription("Get the three-day weather forecast at a coordinate in Korea, as Korean text."),
		lon, lat,
	)
	s.mcp.AddTool(shortTermTool, s.handleShortTermForecast)
}

func (s *Server) weatherCoordinates(req mcp.CallToolRequest) (float64, float64, *mcp.CallToolResult) {
	lon, err := req.RequireFloat("longitude")
	if err != nil {
		return 0, 0, mcp.NewToolResultError(err.Error())
	}
	lat, err := req.RequireFloat("latitude")
	if err != nil {
		return 0, 0, mcp.NewToolResultError(err.Error())
	}
	return lon, lat, nil
}

func (s *Server) handleNowcastObservation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lon, lat, errResult := s.weatherCoordinates(req)
	if errResult != nil {
		return errResult, nil
	}
	text, err := s.weather.NowcastObservation(ctx, lon, lat)
	if err != nil {
		s.logger.Warn("get_nowcast_observation failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleNowcastForecast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lon, lat, errResult := s.weatherCoordinates(req)
	if errResult != nil {
		return errResult, nil
	}
	text, err := s.weather.NowcastForecast(ctx, lon, lat)
	if err != nil {
		s.logger.Warn("get_nowcast_forecast failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleShortTermForecast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lon, lat, errResult := s.weatherCoordinates(req)
	if errResult != nil {
		return errResult, nil
	}
	text, err := s.weather.ShortTermForecast(ctx, lon, lat)
	if err != nil {
		s.logger.Warn("get_short_term_forecast failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
