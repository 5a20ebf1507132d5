package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	databridge "github.com/opendatakr/databridge"
)

// BaseURL is the KMA village forecast service root.
const BaseURL = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0"

const (
	endpointNowcastObservation = "/getUltraSrtNcst"
	endpointNowcastForecast    = "/getUltraSrtFcst"
	endpointShortTermForecast  = "/getVilageFcst"
)

// Row counts per product: 8 observation categories, 10 categories times 6
// hours for the nowcast forecast, and enough rows for three days of
// short-term forecasts.
const (
	rowsObservation     = "10"
	rowsNowcastForecast = "60"
	rowsShortTerm       = "1000"
)

// ErrMissingAPIKey is returned by every operation until a service key is
// configured.
var ErrMissingAPIKey = errors.New("weather API key must be provided")

// Item is one category/value pair from a forecast response.
type Item struct {
	Category      string `json:"category"`
	ObservedValue string `json:"obsrValue"`
	ForecastDate  string `json:"fcstDate"`
	ForecastTime  string `json:"fcstTime"`
	ForecastValue string `json:"fcstValue"`
}

type weatherEnvelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			TotalCount int `json:"totalCount"`
			Items      struct {
				Item []Item `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// Client calls the village forecast services. Unlike the tourism side
// there is no cache or retry: every product is time-keyed and a stale
// answer is worse than no answer.
type Client struct {
	apiKey  string
	baseURL string
	pool    *databridge.Pool
	ownPool bool
	logger  *zap.Logger

	now func() time.Time
}

// New builds a Client. The KMA hands out keys percent-encoded but expects
// them decoded on the wire, so the key is unescaped here once. pool may be
// shared; if nil the Client owns its own. logger may be nil.
func New(apiKey, baseURL string, pool *databridge.Pool, logger *zap.Logger) *Client {
	if decoded, err := url.QueryUnescape(apiKey); err == nil {
		apiKey = decoded
	}
	if baseURL == "" {
		baseURL = BaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		pool:    pool,
		logger:  logger.With(zap.String("component", "weather_client")),
		now:     time.Now,
	}
	if c.pool == nil {
		c.pool = databridge.NewPool(0)
		c.ownPool = true
	}
	return c
}

// NowcastObservation returns the current conditions at a coordinate as
// Korean text.
func (c *Client) NowcastObservation(ctx context.Context, lon, lat float64) (string, error) {
	baseDate, baseTime := observationBase(c.now())
	env, err := c.fetch(ctx, endpointNowcastObservation, baseDate, baseTime, rowsObservation, lon, lat)
	if err != nil {
		return "", err
	}
	return formatObservation(lon, lat, env.Response.Body.Items.Item), nil
}

// NowcastForecast returns the six-hour forecast at a coordinate as Korean
// text.
func (c *Client) NowcastForecast(ctx context.Context, lon, lat float64) (string, error) {
	baseDate, baseTime := nowcastForecastBase(c.now())
	env, err := c.fetch(ctx, endpointNowcastForecast, baseDate, baseTime, rowsNowcastForecast, lon, lat)
	if err != nil {
		return "", err
	}
	return formatNowcastForecast(lon, lat, baseDate, baseTime, env.Response.Body.Items.Item), nil
}

// ShortTermForecast returns the three-day forecast at a coordinate as
// Korean text.
func (c *Client) ShortTermForecast(ctx context.Context, lon, lat float64) (string, error) {
	baseDate, baseTime := shortTermBase(c.now())
	env, err := c.fetch(ctx, endpointShortTermForecast, baseDate, baseTime, rowsShortTerm, lon, lat)
	if err != nil {
		return "", err
	}
	body := env.Response.Body
	return formatShortTermForecast(lon, lat, baseDate, baseTime, body.TotalCount, body.Items.Item), nil
}

func (c *Client) fetch(ctx context.Context, endpoint, baseDate, baseTime, rows string, lon, lat float64) (*weatherEnvelope, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	point := ToGrid(lon, lat)
	values := url.Values{}
	values.Set("serviceKey", c.apiKey)
	values.Set("numOfRows", rows)
	values.Set("pageNo", "1")
	values.Set("dataType", "JSON")
	values.Set("base_date", baseDate)
	values.Set("base_time", baseTime)
	values.Set("nx", strconv.Itoa(point.NX))
	values.Set("ny", strconv.Itoa(point.NY))

	requestURL := c.baseURL + endpoint + "?" + values.Encode()
	errorURL := c.baseURL + endpoint

	c.logger.Debug("fetching forecast",
		zap.String("endpoint", endpoint),
		zap.String("base_date", baseDate),
		zap.String("base_time", baseTime),
		zap.Int("nx", point.NX),
		zap.Int("ny", point.NY),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, databridge.ClassifyTransport(err, errorURL)
	}
	resp, err := c.pool.Client().Do(req)
	if err != nil {
		return nil, databridge.ClassifyTransport(err, errorURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, databridge.ClassifyTransport(err, errorURL)
	}
	if resp.StatusCode != http.StatusOK {
		message := "weather API error: HTTP " + strconv.Itoa(resp.StatusCode)
		// The portal answers 529 when the whole platform is overloaded.
		if resp.StatusCode == 529 {
			message += " (서버가 과부하 상태입니다. 잠시 후 다시 시도해주세요)"
		}
		return nil, databridge.ClassifyStatus(resp.StatusCode, errorURL, message)
	}

	var env weatherEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &databridge.ProtocolError{
			Message: "invalid JSON response: " + err.Error(),
			URL:     errorURL,
		}
	}
	header := env.Response.Header
	if header.ResultCode != "00" && header.ResultCode != "0000" {
		return nil, &databridge.ProtocolError{
			Message:    fmt.Sprintf("API error: %s", header.ResultMsg),
			ResultCode: header.ResultCode,
			URL:        errorURL,
		}
	}
	return &env, nil
}

// Close releases the connection pool if this client owns it.
func (c *Client) Close() {
	if c.ownPool {
		c.pool.Close()
	}
}
