package weather

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Category codes used by the village forecast services.
const (
	catTemperature   = "T1H" // nowcast temperature
	catRainfall      = "RN1" // nowcast 1h precipitation
	catHumidity      = "REH"
	catWindSpeed     = "WSD"
	catWindDirection = "VEC"
	catPrecipType    = "PTY"
	catSkyState      = "SKY"
	catLightning     = "LGT"
	catForecastTemp  = "TMP" // short-term temperature
	catDailyMinTemp  = "TMN"
	catDailyMaxTemp  = "TMX"
	catPrecipChance  = "POP"
	catPrecipAmount  = "PCP"
	catSnowAmount    = "SNO"
)

var compassEN = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

var compassKO = []string{
	"북", "북북동", "북동", "동북동", "동", "동남동", "남동", "남남동",
	"남", "남남서", "남서", "서남서", "서", "서북서", "북서", "북북서",
}

// windDirection16 maps a bearing in degrees to one of 16 compass points.
func windDirection16(deg float64, names []string) string {
	idx := int((deg+11.25)/22.5) % 16
	if idx < 0 {
		idx += 16
	}
	return names[idx]
}

// precipTypeNowcast maps a nowcast PTY code to Korean text.
func precipTypeNowcast(code int) string {
	switch code {
	case 1:
		return "비"
	case 2:
		return "비/눈"
	case 3:
		return "눈"
	case 5:
		return "빗방울"
	case 6:
		return "빗방울눈날림"
	case 7:
		return "눈날림"
	default:
		return "없음"
	}
}

// precipTypeShortTerm maps a short-term PTY code to Korean text; zero and
// unknown codes yield the empty string and are omitted from output.
func precipTypeShortTerm(code int) string {
	switch code {
	case 1:
		return "비"
	case 2:
		return "비/눈"
	case 3:
		return "눈"
	case 4:
		return "소나기"
	default:
		return ""
	}
}

func skyState(code int) string {
	switch code {
	case 1:
		return "맑음"
	case 3:
		return "구름많음"
	case 4:
		return "흐림"
	default:
		return "알 수 없음"
	}
}

func formatKoreanDate(yyyymmdd string) string {
	if len(yyyymmdd) != 8 {
		return yyyymmdd
	}
	return fmt.Sprintf("%s년 %s월 %s일", yyyymmdd[:4], yyyymmdd[4:6], yyyymmdd[6:])
}

// formatObservation renders the nowcast observation categories.
func formatObservation(lon, lat float64, items []Item) string {
	values := map[string]string{}
	for _, item := range items {
		values[item.Category] = item.ObservedValue
	}

	pick := func(category, suffix string) string {
		if v, ok := values[category]; ok {
			return v + suffix
		}
		return "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n위도 %v, 경도 %v 현재 날씨:", lat, lon)
	fmt.Fprintf(&b, "기온: %s\n", pick(catTemperature, "°C"))
	fmt.Fprintf(&b, "강수량: %s\n", pick(catRainfall, "mm"))
	fmt.Fprintf(&b, "습도: %s\n", pick(catHumidity, "%"))
	fmt.Fprintf(&b, "풍속: %s\n", pick(catWindSpeed, "m/s"))
	return b.String()
}

// formatNowcastForecast renders the six-hour forecast grouped by forecast
// time.
func formatNowcastForecast(lon, lat float64, baseDate, baseTime string, items []Item) string {
	byTime := map[string]map[string]string{}
	for _, item := range items {
		key := item.ForecastDate + " " + item.ForecastTime
		if byTime[key] == nil {
			byTime[key] = map[string]string{}
		}
		byTime[key][item.Category] = item.ForecastValue
	}

	var b strings.Builder
	issued := fmt.Sprintf("%s %s:%s시", formatKoreanDate(baseDate), baseTime[:2], baseTime[2:])
	fmt.Fprintf(&b, "\n위도 %v, 경도 %v 초단기 예보 (발표: %s)\n", lat, lon, issued)
	b.WriteString(strings.Repeat("=", 50) + "\n")

	keys := make([]string, 0, len(byTime))
	for key := range byTime {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		data := byTime[key]
		fcstDate, fcstTime := key[:8], key[9:]
		fmt.Fprintf(&b, "■ %s %s:%s시 예보\n", formatKoreanDate(fcstDate), fcstTime[:2], fcstTime[2:])

		if v, ok := data[catTemperature]; ok {
			fmt.Fprintf(&b, "  기온: %s°C\n", v)
		}
		if v, ok := data[catPrecipType]; ok {
			if code, err := strconv.Atoi(v); err == nil {
				fmt.Fprintf(&b, "  강수형태: %s\n", precipTypeNowcast(code))
			}
		}
		if v, ok := data[catRainfall]; ok {
			if v == "강수없음" {
				b.WriteString("  1시간 강수량: 없음\n")
			} else {
				fmt.Fprintf(&b, "  1시간 강수량: %s\n", v)
			}
		}
		if v, ok := data[catHumidity]; ok {
			fmt.Fprintf(&b, "  습도: %s%%\n", v)
		}
		if v, ok := data[catSkyState]; ok {
			if code, err := strconv.Atoi(v); err == nil {
				fmt.Fprintf(&b, "  하늘상태: %s\n", skyState(code))
			}
		}
		if v, ok := data[catWindSpeed]; ok {
			fmt.Fprintf(&b, "  풍속: %sm/s\n", v)
		}
		if v, ok := data[catWindDirection]; ok {
			if deg, err := strconv.ParseFloat(v, 64); err == nil {
				fmt.Fprintf(&b, "  풍향: %s (%s°)\n", windDirection16(deg, compassEN), v)
			}
		}
		if v, ok := data[catLightning]; ok {
			if strikes, err := strconv.Atoi(v); err == nil {
				if strikes == 0 {
					b.WriteString("  낙뢰: 없음\n")
				} else {
					fmt.Fprintf(&b, "  낙뢰: %d kA/㎢\n", strikes)
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatShortTermForecast renders up to three days of forecasts grouped by
// date, with daily min/max temperatures pulled out first.
func formatShortTermForecast(lon, lat float64, baseDate, baseTime string, totalCount int, items []Item) string {
	byDate := map[string]map[string]map[string]string{}
	for _, item := range items {
		if byDate[item.ForecastDate] == nil {
			byDate[item.ForecastDate] = map[string]map[string]string{}
		}
		if byDate[item.ForecastDate][item.ForecastTime] == nil {
			byDate[item.ForecastDate][item.ForecastTime] = map[string]string{}
		}
		byDate[item.ForecastDate][item.ForecastTime][item.Category] = item.ForecastValue
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n위도 %v, 경도 %v 단기 예보 (발표: %s %s)\n", lat, lon, baseDate, baseTime)
	fmt.Fprintf(&b, "총 %d개 데이터 조회\n", totalCount)
	b.WriteString(strings.Repeat("=", 50) + "\n")

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fmt.Fprintf(&b, "\n【 %s 예보 】\n", formatKoreanDate(date))

		var minTemp, maxTemp string
		for _, data := range byDate[date] {
			if v, ok := data[catDailyMinTemp]; ok && v != "" {
				minTemp = v
			}
			if v, ok := data[catDailyMaxTemp]; ok && v != "" {
				maxTemp = v
			}
		}
		if minTemp != "" {
			fmt.Fprintf(&b, "  ▶ 최저기온: %s°C\n", minTemp)
		}
		if maxTemp != "" {
			fmt.Fprintf(&b, "  ▶ 최고기온: %s°C\n", maxTemp)
		}
		b.WriteString("\n  시간별 예보:\n")

		times := make([]string, 0, len(byDate[date]))
		for t := range byDate[date] {
			times = append(times, t)
		}
		sort.Strings(times)

		for _, t := range times {
			data := byDate[date][t]
			b.WriteString("  ■ " + formatHourKorean(t) + ": " + strings.Join(hourlySummary(data), ", ") + "\n")
			if wind := windSummary(data); wind != "" {
				b.WriteString("    - " + wind + "\n")
			}
		}
	}
	return b.String()
}

// formatHourKorean renders "HHMM" as "오전/오후 H시".
func formatHourKorean(hhmm string) string {
	hour, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return hhmm
	}
	meridiem := "오전"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		meridiem = "오후"
	case hour > 12:
		meridiem = "오후"
		display = hour - 12
	}
	return fmt.Sprintf("%s %d시", meridiem, display)
}

func hourlySummary(data map[string]string) []string {
	var parts []string
	if v, ok := data[catForecastTemp]; ok {
		parts = append(parts, fmt.Sprintf("기온 %s°C", v))
	}
	if v, ok := data[catPrecipChance]; ok {
		parts = append(parts, fmt.Sprintf("강수확률 %s%%", v))
	}
	if v, ok := data[catPrecipType]; ok {
		if code, err := strconv.Atoi(v); err == nil {
			if s := precipTypeShortTerm(code); s != "" {
				parts = append(parts, s)
			}
		}
	}
	if v, ok := data[catPrecipAmount]; ok && v != "" && v != "강수없음" {
		parts = append(parts, "강수량 "+v)
	}
	if v, ok := data[catSnowAmount]; ok && v != "" && v != "적설없음" {
		parts = append(parts, "적설 "+v)
	}
	if v, ok := data[catSkyState]; ok {
		if code, err := strconv.Atoi(v); err == nil {
			switch code {
			case 1, 3, 4:
				parts = append(parts, skyState(code))
			}
		}
	}
	if v, ok := data[catHumidity]; ok {
		parts = append(parts, fmt.Sprintf("습도 %s%%", v))
	}
	return parts
}

func windSummary(data map[string]string) string {
	vec, okVec := data[catWindDirection]
	wsd, okWsd := data[catWindSpeed]
	if !okVec || !okWsd {
		return ""
	}
	deg, err1 := strconv.ParseFloat(vec, 64)
	speed, err2 := strconv.ParseFloat(wsd, 64)
	if err1 != nil || err2 != nil {
		return ""
	}

	strength := "강한 바람"
	switch {
	case speed < 4:
		strength = "약한 바람"
	case speed < 9:
		strength = "약간 강한 바람"
	}
	return fmt.Sprintf("%s풍 %s(%vm/s)", windDirection16(deg, compassKO), strength, speed)
}
