package weather

import "time"

// The KMA publishes each product on its own schedule, and asking for a
// base time that has not been published yet returns an empty result. The
// helpers below pick the newest base time that is certain to exist.

// observationBase returns the base date and time for the nowcast
// observation. Observations for hour HH appear around HH:40, so before
// minute 40 the previous hour is used.
func observationBase(now time.Time) (string, string) {
	if now.Minute() < 40 {
		now = now.Add(-time.Hour)
	}
	return now.Format("20060102"), now.Format("15") + "00"
}

// nowcastForecastBase returns the base date and time for the six-hour
// nowcast forecast, issued every hour at HH:30 and retrievable from about
// HH:45.
func nowcastForecastBase(now time.Time) (string, string) {
	if now.Minute() < 45 {
		now = now.Add(-time.Hour)
	}
	return now.Format("20060102"), now.Format("15") + "30"
}

// Short-term forecast issue times, every three hours.
var shortTermIssueTimes = []string{"0200", "0500", "0800", "1100", "1400", "1700", "2000", "2300"}

// shortTermBase returns the base date and time for the short-term
// forecast: the latest issue at least 10 minutes old, or the previous
// day's 23:00 issue when none was published today.
func shortTermBase(now time.Time) (string, string) {
	hour := now.Hour()
	available := ""
	for _, issue := range shortTermIssueTimes {
		issueHour := int(issue[0]-'0')*10 + int(issue[1]-'0')
		if hour > issueHour || (hour == issueHour && now.Minute() >= 10) {
			available = issue
		}
	}
	if available == "" {
		return now.AddDate(0, 0, -1).Format("20060102"), "2300"
	}
	return now.Format("20060102"), available
}
