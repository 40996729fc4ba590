package espn

import "time"

const (
	providerName       = "espn"
	defaultBaseURL     = "https://site.api.espn.com/apis/site/v2/sports"
	defaultHTTPTimeout = 10 * time.Second
	defaultTimezone    = "America/New_York"
)
