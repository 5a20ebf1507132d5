package databridge

// NormalizedRequest describes one upstream call before orchestration is
// applied: the endpoint suffix, the caller-supplied query parameters, and
// the resolved language. Boilerplate parameters and the service key are
// attached later, at dispatch time.
type NormalizedRequest struct {
	Endpoint string
	Params   map[string]string
	Language string
}

// NormalizedResult is the uniform shape every upstream response is reduced
// to before it reaches a cache or a caller. Items is never nil; an empty
// result carries an empty slice.
type NormalizedResult struct {
	TotalCount int                 `json:"total_count"`
	NumOfRows  int                 `json:"num_of_rows"`
	PageNo     int                 `json:"page_no"`
	Items      []map[string]string `json:"items"`
}
