package server

import databridge "github.com/opendatakr/databridge"

// applyFilter whitelists item fields after the upstream call. An empty
// whitelist means no filtering, so cached entries always hold complete
// items regardless of what any one caller asked for.
func applyFilter(items []map[string]string, whitelist []string) []map[string]string {
	if len(whitelist) == 0 {
		return items
	}
	keep := make(map[string]struct{}, len(whitelist))
	for _, field := range whitelist {
		keep[field] = struct{}{}
	}
	filtered := make([]map[string]string, 0, len(items))
	for _, item := range items {
		reduced := make(map[string]string)
		for field, value := range item {
			if _, ok := keep[field]; ok {
				reduced[field] = value
			}
		}
		filtered = append(filtered, reduced)
	}
	return filtered
}

// resultPayload converts a normalized result to the tool response shape,
// applying the field whitelist. extras are merged on top.
func resultPayload(result *databridge.NormalizedResult, whitelist []string, extras map[string]any) map[string]any {
	payload := map[string]any{
		"total_count": result.TotalCount,
		"num_of_rows": result.NumOfRows,
		"page_no":     result.PageNo,
		"items":       applyFilter(result.Items, whitelist),
	}
	for key, value := range extras {
		payload[key] = value
	}
	return payload
}
