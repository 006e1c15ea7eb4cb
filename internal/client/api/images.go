package api

import (
	"encoding/json"
	"strings"
)

// ImageList normalizes the catalog's images field, which over time has
// been stored as a single URL string, an array of URLs, or an array
// containing JSON-encoded arrays. Unmarshalling flattens all of these,
// drops blob: URLs and duplicates, and keeps at most maxImages entries.
type ImageList []string

const maxImages = 5

func (l *ImageList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = normalizeImages(raw)
	return nil
}

func normalizeImages(raw any) []string {
	result := make([]string, 0)
	seen := make(map[string]struct{})

	var add func(v any)
	add = func(v any) {
		switch img := v.(type) {
		case []any:
			for _, e := range img {
				add(e)
			}
		case string:
			s := strings.TrimSpace(img)
			if s == "" || strings.HasPrefix(s, "blob:") {
				return
			}
			// Some rows carry a JSON-encoded array inside the string.
			if strings.HasPrefix(s, "[") {
				var nested []any
				if err := json.Unmarshal([]byte(s), &nested); err == nil {
					add(nested)
					return
				}
			}
			if _, ok := seen[s]; ok {
				return
			}
			seen[s] = struct{}{}
			result = append(result, s)
		}
	}

	add(raw)

	if len(result) > maxImages {
		result = result[:maxImages]
	}
	return result
}
