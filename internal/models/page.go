package models

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Page is a DRF paginated list.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// DecodeList accepts either a bare JSON array or a paginated object, since the API
// serves both depending on the endpoint's pagination settings.
func DecodeList[T any](body []byte) (*Page[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Page[T]{}, nil
	}

	var page Page[T]
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal list: %w", err)
		}
		page.Count = len(page.Results)
		return &page, nil
	}

	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page: %w", err)
	}
	return &page, nil
}
