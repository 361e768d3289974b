package catalog

import (
	"encoding/json"
	"fmt"
)

// The remote API is inconsistent about response envelopes: list endpoints
// usually wrap content as {"data":{"content":[...]}}, some return
// {"data":[...]}, and a few return the bare array. decodeList accepts all
// three shapes.
func decodeList[T any](raw []byte) ([]T, error) {
	var bare []T
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var paged struct {
		Data struct {
			Content []T `json:"content"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &paged); err == nil && paged.Data.Content != nil {
		return paged.Data.Content, nil
	}

	var wrapped struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	return nil, fmt.Errorf("unrecognized list envelope")
}

// decodeObject accepts both {"data":{...}} and a bare object.
func decodeObject[T any](raw []byte) (*T, error) {
	var wrapped struct {
		Data *T `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var bare T
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("unrecognized object envelope: %w", err)
	}
	return &bare, nil
}
