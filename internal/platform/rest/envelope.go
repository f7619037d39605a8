package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// defaultListKeys are tried after the caller supplied keys when a list
// response arrives wrapped in an object.
var defaultListKeys = []string{"items", "data", "results"}

// DecodeList accepts either a bare JSON array or an envelope holding the array
// under one of keys (or items/data/results). total falls back to the item count.
func DecodeList[T any](raw json.RawMessage, keys ...string) ([]T, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, 0, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, 0, fmt.Errorf("decode list: %w", err)
		}
		return items, len(items), nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, 0, fmt.Errorf("decode list envelope: %w", err)
		}
		for _, key := range append(append([]string{}, keys...), defaultListKeys...) {
			value, ok := envelope[key]
			if !ok {
				continue
			}
			inner := bytes.TrimSpace(value)
			if len(inner) == 0 {
				continue
			}
			if inner[0] == '{' && key == "data" {
				return DecodeList[T](inner, keys...)
			}
			if inner[0] != '[' {
				continue
			}
			var items []T
			if err := json.Unmarshal(inner, &items); err != nil {
				return nil, 0, fmt.Errorf("decode list %q: %w", key, err)
			}
			total := len(items)
			if rawTotal, ok := envelope["total"]; ok {
				var declared int
				if err := json.Unmarshal(rawTotal, &declared); err == nil && declared > 0 {
					total = declared
				}
			}
			return items, total, nil
		}
	}
	return nil, 0, ErrUnexpectedPayload
}

// DecodeItem accepts either a bare object or one wrapped under one of keys or "data".
func DecodeItem[T any](raw json.RawMessage, keys ...string) (T, error) {
	var item T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return item, ErrUnexpectedPayload
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return item, fmt.Errorf("decode item envelope: %w", err)
	}
	for _, key := range append(append([]string{}, keys...), "data") {
		if inner, ok := envelope[key]; ok {
			inner = bytes.TrimSpace(inner)
			if len(inner) > 0 && inner[0] == '{' {
				trimmed = inner
				break
			}
		}
	}
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return item, fmt.Errorf("decode item: %w", err)
	}
	return item, nil
}

// GetList fetches path and decodes a list response.
func GetList[T any](ctx context.Context, c *Client, path string, query url.Values, keys ...string) ([]T, int, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, query, &raw); err != nil {
		return nil, 0, err
	}
	return DecodeList[T](raw, keys...)
}

// GetItem fetches path and decodes a single object response.
func GetItem[T any](ctx context.Context, c *Client, path string, keys ...string) (T, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, nil, &raw); err != nil {
		var zero T
		return zero, err
	}
	return DecodeItem[T](raw, keys...)
}

// SendItem issues a mutation and decodes the returned object. Empty bodies
// yield the zero value.
func SendItem[T any](ctx context.Context, c *Client, method, path string, in any, keys ...string) (T, error) {
	var raw json.RawMessage
	var zero T
	if err := c.Send(ctx, method, path, in, &raw); err != nil {
		return zero, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}
	return DecodeItem[T](raw, keys...)
}
