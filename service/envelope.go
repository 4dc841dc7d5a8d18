package application

import (
	"bytes"
	"encoding/json"
	"fmt"

	"rental_frontend/domain"
)

// The backend nests payloads under endpoint specific keys, and not always
// consistently. Each helper prefers the named field and falls back as noted.

type MessageResult struct {
	Message string
	Raw     json.RawMessage
}

type ProfileResult struct {
	Message string
	Profile domain.Profile
	Raw     json.RawMessage
}

type PostList struct {
	Posts      []domain.RentalPost
	Pagination *domain.Pagination
	Raw        json.RawMessage
}

type PostResult struct {
	Post *domain.RentalPost
	Raw  json.RawMessage
}

type RecommendationList struct {
	Recommendations []domain.RentalPost
	Raw             json.RawMessage
}

type ContractList struct {
	Contracts []domain.Contract
	Total     int
	Raw       json.RawMessage
}

type ContractResult struct {
	Contract *domain.Contract
	Raw      json.RawMessage
}

type UserList struct {
	Users      []domain.AdminUser
	Pagination *domain.Pagination
	Raw        json.RawMessage
}

type UserResult struct {
	User *domain.AdminUser
	Raw  json.RawMessage
}

func fields(raw []byte) map[string]json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}
	return envelope
}

func field(raw []byte, name string) json.RawMessage {
	value, ok := fields(raw)[name]
	if !ok || isNull(value) {
		return nil
	}
	return value
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func isArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// fieldOrRaw decodes the named field, or the whole body when it is missing.
func fieldOrRaw(raw []byte, name string, out interface{}) error {
	value := field(raw, name)
	if value == nil {
		value = raw
	}
	if isNull(value) {
		return nil
	}
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// listField decodes the named array. When it is missing the body itself is
// used if rawFallback is set and the body is an array, otherwise the list is
// empty.
func listField[T any](raw []byte, name string, rawFallback bool) ([]T, error) {
	value := field(raw, name)
	if value == nil && rawFallback && isArray(raw) {
		value = raw
	}

	list := []T{}
	if value == nil {
		return list, nil
	}
	if err := json.Unmarshal(value, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

func messageResult(raw []byte) *MessageResult {
	result := &MessageResult{Raw: raw}
	if value := field(raw, "message"); value != nil {
		_ = json.Unmarshal(value, &result.Message)
	}
	return result
}

func pagination(raw []byte) *domain.Pagination {
	value := field(raw, "pagination")
	if value == nil {
		return nil
	}
	var p domain.Pagination
	if err := json.Unmarshal(value, &p); err != nil {
		return nil
	}
	return &p
}

func total(raw []byte) int {
	value := field(raw, "total")
	if value == nil {
		return 0
	}
	var n int
	_ = json.Unmarshal(value, &n)
	return n
}
