package jwtauth

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ExtraMapper converts the application part of the claims to and from the
// flat claim map carried in the token. Load receives only the keys that are
// not registered claims.
type ExtraMapper[T any] interface {
	Dump(extra T) (map[string]any, error)
	Load(fields map[string]any) (T, error)
}

// NoExtra is the payload for tokens that carry only registered claims.
type NoExtra struct{}

type noExtraMapper struct{}

// NoExtraMapper returns a mapper that writes nothing and ignores unknown keys.
func NoExtraMapper() ExtraMapper[NoExtra] {
	return noExtraMapper{}
}

func (noExtraMapper) Dump(NoExtra) (map[string]any, error) { return nil, nil }

func (noExtraMapper) Load(map[string]any) (NoExtra, error) { return NoExtra{}, nil }

type jsonMapper[T any] struct {
	validate *validator.Validate
}

// JSONMapper maps T through its json struct tags. On Load the result is
// validated with its `validate` tags, so a field tagged `validate:"required"`
// that is missing from the token fails the decode.
//
// T must be a struct type.
func JSONMapper[T any]() ExtraMapper[T] {
	return jsonMapper[T]{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (m jsonMapper[T]) Dump(extra T) (map[string]any, error) {
	raw, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("marshal extra claims: %w", err)
	}

	// Numbers stay json.Number so integers above 2^53 survive signing.
	fields := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("extra claims must encode as a JSON object: %w", err)
	}
	return fields, nil
}

func (m jsonMapper[T]) Load(fields map[string]any) (T, error) {
	var extra T

	raw, err := json.Marshal(fields)
	if err != nil {
		return extra, fmt.Errorf("marshal claim fields: %w", err)
	}
	if err := json.Unmarshal(raw, &extra); err != nil {
		return extra, fmt.Errorf("unmarshal extra claims: %w", err)
	}
	if err := m.validate.Struct(extra); err != nil {
		return extra, fmt.Errorf("validate extra claims: %w", err)
	}
	return extra, nil
}
