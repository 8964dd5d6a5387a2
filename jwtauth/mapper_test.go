package jwtauth

import (
	"context"
	"encoding/json"
	"testing"
)

func TestJSONMapper(t *testing.T) {
	mapper := JSONMapper[testExtra]()

	fields, err := mapper.Dump(validExtra())
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if fields["rfid"] != "rt-1" || fields["user_id"] != "user123" {
		t.Errorf("Unexpected dumped fields: %v", fields)
	}

	extra, err := mapper.Load(map[string]any{"rfid": "rt-2", "scopes": []any{"read"}})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if extra.RefreshTokenID != "rt-2" || len(extra.Scopes) != 1 || extra.Scopes[0] != "read" {
		t.Errorf("Unexpected loaded extra: %+v", extra)
	}

	if _, err := mapper.Load(map[string]any{"user_id": "u"}); err == nil {
		t.Error("Expected validation error for missing rfid")
	}
	if _, err := mapper.Load(map[string]any{"rfid": 42}); err == nil {
		t.Error("Expected error for wrong field type")
	}
}

func TestJSONMapperKeepsIntegerPrecision(t *testing.T) {
	type idExtra struct {
		ID int64 `json:"id"`
	}
	mapper := JSONMapper[idExtra]()

	fields, err := mapper.Dump(idExtra{ID: 9007199254740993})
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if n, ok := fields["id"].(json.Number); !ok || n.String() != "9007199254740993" {
		t.Errorf("Expected json.Number 9007199254740993, got %T %v", fields["id"], fields["id"])
	}

	extra, err := mapper.Load(map[string]any{"id": json.Number("9007199254740993")})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if extra.ID != 9007199254740993 {
		t.Errorf("Expected 9007199254740993, got %d", extra.ID)
	}
}

func TestJSONMapperRejectsNonObject(t *testing.T) {
	if _, err := JSONMapper[[]string]().Dump([]string{"a"}); err == nil {
		t.Error("Expected error when extra claims do not encode as an object")
	}
}

func TestMustGetClaims(t *testing.T) {
	claims := &Claims[NoExtra]{Subject: "user123"}
	ctx := WithClaims(context.Background(), claims)

	if got := MustGetClaims[NoExtra](ctx); got != claims {
		t.Errorf("Expected stored claims, got %+v", got)
	}

	if _, ok := GetClaims[testExtra](ctx); ok {
		t.Error("Expected claims of another extension type to be absent")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for missing claims")
		}
	}()
	MustGetClaims[NoExtra](context.Background())
}
