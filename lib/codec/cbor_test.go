// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

type healthBody struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
	Builds  int    `json:"builds"`
}

func TestMarshalUnmarshal(t *testing.T) {
	original := healthBody{Status: "healthy", Service: "garnix-insights", Version: "0.3.0", Builds: 3}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded healthBody
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"zeta": 1, "alpha": "a", "mid": []int{1, 2}}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 20 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("encoding is not deterministic")
		}
	}
}

func TestJSONTagNames(t *testing.T) {
	data, err := Marshal(healthBody{Status: "healthy"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diagnostic, `"status": "healthy"`) {
		t.Errorf("json tag name not used: %s", diagnostic)
	}
	if strings.Contains(diagnostic, `"version"`) {
		t.Errorf("omitempty ignored: %s", diagnostic)
	}
}

func TestUnmarshalAnyMapType(t *testing.T) {
	data, err := Marshal(map[string]any{"run": map[string]any{"id": "r1"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	outer, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if _, ok := outer["run"].(map[string]any); !ok {
		t.Errorf("nested value is %T, want map[string]any", outer["run"])
	}
}

func TestEncoder(t *testing.T) {
	var buffer bytes.Buffer
	if err := NewEncoder(&buffer).Encode(healthBody{Status: "healthy"}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	direct, err := Marshal(healthBody{Status: "healthy"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(buffer.Bytes(), direct) {
		t.Error("Encoder and Marshal disagree")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var decoded healthBody
	if err := Unmarshal([]byte{0xff, 0x00}, &decoded); err == nil {
		t.Fatal("expected error for invalid CBOR")
	}
}
