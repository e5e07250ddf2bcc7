package query

import (
	"math"
	"testing"

	"github.com/gomart/gomart/internal/store"
)

func TestBuild_Empty(t *testing.T) {
	spec := Build(map[string]any{})

	if len(spec.SeekConditions) != 0 {
		t.Fatalf("seek conditions: esperaba vacío, got %v", spec.SeekConditions)
	}
	if spec.FieldsToReturn != "" {
		t.Fatalf("fieldsToReturn: got %q", spec.FieldsToReturn)
	}
	if spec.SortCondition != "" {
		t.Fatalf("sortCondition: got %q", spec.SortCondition)
	}
	if spec.Skip != 0 {
		t.Fatalf("skip: got %d", spec.Skip)
	}
	if spec.Limit != math.MaxInt64 {
		t.Fatalf("limit: got %d", spec.Limit)
	}
	if spec.Count {
		t.Fatal("count: esperaba false")
	}
}

func TestBuild_Full(t *testing.T) {
	spec := Build(map[string]any{
		"fields": "a,b",
		"sort":   "-x,y",
		"skip":   "5",
		"limit":  "10",
		"count":  "true",
		"status": "active",
	})

	if spec.FieldsToReturn != "a b" {
		t.Fatalf("fieldsToReturn: got %q", spec.FieldsToReturn)
	}
	if spec.SortCondition != "-x y" {
		t.Fatalf("sortCondition: got %q", spec.SortCondition)
	}
	if spec.Skip != 5 || spec.Limit != 10 {
		t.Fatalf("skip/limit: got %d/%d", spec.Skip, spec.Limit)
	}
	if !spec.Count {
		t.Fatal("count: esperaba true")
	}
	if len(spec.SeekConditions) != 1 || spec.SeekConditions["status"] != "active" {
		t.Fatalf("seekConditions: got %v", spec.SeekConditions)
	}
}

func TestBuild_MalformedNumbersDegrade(t *testing.T) {
	spec := Build(map[string]any{"skip": "-3", "limit": "abc"})
	if spec.Skip != 0 {
		t.Fatalf("skip negativo debe clampearse a 0, got %d", spec.Skip)
	}
	if spec.Limit != math.MaxInt64 {
		t.Fatalf("limit inválido debe degradar a MaxInt64, got %d", spec.Limit)
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	options := map[string]any{"fields": "a", "status": "active"}
	_ = Build(options)
	if _, ok := options["fields"]; !ok {
		t.Fatal("Build no debe mutar el mapping de entrada")
	}
}

func TestBuildWildcardOptions(t *testing.T) {
	conds := BuildWildcardOptions("name,description", "shoe")

	or, ok := conds[store.OrKey].([]store.Conditions)
	if !ok {
		t.Fatalf("esperaba fragmento $or, got %v", conds)
	}
	if len(or) != 2 {
		t.Fatalf("esperaba 2 ramas, got %d", len(or))
	}
	for i, field := range []string{"name", "description"} {
		rx, ok := or[i][field].(store.Regex)
		if !ok {
			t.Fatalf("rama %d: esperaba Regex sobre %q, got %v", i, field, or[i])
		}
		if rx.Pattern != "shoe" || !rx.CaseInsensitive {
			t.Fatalf("rama %d: regex inesperado %+v", i, rx)
		}
	}
}

func TestParseSort(t *testing.T) {
	keys := ParseSort("-x y")
	if len(keys) != 2 {
		t.Fatalf("got %v", keys)
	}
	if keys[0].Field != "x" || !keys[0].Desc {
		t.Fatalf("primera clave: %+v", keys[0])
	}
	if keys[1].Field != "y" || keys[1].Desc {
		t.Fatalf("segunda clave: %+v", keys[1])
	}
}
