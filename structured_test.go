package fakedata

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestBuildKeepsFieldOrder(t *testing.T) {
	gen := newTableGenerator(t, testTables())

	spec := Spec{
		{Name: "zip", Category: "postal_code"},
		{Name: "name", Category: "full_name"},
		{Name: "city", Category: "city"},
		{Name: "shout", Category: "full_name", Params: Params{"case": "upper"}},
	}
	record, err := gen.Build(spec, "fr")
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	if diff := cmp.Diff([]string{"zip", "name", "city", "shout"}, record.Fields()); diff != "" {
		t.Fatalf("Fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"12345", "Ann Lee", "Lyon", "ANN LEE"}, record.Values()); diff != "" {
		t.Fatalf("Values mismatch (-want +got):\n%s", diff)
	}
	if got, ok := record.Get("city"); !ok || got != "Lyon" {
		t.Fatalf("Get(city) = %q, %v", got, ok)
	}
	if _, ok := record.Get("country"); ok {
		t.Fatalf("Get(country) must be missing")
	}
	if record.Len() != 4 || len(record.Map()) != 4 {
		t.Fatalf("record size = %d/%d", record.Len(), len(record.Map()))
	}
}

func TestBuildFailureNamesField(t *testing.T) {
	gen := newTableGenerator(t, testTables())

	spec := Spec{
		{Name: "name", Category: "full_name"},
		{Name: "city", Category: "city"},
		{Name: "ship", Category: "spaceship"},
	}
	record, err := gen.Build(spec, "default")
	if record != nil {
		t.Fatalf("partial record returned: %v", record.Map())
	}

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Build error = %v, want *FieldError", err)
	}
	// default has no city pool, so the second field fails first
	if fieldErr.Index != 1 || fieldErr.Field != "city" || fieldErr.Category != "city" {
		t.Fatalf("FieldError = %+v", fieldErr)
	}
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("FieldError must unwrap to the cause, got %v", err)
	}
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{name: "empty name", spec: Spec{{Name: " ", Category: "city"}}},
		{name: "empty category", spec: Spec{{Name: "city"}}},
		{name: "duplicate", spec: Spec{{Name: "a", Category: "city"}, {Name: "a", Category: "country"}}},
	}

	gen := newTableGenerator(t, testTables())
	for _, tc := range tests {
		if err := tc.spec.Validate(); !errors.Is(err, ErrInvalidSpec) {
			t.Fatalf("%s: Validate error = %v, want ErrInvalidSpec", tc.name, err)
		}
		if _, err := gen.Build(tc.spec, "en"); !errors.Is(err, ErrInvalidSpec) {
			t.Fatalf("%s: Build error = %v, want ErrInvalidSpec", tc.name, err)
		}
	}

	if err := (Spec{}).Validate(); err != nil {
		t.Fatalf("empty spec must be valid, got %v", err)
	}
}

func TestParseSpec(t *testing.T) {
	want := Spec{
		{Name: "name", Category: "full_name", Params: Params{"gender": "female"}},
		{Name: "city", Category: "city"},
	}

	docs := map[string]string{
		"list.yaml": `
- name: name
  category: full_name
  params:
    gender: female
- name: city
  category: city
`,
		"doc.yml": `
fields:
  - {name: name, category: full_name, params: {gender: female}}
  - {name: city, category: city}
`,
		"list.json": `[
  {"name": "name", "category": "full_name", "params": {"gender": "female"}},
  {"name": "city", "category": "city"}
]`,
		"doc.json": `{"fields": [
  {"name": "name", "category": "full_name", "params": {"gender": "female"}},
  {"name": "city", "category": "city"}
]}`,
	}

	for name, doc := range docs {
		got, err := ParseSpec(name, []byte(doc))
		if err != nil {
			t.Fatalf("ParseSpec(%s) error = %v", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("ParseSpec(%s) mismatch (-want +got):\n%s", name, diff)
		}
	}

	for name, doc := range map[string]string{
		"spec.txt":  "name: x",
		"bad.json":  "{",
		"bad.yaml":  "fields: [",
		"dup.yaml":  "- {name: a, category: city}\n- {name: a, category: city}\n",
		"none.yaml": "- {name: a}\n",
	} {
		if _, err := ParseSpec(name, []byte(doc)); !errors.Is(err, ErrInvalidSpec) {
			t.Fatalf("ParseSpec(%s) error = %v, want ErrInvalidSpec", name, err)
		}
	}
}

func TestRecordMarshalKeepsOrder(t *testing.T) {
	record := newRecord(3)
	record.set("zeta", "1")
	record.set("alpha", "two")
	record.set("mid", "3")

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("json.Marshal error = %v", err)
	}
	if got, want := string(data), `{"zeta":"1","alpha":"two","mid":"3"}`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}

	out, err := yaml.Marshal(record)
	if err != nil {
		t.Fatalf("yaml.Marshal error = %v", err)
	}
	if got, want := string(out), "zeta: \"1\"\nalpha: two\nmid: \"3\"\n"; got != want {
		t.Fatalf("yaml = %q, want %q", got, want)
	}
}

func TestBuildManyIsAtomic(t *testing.T) {
	gen := newTableGenerator(t, map[string]*LocaleTable{
		"en": {
			Formats: map[string][]string{"postal_code": {"12345", "bad"}},
			Pools: map[string]Pool{
				"city":                {Values: []string{"Boston"}},
				"postal_code_pattern": {Values: []string{`^[0-9]{5}$`}},
			},
		},
	})
	spec := Spec{{Name: "city", Category: "city"}, {Name: "zip", Category: "postal_code"}}

	records, err := gen.BuildMany(spec, "en", 64)
	if records != nil {
		t.Fatalf("BuildMany returned %d records alongside an error", len(records))
	}
	if !errors.Is(err, ErrPatternMismatch) || !strings.Contains(err.Error(), "record #") {
		t.Fatalf("BuildMany error = %v", err)
	}

	if _, err := gen.BuildMany(spec, "en", -1); !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("BuildMany(-1) error = %v", err)
	}
	none, err := gen.BuildMany(spec, "en", 0)
	if err != nil || len(none) != 0 {
		t.Fatalf("BuildMany(0) = %v, %v", none, err)
	}
}

func TestRecordsJSON(t *testing.T) {
	gen := newTableGenerator(t, testTables())
	records, err := gen.BuildMany(Spec{
		{Name: "name", Category: "full_name"},
		{Name: "city", Category: "city"},
	}, "fr", 1)
	if err != nil {
		t.Fatalf("BuildMany error = %v", err)
	}

	data, err := RecordsJSON(records, "people")
	if err != nil {
		t.Fatalf("RecordsJSON error = %v", err)
	}
	want := `{
    "people": [
        {
            "name": "Ann Lee",
            "city": "Lyon"
        }
    ]
}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("RecordsJSON mismatch (-want +got):\n%s", diff)
	}

	empty, err := RecordsJSON(nil, "")
	if err != nil {
		t.Fatalf("RecordsJSON(nil) error = %v", err)
	}
	if got := string(empty); got != "{\n    \"records\": []\n}" {
		t.Fatalf("RecordsJSON(nil) = %q", got)
	}
}
