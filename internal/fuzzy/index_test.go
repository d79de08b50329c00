package fuzzy

import (
	"errors"
	"testing"
)

func sampleIndex() *Index {
	return CreateIndex([]string{"code", "name"}, []map[string]string{
		{"code": "A100", "name": "Samsung Galaxy S24"},
		{"code": "B200", "name": "Motorola  Edge 50"},
	})
}

func TestCreateIndexNormalizesFields(t *testing.T) {
	idx := sampleIndex()

	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}
	got := idx.Records[0]["name"]
	if got.Text != "samsung galaxy s24" {
		t.Errorf("text = %q, want normalized", got.Text)
	}
	if len(got.Tokens) != 3 {
		t.Errorf("tokens = %q, want 3", got.Tokens)
	}
	// Double space collapses during normalization.
	if idx.Records[1]["name"].Text != "motorola edge 50" {
		t.Errorf("text = %q", idx.Records[1]["name"].Text)
	}
}

func TestIndexMarshalParseRoundTrip(t *testing.T) {
	idx := sampleIndex()

	data, err := idx.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	parsed, err := ParseIndex(data)
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if parsed.Len() != idx.Len() {
		t.Fatalf("Len = %d, want %d", parsed.Len(), idx.Len())
	}
	if parsed.Records[0]["code"].Text != "a100" {
		t.Errorf("round trip lost data: %+v", parsed.Records[0])
	}
}

func TestParseIndexRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("not json"),
		[]byte(`{"keys":[],"records":[]}`),
		[]byte(`{"keys":["code"],"records":[{"name":{"text":"x","tokens":["x"]}}]}`),
	} {
		if _, err := ParseIndex(data); !errors.Is(err, ErrBadIndex) {
			t.Errorf("ParseIndex(%s): err = %v, want ErrBadIndex", data, err)
		}
	}
}

func TestParseIndexEmptyRecords(t *testing.T) {
	data, err := CreateIndex([]string{"code", "name"}, nil).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	idx, err := ParseIndex(data)
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if idx.Len() != 0 {
		t.Fatalf("Len = %d, want 0", idx.Len())
	}
}
