package traits

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testNames = Names{
	Collection: "Test Collection",
	Layers:     []string{"Background", "Body", "Outfit", "Accessory"},
}

func testRecord(id int) Record {
	return Record{
		"ID":         float64(id),
		"Background": "Blue",
		"Body":       "Robot",
		"Outfit":     "Suit",
		"Accessory":  "Hat",
	}
}

func testOptions() Options {
	return Options{
		Names:             testNames,
		BaseURI:           "ipfs://QmImages/",
		RoyaltyPercentage: 5,
		Artist:            "An Artist",
		Minter:            "0xminter",
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Test Collection", "test_collection"},
		{"NFT", "nft"},
		{"Already_Slugged", "already_slugged"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildAttributesFixedOrder(t *testing.T) {
	token, err := Build(testOptions(), testRecord(7))
	if err != nil {
		t.Fatal(err)
	}

	if len(token.Attributes) != 4 {
		t.Fatalf("got %d attributes, want 4", len(token.Attributes))
	}
	wantValues := []string{"Blue", "Robot", "Suit", "Hat"}
	for i, layer := range testNames.Layers {
		attr := token.Attributes[i]
		if attr.TraitType != layer {
			t.Errorf("attributes[%d].trait_type = %q, want %q", i, attr.TraitType, layer)
		}
		if attr.Value != wantValues[i] {
			t.Errorf("attributes[%d].value = %q, want %q", i, attr.Value, wantValues[i])
		}
		if token.Properties[layer] != wantValues[i] {
			t.Errorf("properties[%q] = %q, want %q", layer, token.Properties[layer], wantValues[i])
		}
	}
}

func TestBuildTokenFields(t *testing.T) {
	token, err := Build(testOptions(), testRecord(7))
	if err != nil {
		t.Fatal(err)
	}
	if token.Name != "Test Collection #7" {
		t.Errorf("name = %q", token.Name)
	}
	if token.Image != "ipfs://QmImages/test_collection_7.png" {
		t.Errorf("image = %q", token.Image)
	}
	if token.AnimationURL != token.Image {
		t.Errorf("animation_url = %q, want same as image", token.AnimationURL)
	}
	if token.TokenID != 7 {
		t.Errorf("tokenId = %d", token.TokenID)
	}
	if token.RoyaltyPercentage != 5 || token.Artist != "An Artist" || token.Minter != "0xminter" {
		t.Errorf("collection fields not substituted: %+v", token)
	}
}

func TestBuildMissingLayerIsFatal(t *testing.T) {
	rec := testRecord(3)
	delete(rec, "Outfit")

	_, err := Build(testOptions(), rec)
	if err == nil {
		t.Fatal("expected error for missing layer key")
	}
	if !strings.Contains(err.Error(), "Outfit") {
		t.Fatalf("error should name the missing layer, got %v", err)
	}
}

func TestBuildMissingID(t *testing.T) {
	rec := testRecord(1)
	delete(rec, "ID")
	if _, err := Build(testOptions(), rec); err == nil {
		t.Fatal("expected error for missing ID")
	}
}

func TestGenerateWritesOneFilePerRecord(t *testing.T) {
	dir := t.TempDir()
	records := []Record{testRecord(1), testRecord(2)}

	count, err := Generate(dir, testOptions(), records)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	data, err := os.ReadFile(filepath.Join(dir, "test_collection_1.json"))
	if err != nil {
		t.Fatal(err)
	}
	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		t.Fatal(err)
	}
	if token.TokenID != 1 {
		t.Fatalf("tokenId = %d", token.TokenID)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	dir := t.TempDir()
	records := []Record{testRecord(1)}

	if _, err := Generate(dir, testOptions(), records); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "test_collection_1.json"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(dir, testOptions(), records); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "test_collection_1.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("regeneration must be byte-identical for identical inputs")
	}
}

func TestLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all-traits.json")
	payload := `[{"ID": 1, "Background": "Blue", "Body": "Robot", "Outfit": "Suit", "Accessory": "Hat"}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	id, err := records[0].TokenID()
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Fatalf("ID = %d", id)
	}
}

func TestLoadRecordsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all-traits.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRecords(path); err == nil {
		t.Fatal("expected parse error")
	}
}
