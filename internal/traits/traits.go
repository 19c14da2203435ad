package traits

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mintprep/internal/fileutil"
)

var lower = cases.Lower(language.Und)

// Names is the immutable name table driving expansion: the collection display
// name plus the four layer names in fixed order. Layer names double as lookup
// keys into trait records and as attribute trait types.
type Names struct {
	Collection string
	Layers     []string
}

// Record is one row of the trait definition table.
type Record map[string]any

// TokenID returns the record's mandatory integer ID field.
func (r Record) TokenID() (int, error) {
	raw, ok := r["ID"]
	if !ok {
		return 0, fmt.Errorf("trait record missing ID field")
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("trait record ID %q: %w", v.String(), err)
		}
		return int(id), nil
	default:
		return 0, fmt.Errorf("trait record ID has unexpected type %T", raw)
	}
}

// Attribute is one trait_type/value pair in a token document.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Token is the metadata document generated for one trait record.
type Token struct {
	Name              string            `json:"name"`
	Image             string            `json:"image"`
	AnimationURL      string            `json:"animation_url"`
	RoyaltyPercentage int               `json:"royalty_percentage"`
	TokenID           int               `json:"tokenId"`
	Artist            string            `json:"artist"`
	Minter            string            `json:"minter"`
	Attributes        []Attribute       `json:"attributes"`
	Properties        map[string]string `json:"properties"`
}

// Options carries the collection-wide values substituted into every token.
type Options struct {
	Names             Names
	BaseURI           string
	RoyaltyPercentage int
	Artist            string
	Minter            string
}

// Slug lowercases a collection name and joins its words with underscores,
// matching the naming of the uploaded image files.
func Slug(name string) string {
	return lower.String(strings.ReplaceAll(name, " ", "_"))
}

// Build expands one trait record into a token document. Attributes and
// properties follow the fixed layer order; a record missing any layer key is
// an error.
func Build(opts Options, rec Record) (Token, error) {
	id, err := rec.TokenID()
	if err != nil {
		return Token{}, err
	}

	imageURL := opts.BaseURI + Slug(opts.Names.Collection) + "_" + strconv.Itoa(id) + ".png"
	token := Token{
		Name:              opts.Names.Collection + " #" + strconv.Itoa(id),
		Image:             imageURL,
		AnimationURL:      imageURL,
		RoyaltyPercentage: opts.RoyaltyPercentage,
		TokenID:           id,
		Artist:            opts.Artist,
		Minter:            opts.Minter,
		Attributes:        make([]Attribute, 0, len(opts.Names.Layers)),
		Properties:        make(map[string]string, len(opts.Names.Layers)),
	}

	for _, layer := range opts.Names.Layers {
		value, ok := rec[layer].(string)
		if !ok {
			return Token{}, fmt.Errorf("trait record %d missing layer %q", id, layer)
		}
		token.Attributes = append(token.Attributes, Attribute{TraitType: layer, Value: value})
		token.Properties[layer] = value
	}
	return token, nil
}

// LoadRecords reads the trait definition table, a JSON array of records.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trait table: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse trait table %s: %w", path, err)
	}
	return records, nil
}

// Generate writes one token document per record into dir, overwriting
// unconditionally, and returns the number of files written. Given identical
// inputs the output is byte-identical across runs.
func Generate(dir string, opts Options, records []Record) (int, error) {
	slug := Slug(opts.Names.Collection)
	for _, rec := range records {
		token, err := Build(opts, rec)
		if err != nil {
			return 0, err
		}
		encoded, err := json.MarshalIndent(token, "", "    ")
		if err != nil {
			return 0, fmt.Errorf("encode token %d: %w", token.TokenID, err)
		}
		target := filepath.Join(dir, fmt.Sprintf("%s_%d.json", slug, token.TokenID))
		if err := fileutil.WriteFileAtomic(target, encoded, 0o644); err != nil {
			return 0, fmt.Errorf("write token %d: %w", token.TokenID, err)
		}
	}
	return len(records), nil
}
