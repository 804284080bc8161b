// Package dataset loads the bundled breed reference dataset and normalizes
// its entries into catalog rows.
//
// Entries may come in the stored shape (size, description and defaults already
// applied) or in the raw shape scraped from the breed API, where the weight
// range is given in pounds and descriptive fields are missing:
//
//	{"id": 1, "name": "Akita", "weight": {"imperial": "70 - 130"}, "temperament": "Docile, Alert"}
//
// Missing attributes are defaulted and the size bucket and description are derived.
package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mrlokans/dogspotter/internal/entities"
)

//go:embed breeds.json
var embedded []byte

// Embedded returns the raw dataset bundled with the binary.
func Embedded() []byte {
	return embedded
}

// Load reads the dataset at path, or the embedded dataset when path is empty.
func Load(path string) ([]entities.Breed, error) {
	raw := embedded
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		raw = data
	}
	return Parse(raw)
}

// Parse normalizes a JSON array of breed entries. Entries sharing an id are
// collapsed, the last one wins. Any malformed entry fails the whole dataset.
func Parse(raw []byte) ([]entities.Breed, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("dataset is not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, fmt.Errorf("dataset must be a JSON array")
	}

	entries := root.Array()
	breeds := make([]entities.Breed, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, entry := range entries {
		breed, err := normalize(entry)
		if err != nil {
			return nil, fmt.Errorf("dataset entry %d: %w", i, err)
		}
		if idx, ok := seen[breed.ID]; ok {
			breeds[idx] = breed
			continue
		}
		seen[breed.ID] = len(breeds)
		breeds = append(breeds, breed)
	}
	return breeds, nil
}

// IDs returns the ids of the given breeds in order.
func IDs(breeds []entities.Breed) []string {
	ids := make([]string, len(breeds))
	for i, b := range breeds {
		ids[i] = b.ID
	}
	return ids
}

func normalize(entry gjson.Result) (entities.Breed, error) {
	if !entry.IsObject() {
		return entities.Breed{}, fmt.Errorf("expected object, got %s", entry.Type)
	}

	id := strings.TrimSpace(entry.Get("id").String())
	if id == "" {
		return entities.Breed{}, fmt.Errorf("missing id")
	}
	name := strings.TrimSpace(entry.Get("name").String())
	if name == "" {
		return entities.Breed{}, fmt.Errorf("breed %s: missing name", id)
	}

	size := parseSize(entry.Get("size").String())
	if size == "" {
		size = SizeFromWeight(weightImperial(entry))
	}

	rawOrigin := strings.TrimSpace(entry.Get("origin").String())
	temperament := stringList(entry.Get("temperament"))

	description := strings.TrimSpace(entry.Get("description").String())
	if description == "" {
		description = Describe(name, size, rawOrigin, strings.TrimSpace(entry.Get("bred_for").String()), strings.Join(temperament, ", "))
	}

	return entities.Breed{
		ID:          id,
		Name:        name,
		AltNames:    stringList(entry.Get("alt_names")),
		Origin:      withDefault(rawOrigin, entities.DefaultOrigin),
		Size:        size,
		CoatLength:  withDefault(entry.Get("coat_length").String(), entities.DefaultCoatLength),
		CoatType:    withDefault(entry.Get("coat_type").String(), entities.DefaultCoatType),
		Colors:      stringList(entry.Get("colors")),
		Ears:        withDefault(entry.Get("ears").String(), entities.DefaultEars),
		Tail:        withDefault(entry.Get("tail").String(), entities.DefaultTail),
		Temperament: temperament,
		Description: description,
	}, nil
}

// weightImperial supports both the flattened and the nested raw layout.
func weightImperial(entry gjson.Result) string {
	if w := entry.Get("weight_imperial"); w.Exists() {
		return w.String()
	}
	return entry.Get("weight.imperial").String()
}

// SizeFromWeight buckets an imperial weight range such as "70 - 130" by the
// average of its bounds. Unparseable ranges fall back to medium.
func SizeFromWeight(imperial string) entities.Size {
	var sum float64
	var count int
	for _, part := range strings.Split(imperial, "-") {
		n, ok := leadingInt(strings.TrimSpace(part))
		if !ok {
			continue
		}
		sum += float64(n)
		count++
	}
	if count == 0 {
		return entities.SizeMedium
	}

	avg := sum / float64(count)
	switch {
	case avg < 12:
		return entities.SizeToy
	case avg < 25:
		return entities.SizeSmall
	case avg < 50:
		return entities.SizeMedium
	case avg < 90:
		return entities.SizeLarge
	default:
		return entities.SizeGiant
	}
}

// Describe synthesizes a description for breeds that have none.
func Describe(name string, size entities.Size, origin, bredFor, temperament string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s is a %s dog", name, size)
	if origin != "" {
		fmt.Fprintf(&sb, " from %s", origin)
	}
	sb.WriteString(".")
	if bredFor != "" {
		fmt.Fprintf(&sb, " It was bred for %s.", bredFor)
	}
	if temperament != "" {
		fmt.Fprintf(&sb, " Known for being %s.", temperament)
	}
	return sb.String()
}

func parseSize(s string) entities.Size {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, size := range entities.Sizes {
		if string(size) == s {
			return size
		}
	}
	return ""
}

// leadingInt parses the leading digits of s, ignoring anything after them.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// stringList accepts a JSON array of strings or a comma-separated string.
func stringList(v gjson.Result) entities.StringList {
	list := entities.StringList{}
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				list = append(list, s)
			}
		}
	case v.Type == gjson.String:
		for _, part := range strings.Split(v.String(), ",") {
			if s := strings.TrimSpace(part); s != "" {
				list = append(list, s)
			}
		}
	}
	return list
}

func withDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
