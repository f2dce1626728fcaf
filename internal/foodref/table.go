// Package foodref holds the static nutrition lookup table. The table is
// loaded once at startup from a bundled CSV file and is read-only afterwards.
package foodref

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// traceAmount replaces the dataset's "t" (trace) marker in nutrient columns.
const traceAmount = 0.1

// Entry is one food row with per-reference-serving macro values.
type Entry struct {
	Food     string  `json:"food"`
	Category string  `json:"category"`
	Measure  string  `json:"measure"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	SatFat   float64 `json:"satFat"`
	Fiber    float64 `json:"fiber"`
	Carbs    float64 `json:"carbs"`
}

// Table is the in-memory food reference. A zero Table is empty and usable.
type Table struct {
	entries []Entry
}

// Load parses the reference CSV. Column order follows the header row;
// missing or malformed nutrient values coerce to zero so one bad row never
// poisons the table.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open food reference: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse food reference: %w", err)
	}
	if len(records) < 2 {
		return &Table{}, nil
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	table := &Table{entries: make([]Entry, 0, len(records)-1)}
	for _, record := range records[1:] {
		get := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		entry := Entry{
			Food:     get("Food"),
			Category: get("Category"),
			Measure:  get("Measure"),
			Grams:    parseNutrient(get("Grams")),
			Calories: parseNutrient(get("Calories")),
			Protein:  parseNutrient(get("Protein")),
			Fat:      parseNutrient(get("Fat")),
			SatFat:   parseNutrient(get("Sat.Fat")),
			Fiber:    parseNutrient(get("Fiber")),
			Carbs:    parseNutrient(get("Carbs")),
		}
		if entry.Food == "" {
			continue
		}
		table.entries = append(table.entries, entry)
	}
	return table, nil
}

func parseNutrient(raw string) float64 {
	if raw == "" {
		return 0
	}
	if strings.EqualFold(raw, "t") {
		return traceAmount
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return value
}

// Len reports the number of loaded rows.
func (t *Table) Len() int {
	return len(t.entries)
}

// All returns the table rows in file order.
func (t *Table) All() []Entry {
	return t.entries
}

// Get returns the row at index, or nil when out of range.
func (t *Table) Get(index int) *Entry {
	if index < 0 || index >= len(t.entries) {
		return nil
	}
	entry := t.entries[index]
	return &entry
}

// Match pairs a row with its table index so callers can scale it later.
type Match struct {
	Index int   `json:"index"`
	Entry Entry `json:"entry"`
}

// Search does a case-insensitive substring match on the food name, preserving
// file order, capped at limit results.
func (t *Table) Search(query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}
	matches := []Match{}
	for i, entry := range t.entries {
		if strings.Contains(strings.ToLower(entry.Food), query) {
			matches = append(matches, Match{Index: i, Entry: entry})
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

// Categories returns the distinct category names, sorted.
func (t *Table) Categories() []string {
	seen := map[string]bool{}
	categories := []string{}
	for _, entry := range t.entries {
		if entry.Category == "" || seen[entry.Category] {
			continue
		}
		seen[entry.Category] = true
		categories = append(categories, entry.Category)
	}
	sort.Strings(categories)
	return categories
}

// ByCategory returns all rows in a category, file order.
func (t *Table) ByCategory(category string) []Match {
	matches := []Match{}
	for i, entry := range t.entries {
		if strings.EqualFold(entry.Category, category) {
			matches = append(matches, Match{Index: i, Entry: entry})
		}
	}
	return matches
}

// ByNutrient filters rows whose named nutrient falls inside [min, max] and
// returns the top results ordered by that nutrient descending. A negative
// bound disables that side of the range.
func (t *Table) ByNutrient(nutrient string, min, max float64, limit int) []Match {
	value := nutrientSelector(nutrient)
	if value == nil || limit <= 0 {
		return nil
	}
	matches := []Match{}
	for i, entry := range t.entries {
		v := value(entry)
		if min >= 0 && v < min {
			continue
		}
		if max >= 0 && v > max {
			continue
		}
		matches = append(matches, Match{Index: i, Entry: entry})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return value(matches[i].Entry) > value(matches[j].Entry)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func nutrientSelector(name string) func(Entry) float64 {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "calories":
		return func(e Entry) float64 { return e.Calories }
	case "protein":
		return func(e Entry) float64 { return e.Protein }
	case "fat":
		return func(e Entry) float64 { return e.Fat }
	case "sat.fat", "satfat", "saturated fat":
		return func(e Entry) float64 { return e.SatFat }
	case "fiber":
		return func(e Entry) float64 { return e.Fiber }
	case "carbs":
		return func(e Entry) float64 { return e.Carbs }
	default:
		return nil
	}
}

// Serving is a linearly scaled portion of a reference row.
type Serving struct {
	Food     string  `json:"food"`
	Measure  string  `json:"measure"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	SatFat   float64 `json:"satFat"`
	Fiber    float64 `json:"fiber"`
	Carbs    float64 `json:"carbs"`
}

// ScaleServing scales every macro of the row at index by
// desiredGrams/referenceGrams. Returns nil for an invalid index, non-positive
// grams, or a row without a usable reference weight.
func (t *Table) ScaleServing(index int, desiredGrams float64) *Serving {
	entry := t.Get(index)
	if entry == nil || desiredGrams <= 0 || entry.Grams <= 0 {
		return nil
	}
	multiplier := desiredGrams / entry.Grams
	return &Serving{
		Food:     entry.Food,
		Measure:  fmt.Sprintf("%.0fg", desiredGrams),
		Grams:    desiredGrams,
		Calories: entry.Calories * multiplier,
		Protein:  entry.Protein * multiplier,
		Fat:      entry.Fat * multiplier,
		SatFat:   entry.SatFat * multiplier,
		Fiber:    entry.Fiber * multiplier,
		Carbs:    entry.Carbs * multiplier,
	}
}
