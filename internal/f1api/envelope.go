package f1api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Envelope paths for each service.
const (
	driversPath  = "$.drivers"
	circuitsPath = "$.MRData.CircuitTable.Circuits"
	tracksPath   = "$.tracks"
	racesPath    = "$.races"
)

var (
	errMissingPath = errors.New("envelope path missing")
	errNotObject   = errors.New("entry is not an object")
	errNoIdentity  = errors.New("entry has no identity")
)

// extractList pulls the list at path out of body and decodes it into dest.
// It returns the number of entries found. A path that is absent, null or not
// a list is reported as errMissingPath.
func extractList(body []byte, path string, dest any) (int, error) {
	doc, err := oj.Parse(body)
	if err != nil {
		return 0, fmt.Errorf("parse body: %w", err)
	}
	expr, err := jp.ParseString(path)
	if err != nil {
		return 0, fmt.Errorf("parse path %q: %w", path, err)
	}
	found := expr.Get(doc)
	if len(found) == 0 || found[0] == nil {
		return 0, fmt.Errorf("%s: %w", path, errMissingPath)
	}
	list, ok := found[0].([]any)
	if !ok {
		return 0, fmt.Errorf("%s is %T, not a list: %w", path, found[0], errMissingPath)
	}
	if len(list) == 0 {
		return 0, nil
	}
	for i, item := range list {
		if _, ok := item.(map[string]any); !ok {
			return 0, fmt.Errorf("%s[%d] is %T: %w", path, i, item, errNotObject)
		}
	}
	// Points and other typed fields are decoded by their own UnmarshalJSON.
	if err := json.Unmarshal([]byte(oj.JSON(list)), dest); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return len(list), nil
}

// checkIdentity rejects decoded entries whose identifying fields are blank.
func checkIdentity(dest any) error {
	var idx int
	switch v := dest.(type) {
	case *[]Driver:
		idx = firstBlank(*v, func(d Driver) bool { return d.Number == 0 })
	case *[]Circuit:
		idx = firstBlank(*v, func(c Circuit) bool {
			return strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == ""
		})
	case *[]Track:
		idx = firstBlank(*v, func(t Track) bool { return strings.TrimSpace(t.Name) == "" })
	default:
		return nil
	}
	if idx >= 0 {
		return fmt.Errorf("entry %d: %w", idx, errNoIdentity)
	}
	return nil
}

func firstBlank[T any](items []T, blank func(T) bool) int {
	for i, item := range items {
		if blank(item) {
			return i
		}
	}
	return -1
}
