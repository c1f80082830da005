package helpers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

// NullIfEmpty converts an empty (or blank) string to nil so it is stored as SQL NULL.
func NullIfEmpty(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// NullIfZero converts a zero id to nil.
func NullIfZero(i int64) interface{} {
	if i == 0 {
		return nil
	}
	return i
}

// ColumnSet is a fixed allow-list of columns that may appear in an UPDATE ... SET clause.
type ColumnSet map[string]struct{}

// NewColumnSet builds a ColumnSet from column names
func NewColumnSet(columns ...string) ColumnSet {
	set := make(ColumnSet, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

// BuildSetMap checks every column of changes against allowed and returns a copy
// usable with squirrel's SetMap. An empty change set is a validation error.
func BuildSetMap(changes map[string]interface{}, allowed ColumnSet) (map[string]interface{}, error) {
	if len(changes) == 0 {
		return nil, apperrors.NewValidationError("", "no fields to update")
	}

	setMap := make(map[string]interface{}, len(changes))
	var rejected []string
	for column, value := range changes {
		if _, ok := allowed[column]; !ok {
			rejected = append(rejected, column)
			continue
		}
		setMap[column] = value
	}

	if len(rejected) > 0 {
		sort.Strings(rejected)
		return nil, apperrors.NewValidationError(rejected[0], fmt.Sprintf("field(s) cannot be updated: %s", strings.Join(rejected, ", ")))
	}
	return setMap, nil
}
