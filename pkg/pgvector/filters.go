package pgvector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
)

// whereClause renders a FilterSet as a gorm WHERE fragment over the metadata
// JSONB column. Values are compared as text, which is how ->> returns them.
// An empty set renders as "TRUE".
func whereClause(fs *vectordb.FilterSet) (string, []any, error) {
	if fs.IsEmpty() {
		return "TRUE", nil, nil
	}

	var (
		parts []string
		args  []any
	)

	if fs.Must != nil && len(fs.Must.Conditions) > 0 {
		sql, a, err := joinConditions(fs.Must.Conditions, " AND ")
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, a...)
	}
	if fs.Should != nil && len(fs.Should.Conditions) > 0 {
		sql, a, err := joinConditions(fs.Should.Conditions, " OR ")
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, a...)
	}
	if fs.MustNot != nil && len(fs.MustNot.Conditions) > 0 {
		sql, a, err := joinConditions(fs.MustNot.Conditions, " OR ")
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "NOT "+sql)
		args = append(args, a...)
	}

	return strings.Join(parts, " AND "), args, nil
}

func joinConditions(conds []vectordb.FilterCondition, sep string) (string, []any, error) {
	fragments := make([]string, 0, len(conds))
	var args []any
	for _, c := range conds {
		switch cond := c.(type) {
		case *vectordb.MatchCondition:
			v, err := textValue(cond.Value)
			if err != nil {
				return "", nil, err
			}
			fragments = append(fragments, "metadata ->> ? = ?")
			args = append(args, cond.Field, v)
		case *vectordb.MatchAnyCondition:
			if len(cond.Values) == 0 {
				fragments = append(fragments, "FALSE")
				continue
			}
			values := make([]string, 0, len(cond.Values))
			for _, raw := range cond.Values {
				v, err := textValue(raw)
				if err != nil {
					return "", nil, err
				}
				values = append(values, v)
			}
			fragments = append(fragments, "metadata ->> ? IN ?")
			args = append(args, cond.Field, values)
		default:
			return "", nil, fmt.Errorf("%w: unsupported filter condition %T", vectordb.ErrVectorStore, c)
		}
	}
	return "(" + strings.Join(fragments, sep) + ")", args, nil
}

// textValue renders a scalar the way jsonb ->> would print it.
func textValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: unsupported filter value %T", vectordb.ErrVectorStore, v)
	}
}
