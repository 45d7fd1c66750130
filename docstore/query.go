package docstore

type Op string

const (
	OpEqual        Op = "=="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

type Query struct {
	filters []Filter
	orderBy string
	desc    bool
	limit   int
}

func NewQuery() Query {
	return Query{}
}

func (q Query) Where(field string, op Op, value any) Query {
	q.filters = append(append([]Filter{}, q.filters...), Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) OrderBy(field string, desc bool) Query {
	q.orderBy = field
	q.desc = desc
	return q
}

func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

func (q Query) Filters() []Filter {
	return q.filters
}

func (q Query) Order() (string, bool) {
	return q.orderBy, q.desc
}

// compositeWithout reports the first filter field that combines with the
// query's order field but has no registered composite index. Ordering by the
// filtered field itself needs no composite index.
func (q Query) compositeWithout(hasIndex func(filterField, orderField string) bool) (string, bool) {
	if q.orderBy == "" {
		return "", false
	}
	for _, f := range q.filters {
		if f.Field == q.orderBy {
			continue
		}
		if !hasIndex(f.Field, q.orderBy) {
			return f.Field, true
		}
	}
	return "", false
}
