package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Columns: map[string]string{
		"id":        "id",
		"title":     "title",
		"priority":  "priority",
		"status":    "status",
		"dueDate":   "due_date",
		"createdAt": "created_at",
	},
	Relations:    map[string]string{"owner": "Owner"},
	SearchFields: []string{"title"},
}

func TestParse_Filters(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		expected Filter
	}{
		{
			name:     "plain key is equality",
			rawQuery: "status=pending",
			expected: Filter{Column: "status", Op: OpEq, Value: "pending"},
		},
		{
			name:     "bracket operator",
			rawQuery: "priority[ne]=low",
			expected: Filter{Column: "priority", Op: OpNe, Value: "low"},
		},
		{
			name:     "numeric value is typed",
			rawQuery: "id[gte]=5",
			expected: Filter{Column: "id", Op: OpGte, Value: int64(5)},
		},
		{
			name:     "null literal",
			rawQuery: "dueDate=null",
			expected: Filter{Column: "due_date", Op: OpEq, Value: nil},
		},
		{
			name:     "in splits on commas",
			rawQuery: "status[in]=pending,completed",
			expected: Filter{Column: "status", Op: OpIn, Value: []any{"pending", "completed"}},
		},
		{
			name:     "field name maps to column name",
			rawQuery: "dueDate[lt]=2026-01-01",
			expected: Filter{Column: "due_date", Op: OpLt, Value: "2026-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			require.NoError(t, err)

			plan, err := Parse(values, testSchema)
			require.NoError(t, err)
			require.Len(t, plan.Filters, 1)
			assert.Equal(t, tt.expected, plan.Filters[0])
		})
	}
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
	}{
		{name: "unknown field", rawQuery: "password=x"},
		{name: "unknown field with operator", rawQuery: "secret[gte]=1"},
		{name: "unknown operator", rawQuery: "status[regex]=.*"},
		{name: "unknown sort field", rawQuery: "sort=-secret"},
		{name: "unknown select field", rawQuery: "fields=id,secret"},
		{name: "unknown search field", rawQuery: "search=x&searchFields=secret"},
		{name: "unknown relation", rawQuery: "include=payments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			require.NoError(t, err)

			_, err = Parse(values, testSchema)
			assert.Error(t, err)
		})
	}
}

func TestParse_ReservedKeysAreNotFilters(t *testing.T) {
	values, err := url.ParseQuery("sort=-priority&page=2&limit=10&fields=id,title&search=milk&include=owner")
	require.NoError(t, err)

	plan, err := Parse(values, testSchema)
	require.NoError(t, err)
	assert.Empty(t, plan.Filters)
	assert.Equal(t, []SortKey{{Column: "priority", Desc: true}}, plan.Sort)
	assert.Equal(t, []string{"id", "title"}, plan.Select)
	assert.Equal(t, []string{"Owner"}, plan.Preloads)
	require.NotNil(t, plan.Search)
	assert.Equal(t, "milk", plan.Search.Term)
	assert.Equal(t, []string{"title"}, plan.Search.Columns)
}

func TestParse_Pagination(t *testing.T) {
	tests := []struct {
		name          string
		rawQuery      string
		expectedPage  int
		expectedLimit int
	}{
		{name: "defaults", rawQuery: "", expectedPage: 1, expectedLimit: DefaultLimit},
		{name: "explicit values", rawQuery: "page=3&limit=25", expectedPage: 3, expectedLimit: 25},
		{name: "page floors at one", rawQuery: "page=0", expectedPage: 1, expectedLimit: DefaultLimit},
		{name: "negative page floors at one", rawQuery: "page=-4", expectedPage: 1, expectedLimit: DefaultLimit},
		{name: "limit clamps to the maximum", rawQuery: "limit=5000", expectedPage: 1, expectedLimit: MaxLimit},
		{name: "limit floors at one", rawQuery: "limit=0", expectedPage: 1, expectedLimit: 1},
		{name: "garbage falls back to defaults", rawQuery: "page=abc&limit=xyz", expectedPage: 1, expectedLimit: DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			require.NoError(t, err)

			plan, err := Parse(values, testSchema)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPage, plan.Page)
			assert.Equal(t, tt.expectedLimit, plan.Limit)
			assert.Equal(t, (tt.expectedPage-1)*tt.expectedLimit, plan.Offset())
		})
	}
}

func TestParse_Sort(t *testing.T) {
	t.Run("default sort is creation order when the schema has createdAt", func(t *testing.T) {
		plan, err := Parse(url.Values{}, testSchema)
		require.NoError(t, err)
		assert.Equal(t, []SortKey{{Column: "created_at"}}, plan.Sort)
	})

	t.Run("multi-key sort with direction prefixes", func(t *testing.T) {
		values, err := url.ParseQuery("sort=status,-priority")
		require.NoError(t, err)

		plan, err := Parse(values, testSchema)
		require.NoError(t, err)
		assert.Equal(t, []SortKey{
			{Column: "status"},
			{Column: "priority", Desc: true},
		}, plan.Sort)
	})
}

func TestParse_SearchWithoutFields(t *testing.T) {
	schema := Schema{Columns: map[string]string{"id": "id"}}
	values, err := url.ParseQuery("search=x")
	require.NoError(t, err)

	_, err = Parse(values, schema)
	assert.Error(t, err)
}
