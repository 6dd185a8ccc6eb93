package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ByLCY/folio/record"
)

func sample() record.Value {
	return record.FromAny(map[string]any{
		"basics": map[string]any{
			"name":  "홍길동",
			"email": "hong@example.com",
		},
		"work": []any{
			map[string]any{"name": "네이버", "position": "Frontend"},
			map[string]any{"name": "카카오"},
		},
		"skills": []any{"Go", "TypeScript"},
		"empty":  "",
	})
}

func TestResolve(t *testing.T) {
	rec := sample()
	tests := []struct {
		path string
		want string
	}{
		{"basics.name", "홍길동"},
		{" basics.email ", "hong@example.com"},
		{"work[0].position", "Frontend"},
		{"work[1].name", "카카오"},
		{"skills[1]", "TypeScript"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Resolve(tt.path, rec)
			assert.Equal(t, tt.want, got.Text())
		})
	}
}

func TestResolveAbsent(t *testing.T) {
	rec := sample()
	paths := []string{
		"",
		"missing",
		"basics.missing",
		"basics.name.first",
		"work[5].name",
		"work[abc]",
		"work[",
		"work[-1]",
		"work[0][0]",
		"[0]",
		"a..b",
		"basics.",
		"work]0",
		"work[1].position",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			assert.True(t, Resolve(path, rec).IsAbsent(), "path %q", path)
		})
	}
}

func TestResolveOnNonContainer(t *testing.T) {
	assert.True(t, Resolve("a", record.String("x")).IsAbsent())
	assert.True(t, Resolve("a", record.Absent()).IsAbsent())
}

func TestResolveEmptyStringIsPresent(t *testing.T) {
	got := Resolve("empty", sample())
	assert.False(t, got.IsAbsent())
	assert.True(t, got.IsEmpty())
}

func TestSplitPair(t *testing.T) {
	l, r, ok := SplitPair("basics.email | basics.phone")
	assert.True(t, ok)
	assert.Equal(t, "basics.email", l)
	assert.Equal(t, "basics.phone", r)

	_, _, ok = SplitPair("basics.email")
	assert.False(t, ok)
}

func TestInterpolate(t *testing.T) {
	rec := sample()
	assert.Equal(t, "홍길동 <hong@example.com>", Interpolate("${basics.name} <${basics.email}>", rec))
	assert.Equal(t, "[]", Interpolate("[${basics.phone}]", rec))
	assert.Equal(t, "plain", Interpolate("plain", rec))
}
