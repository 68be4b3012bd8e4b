package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type doc struct {
	enabled bool
	window  Window
}

func (d doc) IsEnabled() bool { return d.enabled }
func (d doc) Window() Window  { return d.window }

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestIsEligible(t *testing.T) {
	start := at("2024-01-01T00:00:00Z")
	end := at("2024-02-01T00:00:00Z")
	bounded := Window{Start: start, End: end}

	tests := []struct {
		name string
		doc  doc
		now  time.Time
		want bool
	}{
		{"disabled ignores schedule", doc{enabled: false}, *at("2024-01-15T00:00:00Z"), false},
		{"open window", doc{enabled: true}, *at("2024-01-15T00:00:00Z"), true},
		{"before start", doc{enabled: true, window: bounded}, start.Add(-time.Nanosecond), false},
		{"exactly at start", doc{enabled: true, window: bounded}, *start, true},
		{"inside", doc{enabled: true, window: bounded}, *at("2024-01-15T00:00:00Z"), true},
		{"just before end", doc{enabled: true, window: bounded}, end.Add(-time.Nanosecond), true},
		{"exactly at end", doc{enabled: true, window: bounded}, *end, false},
		{"after end", doc{enabled: true, window: bounded}, *at("2024-03-01T00:00:00Z"), false},
		{"start only", doc{enabled: true, window: Window{Start: start}}, *at("2030-01-01T00:00:00Z"), true},
		{"end only", doc{enabled: true, window: Window{End: end}}, *at("2000-01-01T00:00:00Z"), true},
		{"disabled inside window", doc{enabled: false, window: bounded}, *at("2024-01-15T00:00:00Z"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsEligible(tt.doc, tt.now))
		})
	}
}

func TestWindow_Validate(t *testing.T) {
	start := at("2024-01-01T00:00:00Z")
	require.NoError(t, Window{}.Validate())
	require.NoError(t, Window{Start: start}.Validate())
	require.NoError(t, Window{Start: start, End: at("2024-01-01T00:00:01Z")}.Validate())
	require.ErrorIs(t, Window{Start: start, End: start}.Validate(), ErrInvalidWindow)
	require.ErrorIs(t, Window{Start: start, End: at("2023-12-31T00:00:00Z")}.Validate(), ErrInvalidWindow)
}

func TestIntersect(t *testing.T) {
	a := Window{Start: at("2024-01-01T00:00:00Z"), End: at("2024-03-01T00:00:00Z")}
	b := Window{Start: at("2024-01-10T00:00:00Z")}
	c := Window{End: at("2024-02-01T00:00:00Z")}

	got := Intersect(a, b, c)
	require.Equal(t, *at("2024-01-10T00:00:00Z"), *got.Start)
	require.Equal(t, *at("2024-02-01T00:00:00Z"), *got.End)

	require.True(t, Intersect().IsOpen())
	require.True(t, Intersect(Window{}, Window{}).IsOpen())

	// The result does not alias its inputs.
	*got.Start = time.Time{}
	require.Equal(t, *at("2024-01-10T00:00:00Z"), *b.Start)
}
