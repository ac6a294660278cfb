package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"portal"},
			want: []string{"portal"},
		},
		{
			name: "direct task id first token",
			in:   []string{"portal", "task-84"},
			want: []string{"portal", "tasks", "show", "task-84"},
		},
		{
			name: "direct task id after value flag",
			in:   []string{"portal", "--profile", "work", "task-84"},
			want: []string{"portal", "--profile", "work", "tasks", "show", "task-84"},
		},
		{
			name: "direct task id after equals flag",
			in:   []string{"portal", "--profile=work", "task-84"},
			want: []string{"portal", "--profile=work", "tasks", "show", "task-84"},
		},
		{
			name: "direct task id after bool flag",
			in:   []string{"portal", "--pretty", "task-84"},
			want: []string{"portal", "--pretty", "tasks", "show", "task-84"},
		},
		{
			name: "direct task id after double dash",
			in:   []string{"portal", "--", "task-84"},
			want: []string{"portal", "--", "tasks", "show", "task-84"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"portal", "tasks", "list"},
			want: []string{"portal", "tasks", "list"},
		},
		{
			name: "bare task- prefix untouched",
			in:   []string{"portal", "task-"},
			want: []string{"portal", "task-"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v; want %v", got, tc.want)
			}
		})
	}
}
