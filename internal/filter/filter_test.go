package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasksync/internal/filter"
	"tasksync/internal/service"
)

var sample = []service.Task{
	{ID: 1, Title: "A", Completed: false},
	{ID: 2, Title: "B", Completed: true},
	{ID: 3, Title: "C", Completed: false},
}

func TestApply(t *testing.T) {
	tests := []struct {
		mode filter.Mode
		want []int
	}{
		{filter.All, []int{1, 2, 3}},
		{filter.Active, []int{1, 3}},
		{filter.Completed, []int{2}},
		{filter.Mode("bogus"), []int{1, 2, 3}},
		{filter.Mode(""), []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var ids []int
			for _, task := range filter.Apply(sample, tt.mode) {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := append([]service.Task(nil), sample...)
	_ = filter.Apply(in, filter.Active)
	assert.Equal(t, sample, in)
}

func TestApply_Empty(t *testing.T) {
	assert.Empty(t, filter.Apply(nil, filter.Completed))
	assert.Empty(t, filter.Apply(nil, filter.All))
}

func TestParse(t *testing.T) {
	m, ok := filter.Parse(" Active ")
	assert.True(t, ok)
	assert.Equal(t, filter.Active, m)

	m, ok = filter.Parse("")
	assert.True(t, ok)
	assert.Equal(t, filter.All, m)

	m, ok = filter.Parse("done")
	assert.False(t, ok)
	assert.Equal(t, filter.All, m)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Completed", filter.Completed.Title())
	assert.Equal(t, "All", filter.Mode("").Title())
}
