package services

import (
	"context"
	"errors"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
)

func Test_Detail_ShouldSplitRequirementsAndResponsibilities(t *testing.T) {

	assert := assert.New(t)

	jobs := &mockJobsSource{}
	jobs.On("Get", mock.Anything, mock.Anything, "j1").Return(models.Job{
		ID:               "j1",
		Title:            "Golang Developer",
		Requirements:     "Go\nSQL",
		Responsibilities: "Build APIs",
	}, nil).Once()

	result := NewDetail(jobs).Load(context.Background(), nil, "j1")

	assert.Equal(StateLoaded, result.State)
	assert.Equal("Golang Developer", result.Job.Title)
	assert.Equal([]string{"Go", "SQL"}, result.Requirements)
	assert.Equal([]string{"Build APIs"}, result.Responsibilities)
}

func Test_Detail_WhenFetchFailsOrRecordEmpty_ShouldBeNotFound(t *testing.T) {

	jobs := &mockJobsSource{}
	jobs.On("Get", mock.Anything, mock.Anything, "broken").Return(models.Job{}, errors.New("boom")).Once()
	jobs.On("Get", mock.Anything, mock.Anything, "empty").Return(models.Job{}, nil).Once()

	detail := NewDetail(jobs)

	assert.Equal(t, StateNotFound, detail.Load(context.Background(), nil, "broken").State)
	assert.Equal(t, StateNotFound, detail.Load(context.Background(), nil, "empty").State)
	assert.Equal(t, StateNotFound, detail.Load(context.Background(), nil, " ").State)
	jobs.AssertNumberOfCalls(t, "Get", 2)
}
