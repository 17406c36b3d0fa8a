// Package dashboard holds the admin job board state kept per browser session.
package dashboard

import (
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/samber/lo"
	"slices"
)

// JobDraft is the admin job form. It survives failed submissions and is
// cleared only after a successful create or update, or on cancel.
type JobDraft struct {
	Title         string `form:"title" json:"title" validate:"required" label:"Title"`
	Company       string `form:"company" json:"company" validate:"required" label:"Company"`
	Location      string `form:"location" json:"location" validate:"required,job_location" label:"Location"`
	Category      string `form:"category" json:"category" validate:"required,job_category" label:"Category"`
	Salary        string `form:"salary" json:"salary" validate:"required" label:"Salary"`
	Description   string `form:"description" json:"description" validate:"required" label:"Description"`
	Qualification string `form:"qualification" json:"qualification" validate:"required" label:"Qualification"`
}

func DraftFromJob(job models.Job) JobDraft {
	return JobDraft{
		Title:         job.Title,
		Company:       job.Company,
		Location:      job.Location,
		Category:      job.Category,
		Salary:        job.Salary,
		Description:   job.Description,
		Qualification: job.Qualification,
	}
}

type Board struct {
	Jobs      []models.Job `json:"jobs"`
	Loaded    bool         `json:"loaded"`
	LoadError string       `json:"loadError,omitempty"`
	EditingID string       `json:"editingId,omitempty"`
	Draft     JobDraft     `json:"draft"`
	Alert     string       `json:"alert,omitempty"`
}

func (b *Board) Load(jobs []models.Job) {
	b.Jobs = slices.Clone(jobs)
	b.Loaded = true
	b.LoadError = ""
}

func (b *Board) FailLoad(message string) {
	b.Jobs = nil
	b.Loaded = true
	b.LoadError = message
}

func (b *Board) IsEditing() bool {
	return b.EditingID != ""
}

// Prepend adds a created job to the top of the list and clears the draft.
func (b *Board) Prepend(job models.Job) {
	b.Jobs = append([]models.Job{job}, b.Jobs...)
	b.ResetDraft()
}

// Replace swaps the job with the same id in place, leaves edit mode and
// clears the draft. Positions of other jobs are not changed.
func (b *Board) Replace(job models.Job) {
	b.Jobs = lo.Map(b.Jobs, func(existing models.Job, _ int) models.Job {
		if existing.ID == job.ID {
			return job
		}
		return existing
	})
	b.EditingID = ""
	b.ResetDraft()
}

func (b *Board) Remove(id string) {
	b.Jobs = lo.Reject(b.Jobs, func(job models.Job, _ int) bool {
		return job.ID == id
	})
	if b.EditingID == id {
		b.CancelEdit()
	}
}

func (b *Board) Find(id string) (models.Job, bool) {
	return lo.Find(b.Jobs, func(job models.Job) bool {
		return job.ID == id
	})
}

func (b *Board) StartEdit(job models.Job) {
	b.EditingID = job.ID
	b.Draft = DraftFromJob(job)
}

func (b *Board) CancelEdit() {
	b.EditingID = ""
	b.ResetDraft()
}

func (b *Board) ResetDraft() {
	b.Draft = JobDraft{}
}

// TakeAlert returns the pending alert once.
func (b *Board) TakeAlert() string {
	alert := b.Alert
	b.Alert = ""
	return alert
}

func (b Board) Clone() Board {
	b.Jobs = slices.Clone(b.Jobs)
	return b
}
