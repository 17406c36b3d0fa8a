package models

import (
	"github.com/samber/lo"
	"strings"
	"time"
)

// NewJobPeriod is how long a job is marked as new on the home page.
const NewJobPeriod = 7 * 24 * time.Hour

var Locations = []string{
	"Pune", "Mumbai", "Bangalore", "Delhi",
	"Haryana", "Chennai", "Hyderabad", "Kolkata",
	"Ahmedabad", "Jaipur", "Remote",
}

var Categories = []string{
	"IT", "Teacher", "MBA", "Consulting", "Software Developer",
	"Finance", "Healthcare", "Education", "Marketing", "Engineering",
	"AI & ML", "Cloud Computing", "Data Science", "Product Management",
	"Sales & Marketing", "Finance & Administration", "Customer Service",
	"Cyber Security", "DevOps", "Design", "Management", "Quality Assurance",
	"Mobile Development", "Database Management", "Networking", "Technical Support",
	"Blockchain", "Game Development", "IT Support",
}

var techCategories = []string{
	"IT",
	"SOFTWARE DEVELOPER",
	"AI & ML",
	"CLOUD COMPUTING",
	"DATA SCIENCE",
	"CYBER SECURITY",
	"DEVOPS",
	"MOBILE DEVELOPMENT",
	"DATABASE MANAGEMENT",
	"NETWORKING",
	"TECHNICAL SUPPORT",
	"BLOCKCHAIN",
	"GAME DEVELOPMENT",
	"IT SUPPORT",
}

func IsValidLocation(location string) bool {
	return lo.Contains(Locations, location)
}

func IsValidCategory(category string) bool {
	return lo.Contains(Categories, category)
}

type Job struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Category         string    `json:"category"`
	Salary           string    `json:"salary"`
	Description      string    `json:"description"`
	Qualification    string    `json:"qualification"`
	Requirements     string    `json:"requirements,omitempty"`
	Responsibilities string    `json:"responsibilities,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (j Job) IsEmpty() bool {
	return j.ID == "" && j.Title == ""
}

func (j Job) IsNew(now time.Time) bool {
	if j.CreatedAt.IsZero() {
		return false
	}
	return j.CreatedAt.After(now.Add(-NewJobPeriod))
}

func (j Job) IsTech() bool {
	return lo.Contains(techCategories, strings.ToUpper(strings.TrimSpace(j.Category)))
}

func (j Job) RequirementItems() []string {
	return splitLines(j.Requirements)
}

func (j Job) ResponsibilityItems() []string {
	return splitLines(j.Responsibilities)
}

func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
}
