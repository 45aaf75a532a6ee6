package models

import "time"

// Project is a student team with one guide and, once evaluation starts, one
// panel. PanelID must never reference a panel containing the guide.
type Project struct {
	ProjectID      uint       `gorm:"primaryKey;column:project_id" json:"project_id"`
	Name           string     `gorm:"column:name" json:"name"`
	GuideFacultyID uint       `gorm:"column:guide_faculty_id" json:"guide_faculty_id"`
	PanelID        *uint      `gorm:"column:panel_id" json:"panel_id,omitempty"`
	CreateAt       time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt       time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	GuideFaculty *Faculty  `gorm:"foreignKey:GuideFacultyID" json:"guide_faculty,omitempty"`
	Panel        *Panel    `gorm:"foreignKey:PanelID" json:"panel,omitempty"`
	Students     []Student `gorm:"foreignKey:ProjectID" json:"students,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// Panel is an unordered pair of two distinct faculty members who evaluate
// projects at the later review stages.
type Panel struct {
	PanelID    uint      `gorm:"primaryKey;column:panel_id" json:"panel_id"`
	Faculty1ID uint      `gorm:"column:faculty1_id" json:"faculty1_id"`
	Faculty2ID uint      `gorm:"column:faculty2_id" json:"faculty2_id"`
	CreateAt   time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	Faculty1 *Faculty `gorm:"foreignKey:Faculty1ID" json:"faculty1,omitempty"`
	Faculty2 *Faculty `gorm:"foreignKey:Faculty2ID" json:"faculty2,omitempty"`
}

func (Panel) TableName() string {
	return "panels"
}

// Includes reports whether the given faculty serves on this panel.
func (p *Panel) Includes(facultyID uint) bool {
	return p.Faculty1ID == facultyID || p.Faculty2ID == facultyID
}
