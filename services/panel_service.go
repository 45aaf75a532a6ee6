package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"capstone-tracker-api/models"

	"gorm.io/gorm"
)

// PanelService creates evaluation panels and assigns them to projects under
// the no-self-evaluation constraint.
type PanelService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPanelService(db *gorm.DB) *PanelService {
	return &PanelService{db: db, now: time.Now}
}

// PairFaculties partitions the pool, in its stored order, into consecutive
// disjoint pairs. An odd pool pairs the last faculty with the first, who then
// serves on two panels; coverage wins over fairness.
func PairFaculties(facultyIDs []uint) ([][2]uint, error) {
	if len(facultyIDs) < 2 {
		return nil, ValidationError("Not enough faculty members to create panels")
	}
	pairs := make([][2]uint, 0, len(facultyIDs)/2+1)
	for i := 0; i+1 < len(facultyIDs); i += 2 {
		pairs = append(pairs, [2]uint{facultyIDs[i], facultyIDs[i+1]})
	}
	if len(facultyIDs)%2 != 0 {
		pairs = append(pairs, [2]uint{facultyIDs[len(facultyIDs)-1], facultyIDs[0]})
	}
	return pairs, nil
}

// ChoosePanel picks the least-used panel that does not contain the guide,
// breaking ties by first-encountered order. It returns nil when every panel
// is ineligible.
func ChoosePanel(panels []models.Panel, usage map[uint]int, guideID uint) *models.Panel {
	var best *models.Panel
	for i := range panels {
		p := &panels[i]
		if p.Includes(guideID) {
			continue
		}
		if best == nil || usage[p.PanelID] < usage[best.PanelID] {
			best = p
		}
	}
	return best
}

// CreatePanel records a new panel of two distinct faculty members. Conflicts
// of interest are not checked here; they are enforced at assignment time.
func (s *PanelService) CreatePanel(faculty1ID, faculty2ID uint) (*models.Panel, error) {
	if faculty1ID == 0 || faculty2ID == 0 || faculty1ID == faculty2ID {
		return nil, ValidationError("Two distinct faculty IDs are required")
	}
	panel := models.Panel{
		Faculty1ID: faculty1ID,
		Faculty2ID: faculty2ID,
		CreateAt:   s.now(),
	}
	if err := s.db.Create(&panel).Error; err != nil {
		return nil, InternalError("Failed to create panel", err)
	}
	return &panel, nil
}

// AutoCreateResult is the aggregate outcome of AutoCreatePanels.
type AutoCreateResult struct {
	PanelsCreated int  `json:"panels_created"`
	Replaced      bool `json:"replaced"`
}

// AutoCreatePanels builds panels from the whole faculty pool. Existing panels
// block the run unless force is set, in which case project references are
// nulled out and the panels deleted before recreation.
func (s *PanelService) AutoCreatePanels(force bool) (*AutoCreateResult, error) {
	var existing int64
	if err := s.db.Model(&models.Panel{}).Count(&existing).Error; err != nil {
		return nil, InternalError("Failed to count panels", err)
	}

	if existing > 0 && !force {
		return nil, ConflictError(fmt.Sprintf(
			"%d panels already exist. Use force=true to recreate panels.", existing))
	}

	replaced := false
	if existing > 0 {
		if err := s.db.Model(&models.Project{}).Where("panel_id IS NOT NULL").
			Update("panel_id", nil).Error; err != nil {
			return nil, InternalError("Failed to detach panels from projects", err)
		}
		if err := s.db.Where("1 = 1").Delete(&models.Panel{}).Error; err != nil {
			return nil, InternalError("Failed to delete existing panels", err)
		}
		log.Printf("Deleted %d existing panels due to force recreate", existing)
		replaced = true
	}

	var faculties []models.Faculty
	if err := s.db.Where("role = ? AND delete_at IS NULL", models.RoleFaculty).
		Order("faculty_id ASC").Find(&faculties).Error; err != nil {
		return nil, InternalError("Failed to load faculty pool", err)
	}

	ids := make([]uint, len(faculties))
	for i, f := range faculties {
		ids[i] = f.FacultyID
	}
	pairs, err := PairFaculties(ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, pair := range pairs {
		panel := models.Panel{Faculty1ID: pair[0], Faculty2ID: pair[1], CreateAt: now}
		if err := s.db.Create(&panel).Error; err != nil {
			return nil, InternalError("Failed to create panel", err)
		}
	}
	return &AutoCreateResult{PanelsCreated: len(pairs), Replaced: replaced}, nil
}

// AutoAssignResult is the aggregate outcome of AutoAssignPanels. Skipped
// projects are logged individually but never fail the run.
type AutoAssignResult struct {
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
}

// AutoAssignPanels attaches panels to every guide-only project, greedily
// picking the least-loaded eligible panel per project. Usage counters start
// from the current per-panel project counts so new assignments build on top
// of pre-existing load.
func (s *PanelService) AutoAssignPanels() (*AutoAssignResult, error) {
	var panels []models.Panel
	if err := s.db.Order("panel_id ASC").Find(&panels).Error; err != nil {
		return nil, InternalError("Failed to load panels", err)
	}

	var candidates []models.Project
	if err := s.db.Where("panel_id IS NULL AND delete_at IS NULL").
		Order("project_id ASC").Find(&candidates).Error; err != nil {
		return nil, InternalError("Failed to load unassigned projects", err)
	}

	if len(candidates) == 0 {
		return &AutoAssignResult{}, nil
	}
	if len(panels) == 0 {
		return nil, ValidationError("No panels available")
	}

	usage := make(map[uint]int, len(panels))
	for _, p := range panels {
		var count int64
		if err := s.db.Model(&models.Project{}).
			Where("panel_id = ? AND delete_at IS NULL", p.PanelID).
			Count(&count).Error; err != nil {
			return nil, InternalError("Failed to count panel load", err)
		}
		usage[p.PanelID] = int(count)
	}

	result := &AutoAssignResult{}
	now := s.now()
	for i := range candidates {
		project := &candidates[i]
		panel := ChoosePanel(panels, usage, project.GuideFacultyID)
		if panel == nil {
			log.Printf("No eligible panel found for project %q, leaving unassigned", project.Name)
			result.Skipped++
			continue
		}
		project.PanelID = &panel.PanelID
		project.UpdateAt = now
		if err := s.db.Save(project).Error; err != nil {
			return nil, InternalError("Failed to assign panel to project", err)
		}
		usage[panel.PanelID]++
		result.Assigned++
	}
	return result, nil
}

// AssignPanelToProject creates a brand-new panel from two faculty members and
// attaches it to the project. The guide may not sit on the panel.
func (s *PanelService) AssignPanelToProject(facultyIDs []uint, projectID uint) (*models.Project, error) {
	if len(facultyIDs) != 2 {
		return nil, ValidationError("Exactly 2 panel faculty IDs required")
	}
	if facultyIDs[0] == facultyIDs[1] {
		return nil, ValidationError("Panel faculty members must be distinct")
	}

	var count int64
	if err := s.db.Model(&models.Faculty{}).
		Where("faculty_id IN ? AND delete_at IS NULL", facultyIDs).
		Count(&count).Error; err != nil {
		return nil, InternalError("Failed to load faculty", err)
	}
	if count != 2 {
		return nil, NotFoundError("One or both faculty not found")
	}

	var project models.Project
	if err := s.db.Where("project_id = ? AND delete_at IS NULL", projectID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Project not found")
		}
		return nil, InternalError("Failed to load project", err)
	}

	if project.GuideFacultyID == facultyIDs[0] || project.GuideFacultyID == facultyIDs[1] {
		return nil, ConflictError("Guide faculty cannot be a panel member for their own project")
	}

	panel := models.Panel{Faculty1ID: facultyIDs[0], Faculty2ID: facultyIDs[1], CreateAt: s.now()}
	if err := s.db.Create(&panel).Error; err != nil {
		return nil, InternalError("Failed to create panel", err)
	}

	project.PanelID = &panel.PanelID
	project.UpdateAt = s.now()
	if err := s.db.Save(&project).Error; err != nil {
		return nil, InternalError("Failed to assign panel to project", err)
	}
	project.Panel = &panel
	return &project, nil
}

// AssignExistingPanelToProject attaches an existing panel to a project, or
// detaches the current one when panelID is nil.
func (s *PanelService) AssignExistingPanelToProject(panelID *uint, projectID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("project_id = ? AND delete_at IS NULL", projectID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Project not found")
		}
		return nil, InternalError("Failed to load project", err)
	}

	if panelID == nil {
		project.PanelID = nil
		project.UpdateAt = s.now()
		if err := s.db.Save(&project).Error; err != nil {
			return nil, InternalError("Failed to detach panel from project", err)
		}
		return &project, nil
	}

	var panel models.Panel
	if err := s.db.Where("panel_id = ?", *panelID).First(&panel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Panel not found")
		}
		return nil, InternalError("Failed to load panel", err)
	}
	if panel.Includes(project.GuideFacultyID) {
		return nil, ConflictError("Guide faculty cannot be a panel member for their own project")
	}

	project.PanelID = &panel.PanelID
	project.UpdateAt = s.now()
	if err := s.db.Save(&project).Error; err != nil {
		return nil, InternalError("Failed to assign panel to project", err)
	}
	project.Panel = &panel
	return &project, nil
}

// DeletePanel removes a panel and nulls out every project that referenced it.
// Projects themselves are never deleted.
func (s *PanelService) DeletePanel(panelID uint) error {
	var panel models.Panel
	if err := s.db.Where("panel_id = ?", panelID).First(&panel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("No panel found for the provided ID")
		}
		return InternalError("Failed to load panel", err)
	}

	if err := s.db.Delete(&panel).Error; err != nil {
		return InternalError("Failed to delete panel", err)
	}
	if err := s.db.Model(&models.Project{}).Where("panel_id = ?", panelID).
		Update("panel_id", nil).Error; err != nil {
		return InternalError("Failed to detach panel from projects", err)
	}
	return nil
}
