package services

import (
	"errors"
	"fmt"

	"publication-metrics-api/models"

	"gorm.io/gorm"
)

// CatalogService owns CRUD for the journal and publication catalogs.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func validateJournal(j *models.Journal) error {
	if j.Name == "" {
		return invalidField("name", "is required")
	}
	if j.Type == "" {
		return invalidField("type", "is required")
	}
	if !models.ValidJournalType(j.Type) {
		return invalidField("type", fmt.Sprintf("must be %s or %s", models.JournalTypeWOS, models.JournalTypeScopus))
	}
	if j.ImpactFactor != nil && *j.ImpactFactor < 0 {
		return invalidField("impact_factor", "must not be negative")
	}
	return nil
}

func (s *CatalogService) validatePublication(p *models.Publication) error {
	if p.Authors == "" {
		return invalidField("authors", "is required")
	}
	if p.Title == "" {
		return invalidField("title", "is required")
	}
	if p.JournalID == 0 {
		return invalidField("journal_id", "is required")
	}
	var count int64
	if err := s.db.Model(&models.Journal{}).Where("id = ?", p.JournalID).Count(&count).Error; err != nil {
		return fmt.Errorf("look up journal %d: %w", p.JournalID, err)
	}
	if count == 0 {
		return invalidField("journal_id", "referenced journal does not exist")
	}
	return nil
}

// CreateJournal validates and inserts a journal, filling in its new ID.
func (s *CatalogService) CreateJournal(j *models.Journal) error {
	if err := validateJournal(j); err != nil {
		return err
	}
	j.ID = 0
	if err := s.db.Create(j).Error; err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	return nil
}

func (s *CatalogService) GetJournal(id uint) (*models.Journal, error) {
	var j models.Journal
	if err := s.db.First(&j, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get journal %d: %w", id, err)
	}
	return &j, nil
}

// UpdateJournal overwrites every field of the journal; there are no partial
// updates, so optional fields not resupplied are cleared.
func (s *CatalogService) UpdateJournal(id uint, j *models.Journal) error {
	if err := validateJournal(j); err != nil {
		return err
	}
	var existing models.Journal
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get journal %d: %w", id, err)
	}
	j.ID = id
	if err := s.db.Save(j).Error; err != nil {
		return fmt.Errorf("update journal %d: %w", id, err)
	}
	return nil
}

// DeleteJournal removes a journal. A journal that still has publications is
// not deletable; callers surface that as a conflict.
func (s *CatalogService) DeleteJournal(id uint) error {
	var dependents int64
	if err := s.db.Model(&models.Publication{}).Where("journal_id = ?", id).Count(&dependents).Error; err != nil {
		return fmt.Errorf("count publications for journal %d: %w", id, err)
	}
	if dependents > 0 {
		return ErrJournalInUse
	}
	res := s.db.Delete(&models.Journal{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete journal %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CatalogService) ListJournals() ([]models.Journal, error) {
	var journals []models.Journal
	if err := s.db.Order("name ASC").Find(&journals).Error; err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	return journals, nil
}

// SetJournalImage stores the public URL of an uploaded cover image.
func (s *CatalogService) SetJournalImage(id uint, url string) error {
	res := s.db.Model(&models.Journal{}).Where("id = ?", id).Update("image_url", url)
	if res.Error != nil {
		return fmt.Errorf("set image for journal %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreatePublication validates and inserts a publication, filling in its new
// ID. The referenced journal must exist.
func (s *CatalogService) CreatePublication(p *models.Publication) error {
	if err := s.validatePublication(p); err != nil {
		return err
	}
	p.ID = 0
	p.Journal = nil
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("create publication: %w", err)
	}
	return nil
}

func (s *CatalogService) GetPublication(id uint) (*models.Publication, error) {
	var p models.Publication
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get publication %d: %w", id, err)
	}
	return &p, nil
}

// UpdatePublication overwrites every field, mirroring UpdateJournal.
func (s *CatalogService) UpdatePublication(id uint, p *models.Publication) error {
	if err := s.validatePublication(p); err != nil {
		return err
	}
	var existing models.Publication
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get publication %d: %w", id, err)
	}
	p.ID = id
	p.Journal = nil
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("update publication %d: %w", id, err)
	}
	return nil
}

func (s *CatalogService) DeletePublication(id uint) error {
	res := s.db.Delete(&models.Publication{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete publication %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPublicationsWithJournal returns every publication left-joined with its
// journal, newest year first, then title ascending.
func (s *CatalogService) ListPublicationsWithJournal() ([]models.PublicationWithJournal, error) {
	var rows []models.PublicationWithJournal
	err := s.db.Table("publications p").
		Select(`p.id, p.authors, p.title, p.year, p.doi, p.journal_id,
			j.name AS journal_name, j.type AS journal_type,
			j.impact_factor, j.quartile, j.image_url`).
		Joins("LEFT JOIN journals j ON j.id = p.journal_id").
		Order("p.year DESC, p.title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list publications with journals: %w", err)
	}
	return rows, nil
}
