package models

// Journal indexing systems. Every journal belongs to exactly one; the
// impact_factor column holds the impact factor for WOS journals and the
// CiteScore for SCOPUS journals.
const (
	JournalTypeWOS    = "WOS"
	JournalTypeScopus = "SCOPUS"
)

// Journal represents a row in the journals catalog.
type Journal struct {
	ID           uint     `gorm:"primaryKey;column:id" json:"id"`
	Name         string   `gorm:"column:name;type:varchar(255);not null" json:"name"`
	ISSN         *string  `gorm:"column:issn;type:varchar(32)" json:"issn,omitempty"`
	ImpactFactor *float64 `gorm:"column:impact_factor" json:"impact_factor,omitempty"`
	Quartile     *string  `gorm:"column:quartile;type:varchar(8)" json:"quartile,omitempty"`
	Type         string   `gorm:"column:type;type:varchar(16);not null;index" json:"type"`
	ImageURL     *string  `gorm:"column:image_url;type:varchar(512)" json:"image_url,omitempty"`
}

// TableName overrides the table name used by Journal to `journals`.
func (Journal) TableName() string {
	return "journals"
}

// ValidJournalType reports whether t is one of the two indexing systems.
func ValidJournalType(t string) bool {
	return t == JournalTypeWOS || t == JournalTypeScopus
}
