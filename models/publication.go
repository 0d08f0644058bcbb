package models

// Publication represents a row in the publications catalog. Every
// publication references exactly one journal; the relation is RESTRICT on
// delete, so a journal cannot be removed while publications still point at
// it.
type Publication struct {
	ID        uint    `gorm:"primaryKey;column:id" json:"id"`
	Authors   string  `gorm:"column:authors;type:text;not null" json:"authors"`
	Title     string  `gorm:"column:title;type:varchar(500);not null" json:"title"`
	Year      int     `gorm:"column:year;not null;index" json:"year"`
	DOI       *string `gorm:"column:doi;type:varchar(255)" json:"doi,omitempty"`
	JournalID uint    `gorm:"column:journal_id;not null;index" json:"journal_id"`

	Journal *Journal `gorm:"foreignKey:JournalID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"journal,omitempty"`
}

// TableName overrides the table name used by Publication to `publications`.
func (Publication) TableName() string {
	return "publications"
}

// PublicationWithJournal is the joined row shape returned by the
// publications listing. Journal fields are null when the join misses.
type PublicationWithJournal struct {
	ID           uint     `json:"id"`
	Authors      string   `json:"authors"`
	Title        string   `json:"title"`
	Year         int      `json:"year"`
	DOI          *string  `json:"doi,omitempty"`
	JournalID    uint     `json:"journal_id"`
	JournalName  *string  `json:"journal_name,omitempty"`
	JournalType  *string  `json:"journal_type,omitempty"`
	ImpactFactor *float64 `json:"impact_factor,omitempty"`
	Quartile     *string  `json:"quartile,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
}
