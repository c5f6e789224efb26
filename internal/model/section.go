package model

// Section is one weighted evaluation dimension of the questionnaire
// (energy, waste, mobility, ...). Sections and their questions are seeded
// once and read-only afterwards.
// swagger:model Section
type Section struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Weight      float64    `gorm:"default:0" json:"weight"` // relative contribution to the global score
	Order       int        `gorm:"default:0" json:"order"`
	Questions   []Question `gorm:"foreignKey:SectionID" json:"questions,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}
