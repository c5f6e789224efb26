package database

import (
	"log"
	"muni_assess_backend/internal/model"

	"gorm.io/gorm"
)

type seedQuestion struct {
	Type    model.QuestionType
	Text    string
	Weight  float64
	Options string // JSON array of labels; empty means default 5-point scale
}

type seedSection struct {
	Title       string
	Description string
	Weight      float64
	Questions   []seedQuestion
}

// The default questionnaire. Section weights sum to 100 for readability of
// the global score; the engine normalizes either way.
var defaultCatalog = []seedSection{
	{
		Title:       "Energy",
		Description: "Municipal energy sourcing, consumption and efficiency.",
		Weight:      25,
		Questions: []seedQuestion{
			{Type: model.QuestionScale, Text: "How consistently are public buildings audited for energy efficiency?", Weight: 2},
			{Type: model.QuestionScale, Text: "How much of the public lighting stock uses LED or equivalent technology?", Weight: 2, Options: `["None","Up to 25%","Up to 50%","Up to 75%","More than 75%"]`},
			{Type: model.QuestionBoolean, Text: "Does the municipality generate any renewable energy on its own facilities?", Weight: 3},
			{Type: model.QuestionText, Text: "Describe ongoing or planned energy projects.", Weight: 0},
		},
	},
	{
		Title:       "Waste Management",
		Description: "Collection, separation and disposal of municipal solid waste.",
		Weight:      25,
		Questions: []seedQuestion{
			{Type: model.QuestionScale, Text: "How broadly is separate collection of recyclables available to households?", Weight: 3},
			{Type: model.QuestionBoolean, Text: "Is there a regulated destination for construction and demolition waste?", Weight: 2},
			{Type: model.QuestionBoolean, Text: "Are waste pickers or cooperatives formally integrated into collection?", Weight: 1},
			{Type: model.QuestionScale, Text: "How often do awareness campaigns on waste reduction reach residents?", Weight: 1},
		},
	},
	{
		Title:       "Water and Sanitation",
		Description: "Drinking water, sewage treatment and loss control.",
		Weight:      20,
		Questions: []seedQuestion{
			{Type: model.QuestionScale, Text: "What share of households is connected to treated sewage?", Weight: 3, Options: `["Below 20%","20-40%","40-60%","60-80%","Above 80%"]`},
			{Type: model.QuestionScale, Text: "How actively does the municipality monitor water distribution losses?", Weight: 2},
			{Type: model.QuestionBoolean, Text: "Is there a contingency plan for drought or supply interruption?", Weight: 2},
		},
	},
	{
		Title:       "Urban Mobility",
		Description: "Public transport, cycling infrastructure and accessibility.",
		Weight:      15,
		Questions: []seedQuestion{
			{Type: model.QuestionScale, Text: "How well does public transport cover the urbanized area?", Weight: 2},
			{Type: model.QuestionBoolean, Text: "Does the municipality maintain dedicated cycling infrastructure?", Weight: 1},
			{Type: model.QuestionScale, Text: "How accessible are sidewalks and crossings for people with reduced mobility?", Weight: 2},
		},
	},
	{
		Title:       "Environmental Governance",
		Description: "Institutional capacity, legislation and participation.",
		Weight:      15,
		Questions: []seedQuestion{
			{Type: model.QuestionBoolean, Text: "Is there an active municipal environmental council?", Weight: 2},
			{Type: model.QuestionBoolean, Text: "Does the municipality have its own environmental licensing capacity?", Weight: 2},
			{Type: model.QuestionScale, Text: "How frequently does the municipality publish environmental data?", Weight: 1},
			{Type: model.QuestionText, Text: "List the main environmental regulations enacted in the last four years.", Weight: 0},
		},
	},
}

// seedCatalog inserts the default questionnaire when the sections table is
// empty. Seeded content is immutable afterwards; changing the catalog between
// assessment cycles means a fresh database, not an in-place edit.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Section{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for si, ss := range defaultCatalog {
			section := model.Section{
				Title:       ss.Title,
				Description: ss.Description,
				Weight:      ss.Weight,
				Order:       si + 1,
			}
			if err := tx.Create(&section).Error; err != nil {
				return err
			}
			for qi, sq := range ss.Questions {
				question := model.Question{
					SectionID:    section.ID,
					QuestionType: sq.Type,
					Text:         sq.Text,
					Weight:       sq.Weight,
					Order:        qi + 1,
				}
				if sq.Options != "" {
					question.Options = []byte(sq.Options)
				}
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
			}
		}
		log.Printf("Seeded questionnaire with %d sections", len(defaultCatalog))
		return nil
	})
}
