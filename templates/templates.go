package templates

import (
	"fmt"
	"strings"

	"deckforge/models"
)

// Template is a starter deck a user can fill in
type Template struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Deck        models.Deck `json:"deck"`
}

// Summary is the listing form of a template
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SlideCount  int    `json:"slideCount"`
}

func z(v float64) *float64 { return &v }

func visionSlide(id, title, notes string, points []string) models.Slide {
	return models.Slide{
		ID:           id,
		Title:        title,
		Layout:       models.LayoutVision,
		Content:      points,
		SpeakerNotes: notes,
		Elements: []models.Element{
			{Type: models.ElementText, X: 8, Y: 28, W: 40, H: 50, Content: strings.Join(points, "\n"), FontSize: 20, ZIndex: z(2)},
			{Type: models.ElementImage, Source: models.SourceGenerated, X: 54, Y: 24, W: 38, H: 58, Content: title, ZIndex: z(1)},
		},
	}
}

func gridItems(lines ...string) []models.GridItem {
	items := make([]models.GridItem, len(lines))
	for i, l := range lines {
		title, content, ok := strings.Cut(l, ":")
		if !ok {
			items[i] = models.GridItem{Title: l}
			continue
		}
		items[i] = models.GridItem{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	}
	return items
}

var all = []Template{
	{
		ID:          "pitch_deck",
		Name:        "Startup Pitch Deck",
		Description: "Classic startup pitch structure",
		Deck: models.Deck{
			Title:    "Company Name",
			MainGoal: "Revolutionizing the industry with AI",
			Slides: []models.Slide{
				{
					ID: "problem", Title: "Problem", Layout: models.LayoutBullets,
					Content:      []string{"Current market inefficiency", "Pain points for users", "Why existing solutions fail"},
					SpeakerNotes: "Start with a relatable story. Define the problem clearly.",
				},
				visionSlide("solution", "Solution", "Show, don't just tell. Explain the magic.",
					[]string{"Our unique value proposition", "How it works", "Key benefits"}),
				{
					ID: "market", Title: "Market Size", Layout: models.LayoutCenter,
					Content:      []string{"TAM, SAM, SOM analysis"},
					SpeakerNotes: "Prove the market is big enough to matter.",
				},
				{
					ID: "model", Title: "Business Model", Layout: models.LayoutGrid3,
					Content:      []string{"Revenue Streams", "Pricing Strategy", "Sales Channels"},
					GridItems:    gridItems("Revenue Streams: subscriptions and services", "Pricing Strategy: tiered per seat", "Sales Channels: direct and partners"),
					SpeakerNotes: "How do we make money?",
				},
			},
		},
	},
	{
		ID:          "quarterly_review",
		Name:        "Quarterly Business Review",
		Description: "Review quarterly performance and next steps",
		Deck: models.Deck{
			Title:    "Q1 Business Review",
			MainGoal: "Analyzing performance and setting course for Q2",
			Slides: []models.Slide{
				{
					ID: "summary", Title: "Executive Summary", Layout: models.LayoutBullets,
					Content:      []string{"Key achievements", "Missed targets", "Overall sentiment"},
					SpeakerNotes: "High level overview for executives.",
				},
				{
					ID: "metrics", Title: "Key Metrics", Layout: models.LayoutGrid4,
					Content:      []string{"Revenue: +20%", "Users: +15%", "Churn: -5%", "NPS: 72"},
					GridItems:    gridItems("Revenue: +20%", "Users: +15%", "Churn: -5%", "NPS: 72"),
					SpeakerNotes: "Data driven insights.",
				},
				{
					ID: "learnings", Title: "Challenges & Learnings", Layout: models.LayoutComparison,
					Content:      []string{"Challenge: Supply Chain", "Learning: Diversify vendors"},
					SpeakerNotes: "Be honest about what went wrong and how we fixed it.",
				},
				{
					ID: "roadmap", Title: "Roadmap for Next Quarter", Layout: models.LayoutFlow,
					Content:      []string{"Month 1: Launch feature X", "Month 2: Marketing push", "Month 3: Optimize"},
					SpeakerNotes: "Clear timeline for next steps.",
				},
			},
		},
	},
	{
		ID:          "education",
		Name:        "Educational Lecture",
		Description: "Structure for teaching a new concept",
		Deck: models.Deck{
			Title:    "Introduction to Topic",
			MainGoal: "Understanding the core principles",
			Slides: []models.Slide{
				{
					ID: "objectives", Title: "Learning Objectives", Layout: models.LayoutBullets,
					Content:      []string{"Define key terms", "Understand historical context", "Apply concepts to real world"},
					SpeakerNotes: "Set expectations for the students.",
				},
				visionSlide("concept", "Core Concept 1", "Explain the first major point in detail.",
					[]string{"Definition", "Example", "Visual Diagram"}),
				{
					ID: "case", Title: "Case Study", Layout: models.LayoutGrid2,
					Content:      []string{"Scenario A", "Outcome A"},
					GridItems:    gridItems("Scenario A: the situation", "Outcome A: what happened"),
					SpeakerNotes: "Use a concrete example to reinforce learning.",
				},
				{
					ID: "recap", Title: "Summary & Quiz", Layout: models.LayoutBullets,
					Content:      []string{"Recap main points", "Question 1", "Question 2"},
					SpeakerNotes: "Check for understanding.",
				},
			},
		},
	},
}

// List returns the template summaries in catalog order
func List() []Summary {
	out := make([]Summary, len(all))
	for i, t := range all {
		out[i] = Summary{ID: t.ID, Name: t.Name, Description: t.Description, SlideCount: len(t.Deck.Slides)}
	}
	return out
}

// Get returns a copy of the template with id
func Get(id string) (*Template, error) {
	for _, t := range all {
		if t.ID == id {
			out := t
			out.Deck = *t.Deck.Clone()
			return &out, nil
		}
	}
	return nil, fmt.Errorf("template %q: %w", id, models.ErrNotFound)
}
