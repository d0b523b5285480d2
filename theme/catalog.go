package theme

import "deckforge/models"

// DefaultID is the theme used when an id is empty or unknown
const DefaultID = "premium"

var builtin = []models.Theme{
	{
		ID:   "premium",
		Name: "Premium Enterprise",
		Colors: models.ThemeColors{
			Primary: "1E1B4B", Secondary: "4338CA", Accent: "6366F1",
			Background: "FFFFFF", BackgroundAlt: "F3F4F6",
			TextMain: "334155", TextLight: "94A3B8", ShapeFill: "EEF2FF",
		},
		Fonts:          models.ThemeFonts{Main: "Helvetica Neue", Heading: "Helvetica Neue"},
		Decor:          models.DecorModern,
		BackgroundFile: "premium.jpg",
	},
	{
		ID:   "minimal",
		Name: "Swiss Minimal",
		Colors: models.ThemeColors{
			Primary: "000000", Secondary: "333333", Accent: "000000",
			Background: "FFFFFF", BackgroundAlt: "FAFAFA",
			TextMain: "171717", TextLight: "737373", ShapeFill: "F5F5F5",
		},
		Fonts:          models.ThemeFonts{Main: "Arial", Heading: "Arial"},
		Decor:          models.DecorNone,
		BackgroundFile: "minimal.jpg",
	},
	{
		ID:   "nature",
		Name: "Organic Growth",
		Colors: models.ThemeColors{
			Primary: "14532D", Secondary: "166534", Accent: "22C55E",
			Background: "FEFCE8", BackgroundAlt: "F0FDF4",
			TextMain: "3F3F46", TextLight: "71717A", ShapeFill: "DCFCE7",
		},
		Fonts:          models.ThemeFonts{Main: "Georgia", Heading: "Georgia"},
		Decor:          models.DecorOrganic,
		BackgroundFile: "nature.jpg",
	},
	{
		ID:   "pop",
		Name: "Creative Pop",
		Colors: models.ThemeColors{
			Primary: "111827", Secondary: "DB2777", Accent: "F59E0B",
			Background: "FFFBEB", BackgroundAlt: "FFF1F2",
			TextMain: "1F2937", TextLight: "6B7280", ShapeFill: "FCE7F3",
		},
		Fonts:          models.ThemeFonts{Main: "Verdana", Heading: "Verdana"},
		Decor:          models.DecorBold,
		BackgroundFile: "pop.jpg",
	},
	{
		ID:   "cyber",
		Name: "Tech Future",
		Colors: models.ThemeColors{
			Primary: "0F172A", Secondary: "3B82F6", Accent: "06B6D4",
			Background: "020617", BackgroundAlt: "1E293B",
			TextMain: "E2E8F0", TextLight: "94A3B8", ShapeFill: "1E293B",
		},
		Fonts:          models.ThemeFonts{Main: "Courier New", Heading: "Courier New"},
		Decor:          models.DecorModern,
		BackgroundFile: "cyber.jpg",
	},
	{
		ID:   "luxury",
		Name: "Luxury Gold",
		Colors: models.ThemeColors{
			Primary: "1C1917", Secondary: "78716C", Accent: "DCA54C",
			Background: "0C0A09", BackgroundAlt: "1C1917",
			TextMain: "F5F5F4", TextLight: "A8A29E", ShapeFill: "292524",
		},
		Fonts:          models.ThemeFonts{Main: "Times New Roman", Heading: "Times New Roman"},
		Decor:          models.DecorModern,
		BackgroundFile: "luxury.jpg",
	},
	{
		ID:   "japanese",
		Name: "Japanese Zen",
		Colors: models.ThemeColors{
			Primary: "451A03", Secondary: "92400E", Accent: "B91C1C",
			Background: "FFFAF0", BackgroundAlt: "FEF2F2",
			TextMain: "451A03", TextLight: "78350F", ShapeFill: "FFEDD5",
		},
		Fonts:          models.ThemeFonts{Main: "Yu Mincho", Heading: "Yu Mincho"},
		Decor:          models.DecorOrganic,
		BackgroundFile: "japanese.jpg",
	},
	{
		ID:   "sky",
		Name: "Sky Blue",
		Colors: models.ThemeColors{
			Primary: "0369A1", Secondary: "0EA5E9", Accent: "38BDF8",
			Background: "F0F9FF", BackgroundAlt: "E0F2FE",
			TextMain: "0C4A6E", TextLight: "38BDF8", ShapeFill: "E0F2FE",
		},
		Fonts:          models.ThemeFonts{Main: "Helvetica", Heading: "Helvetica"},
		Decor:          models.DecorOrganic,
		BackgroundFile: "sky.jpg",
	},
}
