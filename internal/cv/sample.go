package cv

// Sample returns a filled-in résumé used by the demo renderer and tests.
func Sample() Resume {
	return Resume{
		Personal: Personal{
			Name:     "Jordan Lee",
			Title:    "Senior Backend Engineer",
			Email:    "jordan.lee@example.com",
			Phone:    "+1-555-0102",
			Location: "Austin, TX",
			GitHub:   "https://github.com/jordanlee",
			LinkedIn: "https://www.linkedin.com/in/jordanlee",
			Summary:  "Backend engineer with 8+ years of experience building resilient APIs and data services.",
		},
		Experience: []Experience{
			{
				Company:   "Acme Logistics",
				Position:  "Senior Backend Engineer",
				Location:  "Austin, TX",
				StartDate: "2021-04",
				EndDate:   "Present",
				Highlights: []string{
					"Designed a routing service that reduced shipment latency by 18%.",
					"Implemented distributed tracing to cut incident triage time by 35%.",
				},
			},
			{
				Company:   "Blue Harbor Systems",
				Position:  "Backend Engineer",
				Location:  "Seattle, WA",
				StartDate: "2018-01",
				EndDate:   "2021-03",
				Highlights: []string{
					"Built event-driven ingestion pipelines for compliance data feeds.",
				},
			},
		},
		Education: []Education{
			{
				Institution: "University of Texas",
				Degree:      "B.Sc.",
				Field:       "Computer Science",
				Location:    "Austin, TX",
				StartDate:   "2013",
				EndDate:     "2017",
			},
		},
		Skills: []SkillGroup{
			{Category: "Languages", Items: []string{"Go", "Java", "SQL"}},
			{Category: "Infrastructure", Items: []string{"AWS", "Docker", "Kubernetes"}},
		},
		Languages: []Language{
			{Name: "English", Level: "Native"},
			{Name: "German", Level: "B2"},
		},
		Projects: []Project{
			{
				Name:         "tracekit",
				Description:  "Lightweight tracing helpers for Go services.",
				URL:          "https://github.com/jordanlee/tracekit",
				Technologies: []string{"Go", "OpenTelemetry"},
			},
		},
		Interests: []string{"Climbing", "Open source"},
	}
}
