package models

type Exercise struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DurationSeconds int      `json:"durationSeconds"`
	Description     string   `json:"description"`
	Instructions    []string `json:"instructions"`
	Benefits        []string `json:"benefits"`
}

func DefaultExercises() []Exercise {
	return []Exercise{
		{
			ID:              "breathing",
			Name:            "Breathing Exercise",
			DurationSeconds: 300,
			Description:     "Deep breathing to reduce stress and improve focus",
			Instructions: []string{
				"Sit comfortably with your back straight",
				"Breathe in slowly through your nose for 4 counts",
				"Hold your breath for 4 counts",
				"Exhale slowly through your mouth for 6 counts",
				"Repeat this cycle",
			},
			Benefits: []string{"Reduces stress", "Improves focus", "Lowers blood pressure"},
		},
		{
			ID:              "cardio",
			Name:            "Light Cardio",
			DurationSeconds: 900,
			Description:     "Gentle cardiovascular exercise",
			Instructions: []string{
				"Start with light marching in place",
				"Gradually increase intensity",
				"Include arm movements",
				"Maintain steady breathing",
				"Cool down gradually",
			},
			Benefits: []string{"Improves heart health", "Boosts energy", "Burns calories"},
		},
		{
			ID:              "cycling",
			Name:            "Stationary Cycling",
			DurationSeconds: 1200,
			Description:     "Low-impact cycling exercise",
			Instructions: []string{
				"Adjust seat to proper height",
				"Start with low resistance",
				"Maintain steady pace",
				"Keep shoulders relaxed",
				"Gradually increase intensity",
			},
			Benefits: []string{"Strengthens legs", "Low impact on joints", "Improves endurance"},
		},
		{
			ID:              "stretching",
			Name:            "Stretching Routine",
			DurationSeconds: 600,
			Description:     "Full body stretching for flexibility",
			Instructions: []string{
				"Warm up with light movement",
				"Hold each stretch for 15-30 seconds",
				"Breathe deeply during stretches",
				"Don't bounce or force movements",
				"Focus on major muscle groups",
			},
			Benefits: []string{"Improves flexibility", "Reduces muscle tension", "Prevents injury"},
		},
	}
}
