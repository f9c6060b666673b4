package curriculum

// defaultTopics is the built-in topic set, used when no data file is present.
func defaultTopics() []Topic {
	return []Topic{
		{
			ID:          "science_photosynthesis",
			Name:        "Photosynthesis",
			Subject:     "Science",
			GradeRange:  "3-5",
			Description: "How plants make food using sunlight",
			Keywords:    []string{"plant", "sun", "leaf", "green", "tree", "flower", "garden"},
			LearningObjectives: []string{
				"Understand how plants produce food",
				"Learn about the role of sunlight in plant growth",
				"Identify parts of a plant",
			},
			RelatedTopics: []string{"plant_parts", "ecosystems", "food_chain"},
			StoryThemes:   []string{"magical garden", "talking plants", "sun adventure"},
		},
		{
			ID:          "science_water_cycle",
			Name:        "Water Cycle",
			Subject:     "Science",
			GradeRange:  "2-4",
			Description: "The journey of water through evaporation, condensation, and precipitation",
			Keywords:    []string{"water", "rain", "cloud", "river", "ocean", "drop", "wet"},
			LearningObjectives: []string{
				"Understand evaporation and condensation",
				"Learn about precipitation",
				"Trace water's journey",
			},
			RelatedTopics: []string{"weather", "states_of_matter", "ecosystems"},
			StoryThemes:   []string{"raindrop journey", "cloud adventures", "river tales"},
		},
		{
			ID:          "math_shapes",
			Name:        "Geometric Shapes",
			Subject:     "Mathematics",
			GradeRange:  "K-2",
			Description: "Basic 2D and 3D shapes and their properties",
			Keywords:    []string{"circle", "square", "triangle", "rectangle", "shape", "round", "corner"},
			LearningObjectives: []string{
				"Identify basic shapes",
				"Count sides and corners",
				"Recognize shapes in everyday objects",
			},
			RelatedTopics: []string{"measurement", "symmetry", "patterns"},
			StoryThemes:   []string{"shape kingdom", "geometry adventure", "pattern magic"},
		},
		{
			ID:          "science_animals",
			Name:        "Animal Classification",
			Subject:     "Science",
			GradeRange:  "2-4",
			Description: "Grouping animals by their characteristics",
			Keywords:    []string{"animal", "mammal", "bird", "fish", "reptile", "insect", "pet", "wild"},
			LearningObjectives: []string{
				"Classify animals into groups",
				"Identify animal characteristics",
				"Understand habitats",
			},
			RelatedTopics: []string{"habitats", "food_chain", "life_cycles"},
			StoryThemes:   []string{"animal friends", "forest adventure", "ocean journey"},
		},
		{
			ID:          "science_space",
			Name:        "Solar System",
			Subject:     "Science",
			GradeRange:  "3-5",
			Description: "Planets, stars, and space exploration",
			Keywords:    []string{"planet", "star", "moon", "sun", "rocket", "space", "earth", "sky"},
			LearningObjectives: []string{
				"Name the planets in order",
				"Understand day and night",
				"Learn about the moon phases",
			},
			RelatedTopics: []string{"gravity", "seasons", "earth_science"},
			StoryThemes:   []string{"space adventure", "planet exploration", "starlight journey"},
		},
		{
			ID:          "science_human_body",
			Name:        "Human Body",
			Subject:     "Science",
			GradeRange:  "2-5",
			Description: "Body parts and their functions",
			Keywords:    []string{"body", "heart", "brain", "bone", "muscle", "hand", "eye", "ear"},
			LearningObjectives: []string{
				"Identify major body parts",
				"Understand organ functions",
				"Learn about staying healthy",
			},
			RelatedTopics: []string{"nutrition", "exercise", "senses"},
			StoryThemes:   []string{"body adventure", "health heroes", "sense exploration"},
		},
		{
			ID:          "social_community",
			Name:        "Community Helpers",
			Subject:     "Social Studies",
			GradeRange:  "K-2",
			Description: "People who help in our community",
			Keywords:    []string{"doctor", "teacher", "firefighter", "police", "nurse", "helper", "work"},
			LearningObjectives: []string{
				"Identify community helpers",
				"Understand different jobs",
				"Appreciate community service",
			},
			RelatedTopics: []string{"citizenship", "safety", "family"},
			StoryThemes:   []string{"helper heroes", "community adventure", "job day"},
		},
		{
			ID:          "language_storytelling",
			Name:        "Story Elements",
			Subject:     "Language Arts",
			GradeRange:  "1-3",
			Description: "Characters, setting, and plot in stories",
			Keywords:    []string{"story", "book", "character", "hero", "adventure", "beginning", "end"},
			LearningObjectives: []string{
				"Identify story characters",
				"Describe settings",
				"Understand plot structure",
			},
			RelatedTopics: []string{"reading", "writing", "vocabulary"},
			StoryThemes:   []string{"story within story", "character journey", "tale telling"},
		},
	}
}
