package catalog

// Language is the spoken language of a course.
type Language string

const (
	LanguageHindi   Language = "Hindi"
	LanguageEnglish Language = "English"
)

// Difficulty is the audience level of a course.
type Difficulty string

const (
	DifficultyBeginner Difficulty = "Beginner"
	DifficultyAdvanced Difficulty = "Advanced"
)

// Course is one immutable catalog entry.
type Course struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	YouTubeID   string     `yaml:"youtube_id" json:"youtube_id"`
	Description string     `yaml:"description" json:"description"`
	Duration    string     `yaml:"duration" json:"duration"`
	Language    Language   `yaml:"language" json:"language"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
	Order       int        `yaml:"order" json:"order"`
	Thumbnail   string     `yaml:"thumbnail" json:"thumbnail"`
}

// Query narrows a listing. Zero fields match everything.
type Query struct {
	Language   Language
	Difficulty Difficulty
}

var validLanguages = map[Language]bool{
	LanguageHindi:   true,
	LanguageEnglish: true,
}

var validDifficulties = map[Difficulty]bool{
	DifficultyBeginner: true,
	DifficultyAdvanced: true,
}
