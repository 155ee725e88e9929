package content

// Question is one trivia prompt with its multiple-choice options.
type Question struct {
	Text     string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
	Category string   `json:"category"`
}

// ChaseQuestion is one pursuit-duel prompt. Difficulty 1 is easy, 2 is hard.
type ChaseQuestion struct {
	Text       string   `json:"question"`
	Options    []string `json:"options"`
	Correct    string   `json:"correct"`
	Difficulty int      `json:"difficulty"`
}

var triviaQuestions = []Question{
	{
		Text:     "What is the largest planet in our solar system?",
		Options:  []string{"Jupiter", "Saturn", "Neptune", "Mars"},
		Correct:  "Jupiter",
		Category: "Science",
	},
	{
		Text:     "Which planet is known as the Red Planet?",
		Options:  []string{"Mars", "Venus", "Jupiter", "Mercury"},
		Correct:  "Mars",
		Category: "Science",
	},
	{
		Text:     "What is the chemical symbol for gold?",
		Options:  []string{"Au", "Ag", "Fe", "Cu"},
		Correct:  "Au",
		Category: "Science",
	},
	{
		Text:     "Which country has the longest coastline in the world?",
		Options:  []string{"Canada", "Russia", "Indonesia", "Australia"},
		Correct:  "Canada",
		Category: "Geography",
	},
	{
		Text:     "What is the capital of Australia?",
		Options:  []string{"Canberra", "Sydney", "Melbourne", "Perth"},
		Correct:  "Canberra",
		Category: "Geography",
	},
	{
		Text:     "Which is the largest ocean on Earth?",
		Options:  []string{"Pacific", "Atlantic", "Indian", "Arctic"},
		Correct:  "Pacific",
		Category: "Geography",
	},
	{
		Text:     "Who played Iron Man in the Marvel Cinematic Universe?",
		Options:  []string{"Robert Downey Jr.", "Chris Evans", "Chris Hemsworth", "Mark Ruffalo"},
		Correct:  "Robert Downey Jr.",
		Category: "Entertainment",
	},
	{
		Text:     "Which band performed \"Bohemian Rhapsody\"?",
		Options:  []string{"Queen", "The Beatles", "Led Zeppelin", "Pink Floyd"},
		Correct:  "Queen",
		Category: "Entertainment",
	},
	{
		Text:     "What is the highest-grossing film of all time?",
		Options:  []string{"Avatar", "Avengers: Endgame", "Titanic", "Star Wars: Episode VII"},
		Correct:  "Avatar",
		Category: "Entertainment",
	},
	{
		Text:     "In which year did World War II end?",
		Options:  []string{"1945", "1944", "1946", "1943"},
		Correct:  "1945",
		Category: "History",
	},
	{
		Text:     "Who was the first President of the United States?",
		Options:  []string{"George Washington", "Thomas Jefferson", "John Adams", "Benjamin Franklin"},
		Correct:  "George Washington",
		Category: "History",
	},
	{
		Text:     "Which ancient civilization built the pyramids of Giza?",
		Options:  []string{"Egyptians", "Greeks", "Romans", "Mayans"},
		Correct:  "Egyptians",
		Category: "History",
	},
	{
		Text:     "Which country won the first FIFA World Cup in 1930?",
		Options:  []string{"Uruguay", "Brazil", "Argentina", "Italy"},
		Correct:  "Uruguay",
		Category: "Sports",
	},
	{
		Text:     "In which sport would you perform a slam dunk?",
		Options:  []string{"Basketball", "Volleyball", "Tennis", "Soccer"},
		Correct:  "Basketball",
		Category: "Sports",
	},
	{
		Text:     "How many players are on a standard soccer team during a match?",
		Options:  []string{"11", "10", "12", "9"},
		Correct:  "11",
		Category: "Sports",
	},
	{
		Text:     "Who co-founded Apple Computer with Steve Jobs?",
		Options:  []string{"Steve Wozniak", "Bill Gates", "Mark Zuckerberg", "Jeff Bezos"},
		Correct:  "Steve Wozniak",
		Category: "Technology",
	},
	{
		Text:     "What does \"HTTP\" stand for?",
		Options:  []string{"Hypertext Transfer Protocol", "High Tech Transfer Protocol", "Hypertext Technical Program", "High Tech Transport Program"},
		Correct:  "Hypertext Transfer Protocol",
		Category: "Technology",
	},
	{
		Text:     "Which programming language is known as the \"language of the web\"?",
		Options:  []string{"JavaScript", "Python", "Java", "C++"},
		Correct:  "JavaScript",
		Category: "Technology",
	},
}

var chaseQuestions = map[string][]ChaseQuestion{
	"Science": {
		{
			Text:       "What is the chemical symbol for gold?",
			Options:    []string{"Au", "Ag", "Fe", "Cu"},
			Correct:    "Au",
			Difficulty: 1,
		},
		{
			Text:       "Which planet is known as the Red Planet?",
			Options:    []string{"Mars", "Venus", "Jupiter", "Mercury"},
			Correct:    "Mars",
			Difficulty: 1,
		},
		{
			Text:       "What is the hardest natural substance on Earth?",
			Options:    []string{"Diamond", "Titanium", "Platinum", "Gold"},
			Correct:    "Diamond",
			Difficulty: 2,
		},
	},
	"History": {
		{
			Text:       "In which year did World War II end?",
			Options:    []string{"1945", "1944", "1946", "1943"},
			Correct:    "1945",
			Difficulty: 1,
		},
		{
			Text:       "Who was the first President of the United States?",
			Options:    []string{"George Washington", "Thomas Jefferson", "John Adams", "Benjamin Franklin"},
			Correct:    "George Washington",
			Difficulty: 1,
		},
		{
			Text:       "Which ancient wonder was located in Alexandria?",
			Options:    []string{"Lighthouse", "Colossus", "Hanging Gardens", "Temple of Artemis"},
			Correct:    "Lighthouse",
			Difficulty: 2,
		},
	},
	"Geography": {
		{
			Text:       "What is the capital of Australia?",
			Options:    []string{"Canberra", "Sydney", "Melbourne", "Perth"},
			Correct:    "Canberra",
			Difficulty: 1,
		},
		{
			Text:       "Which is the longest river in the world?",
			Options:    []string{"Nile", "Amazon", "Mississippi", "Yangtze"},
			Correct:    "Nile",
			Difficulty: 1,
		},
		{
			Text:       "In which mountain range would you find K2?",
			Options:    []string{"Himalayas", "Andes", "Alps", "Rockies"},
			Correct:    "Himalayas",
			Difficulty: 2,
		},
	},
}
