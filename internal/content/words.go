package content

// Drawing topics by difficulty tier. Words inside one tier are interchangeable;
// the bank never hands out a word present in the caller's used set.
var gameTopics = map[string]map[string][]string{
	"animals": {
		"easy":   {"cat", "dog", "fish", "bird", "pig"},
		"medium": {"elephant", "giraffe", "penguin", "kangaroo", "octopus"},
		"hard":   {"platypus", "chameleon", "narwhal", "armadillo", "pangolin"},
	},
	"food": {
		"easy":   {"apple", "bread", "cake", "milk", "egg"},
		"medium": {"pizza", "sushi", "hamburger", "ice cream", "tacos"},
		"hard":   {"ratatouille", "tiramisu", "croissant", "guacamole", "bruschetta"},
	},
	"places": {
		"easy":   {"house", "park", "school", "store", "farm"},
		"medium": {"beach", "mountain", "city", "forest", "desert"},
		"hard":   {"observatory", "lighthouse", "monastery", "aquarium", "colosseum"},
	},
	"objects": {
		"easy":   {"book", "chair", "table", "door", "bed"},
		"medium": {"telephone", "bicycle", "umbrella", "glasses", "camera"},
		"hard":   {"microscope", "telescope", "typewriter", "chandelier", "gramophone"},
	},
	"emotions": {
		"easy":   {"happy", "sad", "mad", "tired", "shy"},
		"medium": {"excited", "worried", "confused", "surprised", "scared"},
		"hard":   {"anxious", "nostalgic", "confident", "suspicious", "determined"},
	},
	"actions": {
		"easy":   {"run", "jump", "walk", "sit", "eat"},
		"medium": {"dancing", "swimming", "cooking", "reading", "painting"},
		"hard":   {"meditating", "conducting", "juggling", "skateboarding", "somersaulting"},
	},
	"weather": {
		"easy":   {"sun", "rain", "snow", "wind", "cloud"},
		"medium": {"rainbow", "storm", "fog", "hail", "frost"},
		"hard":   {"hurricane", "tornado", "blizzard", "avalanche", "thunderstorm"},
	},
	"sports": {
		"easy":   {"ball", "bat", "run", "jump", "swim"},
		"medium": {"soccer", "basketball", "tennis", "baseball", "volleyball"},
		"hard":   {"badminton", "waterpolo", "lacrosse", "cricket", "rugby"},
	},
}
