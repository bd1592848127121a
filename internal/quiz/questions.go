package quiz

// Questions is the fixed five-question quiz. Each question carries four
// options so the three preference ranks always leave one option unused.
var Questions = []Question{
	{
		Prompt: "When faced with conflict, you prefer:",
		Options: []string{
			"Calm negotiation and diplomacy",
			"Defensive manoeuvres to protect others",
			"Swift offensive action to end it quickly",
			"Listening to the Force for guidance",
		},
	},
	{
		Prompt: "Which training appeals to you the most?",
		Options: []string{
			"Lightsaber forms and combat techniques",
			"Meditation and expanding your connection to the Force",
			"Tactical leadership and battlefield strategy",
			"Deep study of ancient Jedi texts and lore",
		},
	},
	{
		Prompt: "Pick the trait you value most:",
		Options: []string{
			"Courage",
			"Wisdom",
			"Compassion",
			"Discipline",
		},
	},
	{
		Prompt: "Your ideal lightsaber is:",
		Options: []string{
			"A single-bladed weapon with a classic hilt",
			"A curved hilt emphasising finesse",
			"A double-bladed staff for versatility",
			"A shoto or short blade paired with the Force",
		},
	},
	{
		Prompt: "Choose the destiny that resonates with you:",
		Options: []string{
			"Guarding the peace across the galaxy",
			"Teaching Padawans and passing on knowledge",
			"Exploring unknown regions and uncovering secrets",
			"Leading troops into battle against tyranny",
		},
	},
}
