package assessment

// Answer is one selectable option with its contribution to the total score.
type Answer struct {
	Text  string
	Score int
}

// Question is one step of the mood assessment. The answer order is fixed;
// answers are always presented lowest score first.
type Question struct {
	Text    string
	Answers []Answer
}

// Catalog returns the fixed mood-assessment questionnaire: ten questions,
// four answers each, scored 1/3/5/10.
func Catalog() []Question {
	return questions
}

// MaxScore is the highest total a run over qs can reach: the sum of each
// question's best answer.
func MaxScore(qs []Question) int {
	total := 0
	for _, q := range qs {
		best := 0
		for _, a := range q.Answers {
			if a.Score > best {
				best = a.Score
			}
		}
		total += best
	}
	return total
}

var questions = []Question{
	{
		Text: "How do you feel about your overall emotional state right now?",
		Answers: []Answer{
			{Text: "Very Distressed", Score: 1},
			{Text: "Somewhat Distressed", Score: 3},
			{Text: "Neutral", Score: 5},
			{Text: "Calm and Positive", Score: 10},
		},
	},
	{
		Text: "How energized do you feel to handle your daily activities?",
		Answers: []Answer{
			{Text: "Completely Drained", Score: 1},
			{Text: "Low Energy", Score: 3},
			{Text: "Moderate Energy", Score: 5},
			{Text: "Fully Energized", Score: 10},
		},
	},
	{
		Text: "How would you rate your ability to concentrate on tasks today?",
		Answers: []Answer{
			{Text: "Unable to Focus", Score: 1},
			{Text: "Difficulty Staying Focused", Score: 3},
			{Text: "Moderately Focused", Score: 5},
			{Text: "Fully Focused and Alert", Score: 10},
		},
	},
	{
		Text: "How overwhelmed or stressed are you feeling right now?",
		Answers: []Answer{
			{Text: "Extremely Overwhelmed", Score: 1},
			{Text: "Moderately Stressed", Score: 3},
			{Text: "Somewhat Calm", Score: 5},
			{Text: "Relaxed and Stress-Free", Score: 10},
		},
	},
	{
		Text: "How would you describe your physical condition today (pain, fatigue, illness)?",
		Answers: []Answer{
			{Text: "Severe Discomfort", Score: 1},
			{Text: "Minor Aches or Fatigue", Score: 3},
			{Text: "Neutral or Average", Score: 5},
			{Text: "Healthy and Comfortable", Score: 10},
		},
	},
	{
		Text: "How confident do you feel about achieving your goals today?",
		Answers: []Answer{
			{Text: "No Confidence", Score: 1},
			{Text: "Some Confidence", Score: 3},
			{Text: "Moderately Confident", Score: 5},
			{Text: "Fully Confident and Capable", Score: 10},
		},
	},
	{
		Text: "How restorative and refreshing was your sleep last night?",
		Answers: []Answer{
			{Text: "Not Restorative At All", Score: 1},
			{Text: "Partially Restorative", Score: 3},
			{Text: "Adequate", Score: 5},
			{Text: "Fully Restorative and Refreshing", Score: 10},
		},
	},
	{
		Text: "How well are you managing your emotions right now?",
		Answers: []Answer{
			{Text: "Extremely Poorly", Score: 1},
			{Text: "Somewhat Poorly", Score: 3},
			{Text: "Neutral or Stable", Score: 5},
			{Text: "Very Well and Balanced", Score: 10},
		},
	},
	{
		Text: "How productive do you feel your day has been so far?",
		Answers: []Answer{
			{Text: "Not Productive At All", Score: 1},
			{Text: "Somewhat Productive", Score: 3},
			{Text: "Moderately Productive", Score: 5},
			{Text: "Highly Productive", Score: 10},
		},
	},
	{
		Text: "How would you rate your current level of happiness and satisfaction?",
		Answers: []Answer{
			{Text: "Extremely Dissatisfied", Score: 1},
			{Text: "Somewhat Dissatisfied", Score: 3},
			{Text: "Neutral or Content", Score: 5},
			{Text: "Very Happy and Satisfied", Score: 10},
		},
	},
}
