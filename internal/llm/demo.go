package llm

import "encoding/json"

// NewDemoProvider returns a mock that answers every request with the same
// sample exam. It backs the "mock" provider for offline runs.
func NewDemoProvider() *MockProvider {
	m := NewMockProvider()
	m.Models = []string{"mock-1.5-flash", "mock-pro"}
	m.Default = &MockResponse{
		Content: json.RawMessage(demoExam),
		Usage:   Usage{InputTokens: 420, OutputTokens: 610, TotalTokens: 1030},
	}
	return m
}

const demoExam = `{
  "title": "The Rise of Solar Power in Small Towns",
  "passage": "Over the past five years, the small town of Greenfield has changed the way it produces electricity. In 2019, only a few houses had solar panels on their roofs. Local leaders believed that clean energy was too expensive for ordinary families. However, when the town council offered a subsidy in 2020, the number of installations began to grow quickly.\n\nThe graph shows the number of homes with solar panels each year. Between 2020 and 2021 the number more than doubled, and the growth continued in 2022. In 2023, the increase was smaller because the subsidy was reduced, but many families still chose solar power because electricity prices had risen.\n\nResidents say that the change has brought more than lower bills. Students now study energy at school by reading the meters on their own houses, and a new repair business has opened in the town center. Some people worry about what will happen when the panels become old, but most agree that the town has taken an important step.",
  "chart_config": {
    "type": "bar",
    "title": "Homes with Solar Panels in Greenfield",
    "x_label": "Year",
    "y_label": "Homes",
    "data": {"2019": 40, "2020": 95, "2021": 210, "2022": 330, "2023": 390}
  },
  "questions": [
    {
      "id": 1,
      "text": "According to the passage and the graph, what happened after the subsidy was introduced?",
      "options": ["Installations fell sharply.", "Installations grew quickly.", "Electricity prices dropped.", "The council stopped using solar power."],
      "answer": "Installations grew quickly.",
      "explanation": "本文に補助金の導入後に設置数が急増したとあり、グラフでも2020年以降に大きく増えている。"
    },
    {
      "id": 2,
      "text": "Why was the increase in 2023 smaller than in previous years?",
      "options": ["The panels became old.", "The subsidy was reduced.", "Fewer families lived in the town.", "Electricity became cheaper."],
      "answer": "The subsidy was reduced.",
      "explanation": "本文で2023年は補助金が減額されたため増加幅が小さくなったと説明されている。"
    },
    {
      "id": 3,
      "text": "Which statement is NOT mentioned as an effect of the change?",
      "options": ["Lower electricity bills.", "A new repair business.", "Students learning about energy.", "A new factory producing panels."],
      "answer": "A new factory producing panels.",
      "explanation": "工場の建設については本文で述べられていない。他の三つは本文中に記述がある。"
    },
    {
      "id": 4,
      "text": "About how many homes had solar panels in 2022?",
      "options": ["95", "210", "330", "390"],
      "answer": "330",
      "explanation": "グラフの2022年の棒は330を示している。"
    }
  ]
}`
