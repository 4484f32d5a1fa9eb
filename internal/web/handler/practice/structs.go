package practice

type createInput struct {
	Kind      string   `json:"kind" validate:"required,oneof=listening writing reading"`
	CourseID  *uint64  `json:"courseId" validate:"omitempty,min=1"`
	Title     string   `json:"title" validate:"required,max=200"`
	Prompt    string   `json:"prompt" validate:"max=10000"`
	MediaURL  string   `json:"mediaUrl" validate:"omitempty,url,max=500"`
	Passage   string   `json:"passage"`
	AnswerKey []string `json:"answerKey" validate:"max=200"`
}

type submitInput struct {
	PracticeID uint64   `json:"practiceId" validate:"required"`
	Answers    []string `json:"answers" validate:"max=200"`
	Text       string   `json:"text"`
}

type reviewInput struct {
	SubmissionID uint64 `json:"submissionId" validate:"required"`
	Score        *int   `json:"score" validate:"required,min=0,max=100"`
	Feedback     string `json:"feedback" validate:"max=5000"`
}
