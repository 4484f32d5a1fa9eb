package quiz

type questionInput struct {
	Prompt        string   `json:"prompt" validate:"required,max=2000"`
	Options       []string `json:"options" validate:"required,min=2,max=10,dive,required,max=500"`
	CorrectOption *int     `json:"correctOption" validate:"required,min=0"`
}

type createInput struct {
	ContentID    uint64          `json:"contentId" validate:"required"`
	Title        string          `json:"title" validate:"required,max=200"`
	PassingScore int             `json:"passingScore" validate:"min=0,max=100"`
	Questions    []questionInput `json:"questions" validate:"required,min=1,dive"`
}

type answerInput struct {
	QuestionID     uint64 `json:"questionId" validate:"required"`
	SelectedOption *int   `json:"selectedOption" validate:"required,min=0"`
}

type submitInput struct {
	QuizID  uint64        `json:"quizId" validate:"required"`
	Answers []answerInput `json:"answers" validate:"required,min=1,dive"`
}
