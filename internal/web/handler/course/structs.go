package course

type createInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Level       string `json:"level" validate:"max=50"`
	Status      string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

type updateInput struct {
	CourseID    uint64  `json:"courseId" validate:"required"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Level       *string `json:"level" validate:"omitempty,max=50"`
	Status      *string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

type courseRef struct {
	CourseID uint64 `json:"courseId" validate:"required"`
}

type topicInput struct {
	CourseID uint64 `json:"courseId" validate:"required"`
	Title    string `json:"title" validate:"required,max=200"`
	Position *int   `json:"position" validate:"omitempty,min=0"`
}

type topicRef struct {
	TopicID uint64 `json:"topicId" validate:"required"`
}

type contentInput struct {
	TopicID  uint64 `json:"topicId" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=video written interview quiz"`
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body"`
	VideoURL string `json:"videoUrl" validate:"omitempty,url,max=500"`
	Position *int   `json:"position" validate:"omitempty,min=0"`
}

type contentRef struct {
	ContentID uint64 `json:"contentId" validate:"required"`
}
