package models

// SkillAssessment is a premium skill test that grants a badge when passed.
type SkillAssessment struct {
	ID           int                  `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	BadgeIcon    string               `json:"badgeIcon,omitempty"`
	PassingScore int                  `json:"passingScore"`
	Questions    []AssessmentQuestion `json:"questions,omitempty"`
}

// AssessmentQuestion is one multiple-choice question.
type AssessmentQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AssessmentAnswer selects one option for a question.
type AssessmentAnswer struct {
	QuestionID  int `json:"questionId"`
	OptionIndex int `json:"optionIndex"`
}

// AssessmentResult is the backend's verdict on a submission.
type AssessmentResult struct {
	Score          int    `json:"score"`
	Passed         bool   `json:"passed"`
	CertificateURL string `json:"certificateUrl,omitempty"`
}
