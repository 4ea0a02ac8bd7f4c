package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"workoo-web/internal/models"
)

func collectAnswers(c *gin.Context, questions []models.AssessmentQuestion) ([]models.AssessmentAnswer, map[string]string) {
	answers := make([]models.AssessmentAnswer, 0, len(questions))
	missing := map[string]string{}
	for _, q := range questions {
		field := fmt.Sprintf("q%d", q.ID)
		idx, err := strconv.Atoi(c.PostForm(field))
		if err != nil || idx < 0 || idx >= len(q.Options) {
			missing[field] = "Pick one option."
			continue
		}
		answers = append(answers, models.AssessmentAnswer{QuestionID: q.ID, OptionIndex: idx})
	}
	return answers, missing
}
