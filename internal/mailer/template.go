package mailer

import (
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/rohitmodi970/casual-quizing/internal/model"
)

// Summary is the rendered-input view of a completed attempt.
type Summary struct {
	Email          string
	Score          int // 0-100, server-computed
	CorrectCount   int
	IncorrectCount int
	TotalQuestions int
	TimeTaken      int // seconds
	Answers        []model.QuizAnswer
}

// TimeFormatted returns the attempt duration as m:ss.
func (s Summary) TimeFormatted() string {
	return fmt.Sprintf("%d:%02d", s.TimeTaken/60, s.TimeTaken%60)
}

// Message is a fully rendered result-summary email.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

const htmlBody = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <div style="background: #667eea; color: white; padding: 30px; text-align: center;">
        <h1>Quiz Completed!</h1>
        <p>Congratulations on completing the quiz, {{.Email}}!</p>
      </div>
      <div style="background: #f9f9f9; padding: 30px;">
        <div style="background: white; padding: 20px; text-align: center;">
          <p style="font-size: 3em; font-weight: bold; color: #667eea; margin: 0;">{{.Score}}%</p>
          <p style="margin: 0; color: #666;">Your Final Score</p>
          <p style="color: #666;">
            Correct: {{.CorrectCount}} &middot; Incorrect: {{.IncorrectCount}} &middot; Time: {{.TimeFormatted}}
          </p>
        </div>
        <h3>Detailed Results:</h3>
        {{range $i, $a := .Answers}}
        <div style="margin: 10px 0; padding: 10px; border-left: 4px solid {{if $a.IsCorrect}}#28a745{{else}}#dc3545{{end}};">
          <strong>Q{{inc $i}}:</strong> {{$a.Question}}<br>
          <strong>Your Answer:</strong> {{$a.UserAnswer}}<br>
          {{if not $a.IsCorrect}}<strong>Correct Answer:</strong> {{$a.CorrectAnswer}}<br>{{end}}
          {{if $a.Category}}<small><em>Category: {{$a.Category}} | Difficulty: {{$a.Difficulty}}</em></small>{{end}}
        </div>
        {{end}}
      </div>
      <div style="text-align: center; margin-top: 30px; color: #666; font-size: 0.9em;">
        <p>Thank you for using our Quiz Platform!</p>
        <p><small>This email was sent automatically. Please do not reply.</small></p>
      </div>
    </div>
  </body>
</html>`

const textBody = `Quiz Results for {{.Email}}

Your Score: {{.Score}}% ({{.CorrectCount}}/{{.TotalQuestions}})
Time Taken: {{.TimeFormatted}}

Detailed Results:
{{range $i, $a := .Answers}}
Q{{inc $i}}: {{$a.Question}}
Your Answer: {{$a.UserAnswer}}
{{if $a.IsCorrect}}Correct!{{else}}Correct Answer: {{$a.CorrectAnswer}}{{end}}
{{if $a.Category}}({{$a.Category}} - {{$a.Difficulty}}){{end}}
{{end}}
Thank you for using our Quiz Platform!
`

var funcs = map[string]any{
	"inc": func(i int) int { return i + 1 },
}

var (
	htmlTmpl = template.Must(template.New("result_html").Funcs(funcs).Parse(htmlBody))
	textTmpl = texttemplate.Must(texttemplate.New("result_text").Funcs(funcs).Parse(textBody))
)

// Render produces the subject and both bodies for a result summary.
func Render(s Summary) (Message, error) {
	var html, text strings.Builder

	if err := htmlTmpl.Execute(&html, s); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}
	if err := textTmpl.Execute(&text, s); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}

	return Message{
		Subject: fmt.Sprintf("Quiz Results - You scored %d%%!", s.Score),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
