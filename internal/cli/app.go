// Package cli is the interactive terminal front end for a quiz attempt. It
// hosts a session engine, renders questions, and translates typed commands
// into engine calls while reacting to countdown and phase events.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/session"
)

// App drives one quiz attempt from a line-oriented terminal.
type App struct {
	engine *session.Engine
	in     io.Reader
	out    io.Writer
	log    zerolog.Logger
}

// New assembles the app around an engine in the Loading phase.
func New(engine *session.Engine, in io.Reader, out io.Writer, log zerolog.Logger) *App {
	return &App{
		engine: engine,
		in:     in,
		out:    out,
		log:    log.With().Str("component", "cli").Logger(),
	}
}

// Run starts the session and blocks until it reaches a terminal phase or
// the input stream ends. Input is read on its own goroutine so countdown
// events are handled while the prompt is idle.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Loading questions...")
	if err := a.engine.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	questions := a.engine.Questions()
	fmt.Fprintf(a.out, "Loaded %d questions. You have %s. Good luck!\n",
		len(questions), a.engine.Remaining().Round(time.Second))
	a.printHelp()
	a.printCurrent()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			a.engine.Stop()
			return ctx.Err()

		case ev := <-a.engine.Events():
			if done := a.handleEvent(ctx, ev); done {
				return a.engine.Failure()
			}

		case line, ok := <-lines:
			if !ok {
				// Input closed mid-attempt: submit whatever is captured.
				out := a.engine.Submit(ctx, session.TriggerManual)
				if out.Performed && out.Err != nil {
					return out.Err
				}
				return nil
			}
			if done := a.handleLine(ctx, line); done {
				return a.engine.Failure()
			}
		}
	}
}

// handleEvent reacts to engine notifications. It returns true once the
// session reaches a terminal phase.
func (a *App) handleEvent(ctx context.Context, ev session.Event) bool {
	switch ev.Kind {
	case session.EventTick:
		a.announceTime(ev.Remaining)
		return false
	case session.EventPhaseChange:
		switch ev.Phase {
		case session.PhaseSubmitting:
			if ev.Trigger == session.TriggerAuto {
				fmt.Fprintln(a.out, "\nTime is up! Submitting your answers...")
			} else {
				fmt.Fprintln(a.out, "\nSubmitting your answers...")
			}
		case session.PhaseCompleted:
			a.printReceipt(a.engine.Receipt())
			return true
		case session.PhaseFailed:
			fmt.Fprintf(a.out, "\nSomething went wrong: %v\n", ev.Err)
			return true
		}
	}
	return false
}

// handleLine parses one typed command. It returns true once the session
// reaches a terminal phase.
func (a *App) handleLine(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	fields := strings.Fields(strings.ToLower(input))
	switch fields[0] {
	case "help", "?":
		a.printHelp()
	case "next", "n":
		a.move(+1)
	case "prev", "p":
		a.move(-1)
	case "goto", "g":
		if len(fields) < 2 {
			fmt.Fprintln(a.out, "Usage: goto <question number>")
			return false
		}
		number, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: goto <question number>")
			return false
		}
		if err := a.engine.Navigate(number - 1); err != nil {
			fmt.Fprintf(a.out, "Cannot go there: %v\n", err)
			return false
		}
		a.printCurrent()
	case "status", "s":
		a.printStatus()
	case "submit":
		out := a.engine.Submit(ctx, session.TriggerManual)
		if out.Performed && out.Err != nil {
			return true
		}
		// Terminal transitions are reported via the event channel.
	case "quit", "exit":
		fmt.Fprintln(a.out, "Abandoning the attempt. Nothing was submitted.")
		a.engine.Stop()
		return true
	default:
		a.selectOption(strings.ToUpper(fields[0]))
	}
	return false
}

// selectOption maps a single letter (A, B, C, D) onto the current
// question's option list and records the choice.
func (a *App) selectOption(input string) {
	if len(input) != 1 || input[0] < 'A' || input[0] > 'Z' {
		fmt.Fprintln(a.out, "Unknown command. Type 'help' for the command list.")
		return
	}

	current := a.engine.Current()
	questions := a.engine.Questions()
	if current >= len(questions) {
		return
	}

	options := questions[current].Options
	choice := int(input[0] - 'A')
	if choice >= len(options) {
		fmt.Fprintf(a.out, "Pick a letter between A and %c.\n", byte('A'+len(options)-1))
		return
	}

	if err := a.engine.SelectAnswer(current, options[choice]); err != nil {
		fmt.Fprintf(a.out, "Cannot answer: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Recorded: %s\n", options[choice])
	a.move(+1)
}

// move shifts the cursor and renders the landing question; at either edge
// it stays put and reports the status instead.
func (a *App) move(delta int) {
	target := a.engine.Current() + delta
	if err := a.engine.Navigate(target); err != nil {
		a.printStatus()
		return
	}
	a.printCurrent()
}

func (a *App) printCurrent() {
	questions := a.engine.Questions()
	current := a.engine.Current()
	if current >= len(questions) {
		return
	}

	q := questions[current]
	fmt.Fprintf(a.out, "\nQ%d/%d [%s | %s]\n%s\n\n", current+1, len(questions), q.Category, q.Difficulty, q.Text)
	for i, option := range q.Options {
		marker := " "
		if chosen, ok := a.engine.Answer(current); ok && chosen == option {
			marker = "*"
		}
		fmt.Fprintf(a.out, " %s %c. %s\n", marker, byte('A'+i), option)
	}
	fmt.Fprintln(a.out)
}

func (a *App) printStatus() {
	total := len(a.engine.Questions())
	fmt.Fprintf(a.out, "Answered %d of %d questions. Time left: %s\n",
		a.engine.AnsweredCount(), total, a.engine.Remaining().Round(time.Second))
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `
Commands:
  A/B/C/D      answer the current question
  next, prev   move between questions
  goto <n>     jump to question n
  status       show progress and time left
  submit       submit the attempt now
  quit         abandon the attempt`)
}

// announceTime prints time reminders at coarse thresholds so that the
// one-second tick stream does not flood the terminal.
func (a *App) announceTime(remaining time.Duration) {
	secs := int(remaining / time.Second)
	switch {
	case secs <= 0:
		return // auto-submit announcement follows
	case secs <= 10:
		fmt.Fprintf(a.out, "%d...\n", secs)
	case secs == 30 || secs == 60:
		fmt.Fprintf(a.out, "%d seconds left!\n", secs)
	case secs%300 == 0:
		fmt.Fprintf(a.out, "%d minutes remaining.\n", secs/60)
	}
}

func (a *App) printReceipt(receipt *model.SubmitQuizResponse) {
	if receipt == nil {
		return
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "=============================")
	fmt.Fprintf(a.out, " Final score:   %d%%\n", receipt.FinalScore)
	fmt.Fprintf(a.out, " Correct:       %d/%d\n", receipt.CorrectAnswers, receipt.TotalQuestions)
	fmt.Fprintf(a.out, " Quiz ID:       %s\n", receipt.QuizID)
	if receipt.EmailSent {
		fmt.Fprintln(a.out, " A results email is on its way.")
	}
	fmt.Fprintln(a.out, "=============================")

	a.printAnswerSheet()
}

// printAnswerSheet replays every question with the user's answer against
// the correct one.
func (a *App) printAnswerSheet() {
	for i, q := range a.engine.Questions() {
		answer, ok := a.engine.Answer(i)
		if !ok {
			answer = session.NotAnsweredPlaceholder
		}
		mark := "✗"
		if ok && answer == q.CorrectAnswer {
			mark = "✓"
		}
		fmt.Fprintf(a.out, "%s Q%d: %s\n    yours: %s | correct: %s\n", mark, i+1, q.Text, answer, q.CorrectAnswer)
	}
}
