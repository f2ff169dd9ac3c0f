package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is a chat session between the operator and a facilitator that routes
// questions to the experts.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Render formats the markdown answers for the terminal. Answers are
	// printed as is when nil.
	Render func(markdown string) string
}

// New creates an Agent that reads questions from r and writes answers to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens the chats of the experts and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	experts := append([]*Expert{a.Facilitator}, a.Experts...)
	for _, e := range experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return nil
}

const (
	prompt = "assist> "
	bye    = "bye"
)

// Run answers the prompts first, then the questions read from the operator
// until "bye" or the end of the input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.w, "Ask about the projected statement. Type %q to exit.\n", bye)

	for {
		fmt.Fprint(a.w, prompt)
		question, err := a.next(&prompts)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if question == "" {
			continue
		}
		if question == bye {
			return nil
		}
		answer, err := a.answer(ctx, question)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}

// next returns the next pending prompt, echoed, or the next line of input.
func (a *Agent) next(prompts *[]string) (string, error) {
	if len(*prompts) > 0 {
		q := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		fmt.Fprintln(a.w, q)
		return q, nil
	}
	line, err := a.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *Agent) answer(ctx context.Context, question string) (string, error) {
	content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	if a.Render != nil {
		return a.Render(b.String()), nil
	}
	return b.String(), nil
}
