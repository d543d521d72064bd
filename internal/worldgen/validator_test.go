package worldgen

import (
	"strings"
	"testing"

	"github.com/abhisek/bridgewise/internal/questionbank"
)

func validWorld() questionbank.World {
	return questionbank.World{
		ID:   9,
		Name: "Slam Bidding",
		Questions: []questionbank.Question{
			{ID: 1, Prompt: "How many aces does 5D show?", Options: []string{"0 or 4", "1", "2"}, CorrectIndex: 1, Explanation: "Standard Blackwood responses."},
			{ID: 2, Prompt: "What does 5NT ask?", Options: []string{"Kings", "Queens"}, CorrectIndex: 0, Explanation: "5NT asks for kings."},
		},
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		mutate    func(*questionbank.World)
		req       Request
		wantErr   string
	}{
		{"structural ok", &StructuralValidator{}, nil, Request{Questions: 2}, ""},
		{"wrong count", &StructuralValidator{}, nil, Request{Questions: 3}, "got 2 questions"},
		{"empty prompt", &StructuralValidator{}, func(w *questionbank.World) { w.Questions[0].Prompt = "  " }, Request{}, "prompt is empty"},
		{"long prompt", &StructuralValidator{}, func(w *questionbank.World) { w.Questions[1].Prompt = strings.Repeat("a", maxPromptLen+1) }, Request{}, "prompt exceeds"},
		{"empty explanation", &StructuralValidator{}, func(w *questionbank.World) { w.Questions[1].Explanation = "" }, Request{}, "explanation is empty"},
		{"options ok", &OptionsValidator{}, nil, Request{}, ""},
		{"index out of range", &OptionsValidator{}, func(w *questionbank.World) { w.Questions[1].CorrectIndex = 2 }, Request{}, "out of range"},
		{"negative index", &OptionsValidator{}, func(w *questionbank.World) { w.Questions[0].CorrectIndex = -1 }, Request{}, "out of range"},
		{"duplicate option", &OptionsValidator{}, func(w *questionbank.World) { w.Questions[1].Options = []string{"Kings", " kings "} }, Request{}, "duplicate option"},
		{"blank option", &OptionsValidator{}, func(w *questionbank.World) { w.Questions[0].Options[2] = "" }, Request{}, "empty option"},
		{"no duplicates", &DuplicateValidator{}, nil, Request{Avoid: []string{"Who deals first?"}}, ""},
		{"repeats bank", &DuplicateValidator{}, nil, Request{Avoid: []string{"what does  5NT ask?"}}, "repeats"},
		{"repeats within world", &DuplicateValidator{}, func(w *questionbank.World) { w.Questions[1].Prompt = w.Questions[0].Prompt }, Request{}, "repeats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWorld()
			if tt.mutate != nil {
				tt.mutate(&w)
			}
			verr := tt.validator.Validate(&w, tt.req)
			if tt.wantErr == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(verr.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", verr.Error(), tt.wantErr)
			}
			if !verr.Retryable {
				t.Error("expected a retryable failure")
			}
		})
	}
}

func TestValidationError_Format(t *testing.T) {
	world := &ValidationError{Validator: "structural", Message: "too short"}
	if got := world.Error(); got != `validator "structural": too short` {
		t.Errorf("unexpected message %q", got)
	}
	q := &ValidationError{Validator: "options", Question: 4, Message: "empty option"}
	if got := q.Error(); got != `validator "options": question 4: empty option` {
		t.Errorf("unexpected message %q", got)
	}
}

func TestBuildUserMessage(t *testing.T) {
	req := testRequest()
	req.Avoid = []string{"old 1", "old 2", "old 3"}

	msg := buildUserMessage(req, 3, 2)
	for _, want := range []string{"World 9: Slam Bidding", "Topics: Blackwood, control bids", "Questions: 3", "1. old 2", "2. old 3"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "old 1") {
		t.Error("expected the oldest avoid entry to be dropped")
	}

	if got := numbered(nil, 5); got != "None" {
		t.Errorf("expected None, got %q", got)
	}
}
