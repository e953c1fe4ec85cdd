package resolver

import "testing"

func TestBuildClarificationMessage(t *testing.T) {
	if got := buildClarificationMessage(nil); got != "Please be more specific." {
		t.Fatalf("unexpected message without options: %q", got)
	}

	got := buildClarificationMessage([]string{" Mercury (planet) ", "Mercury (element)"})
	want := "Please be more specific. Did you mean:\n- Mercury (planet)\n- Mercury (element)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAmbiguityAnswerLimitsOptions(t *testing.T) {
	answer := ambiguityAnswer([]string{"a", "b", "c", "d", "e"}, 3)

	if len(answer.Options) != 3 || answer.Options[2] != "c" {
		t.Fatalf("unexpected options %v", answer.Options)
	}
	if !answer.IsError() {
		t.Fatalf("ambiguity answer must be an error answer")
	}
}
