package guard

import (
	"strings"
	"testing"

	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

func TestValidate_Ok(t *testing.T) {
	t.Parallel()

	text, errno := Validate(consts.AgentName, "  I'm feeling stressed today  ")
	if errno != nil {
		t.Fatalf("unexpected error: %v", errno)
	}
	if text != "I'm feeling stressed today" {
		t.Fatalf("text=%q", text)
	}
}

func TestValidate_WrongAgent(t *testing.T) {
	t.Parallel()

	if _, errno := Validate("other_agent", "I'm feeling fine"); errno != consts.ErrWrongAgent {
		t.Fatalf("errno=%v", errno)
	}
}

func TestValidate_LengthBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"too short", "hi", false},
		{"min length", "sad", true},
		{"max length", strings.Repeat("I feel sad ", 181) + "so tired.", true},
		{"too long", strings.Repeat("sad and tired ", 150), false},
		{"whitespace only", "      ", false},
	}
	for _, c := range cases {
		_, errno := Validate(consts.AgentName, c.input)
		if c.ok && errno != nil {
			t.Fatalf("%s: unexpected error %v", c.name, errno)
		}
		if !c.ok && errno != consts.ErrLengthOutOfBounds {
			t.Fatalf("%s: errno=%v", c.name, errno)
		}
	}
}

func TestValidate_UnsafeContent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<script>alert(1)</script>",
		"I feel < SCRIPT sad",
		"click javascript:void(0) please",
		"hello onload= evil stuff",
		"I feel <b>terrible</b> today",
		"run eval(payload) now",
	}
	for _, in := range inputs {
		if _, errno := Validate(consts.AgentName, in); errno != consts.ErrUnsafeContent {
			t.Fatalf("input %q: errno=%v", in, errno)
		}
	}
}

func TestValidate_SpamLike(t *testing.T) {
	t.Parallel()

	inputs := []string{
		strings.Repeat("a", 20),
		"please visit https://example.com for help",
		"!!! ??? ... !!! ??? ...",
	}
	for _, in := range inputs {
		if _, errno := Validate(consts.AgentName, in); errno != consts.ErrSpamLike {
			t.Fatalf("input %q: errno=%v", in, errno)
		}
	}
}

func TestValidate_RepeatWithinLimit(t *testing.T) {
	t.Parallel()

	// 不超过上限的重复属于正常表达
	if _, errno := Validate(consts.AgentName, "I feel soooo tired"); errno != nil {
		t.Fatalf("unexpected error: %v", errno)
	}
}
