package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/goto 12", TypeGoto},
		{"g 3", TypeGoto},
		{"title Opening remarks", TypeTitle},
		{"/clear", TypeClear},
		{"font 18px", TypeFont},
		{"line 1.8", TypeLine},
		{"lh 2", TypeLine},
		{"reload", TypeReload},
		{"copy", TypeCopy},
		{"/yank", TypeCopy},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/title   Q &  A ")
	if err != nil {
		t.Fatalf("parse title: %v", err)
	}
	if cmd.Title.Text != "Q &  A" {
		t.Fatalf("unexpected title text: %q", cmd.Title.Text)
	}

	cmd, err = Parse("font 18px")
	if err != nil || cmd.Font.Size != 18 {
		t.Fatalf("unexpected font parse: %+v %v", cmd.Font, err)
	}

	cmd, err = Parse("goto 7")
	if err != nil || cmd.Goto.Slide != 7 {
		t.Fatalf("unexpected goto parse: %+v %v", cmd.Goto, err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"/", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"goto", ErrCodeInvalidArgument},
		{"goto 0", ErrCodeInvalidArgument},
		{"goto two", ErrCodeInvalidArgument},
		{"font big", ErrCodeInvalidArgument},
		{"line -1", ErrCodeInvalidArgument},
		{"clear now", ErrCodeInvalidArgument},
		{"copy all", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/goto 4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Goto: func(a GotoArgs) (Result, error) {
			called = true
			if a.Slide != 4 {
				t.Fatalf("unexpected slide: %d", a.Slide)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("reload")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
