package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeGoto   Type = "goto"
	TypeTitle  Type = "title"
	TypeClear  Type = "clear"
	TypeFont   Type = "font"
	TypeLine   Type = "line"
	TypeReload Type = "reload"
	TypeCopy   Type = "copy"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type GotoArgs struct {
	Slide int
}

type TitleArgs struct {
	Text string
}

type FontArgs struct {
	Size int
}

type LineArgs struct {
	Height float64
}

type Command struct {
	Type  Type
	Raw   string
	Goto  *GotoArgs
	Title *TitleArgs
	Font  *FontArgs
	Line  *LineArgs
}

var aliases = map[string]Type{
	"go":   TypeGoto,
	"g":    TypeGoto,
	"size": TypeFont,
	"lh":   TypeLine,
	"yank": TypeCopy,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeGoto:
		return parseGoto(input, args)
	case TypeTitle:
		// keep the title exactly as typed after the command word
		text := strings.TrimSpace(strings.TrimPrefix(raw, parts[0]))
		return Command{Type: TypeTitle, Raw: input, Title: &TitleArgs{Text: text}}, nil
	case TypeClear, TypeReload, TypeCopy:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", typ)}
		}
		return Command{Type: typ, Raw: input}, nil
	case TypeFont:
		return parseFont(input, args)
	case TypeLine:
		return parseLine(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a slide number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid slide number: %s", args[0])}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Slide: n}}, nil
}

func parseFont(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "font requires a size in px"}
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "px"))
	if err != nil || n <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid font size: %s", args[0])}
	}
	return Command{Type: TypeFont, Raw: raw, Font: &FontArgs{Size: n}}, nil
}

func parseLine(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "line requires a height multiplier"}
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || v <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid line height: %s", args[0])}
	}
	return Command{Type: TypeLine, Raw: raw, Line: &LineArgs{Height: v}}, nil
}
