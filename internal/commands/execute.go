package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Goto   func(GotoArgs) (Result, error)
	Title  func(TitleArgs) (Result, error)
	Clear  func() (Result, error)
	Font   func(FontArgs) (Result, error)
	Line   func(LineArgs) (Result, error)
	Reload func() (Result, error)
	Copy   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeTitle:
		if handlers.Title == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Title(*cmd.Title)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeFont:
		if handlers.Font == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Font(*cmd.Font)
	case TypeLine:
		if handlers.Line == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Line(*cmd.Line)
	case TypeReload:
		if handlers.Reload == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reload()
	case TypeCopy:
		if handlers.Copy == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Copy()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
