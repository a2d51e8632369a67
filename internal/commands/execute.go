package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Pattern    func(PatternArgs) (Result, error)
	Weekday    func(WeekdayArgs) (Result, error)
	Start      func(DateArgs) (Result, error)
	End        func(DateArgs) (Result, error)
	Goto       func(GotoArgs) (Result, error)
	Toggle     func(DateArgs) (Result, error)
	Reset      func() (Result, error)
	Exceptions func() (Result, error)
	Export     func(ExportArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypePattern:
		if handlers.Pattern == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Pattern(*cmd.Pattern)
	case TypeWeekday:
		if handlers.Weekday == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Weekday(*cmd.Weekday)
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Start(*cmd.Date)
	case TypeEnd:
		if handlers.End == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.End(*cmd.Date)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Toggle(*cmd.Date)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset()
	case TypeExceptions:
		if handlers.Exceptions == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Exceptions()
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Export(*cmd.Export)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
