package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/recurrence"
)

type Type string

const (
	TypePattern    Type = "pattern"
	TypeWeekday    Type = "weekday"
	TypeStart      Type = "start"
	TypeEnd        Type = "end"
	TypeGoto       Type = "goto"
	TypeToggle     Type = "toggle"
	TypeReset      Type = "reset"
	TypeExceptions Type = "exceptions"
	TypeExport     Type = "export"
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

type PatternArgs struct {
	Kind     recurrence.Kind
	Weekdays []time.Weekday
}

type WeekdayArgs struct {
	Day time.Weekday
}

type DateArgs struct {
	Date model.Date
}

type GotoArgs struct {
	Month model.Month
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type    Type
	Raw     string
	Pattern *PatternArgs
	Weekday *WeekdayArgs
	Date    *DateArgs
	Goto    *GotoArgs
	Export  *ExportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypePattern:
		return parsePattern(input, args)
	case TypeWeekday:
		return parseWeekday(input, args)
	case TypeStart, TypeEnd, TypeToggle:
		return parseDate(input, Type(head), args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeReset, TypeExceptions:
		return Command{Type: Type(head), Raw: input}, nil
	case TypeExport:
		path := ""
		if len(args) > 0 {
			path = strings.Join(args, " ")
		}
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: path}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parsePattern accepts any pattern name; unknown names mean no repeat.
func parsePattern(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "pattern requires a kind"}
	}
	out := &PatternArgs{Kind: recurrence.ParseKind(args[0])}
	for _, arg := range args[1:] {
		for _, item := range strings.Split(arg, ",") {
			if strings.TrimSpace(item) == "" {
				continue
			}
			wd, err := ParseWeekday(item)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			out.Weekdays = append(out.Weekdays, wd)
		}
	}
	return Command{Type: TypePattern, Raw: raw, Pattern: out}, nil
}

func parseWeekday(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "weekday requires one day"}
	}
	wd, err := ParseWeekday(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeWeekday, Raw: raw, Weekday: &WeekdayArgs{Day: wd}}, nil
}

func parseDate(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a date (YYYY-MM-DD)", typ)}
	}
	d, err := model.ParseDate(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: typ, Raw: raw, Date: &DateArgs{Date: d}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a month (YYYY-MM)"}
	}
	m, err := model.ParseMonth(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Month: m}}, nil
}

// ParseWeekday accepts English day names, three-letter abbreviations, or
// a number from 1 (Monday) to 7 (Sunday).
func ParseWeekday(raw string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > 7 {
			return 0, fmt.Errorf("weekday number out of range: %d", n)
		}
		return time.Weekday(n % 7), nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if v == name || (len(v) >= 3 && strings.HasPrefix(name, v)) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", raw)
}
