package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Body-validation lints (резервируем 5000-5099)
	LintInfo             Code = 5000
	LintMissingFields    Code = 5001
	LintFilterMapNext    Code = 5002
	LintMissingMatchArms Code = 5003
	LintTrailingReturn   Code = 5004
	LintUnnecessaryElse  Code = 5005
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "VET0000"
	case LintInfo:
		return "VET5000"
	case LintMissingFields:
		return "VET5001"
	case LintFilterMapNext:
		return "VET5002"
	case LintMissingMatchArms:
		return "VET5003"
	case LintTrailingReturn:
		return "VET5004"
	case LintUnnecessaryElse:
		return "VET5005"
	default:
		return fmt.Sprintf("VET%04d", uint16(c))
	}
}
