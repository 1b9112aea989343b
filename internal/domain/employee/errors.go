package employee

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrSalaryChangeNotAllowed = fmt.Errorf("%w: only admin may change salary fields", user.ErrForbidden)
)
