package revision

import "errors"

var ErrNoMonitoredChange = errors.New("no monitored salary field changed")
