// Package singleinst installs the single-instance guard: only one perch
// process runs per user; later launch attempts are redirected into the
// running instance through the duplicate-launch callback.
package singleinst

import (
	"fmt"

	"github.com/perchhq/perch/internal/host"
)

// Integration arms the host's single-instance lock.
type Integration struct {
	uniqueID string
	onSecond host.SecondInstanceFunc
}

// New builds the integration. onSecond runs in the surviving process each
// time a duplicate launch is attempted.
func New(uniqueID string, onSecond host.SecondInstanceFunc) *Integration {
	return &Integration{uniqueID: uniqueID, onSecond: onSecond}
}

func (i *Integration) Name() string { return "single-instance" }

func (i *Integration) Attach(b host.Builder) error {
	if i.uniqueID == "" {
		return fmt.Errorf("singleinst: unique ID must not be empty")
	}
	b.OnSecondInstance(i.uniqueID, i.onSecond)
	return nil
}
